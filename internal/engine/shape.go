package engine

import (
	"errors"
	"fmt"

	"github.com/inamate/drawtools/internal/geom"
)

// ErrUnknownShapeType is returned when a saved document names a shape type
// this package does not know.
var ErrUnknownShapeType = errors.New("unknown shape type")

// Kind enumerates the shape variants.
type Kind int

const (
	KindRectangle Kind = iota + 1
	KindEllipse
	KindTriangle
	KindLine
	KindPolygon
)

type kindInfo struct {
	name          string
	discriminator string
	zero          func() Shape
}

// Discriminators are the type tags of the DrawTools file format.
var kinds = map[Kind]kindInfo{
	KindRectangle: {"rectangle", "DrawTools.DrawRectangle", func() Shape { return &Rectangle{box: newBox(geom.Rect{}, DefaultStyle())} }},
	KindEllipse:   {"ellipse", "DrawTools.DrawEllipse", func() Shape { return &Ellipse{box: newBox(geom.Rect{}, DefaultStyle())} }},
	KindTriangle:  {"triangle", "DrawTools.DrawTriangle", func() Shape { return &Triangle{box: newBox(geom.Rect{}, DefaultStyle())} }},
	KindLine:      {"line", "DrawTools.DrawLine", func() Shape { return NewLine(geom.Point{}, geom.Point{}, DefaultStyle()) }},
	KindPolygon:   {"polygon", "DrawTools.DrawPolygon", func() Shape { return NewPolygon(nil, DefaultStyle()) }},
}

// Kinds lists every shape kind in declaration order.
func Kinds() []Kind {
	return []Kind{KindRectangle, KindEllipse, KindTriangle, KindLine, KindPolygon}
}

func (k Kind) String() string {
	if info, ok := kinds[k]; ok {
		return info.name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Discriminator returns the type tag written in front of a shape's fields.
func (k Kind) Discriminator() string {
	return kinds[k].discriminator
}

// ParseKind resolves a lower-case kind name such as "ellipse".
func ParseKind(name string) (Kind, error) {
	for k, info := range kinds {
		if info.name == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownShapeType, name)
}

// KindByDiscriminator resolves a persisted type tag.
func KindByDiscriminator(tag string) (Kind, error) {
	for k, info := range kinds {
		if info.discriminator == tag {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownShapeType, tag)
}

// newShape returns an empty shape of kind k with a fresh id.
func newShape(k Kind) (Shape, error) {
	info, ok := kinds[k]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownShapeType, int(k))
	}
	return info.zero(), nil
}

// Hit is the result of a hit test: NoHit, HitBody or a 1-based handle number.
type Hit int

const (
	NoHit   Hit = -1
	HitBody Hit = 0
)

// Handle returns the handle number and true when h names a handle.
func (h Hit) Handle() (int, bool) {
	return int(h), h > 0
}

// Cursor is the pointer shape a host should show.
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorSizeNWSE
	CursorSizeNS
	CursorSizeNESW
	CursorSizeWE
	CursorMove
	CursorCrosshair
)

// String returns the CSS cursor keyword.
func (c Cursor) String() string {
	switch c {
	case CursorSizeNWSE:
		return "nwse-resize"
	case CursorSizeNS:
		return "ns-resize"
	case CursorSizeNESW:
		return "nesw-resize"
	case CursorSizeWE:
		return "ew-resize"
	case CursorMove:
		return "move"
	case CursorCrosshair:
		return "crosshair"
	default:
		return "default"
	}
}

func (c Cursor) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Shape is a drawable element of a Scene. The set of implementations is
// closed: Rectangle, Ellipse, Triangle, Line and Polygon.
type Shape interface {
	ID() ID
	Kind() Kind

	Selected() bool
	SetSelected(selected bool)
	Style() Style
	SetStyle(style Style)

	// Clone returns an independent copy with the same id.
	Clone() Shape

	// HandleCount and Handle describe the 1-based resize handles.
	HandleCount() int
	Handle(n int) geom.Point
	HandleCursor(n int) Cursor

	HitTest(p geom.Point) Hit
	Intersects(r geom.Rect) bool
	Bounds() geom.Rect

	MoveHandleTo(p geom.Point, n int)
	Move(dx, dy int)
	Normalize()

	Draw(p Painter)

	WriteFields(w FieldWriter, order int) error
	ReadFields(r FieldReader, order int) error

	shape()
}

// shapeBase holds the state every variant shares.
type shapeBase struct {
	id       ID
	selected bool
	style    Style
}

func newBase(style Style) shapeBase {
	return shapeBase{id: NextID(), style: style}
}

func (b *shapeBase) ID() ID { return b.id }
func (b *shapeBase) Selected() bool { return b.selected }
func (b *shapeBase) SetSelected(sel bool) { b.selected = sel }
func (b *shapeBase) Style() Style { return b.style }
func (b *shapeBase) SetStyle(style Style) { b.style = style }
func (b *shapeBase) shape() {}

// writeStyle writes the base fields. Variants call it after their own.
func (b *shapeBase) writeStyle(w FieldWriter, order int) error {
	if err := w.WriteField(fieldKey("Color", order), b.style.Color.ToARGB()); err != nil {
		return err
	}
	return w.WriteField(fieldKey("PenWidth", order), b.style.PenWidth)
}

func (b *shapeBase) readStyle(r FieldReader, order int) error {
	var argb int32
	if err := r.ReadField(fieldKey("Color", order), &argb); err != nil {
		return err
	}
	var width int
	if err := r.ReadField(fieldKey("PenWidth", order), &width); err != nil {
		return err
	}
	b.style = Style{Color: ColorFromARGB(argb), PenWidth: width}
	return nil
}

type handleSet interface {
	Selected() bool
	HandleCount() int
	Handle(n int) geom.Point
}

// hitTest runs the shared test: handles of a selected shape win, then the
// body.
func hitTest(s handleSet, p geom.Point, inBody func(geom.Point) bool) Hit {
	if s.Selected() {
		for i := 1; i <= s.HandleCount(); i++ {
			if HandleRect(s.Handle(i)).Contains(p) {
				return Hit(i)
			}
		}
	}
	if inBody(p) {
		return HitBody
	}
	return NoHit
}
