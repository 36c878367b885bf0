package engine

import "github.com/inamate/drawtools/internal/geom"

// box is the geometry shared by the kinds defined by a bounding rectangle.
// Handles run clockwise from the top-left corner:
//
//	1 2 3
//	8   4
//	7 6 5
type box struct {
	shapeBase
	rect geom.Rect
}

func newBox(r geom.Rect, style Style) box {
	return box{shapeBase: newBase(style), rect: r}
}

// Rect returns the bounding rectangle as stored, which may be inverted while
// a resize is in progress.
func (b *box) Rect() geom.Rect {
	return b.rect
}

func (b *box) HandleCount() int {
	return 8
}

func (b *box) Handle(n int) geom.Point {
	r := b.rect
	xc := r.X + r.Width/2
	yc := r.Y + r.Height/2

	switch n {
	case 2:
		return geom.Pt(xc, r.Y)
	case 3:
		return geom.Pt(r.Right(), r.Y)
	case 4:
		return geom.Pt(r.Right(), yc)
	case 5:
		return geom.Pt(r.Right(), r.Bottom())
	case 6:
		return geom.Pt(xc, r.Bottom())
	case 7:
		return geom.Pt(r.X, r.Bottom())
	case 8:
		return geom.Pt(r.X, yc)
	default:
		return geom.Pt(r.X, r.Y)
	}
}

func (b *box) HandleCursor(n int) Cursor {
	switch n {
	case 1, 5:
		return CursorSizeNWSE
	case 2, 6:
		return CursorSizeNS
	case 3, 7:
		return CursorSizeNESW
	case 4, 8:
		return CursorSizeWE
	default:
		return CursorDefault
	}
}

func (b *box) HitTest(p geom.Point) Hit {
	return hitTest(b, p, b.rect.Normalize().Contains)
}

func (b *box) Intersects(r geom.Rect) bool {
	return b.rect.Normalize().Intersects(r.Normalize())
}

func (b *box) Bounds() geom.Rect {
	return b.rect.Normalize()
}

// MoveHandleTo moves the edges controlled by handle n to p. Unknown handle
// numbers leave the shape unchanged.
func (b *box) MoveHandleTo(p geom.Point, n int) {
	left, top := b.rect.Left(), b.rect.Top()
	right, bottom := b.rect.Right(), b.rect.Bottom()

	switch n {
	case 1:
		left, top = p.X, p.Y
	case 2:
		top = p.Y
	case 3:
		right, top = p.X, p.Y
	case 4:
		right = p.X
	case 5:
		right, bottom = p.X, p.Y
	case 6:
		bottom = p.Y
	case 7:
		left, bottom = p.X, p.Y
	case 8:
		left = p.X
	default:
		return
	}

	b.rect = geom.Rect{X: left, Y: top, Width: right - left, Height: bottom - top}
}

func (b *box) Move(dx, dy int) {
	b.rect = b.rect.Translate(dx, dy)
}

func (b *box) Normalize() {
	b.rect = b.rect.Normalize()
}

func (b *box) WriteFields(w FieldWriter, order int) error {
	if err := w.WriteField(fieldKey("Rect", order), b.rect); err != nil {
		return err
	}
	return b.writeStyle(w, order)
}

func (b *box) ReadFields(r FieldReader, order int) error {
	var rect geom.Rect
	if err := r.ReadField(fieldKey("Rect", order), &rect); err != nil {
		return err
	}
	if err := b.readStyle(r, order); err != nil {
		return err
	}
	b.rect = rect
	return nil
}

// Rectangle is an axis-aligned rectangle outline.
type Rectangle struct {
	box
}

// NewRectangle creates a rectangle with a fresh id.
func NewRectangle(r geom.Rect, style Style) *Rectangle {
	return &Rectangle{box: newBox(r, style)}
}

func (s *Rectangle) Kind() Kind { return KindRectangle }

func (s *Rectangle) Clone() Shape {
	c := *s
	return &c
}

func (s *Rectangle) Draw(p Painter) {
	p.StrokeRect(s.rect.Normalize(), s.style.Color, s.style.PenWidth)
}

// Ellipse is an ellipse inscribed in its bounding rectangle.
type Ellipse struct {
	box
}

// NewEllipse creates an ellipse with a fresh id.
func NewEllipse(r geom.Rect, style Style) *Ellipse {
	return &Ellipse{box: newBox(r, style)}
}

func (s *Ellipse) Kind() Kind { return KindEllipse }

func (s *Ellipse) Clone() Shape {
	c := *s
	return &c
}

func (s *Ellipse) Draw(p Painter) {
	p.StrokeEllipse(s.rect.Normalize(), s.style.Color, s.style.PenWidth)
}

// Triangle is an isosceles triangle with its apex at the top edge of the
// bounding rectangle.
type Triangle struct {
	box
}

// NewTriangle creates a triangle with a fresh id.
func NewTriangle(r geom.Rect, style Style) *Triangle {
	return &Triangle{box: newBox(r, style)}
}

func (s *Triangle) Kind() Kind { return KindTriangle }

func (s *Triangle) Clone() Shape {
	c := *s
	return &c
}

// Vertices returns the three corners: bottom-left, apex, bottom-right.
func (s *Triangle) Vertices() []geom.Point {
	r := s.rect
	return []geom.Point{
		geom.Pt(r.X, r.Bottom()),
		geom.Pt(r.X+r.Width/2, r.Y),
		geom.Pt(r.Right(), r.Bottom()),
	}
}

func (s *Triangle) Draw(p Painter) {
	p.StrokePolygon(s.Vertices(), s.style.Color, s.style.PenWidth)
}
