package engine

import "github.com/inamate/drawtools/internal/geom"

// ShapeTool draws rectangles, ellipses, triangles and lines. A press
// creates a tiny shape and adds it to the scene, dragging resizes it, and
// the release records it as an AddCommand and hands control back to the
// pointer tool.
type ShapeTool struct {
	kind    Kind
	created Shape
}

// NewShapeTool returns a tool that draws shapes of kind k.
func NewShapeTool(k Kind) *ShapeTool {
	return &ShapeTool{kind: k}
}

func (t *ShapeTool) PointerDown(h Host, e PointerEvent) {
	t.created = createShape(t.kind, e.Pos, h.Style())
	addNewShape(h, t.created)
}

func (t *ShapeTool) PointerMove(h Host, e PointerEvent) {
	h.SetCursor(CursorCrosshair)
	if e.Button != ButtonLeft || t.created == nil {
		return
	}
	t.created.MoveHandleTo(e.Pos, dragHandle(t.created))
}

func (t *ShapeTool) PointerUp(h Host, e PointerEvent) {
	finishNewShape(h, t.created)
	t.created = nil
}

// createShape builds the initial shape of a drawing gesture at p.
func createShape(k Kind, p geom.Point, style Style) Shape {
	switch k {
	case KindEllipse:
		return NewEllipse(geom.Rect{X: p.X, Y: p.Y, Width: 1, Height: 1}, style)
	case KindTriangle:
		return NewTriangle(geom.Rect{X: p.X, Y: p.Y, Width: 1, Height: 1}, style)
	case KindLine:
		return NewLine(p, p.Add(1, 1), style)
	case KindPolygon:
		return NewPolygon([]geom.Point{p, p.Add(1, 1)}, style)
	default:
		return NewRectangle(geom.Rect{X: p.X, Y: p.Y, Width: 1, Height: 1}, style)
	}
}

// dragHandle is the handle that follows the pointer while a new shape is
// drawn: the bottom-right corner of a box, the far end of a line.
func dragHandle(sh Shape) int {
	if sh.Kind() == KindLine {
		return 2
	}
	return 5
}

func addNewShape(h Host, sh Shape) {
	if hw, ok := sh.(HitWidthSetter); ok {
		hw.SetHitWidth(h.HitWidth())
	}
	scene := h.Scene()
	scene.UnselectAll()
	sh.SetSelected(true)
	scene.Add(sh)
	h.MarkDirty()
}

func finishNewShape(h Host, sh Shape) {
	if sh == nil {
		return
	}
	sh.Normalize()
	h.AddCommand(NewAddCommand(sh))
	h.SetTool(ToolPointer)
}
