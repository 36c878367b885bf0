package engine

import "github.com/inamate/drawtools/internal/geom"

// DefaultPolygonMinDistance is the distance the pointer must travel from
// the last committed vertex before the polygon tool starts a new one.
const DefaultPolygonMinDistance = 15

// PolygonTool draws a freehand polygon. While the button is held, the last
// vertex follows the pointer until it is far enough from the previous
// committed vertex, at which point a new vertex is committed.
type PolygonTool struct {
	poly *Polygon
	last geom.Point
}

func (t *PolygonTool) PointerDown(h Host, e PointerEvent) {
	t.poly = createShape(KindPolygon, e.Pos, h.Style()).(*Polygon)
	addNewShape(h, t.poly)
	t.last = e.Pos
}

func (t *PolygonTool) PointerMove(h Host, e PointerEvent) {
	h.SetCursor(CursorCrosshair)
	if e.Button != ButtonLeft || t.poly == nil {
		return
	}

	minDist := h.PolygonMinDistance()
	if e.Pos.DistSq(t.last) < minDist*minDist {
		t.poly.MoveHandleTo(e.Pos, t.poly.HandleCount())
		return
	}
	t.poly.AddPoint(e.Pos)
	t.last = e.Pos
}

func (t *PolygonTool) PointerUp(h Host, e PointerEvent) {
	if t.poly == nil {
		return
	}
	finishNewShape(h, t.poly)
	t.poly = nil
}

