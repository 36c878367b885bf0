package engine

import (
	"fmt"

	"github.com/inamate/drawtools/internal/geom"
)

// Polygon is a freehand outline through an ordered list of vertices. Every
// vertex is a handle. The outline is open: the last vertex is not joined
// back to the first.
type Polygon struct {
	shapeBase
	strokeHit
	points []geom.Point
}

// NewPolygon creates a polygon with a fresh id. pts is copied.
func NewPolygon(pts []geom.Point, style Style) *Polygon {
	return &Polygon{
		shapeBase: newBase(style),
		strokeHit: newStrokeHit(),
		points:    append([]geom.Point(nil), pts...),
	}
}

func (pg *Polygon) Kind() Kind { return KindPolygon }

// Points returns a copy of the vertices.
func (pg *Polygon) Points() []geom.Point {
	return append([]geom.Point(nil), pg.points...)
}

// AddPoint appends a vertex.
func (pg *Polygon) AddPoint(p geom.Point) {
	pg.points = append(pg.points, p)
	pg.invalidate()
}

func (pg *Polygon) Clone() Shape {
	c := *pg
	c.points = pg.Points()
	c.region = nil
	return &c
}

func (pg *Polygon) HandleCount() int {
	return len(pg.points)
}

// clamp maps a handle number onto a valid vertex index.
func (pg *Polygon) clamp(n int) int {
	return min(max(n, 1), len(pg.points)) - 1
}

func (pg *Polygon) Handle(n int) geom.Point {
	if len(pg.points) == 0 {
		return geom.Point{}
	}
	return pg.points[pg.clamp(n)]
}

func (pg *Polygon) HandleCursor(n int) Cursor {
	if n >= 1 && n <= len(pg.points) {
		return CursorMove
	}
	return CursorDefault
}

func (pg *Polygon) HitTest(p geom.Point) Hit {
	return hitTest(pg, p, pg.regionOf(pg.points).Contains)
}

func (pg *Polygon) Intersects(r geom.Rect) bool {
	return pg.regionOf(pg.points).Intersects(r)
}

func (pg *Polygon) Bounds() geom.Rect {
	return geom.BoundsOf(pg.points)
}

func (pg *Polygon) MoveHandleTo(p geom.Point, n int) {
	if len(pg.points) == 0 {
		return
	}
	pg.points[pg.clamp(n)] = p
	pg.invalidate()
}

func (pg *Polygon) Move(dx, dy int) {
	for i := range pg.points {
		pg.points[i] = pg.points[i].Add(dx, dy)
	}
	pg.invalidate()
}

func (pg *Polygon) Normalize() {}

func (pg *Polygon) Draw(p Painter) {
	p.StrokePolyline(pg.Points(), pg.style.Color, pg.style.PenWidth)
}

func (pg *Polygon) WriteFields(w FieldWriter, order int) error {
	if err := w.WriteField(fieldKey("Length", order), len(pg.points)); err != nil {
		return err
	}
	for j, p := range pg.points {
		if err := w.WriteField(pointKey(order, j), p); err != nil {
			return err
		}
	}
	return pg.writeStyle(w, order)
}

func (pg *Polygon) ReadFields(r FieldReader, order int) error {
	var n int
	if err := r.ReadField(fieldKey("Length", order), &n); err != nil {
		return err
	}
	if n < 2 {
		return fmt.Errorf("%w: polygon %d has %d points", ErrMalformed, order, n)
	}

	// Length comes from the file; grow as points are actually found.
	var pts []geom.Point
	for j := range n {
		var p geom.Point
		if err := r.ReadField(pointKey(order, j), &p); err != nil {
			return err
		}
		pts = append(pts, p)
	}
	if err := pg.readStyle(r, order); err != nil {
		return err
	}

	pg.points = pts
	pg.invalidate()
	return nil
}
