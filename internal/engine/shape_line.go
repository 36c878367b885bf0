package engine

import "github.com/inamate/drawtools/internal/geom"

// Line is a straight segment with a handle at each end.
type Line struct {
	shapeBase
	strokeHit
	start geom.Point
	end   geom.Point
}

// NewLine creates a line with a fresh id.
func NewLine(start, end geom.Point, style Style) *Line {
	return &Line{
		shapeBase: newBase(style),
		strokeHit: newStrokeHit(),
		start:     start,
		end:       end,
	}
}

func (l *Line) Kind() Kind { return KindLine }

func (l *Line) Start() geom.Point { return l.start }
func (l *Line) End() geom.Point { return l.end }

func (l *Line) Clone() Shape {
	c := *l
	c.region = nil
	return &c
}

func (l *Line) HandleCount() int {
	return 2
}

func (l *Line) Handle(n int) geom.Point {
	if n <= 1 {
		return l.start
	}
	return l.end
}

func (l *Line) HandleCursor(n int) Cursor {
	if n == 1 || n == 2 {
		return CursorMove
	}
	return CursorDefault
}

func (l *Line) points() []geom.Point {
	return []geom.Point{l.start, l.end}
}

func (l *Line) HitTest(p geom.Point) Hit {
	return hitTest(l, p, l.regionOf(l.points()).Contains)
}

func (l *Line) Intersects(r geom.Rect) bool {
	return l.regionOf(l.points()).Intersects(r)
}

func (l *Line) Bounds() geom.Rect {
	return geom.BoundsOf(l.points())
}

func (l *Line) MoveHandleTo(p geom.Point, n int) {
	if n <= 1 {
		l.start = p
	} else {
		l.end = p
	}
	l.invalidate()
}

func (l *Line) Move(dx, dy int) {
	l.start = l.start.Add(dx, dy)
	l.end = l.end.Add(dx, dy)
	l.invalidate()
}

func (l *Line) Normalize() {}

func (l *Line) Draw(p Painter) {
	p.StrokePolyline(l.points(), l.style.Color, l.style.PenWidth)
}

func (l *Line) WriteFields(w FieldWriter, order int) error {
	if err := w.WriteField(fieldKey("Start", order), l.start); err != nil {
		return err
	}
	if err := w.WriteField(fieldKey("End", order), l.end); err != nil {
		return err
	}
	return l.writeStyle(w, order)
}

func (l *Line) ReadFields(r FieldReader, order int) error {
	var start, end geom.Point
	if err := r.ReadField(fieldKey("Start", order), &start); err != nil {
		return err
	}
	if err := r.ReadField(fieldKey("End", order), &end); err != nil {
		return err
	}
	if err := l.readStyle(r, order); err != nil {
		return err
	}
	l.start, l.end = start, end
	l.invalidate()
	return nil
}
