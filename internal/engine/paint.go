package engine

import (
	"image/color"

	"github.com/inamate/drawtools/internal/geom"
)

// Painter is a paint surface. Shapes describe themselves through it and
// never hold on to it.
type Painter interface {
	StrokeRect(r geom.Rect, c color.Color, width int)
	StrokeEllipse(bounds geom.Rect, c color.Color, width int)
	// StrokePolygon draws a closed outline through pts.
	StrokePolygon(pts []geom.Point, c color.Color, width int)
	StrokePolyline(pts []geom.Point, c color.Color, width int)
	FillRect(r geom.Rect, c color.Color)
}

// ShapeMarker is implemented by painters that want to know which shape the
// following calls belong to.
type ShapeMarker interface {
	MarkShape(id ID)
}

// HandleSize is the edge length of the square drawn around each handle.
const HandleSize = 7

// HandleRect returns the square around a handle point.
func HandleRect(p geom.Point) geom.Rect {
	return geom.Rect{X: p.X - HandleSize/2, Y: p.Y - HandleSize/2, Width: HandleSize, Height: HandleSize}
}

// drawTracker paints the handle squares of a selected shape.
func drawTracker(p Painter, s Shape) {
	if !s.Selected() {
		return
	}
	for i := 1; i <= s.HandleCount(); i++ {
		p.FillRect(HandleRect(s.Handle(i)), Black)
	}
}

// DrawShape paints s and, when it is selected, its handles.
func DrawShape(p Painter, s Shape) {
	if m, ok := p.(ShapeMarker); ok {
		m.MarkShape(s.ID())
	}
	s.Draw(p)
	drawTracker(p, s)
}
