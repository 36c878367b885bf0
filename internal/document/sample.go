package document

import (
	"github.com/inamate/drawtools/internal/engine"
	"github.com/inamate/drawtools/internal/geom"
)

// NewSampleScene builds a drawing with one shape of every kind.
func NewSampleScene() *engine.Scene {
	s := engine.NewScene()

	s.Add(engine.NewRectangle(
		geom.Rect{X: 100, Y: 125, Width: 200, Height: 150},
		engine.Style{Color: engine.RGB(0xe9, 0x45, 0x60), PenWidth: 2},
	))
	s.Add(engine.NewEllipse(
		geom.Rect{X: 540, Y: 285, Width: 200, Height: 150},
		engine.Style{Color: engine.RGB(0x0f, 0x34, 0x60), PenWidth: 2},
	))
	s.Add(engine.NewTriangle(
		geom.Rect{X: 840, Y: 140, Width: 120, Height: 120},
		engine.Style{Color: engine.RGB(0x2d, 0x6a, 0x4f), PenWidth: 2},
	))
	s.Add(engine.NewLine(
		geom.Pt(120, 500), geom.Pt(420, 620),
		engine.Style{Color: engine.RGB(0xc7, 0x84, 0x00), PenWidth: 3},
	))
	s.Add(engine.NewPolygon(
		[]geom.Point{
			geom.Pt(600, 520), geom.Pt(660, 480), geom.Pt(720, 540),
			geom.Pt(780, 500), geom.Pt(840, 580),
		},
		engine.Style{Color: engine.RGB(0x8b, 0x0b, 0xa8), PenWidth: 1},
	))
	return s
}
