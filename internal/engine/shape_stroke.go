package engine

import "github.com/inamate/drawtools/internal/geom"

// DefaultHitWidth is the pen width of the widened region used to hit test
// lines and polygons.
const DefaultHitWidth = 7

// strokeHit lazily builds and caches the widened hit region of an outline.
// Anything that moves a vertex must call invalidate.
type strokeHit struct {
	width  int
	region *geom.Stroke
}

func newStrokeHit() strokeHit {
	return strokeHit{width: DefaultHitWidth}
}

// SetHitWidth changes the width of the hit region. Non-positive widths
// reset it to DefaultHitWidth.
func (h *strokeHit) SetHitWidth(width int) {
	if width <= 0 {
		width = DefaultHitWidth
	}
	h.width = width
	h.region = nil
}

func (h *strokeHit) invalidate() {
	h.region = nil
}

func (h *strokeHit) regionOf(pts []geom.Point) *geom.Stroke {
	if h.region == nil {
		h.region = geom.NewStroke(pts, h.width, false)
	}
	return h.region
}

// HitWidthSetter is implemented by shapes hit tested against a widened
// outline.
type HitWidthSetter interface {
	SetHitWidth(width int)
}
