package geom

import "math"

// Stroke is the area covered by a polyline drawn with a pen of a given width.
// It is used as a forgiving hit region for thin lines: a point hits the
// stroke when it lies within half the pen width of any segment.
type Stroke struct {
	points []Point
	half   float64
	bounds Rect
}

// NewStroke builds the widened region of the open polyline through pts.
// When closed is true the last point is joined back to the first.
func NewStroke(pts []Point, width int, closed bool) *Stroke {
	points := make([]Point, len(pts), len(pts)+1)
	copy(points, pts)
	if closed && len(points) > 2 {
		points = append(points, points[0])
	}

	half := float64(max(width, 1)) / 2
	pad := int(math.Ceil(half))
	b := BoundsOf(points)

	return &Stroke{
		points: points,
		half:   half,
		bounds: Rect{X: b.X - pad, Y: b.Y - pad, Width: b.Width + 2*pad + 1, Height: b.Height + 2*pad + 1},
	}
}

// Bounds returns a rect enclosing the whole stroke region.
func (s *Stroke) Bounds() Rect {
	return s.bounds
}

// Contains reports whether p lies inside the stroke region.
func (s *Stroke) Contains(p Point) bool {
	if len(s.points) == 0 || !s.bounds.Contains(p) {
		return false
	}
	px, py := float64(p.X), float64(p.Y)
	limit := s.half * s.half
	if len(s.points) == 1 {
		return distSqToPoint(px, py, s.points[0]) <= limit
	}
	for i := 1; i < len(s.points); i++ {
		if distSqToSegment(px, py, s.points[i-1], s.points[i]) <= limit {
			return true
		}
	}
	return false
}

// Intersects reports whether the stroke region overlaps r.
func (s *Stroke) Intersects(r Rect) bool {
	r = r.Normalize()
	if len(s.points) == 0 || !s.bounds.Intersects(r.inflate(1)) {
		return false
	}
	if len(s.points) == 1 {
		return distSqToRect(float64(s.points[0].X), float64(s.points[0].Y), r) <= s.half*s.half
	}
	for i := 1; i < len(s.points); i++ {
		if segmentRectDistSq(s.points[i-1], s.points[i], r) <= s.half*s.half {
			return true
		}
	}
	return false
}

func (r Rect) inflate(n int) Rect {
	return Rect{X: r.X - n, Y: r.Y - n, Width: r.Width + 2*n, Height: r.Height + 2*n}
}

func distSqToPoint(px, py float64, a Point) float64 {
	dx := px - float64(a.X)
	dy := py - float64(a.Y)
	return dx*dx + dy*dy
}

func distSqToSegment(px, py float64, a, b Point) float64 {
	ax, ay := float64(a.X), float64(a.Y)
	dx, dy := float64(b.X)-ax, float64(b.Y)-ay
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return distSqToPoint(px, py, a)
	}
	t := ((px-ax)*dx + (py-ay)*dy) / lenSq
	t = math.Max(0, math.Min(1, t))
	cx, cy := ax+t*dx, ay+t*dy
	return (px-cx)*(px-cx) + (py-cy)*(py-cy)
}

// distSqToRect treats r as a closed region.
func distSqToRect(px, py float64, r Rect) float64 {
	dx := math.Max(0, math.Max(float64(r.X)-px, px-float64(r.Right())))
	dy := math.Max(0, math.Max(float64(r.Y)-py, py-float64(r.Bottom())))
	return dx*dx + dy*dy
}

func segmentRectDistSq(a, b Point, r Rect) float64 {
	if segmentHitsRect(a, b, r) {
		return 0
	}
	d := math.Min(
		distSqToRect(float64(a.X), float64(a.Y), r),
		distSqToRect(float64(b.X), float64(b.Y), r),
	)
	corners := [4]Point{
		{r.X, r.Y}, {r.Right(), r.Y}, {r.Right(), r.Bottom()}, {r.X, r.Bottom()},
	}
	for _, c := range corners {
		d = math.Min(d, distSqToSegment(float64(c.X), float64(c.Y), a, b))
	}
	return d
}

// segmentHitsRect clips segment ab against the closed rect r
// (Liang-Barsky).
func segmentHitsRect(a, b Point, r Rect) bool {
	x0, y0 := float64(a.X), float64(a.Y)
	dx, dy := float64(b.X)-x0, float64(b.Y)-y0
	t0, t1 := 0.0, 1.0

	clip := func(p, q float64) bool {
		if p == 0 {
			return q >= 0
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return false
			}
			t0 = math.Max(t0, t)
		} else {
			if t < t0 {
				return false
			}
			t1 = math.Min(t1, t)
		}
		return true
	}

	return clip(-dx, x0-float64(r.X)) &&
		clip(dx, float64(r.Right())-x0) &&
		clip(-dy, y0-float64(r.Y)) &&
		clip(dy, float64(r.Bottom())-y0) &&
		t0 <= t1
}
