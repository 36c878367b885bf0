package geom

// Point is an integer canvas coordinate.
type Point struct {
	X int
	Y int
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns p translated by (dx, dy).
func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// DistSq returns the squared distance between p and q.
func (p Point) DistSq(q Point) int {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return dx*dx + dy*dy
}

// Rect is an integer rectangle anchored at (X, Y). Width and Height may be
// negative while a shape is being dragged; Normalize fixes that.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Left returns the X coordinate of the left edge.
func (r Rect) Left() int { return r.X }

// Top returns the Y coordinate of the top edge.
func (r Rect) Top() int { return r.Y }

// Right returns X + Width.
func (r Rect) Right() int { return r.X + r.Width }

// Bottom returns Y + Height.
func (r Rect) Bottom() int { return r.Y + r.Height }

// Center returns the integer center of the rect.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// IsEmpty checks if the rect has zero or negative area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether p lies inside r. The right and bottom edges are
// exclusive, so an empty rect contains nothing.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Intersects reports whether r and other share any interior point.
func (r Rect) Intersects(other Rect) bool {
	return other.X < r.X+r.Width && r.X < other.X+other.Width &&
		other.Y < r.Y+r.Height && r.Y < other.Y+other.Height
}

// Union returns the smallest rect containing both rects.
func (r Rect) Union(other Rect) Rect {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}

	minX := min(r.X, other.X)
	minY := min(r.Y, other.Y)
	maxX := max(r.Right(), other.Right())
	maxY := max(r.Bottom(), other.Bottom())

	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Translate returns r moved by (dx, dy).
func (r Rect) Translate(dx, dy int) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, Width: r.Width, Height: r.Height}
}

// Normalize returns r with non-negative width and height covering the same area.
func (r Rect) Normalize() Rect {
	return Normalized(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// Normalized builds a rect with non-negative size from two opposite corners.
func Normalized(x1, y1, x2, y2 int) Rect {
	if x2 < x1 {
		x1, x2 = x2, x1
	}
	if y2 < y1 {
		y1, y2 = y2, y1
	}
	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// NormalizedRect builds a rect with non-negative size spanning p1 and p2.
func NormalizedRect(p1, p2 Point) Rect {
	return Normalized(p1.X, p1.Y, p2.X, p2.Y)
}

// BoundsOf returns the bounding box of pts, or an empty Rect when pts is empty.
func BoundsOf(pts []Point) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX = min(minX, p.X)
		minY = min(minY, p.Y)
		maxX = max(maxX, p.X)
		maxY = max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
