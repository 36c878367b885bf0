package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectContainsExcludesFarEdges(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 10, Height: 10}

	assert.True(t, r.Contains(Pt(0, 0)))
	assert.True(t, r.Contains(Pt(9, 9)))
	assert.False(t, r.Contains(Pt(10, 5)))
	assert.False(t, r.Contains(Pt(5, 10)))
	assert.False(t, r.Contains(Pt(-1, 5)))
	assert.False(t, Rect{}.Contains(Pt(0, 0)))
}

func TestRectIntersects(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 10, Height: 10}

	tests := []struct {
		name  string
		other Rect
		want  bool
	}{
		{"overlap", Rect{X: 5, Y: 5, Width: 10, Height: 10}, true},
		{"inside", Rect{X: 2, Y: 2, Width: 2, Height: 2}, true},
		{"touching edge", Rect{X: 10, Y: 0, Width: 5, Height: 5}, false},
		{"apart", Rect{X: 20, Y: 20, Width: 5, Height: 5}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Intersects(tt.other))
			assert.Equal(t, tt.want, tt.other.Intersects(r))
		})
	}
}

func TestNormalize(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: -4, Height: -6}.Normalize()
	assert.Equal(t, Rect{X: 6, Y: 14, Width: 4, Height: 6}, r)

	assert.Equal(t, Rect{X: 1, Y: 2, Width: 3, Height: 4}, NormalizedRect(Pt(4, 6), Pt(1, 2)))
}

func TestUnionAndBounds(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 5, Height: 5}
	b := Rect{X: 3, Y: -2, Width: 10, Height: 3}
	assert.Equal(t, Rect{X: 0, Y: -2, Width: 13, Height: 7}, a.Union(b))
	assert.Equal(t, a, a.Union(Rect{}))

	assert.Equal(t, Rect{X: -1, Y: 0, Width: 6, Height: 9}, BoundsOf([]Point{{5, 0}, {-1, 9}, {2, 3}}))
	assert.Equal(t, Rect{}, BoundsOf(nil))
}

func TestPointHelpers(t *testing.T) {
	assert.Equal(t, Pt(3, 4), Pt(1, 1).Add(2, 3))
	assert.Equal(t, 25, Pt(0, 0).DistSq(Pt(3, 4)))
	assert.Equal(t, Pt(5, 10), Rect{X: 0, Y: 0, Width: 10, Height: 20}.Center())
}

func TestStrokeContains(t *testing.T) {
	s := NewStroke([]Point{{0, 0}, {100, 0}}, 7, false)

	assert.True(t, s.Contains(Pt(50, 0)))
	assert.True(t, s.Contains(Pt(50, 3)))
	assert.True(t, s.Contains(Pt(50, -3)))
	assert.False(t, s.Contains(Pt(50, 4)))
	assert.True(t, s.Contains(Pt(-3, 0)))
	assert.False(t, s.Contains(Pt(-5, 0)))
	assert.False(t, s.Contains(Pt(110, 0)))
}

func TestStrokeClosedJoinsEnds(t *testing.T) {
	pts := []Point{{0, 0}, {100, 0}, {100, 100}}

	open := NewStroke(pts, 7, false)
	closed := NewStroke(pts, 7, true)

	assert.False(t, open.Contains(Pt(50, 50)))
	assert.True(t, closed.Contains(Pt(50, 50)))
}

func TestStrokeDegenerate(t *testing.T) {
	s := NewStroke([]Point{{10, 10}, {10, 10}}, 7, false)
	assert.True(t, s.Contains(Pt(10, 10)))
	assert.True(t, s.Contains(Pt(12, 12)))
	assert.False(t, s.Contains(Pt(14, 14)))

	empty := NewStroke(nil, 7, false)
	assert.False(t, empty.Contains(Pt(0, 0)))
	assert.False(t, empty.Intersects(Rect{X: -5, Y: -5, Width: 10, Height: 10}))
}

func TestStrokeIntersects(t *testing.T) {
	s := NewStroke([]Point{{0, 0}, {100, 100}}, 7, false)

	tests := []struct {
		name string
		r    Rect
		want bool
	}{
		{"crossing", Rect{X: 40, Y: 0, Width: 20, Height: 100}, true},
		{"covering", Rect{X: -10, Y: -10, Width: 200, Height: 200}, true},
		{"near miss within pen", Rect{X: 51, Y: 47, Width: 10, Height: 1}, true},
		{"far corner", Rect{X: 80, Y: 0, Width: 20, Height: 20}, false},
		{"outside", Rect{X: 200, Y: 200, Width: 10, Height: 10}, false},
		{"inverted", Rect{X: 60, Y: 100, Width: -20, Height: -100}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Intersects(tt.r))
		})
	}
}
