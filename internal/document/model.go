package document

import (
	"github.com/inamate/drawtools/internal/engine"
	"github.com/inamate/drawtools/internal/geom"
)

// Summary describes a drawing without its geometry.
type Summary struct {
	Shapes int            `json:"shapes" yaml:"shapes"`
	Kinds  map[string]int `json:"kinds" yaml:"kinds"`
	Bounds Bounds         `json:"bounds" yaml:"bounds"`
	Colors []string       `json:"colors" yaml:"colors"`
}

// Bounds is a rectangle in the summary's wire form.
type Bounds struct {
	X      int `json:"x" yaml:"x"`
	Y      int `json:"y" yaml:"y"`
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

func boundsOf(r geom.Rect) Bounds {
	return Bounds{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}

// Summarize counts the shapes of s by kind and lists the colors in use, in
// front to back order of first appearance.
func Summarize(s *engine.Scene) Summary {
	sum := Summary{
		Shapes: s.Len(),
		Kinds:  map[string]int{},
		Bounds: boundsOf(s.Bounds()),
		Colors: []string{},
	}
	seen := map[engine.Color]bool{}
	for _, sh := range s.All() {
		sum.Kinds[sh.Kind().String()]++
		c := sh.Style().Color
		if !seen[c] {
			seen[c] = true
			sum.Colors = append(sum.Colors, c.Hex())
		}
	}
	return sum
}
