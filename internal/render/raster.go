package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/inamate/drawtools/internal/engine"
	"github.com/inamate/drawtools/internal/geom"
)

// ellipseSegments is the number of straight segments used to stroke an
// ellipse outline.
const ellipseSegments = 72

// Raster is a Painter that draws into an RGBA image. The image covers a
// fixed canvas rectangle; drawing outside it is clipped.
type Raster struct {
	img  *image.RGBA
	m    Matrix
	zoom float64
	z    *vector.Rasterizer
}

// MaxPixels bounds the area of a raster so a drawing with far flung shapes
// cannot exhaust memory.
const MaxPixels = 1 << 24

// ErrTooLarge is returned for canvases whose raster would exceed MaxPixels.
var ErrTooLarge = errors.New("canvas too large to rasterize")

// NewRaster creates an image covering bounds filled with background, one
// pixel per canvas unit.
func NewRaster(bounds geom.Rect, background color.Color) (*Raster, error) {
	return NewRasterZoom(bounds, 1, background)
}

// NewRasterZoom is NewRaster with zoom pixels per canvas unit. Pen widths
// scale with the zoom.
func NewRasterZoom(bounds geom.Rect, zoom float64, background color.Color) (*Raster, error) {
	if zoom <= 0 {
		zoom = 1
	}
	wf, hf := scaledSize(bounds, zoom)
	if wf*hf > MaxPixels {
		return nil, fmt.Errorf("%w: %.0fx%.0f pixels", ErrTooLarge, wf, hf)
	}
	w, h := int(wf), int(hf)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	z := vector.NewRasterizer(w, h)
	z.DrawOp = draw.Over
	return &Raster{
		img:  img,
		m:    canvasToImage(bounds.X, bounds.Y, zoom),
		zoom: zoom,
		z:    z,
	}, nil
}

// scaledSize is the pixel size of bounds at zoom, at least 1x1. The small
// epsilon keeps an exact fit from rounding up a pixel.
func scaledSize(bounds geom.Rect, zoom float64) (float64, float64) {
	w := math.Max(math.Ceil(float64(bounds.Width)*zoom-1e-9), 1)
	h := math.Max(math.Ceil(float64(bounds.Height)*zoom-1e-9), 1)
	return w, h
}

// FitZoom lowers zoom so the longer side of bounds stays within maxSide
// pixels. A non-positive maxSide leaves zoom unchanged.
func FitZoom(bounds geom.Rect, zoom float64, maxSide int) float64 {
	if zoom <= 0 {
		zoom = 1
	}
	long := float64(max(bounds.Width, bounds.Height, 1))
	if maxSide > 0 && long*zoom > float64(maxSide) {
		return float64(maxSide) / long
	}
	return zoom
}

// Image returns the rendered image.
func (r *Raster) Image() *image.RGBA {
	return r.img
}

// EncodePNG writes the image as PNG.
func (r *Raster) EncodePNG(w io.Writer) error {
	return EncodePNG(w, r.img)
}

// EncodePNG writes img as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

type fpoint struct {
	x, y float32
}

func (r *Raster) pt(p geom.Point) fpoint {
	return r.fpt(float64(p.X), float64(p.Y))
}

func (r *Raster) fpt(x, y float64) fpoint {
	tx, ty := r.m.Apply(x, y)
	return fpoint{float32(tx), float32(ty)}
}

func (r *Raster) pts(ps []geom.Point) []fpoint {
	out := make([]fpoint, len(ps))
	for i, p := range ps {
		out[i] = r.pt(p)
	}
	return out
}

// fill paints the accumulated path and clears the rasterizer.
func (r *Raster) fill(c color.Color) {
	b := r.img.Bounds()
	r.z.Draw(r.img, b, image.NewUniform(c), image.Point{})
	r.z.Reset(b.Dx(), b.Dy())
	r.z.DrawOp = draw.Over
}

func (r *Raster) quad(a, b, c, d fpoint) {
	r.z.MoveTo(a.x, a.y)
	r.z.LineTo(b.x, b.y)
	r.z.LineTo(c.x, c.y)
	r.z.LineTo(d.x, d.y)
	r.z.ClosePath()
}

// strokePath fills a band of the given width along the path. Every piece
// is wound the same way so overlapping pieces add up instead of cancelling.
func (r *Raster) strokePath(pts []fpoint, closed bool, c color.Color, width int) {
	if len(pts) == 0 {
		return
	}
	if closed && len(pts) > 2 {
		pts = append(pts, pts[0])
	}
	hw := float32(float64(max(width, 1))*r.zoom) / 2

	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		dx, dy := b.x-a.x, b.y-a.y
		l := float32(math.Hypot(float64(dx), float64(dy)))
		if l == 0 {
			continue
		}
		nx, ny := -dy/l*hw, dx/l*hw
		r.quad(
			fpoint{a.x + nx, a.y + ny},
			fpoint{b.x + nx, b.y + ny},
			fpoint{b.x - nx, b.y - ny},
			fpoint{a.x - nx, a.y - ny},
		)
	}
	// square joins and caps
	for _, p := range pts {
		r.quad(
			fpoint{p.x - hw, p.y + hw},
			fpoint{p.x + hw, p.y + hw},
			fpoint{p.x + hw, p.y - hw},
			fpoint{p.x - hw, p.y - hw},
		)
	}
	r.fill(c)
}

func (r *Raster) StrokeRect(rc geom.Rect, c color.Color, width int) {
	r.strokePath(r.pts(rectCorners(rc)), true, c, width)
}

func (r *Raster) StrokeEllipse(bounds geom.Rect, c color.Color, width int) {
	rx := float64(bounds.Width) / 2
	ry := float64(bounds.Height) / 2
	cx := float64(bounds.X) + rx
	cy := float64(bounds.Y) + ry

	pts := make([]fpoint, ellipseSegments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / ellipseSegments
		pts[i] = r.fpt(cx+rx*math.Cos(a), cy+ry*math.Sin(a))
	}
	r.strokePath(pts, true, c, width)
}

func (r *Raster) StrokePolygon(pts []geom.Point, c color.Color, width int) {
	r.strokePath(r.pts(pts), true, c, width)
}

func (r *Raster) StrokePolyline(pts []geom.Point, c color.Color, width int) {
	r.strokePath(r.pts(pts), false, c, width)
}

func (r *Raster) FillRect(rc geom.Rect, c color.Color) {
	rc = rc.Normalize()
	if rc.IsEmpty() {
		return
	}
	r.quad(r.pt(geom.Pt(rc.X, rc.Y)), r.pt(geom.Pt(rc.Right(), rc.Y)),
		r.pt(geom.Pt(rc.Right(), rc.Bottom())), r.pt(geom.Pt(rc.X, rc.Bottom())))
	r.fill(c)
}

func rectCorners(r geom.Rect) []geom.Point {
	return []geom.Point{
		geom.Pt(r.X, r.Y),
		geom.Pt(r.Right(), r.Y),
		geom.Pt(r.Right(), r.Bottom()),
		geom.Pt(r.X, r.Bottom()),
	}
}

// Canvas grows the drawing bounds b by margin on every side.
func Canvas(b geom.Rect, margin int) geom.Rect {
	return geom.Rect{
		X:      b.X - margin,
		Y:      b.Y - margin,
		Width:  b.Width + 2*margin,
		Height: b.Height + 2*margin,
	}
}

var _ engine.Painter = (*Raster)(nil)
