package render

import (
	"image/color"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/inamate/drawtools/internal/geom"
)

// PDF is a Painter that writes vector output to a single PDF page sized to
// the canvas. One canvas unit maps to one point.
type PDF struct {
	doc    *gofpdf.Fpdf
	origin geom.Point
}

// NewPDF starts a document whose only page covers bounds.
func NewPDF(bounds geom.Rect) *PDF {
	doc := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size: gofpdf.SizeType{
			Wd: float64(max(bounds.Width, 1)),
			Ht: float64(max(bounds.Height, 1)),
		},
	})
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	doc.SetLineCapStyle("square")
	doc.SetLineJoinStyle("miter")
	doc.AddPage()

	return &PDF{doc: doc, origin: geom.Pt(bounds.X, bounds.Y)}
}

// Output writes the finished document to w.
func (p *PDF) Output(w io.Writer) error {
	return p.doc.Output(w)
}

func (p *PDF) x(v int) float64 { return float64(v - p.origin.X) }
func (p *PDF) y(v int) float64 { return float64(v - p.origin.Y) }

func (p *PDF) pen(c color.Color, width int) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	p.doc.SetDrawColor(int(n.R), int(n.G), int(n.B))
	p.doc.SetAlpha(float64(n.A)/255, "Normal")
	p.doc.SetLineWidth(float64(max(width, 1)))
}

func (p *PDF) points(pts []geom.Point) []gofpdf.PointType {
	out := make([]gofpdf.PointType, len(pts))
	for i, pt := range pts {
		out[i] = gofpdf.PointType{X: p.x(pt.X), Y: p.y(pt.Y)}
	}
	return out
}

func (p *PDF) StrokeRect(r geom.Rect, c color.Color, width int) {
	p.pen(c, width)
	p.doc.Rect(p.x(r.X), p.y(r.Y), float64(r.Width), float64(r.Height), "D")
}

func (p *PDF) StrokeEllipse(bounds geom.Rect, c color.Color, width int) {
	p.pen(c, width)
	rx := float64(bounds.Width) / 2
	ry := float64(bounds.Height) / 2
	p.doc.Ellipse(p.x(bounds.X)+rx, p.y(bounds.Y)+ry, rx, ry, 0, "D")
}

func (p *PDF) StrokePolygon(pts []geom.Point, c color.Color, width int) {
	if len(pts) == 0 {
		return
	}
	p.pen(c, width)
	p.doc.Polygon(p.points(pts), "D")
}

func (p *PDF) StrokePolyline(pts []geom.Point, c color.Color, width int) {
	if len(pts) == 0 {
		return
	}
	p.pen(c, width)
	p.doc.MoveTo(p.x(pts[0].X), p.y(pts[0].Y))
	for _, pt := range pts[1:] {
		p.doc.LineTo(p.x(pt.X), p.y(pt.Y))
	}
	p.doc.DrawPath("D")
}

func (p *PDF) FillRect(r geom.Rect, c color.Color) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	p.doc.SetFillColor(int(n.R), int(n.G), int(n.B))
	p.doc.SetAlpha(float64(n.A)/255, "Normal")
	p.doc.Rect(p.x(r.X), p.y(r.Y), float64(r.Width), float64(r.Height), "F")
}
