package render

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inamate/drawtools/internal/engine"
	"github.com/inamate/drawtools/internal/geom"
)

func testScene() (*engine.Scene, *engine.Rectangle) {
	s := engine.NewScene()
	s.Add(engine.NewEllipse(geom.Rect{X: 0, Y: 0, Width: 20, Height: 10}, engine.DefaultStyle()))
	r := engine.NewRectangle(geom.Rect{X: 5, Y: 5, Width: 10, Height: 10}, engine.Style{Color: engine.RGB(255, 0, 0), PenWidth: 2})
	s.Add(r)
	return s, r
}

func TestCompileDrawCommands(t *testing.T) {
	s, r := testScene()
	r.SetSelected(true)

	cmds := CompileDrawCommands(s)
	require.Len(t, cmds, 2+8)

	ellipse := cmds[0]
	assert.Equal(t, "path", ellipse.Op)
	assert.Equal(t, "#000000", ellipse.Stroke)
	assert.Equal(t, 1.0, ellipse.StrokeWidth)
	require.Len(t, ellipse.Path, 6)
	assert.Equal(t, PathCommand{"M", 20.0, 5.0}, ellipse.Path[0])

	rect := cmds[1]
	assert.Equal(t, int64(r.ID()), rect.ObjectID)
	assert.Equal(t, "#ff0000", rect.Stroke)
	assert.Equal(t, 2.0, rect.StrokeWidth)
	assert.Equal(t, PathCommand{"L", 15.0, 5.0}, rect.Path[1])

	for _, c := range cmds[2:] {
		assert.Equal(t, int64(r.ID()), c.ObjectID)
		assert.Equal(t, "#000000", c.Fill)
		assert.Empty(t, c.Stroke)
	}
}

func TestRecorderPolylines(t *testing.T) {
	rec := NewRecorder()
	pts := []geom.Point{geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(10, 10)}

	rec.StrokePolyline(pts, engine.Black, 1)
	rec.StrokePolygon(pts, engine.ARGB(0x80, 0, 0, 255), 0)

	cmds := rec.Commands()
	require.Len(t, cmds, 2)
	assert.Len(t, cmds[0].Path, 3)
	assert.Len(t, cmds[1].Path, 4)
	assert.Equal(t, PathCommand{"Z"}, cmds[1].Path[3])
	assert.True(t, strings.HasPrefix(cmds[1].Stroke, "rgba(0,0,"))
	assert.True(t, strings.HasSuffix(cmds[1].Stroke, ",0.502)"))
	assert.Equal(t, 1.0, cmds[1].StrokeWidth)
}

func TestDrawCommandsToJSON(t *testing.T) {
	out, err := DrawCommandsToJSON(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", out)

	s, _ := testScene()
	out, err = DrawCommandsToJSON(CompileDrawCommands(s))
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "path", decoded[1]["op"])
	assert.NotContains(t, decoded[1], "fill")
}

func isDark(c color.RGBA) bool {
	return c.R < 40 && c.G < 40 && c.B < 40
}

func TestRasterStrokes(t *testing.T) {
	r, err := NewRaster(geom.Rect{X: 0, Y: 0, Width: 60, Height: 40}, color.White)
	require.NoError(t, err)
	r.StrokePolyline([]geom.Point{geom.Pt(10, 10), geom.Pt(50, 10)}, engine.Black, 3)
	r.StrokeRect(geom.Rect{X: 10, Y: 20, Width: 30, Height: 15}, engine.Black, 3)

	img := r.Image()
	assert.True(t, isDark(img.RGBAAt(30, 10)))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, img.RGBAAt(30, 15))
	assert.True(t, isDark(img.RGBAAt(10, 27)))
	assert.True(t, isDark(img.RGBAAt(25, 35)))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, img.RGBAAt(25, 27))
}

func TestRasterOriginAndFill(t *testing.T) {
	r, err := NewRaster(geom.Rect{X: 100, Y: 100, Width: 20, Height: 20}, color.White)
	require.NoError(t, err)
	r.FillRect(geom.Rect{X: 105, Y: 105, Width: 5, Height: 5}, engine.RGB(0, 0, 255))

	img := r.Image()
	assert.Equal(t, image.Rect(0, 0, 20, 20), img.Bounds())
	c := img.RGBAAt(7, 7)
	assert.Greater(t, c.B, uint8(200))
	assert.Less(t, c.R, uint8(40))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, img.RGBAAt(15, 15))
}

func TestRasterZoom(t *testing.T) {
	r, err := NewRasterZoom(geom.Rect{X: 100, Y: 100, Width: 20, Height: 20}, 2, color.White)
	require.NoError(t, err)
	r.FillRect(geom.Rect{X: 105, Y: 105, Width: 5, Height: 5}, engine.RGB(0, 0, 255))

	img := r.Image()
	assert.Equal(t, image.Rect(0, 0, 40, 40), img.Bounds())
	assert.Greater(t, img.RGBAAt(18, 18).B, uint8(200))
	assert.Less(t, img.RGBAAt(18, 18).R, uint8(40))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, img.RGBAAt(22, 22))
}

func TestMatrix(t *testing.T) {
	m := Translate(10, 20).Multiply(Scale(2, 3))
	x, y := m.Apply(1, 1)
	assert.Equal(t, 12.0, x)
	assert.Equal(t, 23.0, y)

	x, y = m.Invert().Apply(12, 23)
	assert.InDelta(t, 1.0, x, 1e-9)
	assert.InDelta(t, 1.0, y, 1e-9)

	assert.Equal(t, Identity(), Scale(0, 1).Invert())

	x, y = canvasToImage(100, 50, 2).Apply(105, 60)
	assert.Equal(t, 10.0, x)
	assert.Equal(t, 20.0, y)
}

func TestRasterEllipse(t *testing.T) {
	r, err := NewRaster(geom.Rect{Width: 40, Height: 40}, color.White)
	require.NoError(t, err)
	r.StrokeEllipse(geom.Rect{X: 0, Y: 0, Width: 40, Height: 40}, engine.Black, 3)

	img := r.Image()
	assert.True(t, isDark(img.RGBAAt(20, 0)))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, img.RGBAAt(20, 20))
}

func TestRasterPNG(t *testing.T) {
	s, _ := testScene()
	r, err := NewRaster(Canvas(s.Bounds(), 4), color.White)
	require.NoError(t, err)
	s.Draw(r)

	var buf bytes.Buffer
	require.NoError(t, r.EncodePNG(&buf))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 28, img.Bounds().Dx())
	assert.Equal(t, 23, img.Bounds().Dy())
}

func TestFitZoom(t *testing.T) {
	b := geom.Rect{Width: 200, Height: 100}

	assert.Equal(t, 0.25, FitZoom(b, 1, 50))
	assert.Equal(t, 1.0, FitZoom(b, 1, 500))
	assert.Equal(t, 2.0, FitZoom(b, 2, 0))
	assert.Equal(t, 1.0, FitZoom(b, 0, 0))

	canvas := Canvas(geom.Rect{Width: 860, Height: 495}, 10)
	r, err := NewRasterZoom(canvas, FitZoom(canvas, 1, 100), color.White)
	require.NoError(t, err)
	assert.Equal(t, 100, r.Image().Bounds().Dx())
}

func TestRasterRejectsHugeCanvas(t *testing.T) {
	s := engine.NewScene()
	s.Add(engine.NewLine(geom.Pt(0, 0), geom.Pt(1<<31, 1<<31), engine.DefaultStyle()))
	canvas := Canvas(s.Bounds(), 20)

	var err error
	require.NotPanics(t, func() { _, err = NewRaster(canvas, color.White) })
	assert.ErrorIs(t, err, ErrTooLarge)

	_, err = NewRasterZoom(geom.Rect{Width: 200_000, Height: 200_000}, 1, color.White)
	assert.ErrorIs(t, err, ErrTooLarge)

	r, err := NewRasterZoom(canvas, FitZoom(canvas, 1, 256), color.White)
	require.NoError(t, err)
	s.Draw(r)
	assert.LessOrEqual(t, r.Image().Bounds().Dx(), 256)
}

func TestCanvas(t *testing.T) {
	assert.Equal(t, geom.Rect{X: -5, Y: 5, Width: 30, Height: 10}, Canvas(geom.Rect{X: 0, Y: 10, Width: 20, Height: 0}, 5))
}

func TestPDFOutput(t *testing.T) {
	s, r := testScene()
	r.SetSelected(true)
	s.Add(engine.NewPolygon([]geom.Point{geom.Pt(0, 0), geom.Pt(5, 9), geom.Pt(12, 3)}, engine.DefaultStyle()))
	s.Add(engine.NewTriangle(geom.Rect{X: 2, Y: 2, Width: 8, Height: 8}, engine.DefaultStyle()))

	p := NewPDF(Canvas(s.Bounds(), 10))
	s.Draw(p)

	var buf bytes.Buffer
	require.NoError(t, p.Output(&buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}
