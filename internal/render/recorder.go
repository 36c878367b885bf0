package render

import (
	"encoding/json"
	"fmt"
	"image/color"

	"github.com/inamate/drawtools/internal/engine"
	"github.com/inamate/drawtools/internal/geom"
)

// DrawCommand represents a single drawing operation for a browser canvas.
// The client receives a list of these and executes them on a Canvas2D
// context in order.
type DrawCommand struct {
	Op          string        `json:"op"`                    // Operation: "path"
	ObjectID    int64         `json:"objectId,omitempty"`    // Shape the command belongs to
	Path        []PathCommand `json:"path,omitempty"`        // Path data for "path" ops
	Fill        string        `json:"fill,omitempty"`        // Fill color
	Stroke      string        `json:"stroke,omitempty"`      // Stroke color
	StrokeWidth float64       `json:"strokeWidth,omitempty"` // Stroke width
}

// PathCommand represents a single path segment for rendering.
// Format matches Canvas2D: ["M", x, y], ["L", x, y], ["C", x1, y1, x2, y2, x, y], ["Z"].
type PathCommand []any

// Drawable is anything that paints itself onto a Painter, such as a scene
// or an editor.
type Drawable interface {
	Draw(p engine.Painter)
}

// Recorder is a Painter that records draw commands instead of pixels.
type Recorder struct {
	commands []DrawCommand
	current  engine.ID
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// CompileDrawCommands records d into a draw command buffer. Commands are in
// painter's order (back to front).
func CompileDrawCommands(d Drawable) []DrawCommand {
	r := NewRecorder()
	d.Draw(r)
	return r.Commands()
}

// Commands returns the recorded commands.
func (r *Recorder) Commands() []DrawCommand {
	return r.commands
}

// MarkShape tags the following commands with the shape id.
func (r *Recorder) MarkShape(id engine.ID) {
	r.current = id
}

func (r *Recorder) stroke(path []PathCommand, c color.Color, width int) {
	r.commands = append(r.commands, DrawCommand{
		Op:          "path",
		ObjectID:    int64(r.current),
		Path:        path,
		Stroke:      cssColor(c),
		StrokeWidth: float64(max(width, 1)),
	})
}

func (r *Recorder) StrokeRect(rc geom.Rect, c color.Color, width int) {
	r.stroke(rectPath(rc), c, width)
}

func (r *Recorder) StrokeEllipse(bounds geom.Rect, c color.Color, width int) {
	r.stroke(ellipsePath(bounds), c, width)
}

func (r *Recorder) StrokePolygon(pts []geom.Point, c color.Color, width int) {
	r.stroke(append(polylinePath(pts), PathCommand{"Z"}), c, width)
}

func (r *Recorder) StrokePolyline(pts []geom.Point, c color.Color, width int) {
	r.stroke(polylinePath(pts), c, width)
}

func (r *Recorder) FillRect(rc geom.Rect, c color.Color) {
	r.commands = append(r.commands, DrawCommand{
		Op:       "path",
		ObjectID: int64(r.current),
		Path:     rectPath(rc),
		Fill:     cssColor(c),
	})
}

func rectPath(r geom.Rect) []PathCommand {
	return []PathCommand{
		{"M", float64(r.X), float64(r.Y)},
		{"L", float64(r.Right()), float64(r.Y)},
		{"L", float64(r.Right()), float64(r.Bottom())},
		{"L", float64(r.X), float64(r.Bottom())},
		{"Z"},
	}
}

func polylinePath(pts []geom.Point) []PathCommand {
	path := make([]PathCommand, 0, len(pts)+1)
	for i, p := range pts {
		op := "L"
		if i == 0 {
			op = "M"
		}
		path = append(path, PathCommand{op, float64(p.X), float64(p.Y)})
	}
	return path
}

// kappa places cubic control points so four curves approximate an ellipse.
const kappa = 0.5522847498

func ellipsePath(r geom.Rect) []PathCommand {
	rx := float64(r.Width) / 2
	ry := float64(r.Height) / 2
	cx := float64(r.X) + rx
	cy := float64(r.Y) + ry
	kx, ky := kappa*rx, kappa*ry

	return []PathCommand{
		{"M", cx + rx, cy},
		{"C", cx + rx, cy + ky, cx + kx, cy + ry, cx, cy + ry},
		{"C", cx - kx, cy + ry, cx - rx, cy + ky, cx - rx, cy},
		{"C", cx - rx, cy - ky, cx - kx, cy - ry, cx, cy - ry},
		{"C", cx + kx, cy - ry, cx + rx, cy - ky, cx + rx, cy},
		{"Z"},
	}
}

// cssColor formats c as #rrggbb, or rgba() when it is translucent.
func cssColor(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A == 0xFF {
		return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
	}
	return fmt.Sprintf("rgba(%d,%d,%d,%.3g)", n.R, n.G, n.B, float64(n.A)/255)
}

// DrawCommandsToJSON serializes draw commands to JSON.
func DrawCommandsToJSON(commands []DrawCommand) (string, error) {
	if commands == nil {
		return "[]", nil
	}
	data, err := json.Marshal(commands)
	if err != nil {
		return "[]", err
	}
	return string(data), nil
}
