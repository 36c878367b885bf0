package engine

import (
	"fmt"
	"image/color"
	"reflect"

	"github.com/inamate/drawtools/internal/geom"
)

// fieldMap is an in-memory formatter that keeps write order.
type fieldMap struct {
	keys   []string
	values map[string]any
}

func newFieldMap() *fieldMap {
	return &fieldMap{values: map[string]any{}}
}

func (m *fieldMap) WriteField(key string, value any) error {
	if _, dup := m.values[key]; dup {
		return fmt.Errorf("duplicate field %q", key)
	}
	m.keys = append(m.keys, key)
	m.values[key] = value
	return nil
}

func (m *fieldMap) ReadField(key string, dst any) error {
	v, ok := m.values[key]
	if !ok {
		return fmt.Errorf("field %q missing", key)
	}
	dv := reflect.ValueOf(dst).Elem()
	sv := reflect.ValueOf(v)
	if !sv.Type().AssignableTo(dv.Type()) {
		return fmt.Errorf("field %q is %T, want %s", key, v, dv.Type())
	}
	dv.Set(sv)
	return nil
}

// paintLog records painter calls as short strings.
type paintLog struct {
	calls []string
	ids   []ID
}

func (p *paintLog) StrokeRect(r geom.Rect, c color.Color, width int) {
	p.calls = append(p.calls, fmt.Sprintf("rect %v w%d", r, width))
}

func (p *paintLog) StrokeEllipse(r geom.Rect, c color.Color, width int) {
	p.calls = append(p.calls, fmt.Sprintf("ellipse %v w%d", r, width))
}

func (p *paintLog) StrokePolygon(pts []geom.Point, c color.Color, width int) {
	p.calls = append(p.calls, fmt.Sprintf("polygon %v w%d", pts, width))
}

func (p *paintLog) StrokePolyline(pts []geom.Point, c color.Color, width int) {
	p.calls = append(p.calls, fmt.Sprintf("polyline %v w%d", pts, width))
}

func (p *paintLog) FillRect(r geom.Rect, c color.Color) {
	p.calls = append(p.calls, fmt.Sprintf("fill %v", r))
}

func (p *paintLog) MarkShape(id ID) {
	p.ids = append(p.ids, id)
}

func rect(x, y, w, h int) geom.Rect {
	return geom.Rect{X: x, Y: y, Width: w, Height: h}
}

// ids lists the scene's shape ids front to back.
func ids(s *Scene) []ID {
	var out []ID
	for _, sh := range s.All() {
		out = append(out, sh.ID())
	}
	return out
}
