package engine

import (
	"fmt"

	"github.com/inamate/drawtools/internal/geom"
)

// Button is the pointer button involved in an event.
type Button int

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonRight
	ButtonMiddle
)

// Modifiers is a bit set of keyboard modifiers held during an event.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Additive reports whether the modifiers ask to extend the selection
// instead of replacing it.
func (m Modifiers) Additive() bool {
	return m&(ModCtrl|ModMeta) != 0
}

// PointerEvent is a pointer press, motion or release in canvas coordinates.
type PointerEvent struct {
	Pos    geom.Point
	Button Button
	Mods   Modifiers
}

// Host is what a tool acts on during a gesture. Editor implements it.
type Host interface {
	Scene() *Scene
	AddCommand(c Command)
	Style() Style
	HitWidth() int
	PolygonMinDistance() int
	SetTool(k ToolKind)
	SetCursor(c Cursor)
	MarkDirty()
}

// Tool turns pointer events into scene changes. Tools keep state only for
// the gesture in progress.
type Tool interface {
	PointerDown(h Host, e PointerEvent)
	PointerMove(h Host, e PointerEvent)
	PointerUp(h Host, e PointerEvent)
}

// ToolKind names the tools an editor offers.
type ToolKind int

const (
	ToolPointer ToolKind = iota
	ToolRectangle
	ToolEllipse
	ToolTriangle
	ToolLine
	ToolPolygon
)

var toolNames = [...]string{
	ToolPointer:   "pointer",
	ToolRectangle: "rectangle",
	ToolEllipse:   "ellipse",
	ToolTriangle:  "triangle",
	ToolLine:      "line",
	ToolPolygon:   "polygon",
}

func (k ToolKind) String() string {
	if k >= 0 && int(k) < len(toolNames) {
		return toolNames[k]
	}
	return fmt.Sprintf("ToolKind(%d)", int(k))
}

// ParseToolKind resolves a tool name such as "polygon".
func ParseToolKind(name string) (ToolKind, error) {
	for k, n := range toolNames {
		if n == name {
			return ToolKind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown tool %q", name)
}

func (k ToolKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *ToolKind) UnmarshalText(text []byte) error {
	parsed, err := ParseToolKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// newTools builds one instance of every tool.
func newTools() map[ToolKind]Tool {
	return map[ToolKind]Tool{
		ToolPointer:   &PointerTool{},
		ToolRectangle: NewShapeTool(KindRectangle),
		ToolEllipse:   NewShapeTool(KindEllipse),
		ToolTriangle:  NewShapeTool(KindTriangle),
		ToolLine:      NewShapeTool(KindLine),
		ToolPolygon:   &PolygonTool{},
	}
}
