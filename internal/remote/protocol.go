package remote

import (
	"encoding/json"
	"fmt"

	"github.com/inamate/drawtools/internal/engine"
	"github.com/inamate/drawtools/internal/geom"
	"github.com/inamate/drawtools/internal/render"
)

type Message struct {
	Type      string          `json:"type"`
	SessionID string          `json:"sessionId,omitempty"`
	ClientID  string          `json:"clientId,omitempty"`
	Seq       int64           `json:"seq,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

const (
	// Connection
	TypeWelcome = "welcome"
	TypeError   = "error"

	// Pointer input
	TypePointerDown = "pointer.down"
	TypePointerMove = "pointer.move"
	TypePointerUp   = "pointer.up"

	// Edit menu
	TypeEditUndo        = "edit.undo"
	TypeEditRedo        = "edit.redo"
	TypeEditDelete      = "edit.delete"
	TypeEditDeleteAll   = "edit.deleteAll"
	TypeEditSelectAll   = "edit.selectAll"
	TypeEditUnselectAll = "edit.unselectAll"
	TypeEditFront       = "edit.front"
	TypeEditBack        = "edit.back"
	TypeEditProperties  = "edit.properties"

	TypeToolSelect = "tool.select"

	// Server to client
	TypeRender         = "render"
	TypePresenceUpdate = "presence.update"
	TypePresenceLeave  = "presence.leave"
)

type WelcomePayload struct {
	SessionID string `json:"sessionId"`
	DrawingID string `json:"drawingId"`
	ClientID  string `json:"clientId"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

// PointerPayload is a pointer event in canvas coordinates. Button is one of
// "", "left", "right" or "middle".
type PointerPayload struct {
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Button string `json:"button,omitempty"`
	Shift  bool   `json:"shift,omitempty"`
	Ctrl   bool   `json:"ctrl,omitempty"`
	Alt    bool   `json:"alt,omitempty"`
	Meta   bool   `json:"meta,omitempty"`
}

var buttons = map[string]engine.Button{
	"":       engine.ButtonNone,
	"none":   engine.ButtonNone,
	"left":   engine.ButtonLeft,
	"right":  engine.ButtonRight,
	"middle": engine.ButtonMiddle,
}

// Event converts the payload to an engine event.
func (p PointerPayload) Event() (engine.PointerEvent, error) {
	b, ok := buttons[p.Button]
	if !ok {
		return engine.PointerEvent{}, fmt.Errorf("unknown button %q", p.Button)
	}
	var mods engine.Modifiers
	if p.Shift {
		mods |= engine.ModShift
	}
	if p.Ctrl {
		mods |= engine.ModCtrl
	}
	if p.Alt {
		mods |= engine.ModAlt
	}
	if p.Meta {
		mods |= engine.ModMeta
	}
	return engine.PointerEvent{Pos: geom.Pt(p.X, p.Y), Button: b, Mods: mods}, nil
}

type ToolPayload struct {
	Tool engine.ToolKind `json:"tool"`
}

// PropertiesPayload restyles the selection. Omitted fields are left alone.
type PropertiesPayload struct {
	Color    *engine.Color `json:"color,omitempty"`
	PenWidth *int          `json:"penWidth,omitempty"`
}

// RenderPayload is the full picture after a change: the draw commands for
// the canvas plus the state menus and toolbars need.
type RenderPayload struct {
	Commands []render.DrawCommand `json:"commands"`
	State    engine.State         `json:"state"`
}

type PresencePayload struct {
	ClientID string `json:"clientId"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
}

type PresenceLeavePayload struct {
	ClientID string `json:"clientId"`
}

func newMessage(typ string, payload any) (*Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", typ, err)
	}
	return &Message{Type: typ, Payload: data}, nil
}

func errorMessage(err error) *Message {
	msg, _ := newMessage(TypeError, ErrorPayload{Message: err.Error()})
	return msg
}
