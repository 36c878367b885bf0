package remote

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"io"
	"sync"

	"github.com/inamate/drawtools/internal/document"
	"github.com/inamate/drawtools/internal/engine"
	"github.com/inamate/drawtools/internal/render"
)

// ErrUnknownMessage is returned for message types a session does not handle.
var ErrUnknownMessage = errors.New("unknown message type")

// ErrGestureInProgress is returned for edit and tool messages that arrive
// between a pointer press and its release.
var ErrGestureInProgress = errors.New("gesture in progress")

// Session is one drawing open for editing. All access to its editor goes
// through the session mutex; several clients may drive the same session.
type Session struct {
	ID        string
	DrawingID string

	mu     sync.Mutex
	editor *engine.Editor
	seq    int64

	clients  map[string]*Client // clientID -> client
	presence *Presence
}

func newSession(id, drawingID string, editor *engine.Editor) *Session {
	return &Session{
		ID:        id,
		DrawingID: drawingID,
		editor:    editor,
		clients:   make(map[string]*Client),
		presence:  NewPresence(),
	}
}

// Handle applies one client message to the editor. It reports whether the
// canvas needs to be redrawn.
func (s *Session) Handle(msg *Message) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.editor
	switch msg.Type {
	case TypePointerDown, TypePointerMove, TypePointerUp:
		var p PointerPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return false, fmt.Errorf("invalid pointer payload: %w", err)
		}
		ev, err := p.Event()
		if err != nil {
			return false, err
		}
		return s.pointer(msg.Type, ev), nil
	}

	if e.Busy() {
		return false, fmt.Errorf("%w: %s ignored", ErrGestureInProgress, msg.Type)
	}
	switch msg.Type {
	case TypeEditUndo:
		return e.Undo(), nil
	case TypeEditRedo:
		return e.Redo(), nil
	case TypeEditDelete:
		return e.DeleteSelection(), nil
	case TypeEditDeleteAll:
		return e.DeleteAll(), nil
	case TypeEditSelectAll:
		e.SelectAll()
		return true, nil
	case TypeEditUnselectAll:
		e.UnselectAll()
		return true, nil
	case TypeEditFront:
		return e.MoveSelectionToFront(), nil
	case TypeEditBack:
		return e.MoveSelectionToBack(), nil

	case TypeEditProperties:
		var p PropertiesPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return false, fmt.Errorf("invalid properties payload: %w", err)
		}
		return e.UpdateProperties(engine.Properties{Color: p.Color, PenWidth: p.PenWidth})

	case TypeToolSelect:
		var p ToolPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return false, fmt.Errorf("invalid tool payload: %w", err)
		}
		e.SetTool(p.Tool)
		return true, nil
	}
	return false, fmt.Errorf("%w: %q", ErrUnknownMessage, msg.Type)
}

func (s *Session) pointer(typ string, ev engine.PointerEvent) bool {
	e := s.editor
	switch typ {
	case TypePointerDown:
		e.PointerDown(ev)
		return true
	case TypePointerUp:
		e.PointerUp(ev)
		return true
	}
	cursor := e.Cursor()
	e.PointerMove(ev)
	return ev.Button != engine.ButtonNone || e.Cursor() != cursor
}

// RenderMessage returns the current canvas as a render message.
func (s *Session) RenderMessage() (*Message, error) {
	s.mu.Lock()
	payload := RenderPayload{
		Commands: render.CompileDrawCommands(s.editor),
		State:    s.editor.State(),
	}
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	if payload.Commands == nil {
		payload.Commands = []render.DrawCommand{}
	}
	msg, err := newMessage(TypeRender, payload)
	if err != nil {
		return nil, err
	}
	msg.SessionID = s.ID
	msg.Seq = seq
	return msg, nil
}

// State returns the editor summary.
func (s *Session) State() engine.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editor.State()
}

// Dirty reports whether the drawing has unsaved changes.
func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editor.Dirty()
}

// Document saves the drawing into a JSON field record and clears the dirty
// flag. Callers that fail to persist the result must call MarkDirty.
func (s *Session) Document() (json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := document.NewRecord()
	if err := s.editor.Save(rec); err != nil {
		return nil, err
	}
	return json.Marshal(rec)
}

// MarkDirty flags the drawing as unsaved.
func (s *Session) MarkDirty() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editor.MarkDirty()
}

// WritePNG renders the drawing on white with margin pixels around the shapes.
// A positive maxSide draws at a reduced zoom so the image fits. Drawings
// too large to rasterize fail with render.ErrTooLarge before anything is
// written.
func (s *Session) WritePNG(w io.Writer, margin, maxSide int) error {
	s.mu.Lock()
	scene := s.editor.Scene()
	canvas := render.Canvas(scene.Bounds(), margin)
	r, err := render.NewRasterZoom(canvas, render.FitZoom(canvas, 1, maxSide), color.White)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	scene.Draw(r)
	s.mu.Unlock()

	return r.EncodePNG(w)
}

// WritePDF renders the drawing as a one page PDF.
func (s *Session) WritePDF(w io.Writer, margin int) error {
	s.mu.Lock()
	scene := s.editor.Scene()
	p := render.NewPDF(render.Canvas(scene.Bounds(), margin))
	scene.Draw(p)
	s.mu.Unlock()

	return p.Output(w)
}
