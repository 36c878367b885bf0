package engine

import "github.com/inamate/drawtools/internal/geom"

type pointerMode int

const (
	modeIdle pointerMode = iota
	modeNetSelect
	modeMove
	modeResize
)

// PointerTool selects, moves and resizes shapes.
//
// A press on a handle of a selected shape starts a resize of that shape
// alone. A press on a shape body selects it and starts a move. A press on
// empty canvas starts a net selection. Moves and resizes are recorded as a
// ChangeStateCommand on release if the pointer moved at all.
type PointerTool struct {
	mode    pointerMode
	resized Shape
	handle  int
	start   geom.Point
	last    geom.Point
	change  *ChangeStateCommand
	moved   bool
}

func (t *PointerTool) PointerDown(h Host, e PointerEvent) {
	scene := h.Scene()
	t.change = nil
	t.moved = false
	t.mode = modeIdle

	for sh := range scene.Selection() {
		if n, ok := sh.HitTest(e.Pos).Handle(); ok {
			t.mode = modeResize
			t.resized = sh
			t.handle = n

			scene.UnselectAll()
			sh.SetSelected(true)
			t.change = NewChangeStateCommand(scene)
			break
		}
	}

	if t.mode == modeIdle {
		if sh := bodyAt(scene, e.Pos); sh != nil {
			t.mode = modeMove
			if !e.Mods.Additive() && !sh.Selected() {
				scene.UnselectAll()
			}
			sh.SetSelected(true)
			t.change = NewChangeStateCommand(scene)
			h.SetCursor(CursorMove)
		}
	}

	if t.mode == modeIdle {
		if !e.Mods.Additive() {
			scene.UnselectAll()
		}
		t.mode = modeNetSelect
	}

	t.start = e.Pos
	t.last = e.Pos
}

func (t *PointerTool) PointerMove(h Host, e PointerEvent) {
	t.moved = true

	if e.Button == ButtonNone {
		h.SetCursor(hoverCursor(h.Scene(), e.Pos))
		return
	}
	if e.Button != ButtonLeft {
		return
	}

	dx := e.Pos.X - t.last.X
	dy := e.Pos.Y - t.last.Y
	t.last = e.Pos

	switch t.mode {
	case modeResize:
		if t.resized != nil {
			t.resized.MoveHandleTo(e.Pos, t.handle)
			h.MarkDirty()
		}
	case modeMove:
		for sh := range h.Scene().Selection() {
			sh.Move(dx, dy)
		}
		h.SetCursor(CursorMove)
		h.MarkDirty()
	}
}

func (t *PointerTool) PointerUp(h Host, e PointerEvent) {
	if t.mode == modeNetSelect {
		h.Scene().SelectInRectangle(geom.NormalizedRect(t.start, t.last))
	}
	t.mode = modeIdle

	if t.resized != nil {
		t.resized.Normalize()
		t.resized = nil
	}

	if t.change != nil && t.moved {
		t.change.NewState(h.Scene())
		h.AddCommand(t.change)
	}
	t.change = nil
}

// NetRect returns the rubber band rectangle while a net selection is in
// progress.
func (t *PointerTool) NetRect() (geom.Rect, bool) {
	if t.mode != modeNetSelect {
		return geom.Rect{}, false
	}
	return geom.NormalizedRect(t.start, t.last), true
}

// bodyAt returns the topmost shape whose body is under p.
func bodyAt(s *Scene, p geom.Point) Shape {
	for _, sh := range s.All() {
		if sh.HitTest(p) == HitBody {
			return sh
		}
	}
	return nil
}

// hoverCursor returns the cursor of the first handle under p.
func hoverCursor(s *Scene, p geom.Point) Cursor {
	for _, sh := range s.All() {
		if n, ok := sh.HitTest(p).Handle(); ok {
			return sh.HandleCursor(n)
		}
	}
	return CursorDefault
}
