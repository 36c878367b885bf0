package engine

// History is a linear undo/redo log. next is the index of the most recently
// applied command, or -1.
type History struct {
	commands []Command
	next     int
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{next: -1}
}

// Len returns the number of recorded commands, including redoable ones.
func (h *History) Len() int {
	return len(h.commands)
}

func (h *History) CanUndo() bool {
	return h.next >= 0 && h.next < len(h.commands)
}

func (h *History) CanRedo() bool {
	return h.next < len(h.commands)-1
}

// Add records an already applied command. Anything that could have been
// redone is dropped.
func (h *History) Add(c Command) {
	clear(h.commands[h.next+1:])
	h.commands = append(h.commands[:h.next+1], c)
	h.next = len(h.commands) - 1
}

// Undo reverts the most recent command. It reports whether anything was
// undone.
func (h *History) Undo(s *Scene) bool {
	if !h.CanUndo() {
		return false
	}
	h.commands[h.next].Undo(s)
	h.next--
	return true
}

// Redo reapplies the next command. It reports whether anything was redone.
func (h *History) Redo(s *Scene) bool {
	if !h.CanRedo() {
		return false
	}
	h.commands[h.next+1].Redo(s)
	h.next++
	return true
}

// Clear forgets every command.
func (h *History) Clear() {
	h.commands = nil
	h.next = -1
}
