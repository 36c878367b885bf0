package engine

// Command is a reversible change to a Scene. Commands hold clones only,
// never shapes that live in a scene, and every replay inserts a fresh clone
// so a command can be undone and redone any number of times.
type Command interface {
	Undo(s *Scene)
	Redo(s *Scene)
	Name() string
	command()
}

// AddCommand records a shape that was added on top of the scene.
type AddCommand struct {
	shape Shape
}

// NewAddCommand is created after sh has been added.
func NewAddCommand(sh Shape) *AddCommand {
	return &AddCommand{shape: sh.Clone()}
}

func (c *AddCommand) Name() string { return "add" }
func (c *AddCommand) command() {}

func (c *AddCommand) Undo(s *Scene) {
	s.DeleteLastAdded()
}

func (c *AddCommand) Redo(s *Scene) {
	s.UnselectAll()
	s.Add(c.shape.Clone())
}

type indexedShape struct {
	index int
	shape Shape
}

// DeleteSelectionCommand records the removal of the selected shapes.
type DeleteSelectionCommand struct {
	// in descending index order
	deleted []indexedShape
}

// NewDeleteSelectionCommand must be created before the selection is deleted.
func NewDeleteSelectionCommand(s *Scene) *DeleteSelectionCommand {
	c := &DeleteSelectionCommand{}
	for i := s.Len() - 1; i >= 0; i-- {
		if sh := s.At(i); sh.Selected() {
			c.deleted = append(c.deleted, indexedShape{index: i, shape: sh.Clone()})
		}
	}
	return c
}

func (c *DeleteSelectionCommand) Name() string { return "delete" }
func (c *DeleteSelectionCommand) command() {}

// Undo reinserts in ascending index order so each recorded index is valid
// at the moment it is used.
func (c *DeleteSelectionCommand) Undo(s *Scene) {
	s.UnselectAll()
	for k := len(c.deleted) - 1; k >= 0; k-- {
		d := c.deleted[k]
		s.Insert(d.index, d.shape.Clone())
	}
}

func (c *DeleteSelectionCommand) Redo(s *Scene) {
	for _, d := range c.deleted {
		s.RemoveAt(d.index)
	}
}

// DeleteAllCommand records clearing the scene.
type DeleteAllCommand struct {
	// back to front, so re-adding them in order rebuilds the stack
	shapes []Shape
}

// NewDeleteAllCommand must be created before the scene is cleared.
func NewDeleteAllCommand(s *Scene) *DeleteAllCommand {
	c := &DeleteAllCommand{}
	for i := s.Len() - 1; i >= 0; i-- {
		c.shapes = append(c.shapes, s.At(i).Clone())
	}
	return c
}

func (c *DeleteAllCommand) Name() string { return "delete all" }
func (c *DeleteAllCommand) command() {}

func (c *DeleteAllCommand) Undo(s *Scene) {
	for _, sh := range c.shapes {
		s.Add(sh.Clone())
	}
}

func (c *DeleteAllCommand) Redo(s *Scene) {
	s.Clear()
}

// ChangeStateCommand records a move, resize or restyle of the selected
// shapes as before and after snapshots matched to the scene by id.
type ChangeStateCommand struct {
	before []Shape
	after  []Shape
}

// NewChangeStateCommand snapshots the selection before the change.
func NewChangeStateCommand(s *Scene) *ChangeStateCommand {
	return &ChangeStateCommand{before: cloneSelection(s)}
}

// NewState snapshots the selection after the change.
func (c *ChangeStateCommand) NewState(s *Scene) {
	c.after = cloneSelection(s)
}

func (c *ChangeStateCommand) Name() string { return "change" }
func (c *ChangeStateCommand) command() {}

func (c *ChangeStateCommand) Undo(s *Scene) {
	replaceByID(s, c.before)
}

func (c *ChangeStateCommand) Redo(s *Scene) {
	replaceByID(s, c.after)
}

func cloneSelection(s *Scene) []Shape {
	var out []Shape
	for sh := range s.Selection() {
		out = append(out, sh.Clone())
	}
	return out
}

// replaceByID swaps every scene shape that has a snapshot with a clone of
// that snapshot. Shapes without a snapshot are left alone.
func replaceByID(s *Scene, snapshots []Shape) {
	if len(snapshots) == 0 {
		return
	}
	byID := make(map[ID]Shape, len(snapshots))
	for _, sh := range snapshots {
		byID[sh.ID()] = sh
	}
	for i := 0; i < s.Len(); i++ {
		if snap, ok := byID[s.At(i).ID()]; ok {
			s.Replace(i, snap.Clone())
		}
	}
}
