package engine

import (
	"fmt"
	"iter"
	"slices"

	"github.com/inamate/drawtools/internal/geom"
)

// Scene is the ordered list of shapes in a drawing. Index 0 is the topmost
// shape. Selection is a flag on each shape rather than a separate set.
//
// Internally shapes are kept in painter's order (back to front) so that
// adding a new topmost shape is an append.
type Scene struct {
	shapes []Shape
}

// NewScene creates an empty scene.
func NewScene() *Scene {
	return &Scene{}
}

// Len returns the number of shapes.
func (s *Scene) Len() int {
	return len(s.shapes)
}

// pos maps a front-to-back index onto the internal slice.
func (s *Scene) pos(i int) int {
	return len(s.shapes) - 1 - i
}

func (s *Scene) inRange(i int) bool {
	return i >= 0 && i < len(s.shapes)
}

// At returns the shape at index i, or nil when i is out of range.
func (s *Scene) At(i int) Shape {
	if !s.inRange(i) {
		return nil
	}
	return s.shapes[s.pos(i)]
}

// All yields every shape front to back with its index.
func (s *Scene) All() iter.Seq2[int, Shape] {
	return func(yield func(int, Shape) bool) {
		for i := len(s.shapes) - 1; i >= 0; i-- {
			if !yield(len(s.shapes)-1-i, s.shapes[i]) {
				return
			}
		}
	}
}

// IndexOf returns the index of the shape with the given id, or -1.
func (s *Scene) IndexOf(id ID) int {
	for i, sh := range s.All() {
		if sh.ID() == id {
			return i
		}
	}
	return -1
}

// Add puts sh on top of every other shape.
func (s *Scene) Add(sh Shape) {
	if sh == nil {
		return
	}
	s.shapes = append(s.shapes, sh)
}

// Insert places sh at index i. i may equal Len, which puts sh at the
// bottom. Other indices out of range are ignored.
func (s *Scene) Insert(i int, sh Shape) {
	if sh == nil || i < 0 || i > len(s.shapes) {
		return
	}
	s.shapes = slices.Insert(s.shapes, len(s.shapes)-i, sh)
}

// Replace swaps the shape at index i for sh.
func (s *Scene) Replace(i int, sh Shape) {
	if sh == nil || !s.inRange(i) {
		return
	}
	s.shapes[s.pos(i)] = sh
}

// RemoveAt deletes the shape at index i.
func (s *Scene) RemoveAt(i int) {
	if !s.inRange(i) {
		return
	}
	p := s.pos(i)
	s.shapes = append(s.shapes[:p], s.shapes[p+1:]...)
}

// DeleteLastAdded removes the topmost shape.
func (s *Scene) DeleteLastAdded() {
	s.RemoveAt(0)
}

// Clear removes every shape and reports whether there were any.
func (s *Scene) Clear() bool {
	if len(s.shapes) == 0 {
		return false
	}
	s.shapes = nil
	return true
}

// DeleteSelection removes every selected shape and reports whether any
// were removed.
func (s *Scene) DeleteSelection() bool {
	kept := s.shapes[:0]
	for _, sh := range s.shapes {
		if !sh.Selected() {
			kept = append(kept, sh)
		}
	}
	removed := len(kept) != len(s.shapes)
	clear(s.shapes[len(kept):])
	s.shapes = kept
	return removed
}

func (s *Scene) SelectAll() {
	for _, sh := range s.shapes {
		sh.SetSelected(true)
	}
}

func (s *Scene) UnselectAll() {
	for _, sh := range s.shapes {
		sh.SetSelected(false)
	}
}

// SelectInRectangle replaces the selection with every shape that
// intersects r.
func (s *Scene) SelectInRectangle(r geom.Rect) {
	s.UnselectAll()
	for _, sh := range s.shapes {
		if sh.Intersects(r) {
			sh.SetSelected(true)
		}
	}
}

// Selection yields the selected shapes front to back. Each call starts a
// fresh pass over the scene.
func (s *Scene) Selection() iter.Seq[Shape] {
	return func(yield func(Shape) bool) {
		for _, sh := range s.All() {
			if sh.Selected() && !yield(sh) {
				return
			}
		}
	}
}

// SelectionCount returns the number of selected shapes.
func (s *Scene) SelectionCount() int {
	n := 0
	for _, sh := range s.shapes {
		if sh.Selected() {
			n++
		}
	}
	return n
}

// MoveSelectionToFront raises the selected shapes above the rest, keeping
// their relative order. It reports whether anything was selected.
func (s *Scene) MoveSelectionToFront() bool {
	return s.partition(false)
}

// MoveSelectionToBack lowers the selected shapes below the rest, keeping
// their relative order. It reports whether anything was selected.
func (s *Scene) MoveSelectionToBack() bool {
	return s.partition(true)
}

// partition stably splits the shapes into selected and unselected groups
// and puts the selected group at the back (bottom) or the end (top) of the
// painter's order.
func (s *Scene) partition(selectedFirst bool) bool {
	var sel, rest []Shape
	for _, sh := range s.shapes {
		if sh.Selected() {
			sel = append(sel, sh)
		} else {
			rest = append(rest, sh)
		}
	}
	if len(sel) == 0 {
		return false
	}

	s.shapes = s.shapes[:0]
	if selectedFirst {
		s.shapes = append(append(s.shapes, sel...), rest...)
	} else {
		s.shapes = append(append(s.shapes, rest...), sel...)
	}
	return true
}

// SelectionStyle returns the style shared by every selected shape. A
// field is nil when the selection disagrees on it or nothing is selected.
func (s *Scene) SelectionStyle() Properties {
	var (
		first     Style
		seen      bool
		sameColor = true
		sameWidth = true
	)
	for sh := range s.Selection() {
		st := sh.Style()
		if !seen {
			first, seen = st, true
			continue
		}
		sameColor = sameColor && st.Color == first.Color
		sameWidth = sameWidth && st.PenWidth == first.PenWidth
	}

	var props Properties
	if !seen {
		return props
	}
	if sameColor {
		c := first.Color
		props.Color = &c
	}
	if sameWidth {
		w := first.PenWidth
		props.PenWidth = &w
	}
	return props
}

// ApplyStyle sets the non-nil properties on every selected shape and
// reports whether any shape changed.
func (s *Scene) ApplyStyle(props Properties) bool {
	changed := false
	for sh := range s.Selection() {
		st := sh.Style()
		if props.Color != nil && st.Color != *props.Color {
			st.Color = *props.Color
			changed = true
		}
		if props.PenWidth != nil && st.PenWidth != *props.PenWidth {
			st.PenWidth = *props.PenWidth
			changed = true
		}
		sh.SetStyle(st)
	}
	return changed
}

// Draw paints the scene back to front, each selected shape followed by its
// handles.
func (s *Scene) Draw(p Painter) {
	for _, sh := range s.shapes {
		DrawShape(p, sh)
	}
}

// Bounds returns the smallest rectangle covering every shape, or an empty
// Rect when the scene is empty.
func (s *Scene) Bounds() geom.Rect {
	var corners []geom.Point
	for _, sh := range s.shapes {
		b := sh.Bounds()
		corners = append(corners, geom.Pt(b.X, b.Y), geom.Pt(b.Right(), b.Bottom()))
	}
	return geom.BoundsOf(corners)
}

// WriteFields stores the scene as "Count" followed by, for each shape front
// to back, "Type<i>" and the shape's own fields.
func (s *Scene) WriteFields(w FieldWriter) error {
	if err := w.WriteField("Count", len(s.shapes)); err != nil {
		return fmt.Errorf("write count: %w", err)
	}
	for i, sh := range s.All() {
		if err := w.WriteField(fieldKey("Type", i), sh.Kind().Discriminator()); err != nil {
			return fmt.Errorf("write shape %d: %w", i, err)
		}
		if err := sh.WriteFields(w, i); err != nil {
			return fmt.Errorf("write shape %d: %w", i, err)
		}
	}
	return nil
}

// ReadScene builds a new scene from fields written by WriteFields. Every
// shape gets a fresh id.
func ReadScene(r FieldReader) (*Scene, error) {
	var n int
	if err := r.ReadField("Count", &n); err != nil {
		return nil, fmt.Errorf("read count: %w", err)
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: count %d", ErrMalformed, n)
	}

	var front []Shape
	for i := range n {
		var tag string
		if err := r.ReadField(fieldKey("Type", i), &tag); err != nil {
			return nil, fmt.Errorf("read shape %d: %w", i, err)
		}
		kind, err := KindByDiscriminator(tag)
		if err != nil {
			return nil, fmt.Errorf("read shape %d: %w", i, err)
		}
		sh, err := newShape(kind)
		if err != nil {
			return nil, fmt.Errorf("read shape %d: %w", i, err)
		}
		if err := sh.ReadFields(r, i); err != nil {
			return nil, fmt.Errorf("read shape %d: %w", i, err)
		}
		front = append(front, sh)
	}

	scene := NewScene()
	for i := len(front) - 1; i >= 0; i-- {
		scene.Add(front[i])
	}
	return scene, nil
}
