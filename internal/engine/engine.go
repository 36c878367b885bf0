package engine

import (
	"fmt"
	"log/slog"

	"github.com/inamate/drawtools/internal/geom"
)

// Options configures an Editor.
type Options struct {
	// HitWidth is the pen width used to hit test lines and polygons.
	HitWidth int
	// PolygonMinDistance is the spacing between committed polygon vertices.
	PolygonMinDistance int
	// Style is the initial pen for new shapes.
	Style Style
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// DefaultOptions returns the stock editor settings.
func DefaultOptions() Options {
	return Options{
		HitWidth:           DefaultHitWidth,
		PolygonMinDistance: DefaultPolygonMinDistance,
		Style:              DefaultStyle(),
	}
}

// Editor owns one drawing: its scene, its undo history, the active tool and
// the most recently used pen. It is not safe for concurrent use; callers
// that receive input on several goroutines must serialize their calls.
type Editor struct {
	opts Options
	log  *slog.Logger

	scene   *Scene
	history *History

	tools  map[ToolKind]Tool
	active ToolKind
	cursor Cursor
	// left button held: a tool gesture is in progress
	pressed bool

	// Pen handed to new shapes; updated by ApplyProperties.
	style Style

	// Dirty flag - document changed since the last New/Load/Save
	dirty bool
}

// NewEditor creates an editor with an empty drawing.
func NewEditor(opts Options) *Editor {
	if opts.HitWidth <= 0 {
		opts.HitWidth = DefaultHitWidth
	}
	if opts.PolygonMinDistance <= 0 {
		opts.PolygonMinDistance = DefaultPolygonMinDistance
	}
	if opts.Style.PenWidth <= 0 {
		opts.Style = DefaultStyle()
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	return &Editor{
		opts:    opts,
		log:     log,
		scene:   NewScene(),
		history: NewHistory(),
		tools:   newTools(),
		active:  ToolPointer,
		style:   opts.Style,
	}
}

// --- Host (used by tools) ---

// Scene returns the live scene. Shapes obtained from it must not be kept
// across calls that change the document.
func (e *Editor) Scene() *Scene {
	return e.scene
}

// AddCommand records an already applied change in the history.
func (e *Editor) AddCommand(c Command) {
	e.history.Add(c)
	e.dirty = true
	e.log.Debug("command recorded", "command", c.Name(), "history", e.history.Len())
}

// Style returns the pen used for new shapes.
func (e *Editor) Style() Style {
	return e.style
}

func (e *Editor) HitWidth() int {
	return e.opts.HitWidth
}

func (e *Editor) PolygonMinDistance() int {
	return e.opts.PolygonMinDistance
}

// SetTool activates the tool of kind k. It is ignored during a gesture.
func (e *Editor) SetTool(k ToolKind) {
	if _, ok := e.tools[k]; !ok || e.pressed {
		return
	}
	e.active = k
}

func (e *Editor) SetCursor(c Cursor) {
	e.cursor = c
}

func (e *Editor) MarkDirty() {
	e.dirty = true
}

// --- Input ---

// PointerDown routes a press: the left button goes to the active tool, the
// right button adjusts the selection for a context menu.
func (e *Editor) PointerDown(ev PointerEvent) {
	switch ev.Button {
	case ButtonLeft:
		e.pressed = true
		e.tools[e.active].PointerDown(e, ev)
	case ButtonRight:
		e.contextSelect(ev.Pos)
	}
}

// PointerMove routes motion with the left button or no button held to the
// active tool.
func (e *Editor) PointerMove(ev PointerEvent) {
	if ev.Button == ButtonLeft || ev.Button == ButtonNone {
		e.tools[e.active].PointerMove(e, ev)
		return
	}
	e.cursor = CursorDefault
}

// PointerUp routes a left button release to the active tool.
func (e *Editor) PointerUp(ev PointerEvent) {
	if ev.Button == ButtonLeft {
		e.pressed = false
		e.tools[e.active].PointerUp(e, ev)
	}
}

// contextSelect makes sure the shape under p is part of the selection, or
// clears the selection when p is over empty canvas.
func (e *Editor) contextSelect(p geom.Point) {
	sh := bodyAt(e.scene, p)
	if sh == nil {
		e.scene.UnselectAll()
		return
	}
	if !sh.Selected() {
		e.scene.UnselectAll()
	}
	sh.SetSelected(true)
}

// Busy reports whether a left button gesture is in progress. Edit commands
// are ignored until it ends so a tool never records a change against a
// scene that moved under it.
func (e *Editor) Busy() bool {
	return e.pressed
}

// --- Edit commands ---

func (e *Editor) CanUndo() bool { return e.history.CanUndo() }
func (e *Editor) CanRedo() bool { return e.history.CanRedo() }

// Undo reverts the last recorded change.
func (e *Editor) Undo() bool {
	if e.pressed || !e.history.Undo(e.scene) {
		return false
	}
	e.dirty = true
	return true
}

// Redo reapplies the last undone change.
func (e *Editor) Redo() bool {
	if e.pressed || !e.history.Redo(e.scene) {
		return false
	}
	e.dirty = true
	return true
}

// DeleteSelection removes the selected shapes as one undoable step.
func (e *Editor) DeleteSelection() bool {
	if e.pressed {
		return false
	}
	c := NewDeleteSelectionCommand(e.scene)
	if !e.scene.DeleteSelection() {
		return false
	}
	e.AddCommand(c)
	return true
}

// DeleteAll removes every shape as one undoable step.
func (e *Editor) DeleteAll() bool {
	if e.pressed {
		return false
	}
	c := NewDeleteAllCommand(e.scene)
	if !e.scene.Clear() {
		return false
	}
	e.AddCommand(c)
	return true
}

func (e *Editor) SelectAll() {
	if !e.pressed {
		e.scene.SelectAll()
	}
}

func (e *Editor) UnselectAll() {
	if !e.pressed {
		e.scene.UnselectAll()
	}
}

// MoveSelectionToFront raises the selection. Z-order changes are not
// recorded in the history.
func (e *Editor) MoveSelectionToFront() bool {
	if e.pressed || !e.scene.MoveSelectionToFront() {
		return false
	}
	e.dirty = true
	return true
}

// MoveSelectionToBack lowers the selection. Z-order changes are not
// recorded in the history.
func (e *Editor) MoveSelectionToBack() bool {
	if e.pressed || !e.scene.MoveSelectionToBack() {
		return false
	}
	e.dirty = true
	return true
}

// SelectionProperties returns the style shared by the selection.
func (e *Editor) SelectionProperties() Properties {
	return e.scene.SelectionStyle()
}

// ApplyProperties restyles the selection as one undoable step. The applied
// values also become the pen for new shapes. Invalid properties change
// nothing.
func (e *Editor) ApplyProperties(props Properties) bool {
	if e.pressed || e.scene.SelectionCount() == 0 || props.Validate() != nil {
		return false
	}

	c := NewChangeStateCommand(e.scene)
	if !e.scene.ApplyStyle(props) {
		return false
	}
	c.NewState(e.scene)
	e.AddCommand(c)

	if props.Color != nil {
		e.style.Color = *props.Color
	}
	if props.PenWidth != nil {
		e.style.PenWidth = *props.PenWidth
	}
	return true
}

// SetStyle sets the pen for new shapes without touching existing ones.
// Widths below one are raised to one.
func (e *Editor) SetStyle(style Style) {
	style.PenWidth = max(style.PenWidth, 1)
	e.style = style
}

// UpdateProperties is the properties dialog action: with a selection it
// behaves like ApplyProperties, without one the values only become the pen
// for new shapes. It reports whether anything changed.
func (e *Editor) UpdateProperties(props Properties) (bool, error) {
	if err := props.Validate(); err != nil {
		return false, err
	}
	if e.scene.SelectionCount() > 0 {
		return e.ApplyProperties(props), nil
	}
	style := e.style
	if props.Color != nil {
		style.Color = *props.Color
	}
	if props.PenWidth != nil {
		style.PenWidth = *props.PenWidth
	}
	changed := style != e.style
	e.style = style
	return changed, nil
}

// --- Document lifecycle ---

// New discards the drawing and its history.
func (e *Editor) New() {
	e.reset(NewScene())
}

// Load replaces the drawing with the one read from r. On error the current
// drawing is left untouched.
func (e *Editor) Load(r FieldReader) error {
	scene, err := ReadScene(r)
	if err != nil {
		return fmt.Errorf("load scene: %w", err)
	}
	for _, sh := range scene.All() {
		if hw, ok := sh.(HitWidthSetter); ok {
			hw.SetHitWidth(e.opts.HitWidth)
		}
	}
	e.reset(scene)
	e.log.Debug("scene loaded", "shapes", scene.Len())
	return nil
}

// Save writes the drawing to w and clears the dirty flag.
func (e *Editor) Save(w FieldWriter) error {
	if err := e.scene.WriteFields(w); err != nil {
		return fmt.Errorf("save scene: %w", err)
	}
	e.dirty = false
	return nil
}

func (e *Editor) reset(scene *Scene) {
	e.scene = scene
	e.history.Clear()
	e.tools = newTools()
	e.active = ToolPointer
	e.cursor = CursorDefault
	e.pressed = false
	e.dirty = false
}

// --- Queries ---

// Dirty reports whether the drawing changed since it was created, loaded
// or saved.
func (e *Editor) Dirty() bool {
	return e.dirty
}

// Tool returns the active tool kind.
func (e *Editor) Tool() ToolKind {
	return e.active
}

// Cursor returns the cursor the host should show.
func (e *Editor) Cursor() Cursor {
	return e.cursor
}

// NetRect returns the rubber band rectangle of a net selection in progress.
func (e *Editor) NetRect() (geom.Rect, bool) {
	if pt, ok := e.tools[e.active].(*PointerTool); ok {
		return pt.NetRect()
	}
	return geom.Rect{}, false
}

// netColor is the outline of the rubber band rectangle.
const netColor Color = 0xFF808080

// Draw paints the drawing and, during a net selection, the rubber band.
func (e *Editor) Draw(p Painter) {
	e.scene.Draw(p)
	if r, ok := e.NetRect(); ok {
		p.StrokeRect(r, netColor, 1)
	}
}

// State is a summary of the editor for hosts that update menus and
// toolbars.
type State struct {
	Shapes   int      `json:"shapes"`
	Selected int      `json:"selected"`
	CanUndo  bool     `json:"canUndo"`
	CanRedo  bool     `json:"canRedo"`
	Dirty    bool     `json:"dirty"`
	Busy     bool     `json:"busy"`
	Tool     ToolKind `json:"tool"`
	Cursor   Cursor   `json:"cursor"`
	Style    Style    `json:"style"`
}

// State returns the current editor summary.
func (e *Editor) State() State {
	return State{
		Shapes:   e.scene.Len(),
		Selected: e.scene.SelectionCount(),
		CanUndo:  e.history.CanUndo(),
		CanRedo:  e.history.CanRedo(),
		Dirty:    e.dirty,
		Busy:     e.pressed,
		Tool:     e.active,
		Cursor:   e.cursor,
		Style:    e.style,
	}
}

// Dump logs every shape at debug level.
func (e *Editor) Dump() {
	for i, sh := range e.scene.All() {
		e.log.Debug("shape",
			"index", i,
			"id", sh.ID(),
			"kind", sh.Kind().String(),
			"selected", sh.Selected(),
			"bounds", sh.Bounds(),
			"color", sh.Style().Color.Hex(),
			"penWidth", sh.Style().PenWidth,
		)
	}
}
