//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"

	"github.com/inamate/drawtools/internal/document"
	"github.com/inamate/drawtools/internal/engine"
	"github.com/inamate/drawtools/internal/geom"
	"github.com/inamate/drawtools/internal/render"
)

var editor *engine.Editor

func main() {
	editor = engine.NewEditor(engine.DefaultOptions())

	api := js.Global().Get("Object").New()

	// --- Input (frontend → editor) ---
	api.Set("pointerDown", js.FuncOf(pointerDown))
	api.Set("pointerMove", js.FuncOf(pointerMove))
	api.Set("pointerUp", js.FuncOf(pointerUp))
	api.Set("setTool", js.FuncOf(setTool))

	// --- Edit menu ---
	api.Set("undo", js.FuncOf(func(this js.Value, args []js.Value) any { return editor.Undo() }))
	api.Set("redo", js.FuncOf(func(this js.Value, args []js.Value) any { return editor.Redo() }))
	api.Set("deleteSelection", js.FuncOf(func(this js.Value, args []js.Value) any { return editor.DeleteSelection() }))
	api.Set("deleteAll", js.FuncOf(func(this js.Value, args []js.Value) any { return editor.DeleteAll() }))
	api.Set("selectAll", js.FuncOf(func(this js.Value, args []js.Value) any { editor.SelectAll(); return nil }))
	api.Set("unselectAll", js.FuncOf(func(this js.Value, args []js.Value) any { editor.UnselectAll(); return nil }))
	api.Set("moveToFront", js.FuncOf(func(this js.Value, args []js.Value) any { return editor.MoveSelectionToFront() }))
	api.Set("moveToBack", js.FuncOf(func(this js.Value, args []js.Value) any { return editor.MoveSelectionToBack() }))
	api.Set("applyProperties", js.FuncOf(applyProperties))

	// --- Document ---
	api.Set("newDrawing", js.FuncOf(func(this js.Value, args []js.Value) any { editor.New(); return nil }))
	api.Set("loadDrawing", js.FuncOf(loadDrawing))
	api.Set("saveDrawing", js.FuncOf(saveDrawing))
	api.Set("loadSampleDrawing", js.FuncOf(loadSampleDrawing))

	// --- Queries (frontend ← editor) ---
	api.Set("render", js.FuncOf(renderCommands))
	api.Set("getState", js.FuncOf(getState))
	api.Set("getSelectionProperties", js.FuncOf(getSelectionProperties))

	js.Global().Set("drawToolsEditor", api)
	js.Global().Set("drawToolsWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

func errorResult(err error) any {
	return js.ValueOf(map[string]any{"error": err.Error()})
}

var buttons = map[string]engine.Button{
	"left":   engine.ButtonLeft,
	"right":  engine.ButtonRight,
	"middle": engine.ButtonMiddle,
}

// pointerEvent reads (x, y, button, modifiers) where modifiers is an
// object with shift/ctrl/alt/meta booleans.
func pointerEvent(args []js.Value) (engine.PointerEvent, bool) {
	if len(args) < 2 {
		return engine.PointerEvent{}, false
	}
	ev := engine.PointerEvent{Pos: geom.Pt(args[0].Int(), args[1].Int())}
	if len(args) > 2 && args[2].Type() == js.TypeString {
		ev.Button = buttons[args[2].String()]
	}
	if len(args) > 3 && args[3].Type() == js.TypeObject {
		m := args[3]
		if m.Get("shift").Truthy() {
			ev.Mods |= engine.ModShift
		}
		if m.Get("ctrl").Truthy() {
			ev.Mods |= engine.ModCtrl
		}
		if m.Get("alt").Truthy() {
			ev.Mods |= engine.ModAlt
		}
		if m.Get("meta").Truthy() {
			ev.Mods |= engine.ModMeta
		}
	}
	return ev, true
}

func pointerDown(this js.Value, args []js.Value) any {
	if ev, ok := pointerEvent(args); ok {
		editor.PointerDown(ev)
	}
	return editor.Cursor().String()
}

func pointerMove(this js.Value, args []js.Value) any {
	if ev, ok := pointerEvent(args); ok {
		editor.PointerMove(ev)
	}
	return editor.Cursor().String()
}

func pointerUp(this js.Value, args []js.Value) any {
	if ev, ok := pointerEvent(args); ok {
		editor.PointerUp(ev)
	}
	return editor.Cursor().String()
}

func setTool(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return nil
	}
	k, err := engine.ParseToolKind(args[0].String())
	if err != nil {
		return errorResult(err)
	}
	editor.SetTool(k)
	return js.ValueOf(map[string]any{"ok": true})
}

// applyProperties takes a JSON object with optional color and penWidth.
func applyProperties(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return nil
	}
	var props engine.Properties
	var req struct {
		Color    *engine.Color `json:"color"`
		PenWidth *int          `json:"penWidth"`
	}
	if err := json.Unmarshal([]byte(args[0].String()), &req); err != nil {
		return errorResult(err)
	}
	props.Color = req.Color
	props.PenWidth = req.PenWidth
	changed, err := editor.UpdateProperties(props)
	if err != nil {
		return errorResult(err)
	}
	return changed
}

// loadDrawing takes the document text and its format ("json" or "yaml").
func loadDrawing(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf(map[string]any{"error": "missing document"})
	}
	format := document.FormatJSON
	if len(args) > 1 {
		format = document.Format(args[1].String())
	}
	rec, err := document.Decode([]byte(args[0].String()), format)
	if err != nil {
		return errorResult(err)
	}
	if err := editor.Load(rec); err != nil {
		return errorResult(err)
	}
	return js.ValueOf(map[string]any{"ok": true})
}

func saveDrawing(this js.Value, args []js.Value) any {
	format := document.FormatJSON
	if len(args) > 0 {
		format = document.Format(args[0].String())
	}
	rec := document.NewRecord()
	if err := editor.Save(rec); err != nil {
		return errorResult(err)
	}
	data, err := document.Encode(rec, format)
	if err != nil {
		return errorResult(err)
	}
	return string(data)
}

func loadSampleDrawing(this js.Value, args []js.Value) any {
	rec, err := document.FromScene(document.NewSampleScene())
	if err != nil {
		return errorResult(err)
	}
	if err := editor.Load(rec); err != nil {
		return errorResult(err)
	}
	return js.ValueOf(map[string]any{"ok": true})
}

// renderCommands returns the canvas as a JSON array of draw commands.
func renderCommands(this js.Value, args []js.Value) any {
	out, err := render.DrawCommandsToJSON(render.CompileDrawCommands(editor))
	if err != nil {
		return errorResult(err)
	}
	return out
}

func getState(this js.Value, args []js.Value) any {
	data, err := json.Marshal(editor.State())
	if err != nil {
		return errorResult(err)
	}
	return string(data)
}

func getSelectionProperties(this js.Value, args []js.Value) any {
	props := editor.SelectionProperties()
	out := map[string]any{}
	if props.Color != nil {
		out["color"] = props.Color.Hex()
	}
	if props.PenWidth != nil {
		out["penWidth"] = *props.PenWidth
	}
	return js.ValueOf(out)
}
