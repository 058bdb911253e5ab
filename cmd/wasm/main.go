//go:build js && wasm

package main

import (
	"encoding/json"
	"log/slog"
	"syscall/js"

	"github.com/vectorpad/vectorpad/internal/engine"
)

var eng *engine.Engine

func main() {
	var err error
	eng, err = engine.NewEngine()
	if err != nil {
		slog.Error("init engine", "error", err)
		return
	}

	// Create the engine API object
	vectorpad := js.Global().Get("Object").New()

	// --- Input (frontend → engine) ---
	vectorpad.Set("pointerClicked", js.FuncOf(pointerClicked))
	vectorpad.Set("keyCombo", js.FuncOf(keyCombo))

	// --- Commands (UI → engine) ---
	vectorpad.Set("beginLine", command(eng.BeginLine))
	vectorpad.Set("beginTriangle", command(eng.BeginTriangle))
	vectorpad.Set("beginQuadrilateral", command(eng.BeginQuadrilateral))
	vectorpad.Set("beginPentagon", command(eng.BeginPentagon))
	vectorpad.Set("beginHexagon", command(eng.BeginHexagon))
	vectorpad.Set("beginHeptagon", command(eng.BeginHeptagon))
	vectorpad.Set("beginCircle", command(eng.BeginCircle))
	vectorpad.Set("beginChangeReference", js.FuncOf(beginChangeReference))
	vectorpad.Set("requestTransform", js.FuncOf(requestTransform))
	vectorpad.Set("cancelTransform", js.FuncOf(cancelTransform))
	vectorpad.Set("applyTransformation", js.FuncOf(applyTransformation))
	vectorpad.Set("clearAll", js.FuncOf(clearAll))
	vectorpad.Set("undo", js.FuncOf(undo))
	vectorpad.Set("redo", js.FuncOf(redo))
	vectorpad.Set("loadSample", js.FuncOf(loadSample))

	// --- Queries (frontend ← engine) ---
	vectorpad.Set("render", js.FuncOf(render))
	vectorpad.Set("view", js.FuncOf(view))
	vectorpad.Set("hitTest", js.FuncOf(hitTest))
	vectorpad.Set("getShapes", js.FuncOf(getShapes))
	vectorpad.Set("getDraftPoints", js.FuncOf(getDraftPoints))
	vectorpad.Set("currentMode", js.FuncOf(currentMode))
	vectorpad.Set("getSelection", js.FuncOf(getSelection))
	vectorpad.Set("isShapeSelected", js.FuncOf(isShapeSelected))
	vectorpad.Set("getReferencePoint", js.FuncOf(getReferencePoint))
	vectorpad.Set("isTransforming", js.FuncOf(isTransforming))

	// Register on global scope
	js.Global().Set("vectorpadEngine", vectorpad)

	// Signal that WASM is ready
	js.Global().Set("vectorpadWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

func ok() interface{} {
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func fail(err error) interface{} {
	return js.ValueOf(map[string]interface{}{"error": err.Error()})
}

func toJSON(v interface{}) interface{} {
	data, err := json.Marshal(v)
	if err != nil {
		return fail(err)
	}
	return js.ValueOf(string(data))
}

// --- Input Handlers ---

// pointerClicked(x, y, shift?, ctrl?)
func pointerClicked(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	mods := engine.Modifiers{
		Shift: len(args) > 2 && args[2].Truthy(),
		Ctrl:  len(args) > 3 && args[3].Truthy(),
	}
	eng.PointerClicked(args[0].Float(), args[1].Float(), mods)
	return nil
}

// keyCombo(ctrl, shift, key) reports whether the shortcut was handled.
func keyCombo(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return js.ValueOf(false)
	}
	return js.ValueOf(eng.KeyCombo(args[0].Truthy(), args[1].Truthy(), args[2].String()))
}

// --- Command Handlers ---

func command(f func() error) js.Func {
	return js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		if err := f(); err != nil {
			return fail(err)
		}
		return ok()
	})
}

func beginChangeReference(this js.Value, args []js.Value) interface{} {
	eng.BeginChangeReference()
	return nil
}

func requestTransform(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	eng.RequestTransform(engine.TransformKind(args[0].String()))
	return nil
}

func cancelTransform(this js.Value, args []js.Value) interface{} {
	eng.CancelTransform()
	return nil
}

// applyTransformation(kind, paramsJSON)
func applyTransformation(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf(map[string]interface{}{"error": "missing kind or params"})
	}

	var params engine.TransformParams
	if err := json.Unmarshal([]byte(args[1].String()), &params); err != nil {
		return fail(err)
	}

	if err := eng.ApplyTransformation(engine.TransformKind(args[0].String()), params); err != nil {
		return fail(err)
	}
	return ok()
}

func clearAll(this js.Value, args []js.Value) interface{} {
	eng.ClearAll()
	return nil
}

func undo(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.Undo())
}

func redo(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.Redo())
}

func loadSample(this js.Value, args []js.Value) interface{} {
	eng.LoadSample()
	return ok()
}

// --- Query Handlers ---

func render(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.Render())
}

func view(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.ViewJSON())
}

func hitTest(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf("")
	}
	x := args[0].Float()
	y := args[1].Float()
	return js.ValueOf(eng.HitTest(x, y))
}

func getShapes(this js.Value, args []js.Value) interface{} {
	return toJSON(eng.Shapes())
}

func getDraftPoints(this js.Value, args []js.Value) interface{} {
	return toJSON(eng.DraftPoints())
}

func currentMode(this js.Value, args []js.Value) interface{} {
	return toJSON(eng.Mode())
}

func getSelection(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.GetSelection())
}

func isShapeSelected(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(false)
	}
	return js.ValueOf(eng.IsShapeSelected(args[0].String()))
}

func getReferencePoint(this js.Value, args []js.Value) interface{} {
	p := eng.ReferencePoint()
	return js.ValueOf(map[string]interface{}{"x": p.X, "y": p.Y})
}

func isTransforming(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.IsTransforming())
}
