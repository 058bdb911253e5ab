package engine

import (
	"strings"

	"github.com/vectorpad/vectorpad/internal/geom"
)

// Modifiers are the keyboard modifiers held during a pointer click.
// Shift adds the clicked shape to the selection, Ctrl removes it.
type Modifiers struct {
	Shift bool `json:"shift,omitempty"`
	Ctrl  bool `json:"ctrl,omitempty"`
}

// PointerClicked routes a canvas click according to the active mode.
func (e *Engine) PointerClicked(x, y float64, mods Modifiers) {
	p := geom.Pt(x, y)

	switch e.state.Mode.Kind {
	case ModeDrawing:
		e.SubmitPoint(p)
	case ModeChangingReference:
		e.SubmitReferencePoint(p)
	case ModeSelecting:
		switch {
		case mods.Shift:
			e.AddToSelection(p)
		case mods.Ctrl:
			e.RemoveFromSelection(p)
		default:
			e.Select(p)
		}
	}
}

// KeyCombo handles keyboard shortcuts: Ctrl+Z undoes, Ctrl+Shift+Z redoes.
// It reports whether the combination was recognised.
func (e *Engine) KeyCombo(ctrl, shift bool, key string) bool {
	if !ctrl || !strings.EqualFold(key, "z") {
		return false
	}

	if shift {
		e.Redo()
	} else {
		e.Undo()
	}
	return true
}
