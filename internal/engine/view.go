package engine

import (
	"encoding/json"

	"github.com/vectorpad/vectorpad/internal/geom"
	"github.com/vectorpad/vectorpad/internal/shape"
)

// View is a read-only copy of everything the render layer draws in a frame.
type View struct {
	Mode             Mode          `json:"mode"`
	Shapes           []shape.Shape `json:"shapes"`
	Draft            []geom.Point  `json:"draft"`
	Selection        []string      `json:"selection"`
	SelectionBounds  geom.Rect     `json:"selectionBounds"`
	Reference        geom.Point    `json:"reference"`
	PendingTransform TransformKind `json:"pendingTransform,omitempty"`
	CanUndo          bool          `json:"canUndo"`
	CanRedo          bool          `json:"canRedo"`
	Snapshot         string        `json:"snapshot"`
}

// View returns a consistent snapshot for one frame.
func (e *Engine) View() View {
	return View{
		Mode:             e.Mode(),
		Shapes:           e.Shapes(),
		Draft:            e.DraftPoints(),
		Selection:        e.Selection(),
		SelectionBounds:  e.SelectionBounds(),
		Reference:        e.ReferencePoint(),
		PendingTransform: e.pending,
		CanUndo:          e.CanUndo(),
		CanRedo:          e.CanRedo(),
		Snapshot:         e.SnapshotID(),
	}
}

// IsSelected reports whether the shape with the given id is in the view's
// selection.
func (v View) IsSelected(id string) bool {
	for _, s := range v.Selection {
		if s == id {
			return true
		}
	}
	return false
}

// ViewJSON returns the current view as JSON.
func (e *Engine) ViewJSON() string {
	data, err := json.Marshal(e.View())
	if err != nil {
		return "{}"
	}
	return string(data)
}
