package engine

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"

	"github.com/vectorpad/vectorpad/internal/geom"
	"github.com/vectorpad/vectorpad/internal/history"
	"github.com/vectorpad/vectorpad/internal/shape"
)

// Engine is the shape editor. It owns the editor state and its history,
// processes commands from the input/UI layers and answers render queries.
//
// An Engine is not safe for concurrent use; hosts must serialize events.
type Engine struct {
	state State

	// Pending transform requested by the UI, cleared once applied.
	pending TransformKind

	history *history.History[State]
}

// NewEngine creates an engine in the initial state with that state recorded
// as the history baseline.
func NewEngine() (*Engine, error) {
	e := &Engine{state: initialState()}

	h, err := history.New(e.state)
	if err != nil {
		return nil, fmt.Errorf("init history: %w", err)
	}
	e.history = h

	return e, nil
}

// commit records the state as it stands after an undoable mutation. The
// entry under the history cursor is therefore always the snapshot the next
// mutation starts from.
func (e *Engine) commit() {
	if _, err := e.history.Record(e.state); err != nil {
		slog.Error("record history", "error", err)
	}
}

// --- Commands (UI/input → engine) ---

// BeginDraw starts collecting arity points for a new shape of type t. The
// draft and the selection are cleared.
func (e *Engine) BeginDraw(t shape.Type, arity int) error {
	if err := shape.ValidArity(t, arity); err != nil {
		return err
	}

	e.state.Mode = Mode{Kind: ModeDrawing, ShapeType: t, PointsRemaining: arity}
	e.state.Draft = []geom.Point{}
	e.state.Selection = []string{}
	e.pending = ""

	return nil
}

func (e *Engine) BeginLine() error          { return e.BeginDraw(shape.TypeLine, 2) }
func (e *Engine) BeginTriangle() error      { return e.BeginDraw(shape.TypePolygon, 3) }
func (e *Engine) BeginQuadrilateral() error { return e.BeginDraw(shape.TypePolygon, 4) }
func (e *Engine) BeginPentagon() error      { return e.BeginDraw(shape.TypePolygon, 5) }
func (e *Engine) BeginHexagon() error       { return e.BeginDraw(shape.TypePolygon, 6) }
func (e *Engine) BeginHeptagon() error      { return e.BeginDraw(shape.TypePolygon, 7) }
func (e *Engine) BeginCircle() error        { return e.BeginDraw(shape.TypeCircle, 2) }

// SubmitPoint adds a point to the draft. The last expected point commits
// the draft as a new shape and returns the editor to selection mode.
// Ignored unless drawing.
func (e *Engine) SubmitPoint(p geom.Point) {
	if e.state.Mode.Kind != ModeDrawing {
		return
	}

	e.state.Draft = append(e.state.Draft, p)
	e.state.Mode.PointsRemaining--
	if e.state.Mode.PointsRemaining > 0 {
		return
	}

	s, err := shape.Create(e.state.Mode.ShapeType, e.state.Draft, e.state.Shapes)
	if err != nil {
		// BeginDraw validated the arity, so this only happens on corrupted state.
		slog.Error("commit draft", "error", err, "type", e.state.Mode.ShapeType)
		e.state.Draft = []geom.Point{}
		e.state.Mode = Mode{Kind: ModeSelecting}
		return
	}

	e.state.Shapes = append(e.state.Shapes, s)
	e.state.Draft = []geom.Point{}
	e.state.Mode = Mode{Kind: ModeSelecting}
	e.state.Selection = []string{}
	e.commit()
}

// BeginChangeReference makes the next click set the reference point.
func (e *Engine) BeginChangeReference() {
	e.state.Mode = Mode{Kind: ModeChangingReference}
	e.state.Draft = []geom.Point{}
}

// SubmitReferencePoint sets the pivot for rotation and scale and returns to
// selection mode, keeping the prior selection. Ignored unless changing the
// reference.
func (e *Engine) SubmitReferencePoint(p geom.Point) {
	if e.state.Mode.Kind != ModeChangingReference {
		return
	}

	e.state.Reference = p
	e.state.Mode = Mode{Kind: ModeSelecting}
	e.commit()
}

// Select replaces the selection with the first shape under p, or clears it
// when p hits nothing. Ignored unless selecting.
func (e *Engine) Select(p geom.Point) {
	if e.state.Mode.Kind != ModeSelecting {
		return
	}

	idx := shape.FirstHit(e.state.Shapes, p)
	if idx < 0 {
		e.state.Selection = []string{}
		return
	}
	e.state.Selection = []string{e.state.Shapes[idx].ID}
}

// AddToSelection adds the first shape under p to the selection.
func (e *Engine) AddToSelection(p geom.Point) {
	if e.state.Mode.Kind != ModeSelecting {
		return
	}

	idx := shape.FirstHit(e.state.Shapes, p)
	if idx < 0 {
		return
	}
	id := e.state.Shapes[idx].ID
	if !e.state.isSelected(id) {
		e.state.Selection = append(e.state.Selection, id)
	}
}

// RemoveFromSelection drops the first shape under p from the selection.
func (e *Engine) RemoveFromSelection(p geom.Point) {
	if e.state.Mode.Kind != ModeSelecting {
		return
	}

	idx := shape.FirstHit(e.state.Shapes, p)
	if idx < 0 {
		return
	}
	id := e.state.Shapes[idx].ID
	e.state.Selection = slices.DeleteFunc(e.state.Selection, func(s string) bool { return s == id })
}

// ClearAll resets the editor to its initial state. History is kept, so the
// clear itself can be undone.
func (e *Engine) ClearAll() {
	e.state = initialState()
	e.pending = ""
	e.commit()
}

// Undo restores the previous snapshot. It reports false at the baseline.
func (e *Engine) Undo() bool {
	st, ok := e.history.Undo()
	if !ok {
		return false
	}
	e.restore(st)
	return true
}

// Redo restores the next snapshot. It reports false at the newest entry.
func (e *Engine) Redo() bool {
	st, ok := e.history.Redo()
	if !ok {
		return false
	}
	e.restore(st)
	return true
}

func (e *Engine) restore(st State) {
	st.normalize()
	e.state = st
	e.pending = ""
}

// --- Queries (engine → render layer) ---

// Mode returns the active mode.
func (e *Engine) Mode() Mode {
	return e.state.Mode
}

func (e *Engine) IsDrawing() bool           { return e.state.Mode.Kind == ModeDrawing }
func (e *Engine) IsSelecting() bool         { return e.state.Mode.Kind == ModeSelecting }
func (e *Engine) IsChangingReference() bool { return e.state.Mode.Kind == ModeChangingReference }

// Shapes returns a copy of the committed shapes in insertion order.
func (e *Engine) Shapes() []shape.Shape {
	return shape.CloneAll(e.state.Shapes)
}

// DraftPoints returns a copy of the points collected for the shape being
// drawn.
func (e *Engine) DraftPoints() []geom.Point {
	return geom.ClonePoints(e.state.Draft)
}

// Selection returns the selected shape ids in selection order.
func (e *Engine) Selection() []string {
	return slices.Clone(e.state.Selection)
}

// IsShapeSelected reports whether the shape with the given id is selected.
func (e *Engine) IsShapeSelected(id string) bool {
	return e.state.isSelected(id)
}

// SelectedShapes returns copies of the selected shapes in list order.
func (e *Engine) SelectedShapes() []shape.Shape {
	var out []shape.Shape
	for _, s := range e.state.Shapes {
		if e.state.isSelected(s.ID) {
			out = append(out, s.Clone())
		}
	}
	return out
}

// ReferencePoint returns the current pivot.
func (e *Engine) ReferencePoint() geom.Point {
	return e.state.Reference
}

// HitTest returns the id of the first shape under (x, y), or "".
func (e *Engine) HitTest(x, y float64) string {
	idx := shape.FirstHit(e.state.Shapes, geom.Pt(x, y))
	if idx < 0 {
		return ""
	}
	return e.state.Shapes[idx].ID
}

// SelectionBounds returns the combined bounding box of the selected shapes.
func (e *Engine) SelectionBounds() geom.Rect {
	var result geom.Rect
	first := true

	for _, s := range e.state.Shapes {
		if !e.state.isSelected(s.ID) {
			continue
		}
		if first {
			result = s.Bounds()
			first = false
		} else {
			result = result.Union(s.Bounds())
		}
	}

	return result
}

// SnapshotID returns the id of the history entry under the cursor: the last
// committed or restored state. Selection and draft changes since then do not
// alter it.
func (e *Engine) SnapshotID() string {
	cur, err := e.history.Current()
	if err != nil {
		slog.Error("read current snapshot", "error", err)
		return ""
	}
	return cur.ID
}

func (e *Engine) CanUndo() bool { return e.history.CanUndo() }
func (e *Engine) CanRedo() bool { return e.history.CanRedo() }

// GetSelection returns the current selection as JSON.
func (e *Engine) GetSelection() string {
	data, _ := json.Marshal(e.state.Selection)
	return string(data)
}
