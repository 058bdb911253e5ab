// Package history keeps a linear undo/redo stack of full-state snapshots.
//
// Every stored entry is a structural deep copy, and every state handed back
// by Undo, Redo or Current is another deep copy, so neither the caller's live
// state nor later edits can reach into history storage.
package history

import (
	"fmt"
	"log/slog"

	"github.com/jinzhu/copier"

	"github.com/vectorpad/vectorpad/internal/typeid"
)

// Entry is one immutable snapshot.
type Entry[T any] struct {
	ID    string `json:"id"`
	State T      `json:"state"`
}

// History is a single stack of snapshots plus a cursor. Entry 0 is the
// baseline and can never be undone past.
type History[T any] struct {
	entries []Entry[T]
	cursor  int
}

// Clone returns a deep copy of v.
func Clone[T any](v T) (T, error) {
	var out T
	if err := copier.CopyWithOption(&out, &v, copier.Option{DeepCopy: true}); err != nil {
		return out, fmt.Errorf("deep copy: %w", err)
	}
	return out, nil
}

// New creates a history whose baseline entry is a copy of baseline.
func New[T any](baseline T) (*History[T], error) {
	h := &History[T]{cursor: -1}
	if _, err := h.Record(baseline); err != nil {
		return nil, err
	}
	return h, nil
}

// Record discards every entry after the cursor, appends a deep copy of
// state and moves the cursor onto it.
func (h *History[T]) Record(state T) (Entry[T], error) {
	snap, err := Clone(state)
	if err != nil {
		return Entry[T]{}, err
	}

	h.entries = h.entries[:h.cursor+1]
	entry := Entry[T]{ID: typeid.NewSnapshotID(), State: snap}
	h.entries = append(h.entries, entry)
	h.cursor = len(h.entries) - 1

	return entry, nil
}

// Undo steps the cursor back and returns a copy of the state found there.
// It reports false at the baseline.
func (h *History[T]) Undo() (T, bool) {
	if h.cursor <= 0 {
		var zero T
		return zero, false
	}
	return h.restore(h.cursor - 1)
}

// Redo steps the cursor forward and returns a copy of the state found
// there. It reports false at the newest entry.
func (h *History[T]) Redo() (T, bool) {
	if h.cursor+1 >= len(h.entries) {
		var zero T
		return zero, false
	}
	return h.restore(h.cursor + 1)
}

func (h *History[T]) restore(idx int) (T, bool) {
	state, err := Clone(h.entries[idx].State)
	if err != nil {
		slog.Error("restore snapshot", "error", err, "snapshot", h.entries[idx].ID)
		var zero T
		return zero, false
	}
	h.cursor = idx
	return state, true
}

// Current returns a copy of the entry under the cursor.
func (h *History[T]) Current() (Entry[T], error) {
	e := h.entries[h.cursor]
	state, err := Clone(e.State)
	if err != nil {
		return Entry[T]{}, err
	}
	return Entry[T]{ID: e.ID, State: state}, nil
}

// Len returns the number of stored entries, baseline included.
func (h *History[T]) Len() int { return len(h.entries) }

// Cursor returns the index of the entry matching the live state.
func (h *History[T]) Cursor() int { return h.cursor }

func (h *History[T]) CanUndo() bool { return h.cursor > 0 }
func (h *History[T]) CanRedo() bool { return h.cursor+1 < len(h.entries) }
