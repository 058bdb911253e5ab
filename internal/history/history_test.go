package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	Vals []int
}

type doc struct {
	Name   string
	Tags   []string
	Items  []item
	Counts map[string]int
}

func sample(name string) doc {
	return doc{
		Name:   name,
		Tags:   []string{name + "-tag"},
		Items:  []item{{Vals: []int{1, 2, 3}}},
		Counts: map[string]int{name: 1},
	}
}

func newHistory(t *testing.T, baseline doc) *History[doc] {
	t.Helper()
	h, err := New(baseline)
	require.NoError(t, err)
	return h
}

func record(t *testing.T, h *History[doc], d doc) Entry[doc] {
	t.Helper()
	e, err := h.Record(d)
	require.NoError(t, err)
	return e
}

func TestBaselineCannotBeUndone(t *testing.T) {
	h := newHistory(t, sample("base"))

	assert.Equal(t, 1, h.Len())
	assert.Equal(t, 0, h.Cursor())
	assert.False(t, h.CanUndo())
	assert.False(t, h.CanRedo())

	_, ok := h.Undo()
	assert.False(t, ok)
	assert.Equal(t, 0, h.Cursor())

	_, ok = h.Redo()
	assert.False(t, ok)
	assert.Equal(t, 0, h.Cursor())
}

func TestRecordReturnsStoredEntry(t *testing.T) {
	h := newHistory(t, sample("base"))

	e := record(t, h, sample("a"))
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, "a", e.State.Name)

	cur, err := h.Current()
	require.NoError(t, err)
	assert.Equal(t, e.ID, cur.ID)
	assert.Equal(t, sample("a"), cur.State)
}

func TestNRecordsThenNUndosReachBaseline(t *testing.T) {
	base := sample("base")
	h := newHistory(t, base)

	names := []string{"a", "b", "c", "d"}
	for _, n := range names {
		record(t, h, sample(n))
	}

	var got doc
	for range names {
		var ok bool
		got, ok = h.Undo()
		require.True(t, ok)
	}
	assert.Equal(t, base, got)
	assert.False(t, h.CanUndo())
}

func TestUndoKRedoK(t *testing.T) {
	h := newHistory(t, sample("base"))
	for _, n := range []string{"a", "b", "c", "d", "e"} {
		record(t, h, sample(n))
	}

	const k = 3
	for i := 0; i < k; i++ {
		_, ok := h.Undo()
		require.True(t, ok)
	}

	var got doc
	for i := 0; i < k; i++ {
		var ok bool
		got, ok = h.Redo()
		require.True(t, ok)
	}
	assert.Equal(t, sample("e"), got)
	assert.False(t, h.CanRedo())
}

func TestRecordAfterUndoDiscardsRedoBranch(t *testing.T) {
	h := newHistory(t, sample("base"))
	record(t, h, sample("a"))
	record(t, h, sample("b"))

	got, ok := h.Undo()
	require.True(t, ok)
	assert.Equal(t, "a", got.Name)

	record(t, h, sample("c"))
	assert.Equal(t, 3, h.Len())
	assert.False(t, h.CanRedo(), "b must be gone")

	got, ok = h.Undo()
	require.True(t, ok)
	assert.Equal(t, "a", got.Name)

	got, ok = h.Redo()
	require.True(t, ok)
	assert.Equal(t, "c", got.Name)
}

func TestSnapshotsDoNotAliasLiveState(t *testing.T) {
	live := sample("a")
	h := newHistory(t, sample("base"))
	record(t, h, live)

	live.Tags[0] = "mutated"
	live.Items[0].Vals[0] = 99
	live.Counts["a"] = 42

	cur, err := h.Current()
	require.NoError(t, err)
	assert.Equal(t, sample("a"), cur.State)
}

func TestRestoredStateDoesNotAliasHistory(t *testing.T) {
	h := newHistory(t, sample("base"))
	record(t, h, sample("a"))
	record(t, h, sample("b"))

	restored, ok := h.Undo()
	require.True(t, ok)
	restored.Items[0].Vals[0] = -1
	restored.Tags[0] = "mutated"
	restored.Counts["a"] = 7

	again, ok := h.Redo()
	require.True(t, ok)
	assert.Equal(t, sample("b"), again)

	back, ok := h.Undo()
	require.True(t, ok)
	assert.Equal(t, sample("a"), back)
}

func TestClone(t *testing.T) {
	orig := sample("x")
	cp, err := Clone(orig)
	require.NoError(t, err)
	assert.Equal(t, orig, cp)

	cp.Items[0].Vals[1] = 100
	assert.Equal(t, 2, orig.Items[0].Vals[1])
}
