package session

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vectorpad/vectorpad/internal/engine"
	"github.com/vectorpad/vectorpad/internal/render"
	"github.com/vectorpad/vectorpad/internal/typeid"
)

func TestHubCreateGetClose(t *testing.T) {
	h := NewHub(0)

	s, err := h.Create()
	require.NoError(t, err)
	require.NoError(t, typeid.Validate(s.ID, typeid.PrefixSession))

	got, err := h.Get(s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)
	assert.Equal(t, 1, h.Len())

	require.NoError(t, h.Close(s.ID))
	_, err = h.Get(s.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, h.Close(s.ID), ErrSessionNotFound)
}

func TestHubGetRejectsMalformedIDs(t *testing.T) {
	h := NewHub(0)
	_, err := h.Get("proj_playground")
	assert.ErrorIs(t, err, ErrInvalidSessionID)
}

func TestHubLimit(t *testing.T) {
	h := NewHub(2)

	for i := 0; i < 2; i++ {
		_, err := h.Create()
		require.NoError(t, err)
	}
	_, err := h.Create()
	assert.ErrorIs(t, err, ErrTooManySessions)
}

func TestHubStopsWithContext(t *testing.T) {
	h := NewHub(0)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(done)
	}()
	cancel()
	<-done

	// Further unregistrations must not block.
	s, err := h.Create()
	require.NoError(t, err)
	h.Unregister(&Client{session: s, ClientID: "c1"})
}

func TestSessionDispatchCountsEvents(t *testing.T) {
	h := NewHub(0)
	s, err := h.Create()
	require.NoError(t, err)

	_, err = s.Dispatch(Event{Type: TypeReferenceBegin})
	require.NoError(t, err)
	view, err := s.Dispatch(clickEvent(t, 4, 2))
	require.NoError(t, err)
	assert.Equal(t, int64(2), s.Seq())
	assert.Equal(t, 4.0, view.Reference.X)

	_, err = s.Dispatch(Event{Type: "nope"})
	assert.ErrorIs(t, err, ErrUnknownEvent)
	assert.Equal(t, int64(2), s.Seq(), "failed events are not counted")
}

func TestSessionBroadcastsToAttachedClients(t *testing.T) {
	s, err := newSession("sess_test")
	require.NoError(t, err)

	c := &Client{session: s, ClientID: "c1", send: make(chan []byte, 4)}
	s.addClient(c)
	assert.Equal(t, 1, s.ClientCount())

	_, err = s.Dispatch(Event{Type: TypeUndo})
	require.NoError(t, err)
	require.Len(t, c.send, 1)

	assert.True(t, s.removeClient(c))
	assert.False(t, s.removeClient(c))

	_, err = s.Dispatch(Event{Type: TypeRedo})
	require.NoError(t, err)
}

func TestSessionPreview(t *testing.T) {
	s, err := newSession("sess_test")
	require.NoError(t, err)

	png, err := s.Preview(render.Options{Width: 40, Height: 30})
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), png[:4])
}

func TestUnknownTransformStillSyncsClearedMarker(t *testing.T) {
	s, err := newSession("sess_test")
	require.NoError(t, err)

	for _, ev := range []Event{
		event(t, TypeDrawBegin, DrawBeginPayload{Shape: "line"}),
		clickEvent(t, 0, 0), clickEvent(t, 10, 0),
		clickEvent(t, 5, 0),
		event(t, TypeTransformRequest, TransformRequestPayload{Kind: "shear"}),
	} {
		_, err := s.Dispatch(ev)
		require.NoError(t, err)
	}
	require.Equal(t, engine.TransformKind("shear"), s.View().PendingTransform)

	c := &Client{session: s, ClientID: "c1", send: make(chan []byte, 4)}
	s.addClient(c)
	seq := s.Seq()

	view, err := s.Dispatch(event(t, TypeTransformApply, TransformApplyPayload{Kind: "shear"}))
	assert.ErrorIs(t, err, engine.ErrUnknownTransform)
	assert.Empty(t, view.PendingTransform)
	assert.Equal(t, seq+1, s.Seq())

	require.Len(t, c.send, 1)
	var msg Message
	require.NoError(t, json.Unmarshal(<-c.send, &msg))
	assert.Equal(t, TypeStateSync, msg.Type)
	assert.Equal(t, seq+1, msg.Seq)

	var state StateSyncPayload
	require.NoError(t, json.Unmarshal(msg.Payload, &state))
	assert.Empty(t, state.View.PendingTransform)
}
