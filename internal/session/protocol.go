package session

import (
	"encoding/json"

	"github.com/vectorpad/vectorpad/internal/engine"
)

// Event is a single editor input sent by a client, over HTTP or the
// websocket.
type Event struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Message is what the server pushes to websocket clients.
type Message struct {
	Type      string          `json:"type"`
	SessionID string          `json:"sessionId,omitempty"`
	ClientID  string          `json:"clientId,omitempty"`
	Seq       int64           `json:"seq,omitempty"`
	Payload   json.RawMessage `json:"payload"`
}

const (
	// Client -> server
	TypePointerClick     = "pointer.click"
	TypeKeyCombo         = "key.combo"
	TypeDrawBegin        = "draw.begin"
	TypeReferenceBegin   = "reference.begin"
	TypeTransformRequest = "transform.request"
	TypeTransformCancel  = "transform.cancel"
	TypeTransformApply   = "transform.apply"
	TypeClear            = "clear"
	TypeUndo             = "undo"
	TypeRedo             = "redo"
	TypeSampleLoad       = "sample.load"

	// Server -> client
	TypeWelcome   = "welcome"
	TypeStateSync = "state.sync"
	TypeError     = "error"
)

type PointerClickPayload struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Shift bool    `json:"shift,omitempty"`
	Ctrl  bool    `json:"ctrl,omitempty"`
}

type KeyComboPayload struct {
	Ctrl  bool   `json:"ctrl,omitempty"`
	Shift bool   `json:"shift,omitempty"`
	Key   string `json:"key"`
}

// DrawBeginPayload names the shape to draw. Points is the vertex count and
// may be omitted for lines and circles.
type DrawBeginPayload struct {
	Shape  string `json:"shape"`
	Points int    `json:"points,omitempty"`
}

type TransformRequestPayload struct {
	Kind engine.TransformKind `json:"kind"`
}

type TransformApplyPayload struct {
	Kind engine.TransformKind `json:"kind"`
	engine.TransformParams
}

type WelcomePayload struct {
	ClientID string `json:"clientId"`
}

type StateSyncPayload struct {
	View     engine.View          `json:"view"`
	Commands []engine.DrawCommand `json:"commands"`
}

type ErrorPayload struct {
	Event string `json:"event,omitempty"`
	Error string `json:"error"`
}
