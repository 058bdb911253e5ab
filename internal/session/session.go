package session

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/vectorpad/vectorpad/internal/engine"
	"github.com/vectorpad/vectorpad/internal/render"
)

// Session is one editor canvas. Every event goes through mu, so the engine
// only ever sees one event at a time.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu     sync.Mutex
	engine *engine.Engine
	seq    int64

	clientsMu sync.RWMutex
	clients   map[string]*Client // clientID -> client
}

func newSession(id string) (*Session, error) {
	e, err := engine.NewEngine()
	if err != nil {
		return nil, fmt.Errorf("new engine: %w", err)
	}
	return &Session{
		ID:        id,
		CreatedAt: time.Now(),
		engine:    e,
		clients:   make(map[string]*Client),
	}, nil
}

// Dispatch applies ev and pushes the new state to every connected client.
// Rejected events change nothing and are not pushed, except an unknown
// transform kind, which still clears the pending transform. The returned
// view reflects the engine after the event, whether or not it failed.
func (s *Session) Dispatch(ev Event) (engine.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := Apply(s.engine, ev)
	if err != nil && !errors.Is(err, engine.ErrUnknownTransform) {
		return s.engine.View(), err
	}

	s.seq++
	msg, syncErr := s.syncMessageLocked()
	if syncErr != nil {
		slog.Error("build state sync", "error", syncErr, "session", s.ID)
	} else {
		s.broadcast(msg)
	}

	return s.engine.View(), err
}

// View returns the current frame.
func (s *Session) View() engine.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.View()
}

// Seq counts the state changes pushed so far.
func (s *Session) Seq() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq
}

// DrawCommands returns the current draw command buffer.
func (s *Session) DrawCommands() []engine.DrawCommand {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.DrawCommands()
}

// Preview rasterizes the current canvas as PNG.
func (s *Session) Preview(opts render.Options) ([]byte, error) {
	cmds := s.DrawCommands()

	var buf bytes.Buffer
	if err := render.PNG(&buf, cmds, opts); err != nil {
		return nil, fmt.Errorf("render session %s: %w", s.ID, err)
	}
	return buf.Bytes(), nil
}

// SyncMessage builds a state.sync message for the current state.
func (s *Session) SyncMessage() (*Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.syncMessageLocked()
}

func (s *Session) syncMessageLocked() (*Message, error) {
	payload, err := json.Marshal(StateSyncPayload{
		View:     s.engine.View(),
		Commands: s.engine.DrawCommands(),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal state: %w", err)
	}
	return &Message{
		Type:      TypeStateSync,
		SessionID: s.ID,
		Seq:       s.seq,
		Payload:   payload,
	}, nil
}

func (s *Session) addClient(c *Client) {
	s.clientsMu.Lock()
	s.clients[c.ClientID] = c
	s.clientsMu.Unlock()
}

// removeClient detaches c and closes its send channel. It reports false if c
// was already gone.
func (s *Session) removeClient(c *Client) bool {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()

	if _, ok := s.clients[c.ClientID]; !ok {
		return false
	}
	delete(s.clients, c.ClientID)
	close(c.send)
	return true
}

// ClientCount returns the number of attached websocket clients.
func (s *Session) ClientCount() int {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	return len(s.clients)
}

// sendTo delivers msg to c if it is still attached.
func (s *Session) sendTo(c *Client, msg *Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("marshal message", "error", err)
		return
	}

	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	if _, ok := s.clients[c.ClientID]; ok {
		c.enqueue(data)
	}
}

func (s *Session) broadcast(msg *Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("marshal message", "error", err)
		return
	}

	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	for _, c := range s.clients {
		c.enqueue(data)
	}
}

// closeClients detaches every client; their write pumps then close the
// connections.
func (s *Session) closeClients() {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	for id, c := range s.clients {
		delete(s.clients, id)
		close(c.send)
	}
}
