package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/vectorpad/vectorpad/internal/typeid"
)

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrTooManySessions  = errors.New("too many sessions")
	ErrInvalidSessionID = errors.New("invalid session id")
)

// Hub owns the live sessions and attaches websocket clients to them.
type Hub struct {
	mu          sync.RWMutex
	sessions    map[string]*Session // sessionID -> session
	maxSessions int

	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	stopOnce   sync.Once
}

// NewHub creates a hub. maxSessions <= 0 means unlimited.
func NewHub(maxSessions int) *Hub {
	return &Hub{
		sessions:    make(map[string]*Session),
		maxSessions: maxSessions,
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		done:        make(chan struct{}),
	}
}

// Run processes client (de)registrations until ctx is cancelled or Stop is
// called.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case <-ctx.Done():
			h.Stop()
			return
		case <-h.done:
			return
		}
	}
}

// Stop detaches every client from every session.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.done)

		h.mu.RLock()
		defer h.mu.RUnlock()
		for _, s := range h.sessions {
			s.closeClients()
		}
	})
}

func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		// Never attached, so nobody else closes it.
		close(client.send)
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Create starts a new session with a fresh engine.
func (h *Hub) Create() (*Session, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.maxSessions > 0 && len(h.sessions) >= h.maxSessions {
		return nil, ErrTooManySessions
	}

	s, err := newSession(typeid.NewSessionID())
	if err != nil {
		return nil, err
	}
	h.sessions[s.ID] = s

	slog.Info("session created", "session", s.ID)
	return s, nil
}

func (h *Hub) Get(id string) (*Session, error) {
	if err := typeid.Validate(id, typeid.PrefixSession); err != nil {
		return nil, errors.Join(ErrInvalidSessionID, err)
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	s, ok := h.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Close ends a session and disconnects its clients.
func (h *Hub) Close(id string) error {
	h.mu.Lock()
	s, ok := h.sessions[id]
	if ok {
		delete(h.sessions, id)
	}
	h.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}

	s.closeClients()
	slog.Info("session closed", "session", id)
	return nil
}

// Len returns the number of live sessions.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

func (h *Hub) addClient(client *Client) {
	s := client.session
	s.addClient(client)

	s.sendTo(client, &Message{
		Type:      TypeWelcome,
		SessionID: s.ID,
		ClientID:  client.ClientID,
		Payload:   mustMarshal(WelcomePayload{ClientID: client.ClientID}),
	})

	if msg, err := s.SyncMessage(); err != nil {
		slog.Error("build state sync", "error", err, "session", s.ID)
	} else {
		s.sendTo(client, msg)
	}

	slog.Info("client joined", "client", client.ClientID, "session", s.ID)
}

func (h *Hub) removeClient(client *Client) {
	if client.session.removeClient(client) {
		slog.Info("client left", "client", client.ClientID, "session", client.session.ID)
	}
}
