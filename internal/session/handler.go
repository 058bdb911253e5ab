package session

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/vectorpad/vectorpad/internal/auth"
	"github.com/vectorpad/vectorpad/internal/engine"
	"github.com/vectorpad/vectorpad/internal/render"
)

type Handler struct {
	hub            *Hub
	auth           *auth.Service
	raster         render.Options
	originPatterns []string
}

func NewHandler(hub *Hub, authService *auth.Service, raster render.Options, originPatterns []string) *Handler {
	return &Handler{
		hub:            hub,
		auth:           authService,
		raster:         raster,
		originPatterns: originPatterns,
	}
}

// Routes mounts the session API on r.
func (h *Handler) Routes(r *mux.Router) {
	r.HandleFunc("/sessions", h.Create).Methods("POST", "OPTIONS")

	protected := func(f http.HandlerFunc) http.Handler {
		return h.auth.SessionMiddleware(f)
	}

	r.Handle("/sessions/{id}", protected(h.Close)).Methods("DELETE", "OPTIONS")
	r.Handle("/sessions/{id}/view", protected(h.View)).Methods("GET")
	r.Handle("/sessions/{id}/events", protected(h.Events)).Methods("POST", "OPTIONS")
	r.Handle("/sessions/{id}/preview.png", protected(h.Preview)).Methods("GET")
	r.Handle("/sessions/{id}/token", protected(auth.NewHandler(h.auth).Refresh)).Methods("POST", "OPTIONS")
	r.Handle("/ws/sessions/{id}", protected(h.WebSocket))
}

type CreateResponse struct {
	ID    string      `json:"id"`
	Token string      `json:"token"`
	View  engine.View `json:"view"`
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	s, err := h.hub.Create()
	if err != nil {
		handleServiceError(w, err)
		return
	}

	token, err := h.auth.IssueToken(s.ID)
	if err != nil {
		h.hub.Close(s.ID)
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, CreateResponse{ID: s.ID, Token: token, View: s.View()})
}

func (h *Handler) View(w http.ResponseWriter, r *http.Request) {
	s, err := h.hub.Get(mux.Vars(r)["id"])
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, s.View())
}

type eventResponse struct {
	Seq  int64       `json:"seq"`
	View engine.View `json:"view"`
}

// eventError carries the view alongside the error so a client can resync
// after a rejected event.
type eventError struct {
	Error string      `json:"error"`
	Seq   int64       `json:"seq"`
	View  engine.View `json:"view"`
}

func (h *Handler) Events(w http.ResponseWriter, r *http.Request) {
	s, err := h.hub.Get(mux.Vars(r)["id"])
	if err != nil {
		handleServiceError(w, err)
		return
	}

	var ev Event
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	view, err := s.Dispatch(ev)
	if err != nil {
		if IsClientError(err) {
			writeJSON(w, http.StatusBadRequest, eventError{Error: err.Error(), Seq: s.Seq(), View: view})
			return
		}
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, eventResponse{Seq: s.Seq(), View: view})
}

func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	s, err := h.hub.Get(mux.Vars(r)["id"])
	if err != nil {
		handleServiceError(w, err)
		return
	}

	png, err := s.Preview(h.raster)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

func (h *Handler) Close(w http.ResponseWriter, r *http.Request) {
	if err := h.hub.Close(mux.Vars(r)["id"]); err != nil {
		handleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	s, err := h.hub.Get(mux.Vars(r)["id"])
	if err != nil {
		handleServiceError(w, err)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.originPatterns,
	})
	if err != nil {
		slog.Error("websocket accept", "error", err)
		return
	}

	client := NewClient(h.hub, s, conn, uuid.New().String())
	h.hub.Register(client)

	ctx := r.Context()
	go client.WritePump(ctx)
	client.ReadPump(ctx)
}

func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrSessionNotFound), errors.Is(err, ErrInvalidSessionID):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
	case errors.Is(err, ErrTooManySessions):
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "too many sessions"})
	case IsClientError(err):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		slog.Error("service error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
