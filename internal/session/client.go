package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/coder/websocket"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
	maxMsgSize = 64 * 1024
)

type Client struct {
	hub      *Hub
	session  *Session
	conn     *websocket.Conn
	send     chan []byte
	ClientID string
}

func NewClient(hub *Hub, session *Session, conn *websocket.Conn, clientID string) *Client {
	return &Client{
		hub:      hub,
		session:  session,
		conn:     conn,
		send:     make(chan []byte, 256),
		ClientID: clientID,
	}
}

func (c *Client) ReadPump(ctx context.Context) {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	c.conn.SetReadLimit(maxMsgSize)

	for {
		_, data, err := c.conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure ||
				websocket.CloseStatus(err) == websocket.StatusGoingAway {
				return
			}
			slog.Debug("read error", "error", err, "client", c.ClientID)
			return
		}

		var ev Event
		if err := json.Unmarshal(data, &ev); err != nil {
			slog.Warn("invalid message", "error", err, "client", c.ClientID)
			c.sendError("", err)
			continue
		}

		if _, err := c.session.Dispatch(ev); err != nil {
			c.sendError(ev.Type, err)
		}
	}
}

func (c *Client) WritePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		select {
		case message, ok := <-c.send:
			if !ok {
				return
			}

			writeCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Write(writeCtx, websocket.MessageText, message)
			cancel()
			if err != nil {
				slog.Debug("write error", "error", err, "client", c.ClientID)
				return
			}

		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Ping(pingCtx)
			cancel()
			if err != nil {
				return
			}

		case <-ctx.Done():
			return
		}
	}
}

func (c *Client) sendError(eventType string, err error) {
	c.session.sendTo(c, &Message{
		Type:      TypeError,
		SessionID: c.session.ID,
		Payload:   mustMarshal(ErrorPayload{Event: eventType, Error: err.Error()}),
	})
}

// enqueue must be called with the session's clientsMu held, which keeps the
// channel open for the duration.
func (c *Client) enqueue(data []byte) {
	select {
	case c.send <- data:
	default:
		slog.Warn("client send buffer full, dropping message", "client", c.ClientID)
	}
}

func mustMarshal(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return data
}
