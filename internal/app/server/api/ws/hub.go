// Package ws pushes room document updates to connected clients. Each client
// holds one websocket per room; the server writes full documents and never
// expects meaningful frames back.
package ws

import (
	"context"
	"net/http"
	gosync "sync"
	"time"

	"github.com/coder/websocket"
	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"

	"fluiddiary/internal/domain/document"
	"fluiddiary/internal/domain/room"
)

const writeTimeout = 10 * time.Second

type client struct {
	conn *websocket.Conn

	mu gosync.Mutex // serializes writes on the conn
}

func (c *client) send(body []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	return c.conn.Write(ctx, websocket.MessageText, body)
}

type Hub struct {
	log  *slog.Logger
	repo document.Repository

	mu    gosync.Mutex
	rooms map[string]map[*client]struct{}
}

func NewHub(repo document.Repository, log *slog.Logger) *Hub {
	return &Hub{
		log:   log.With("component", "ws_hub"),
		repo:  repo,
		rooms: make(map[string]map[*client]struct{}),
	}
}

// Handler upgrades the request and keeps the connection registered until the
// client goes away. A newly connected client immediately receives the current
// room document, if one exists.
func (h *Hub) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code, err := room.Normalize(chi.URLParam(r, "code"))
		if err != nil {
			http.Error(w, "invalid room code", http.StatusUnprocessableEntity)
			return
		}

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: []string{"*"},
		})
		if err != nil {
			h.log.Warn("websocket accept failed", "room", code, "error", err)
			return
		}

		cl := &client{conn: conn}
		h.register(code, cl)
		defer h.unregister(code, cl)
		h.log.Debug("client connected", "room", code)

		if doc, err := h.repo.Get(r.Context(), code); err == nil {
			if err := cl.send(doc.Body); err != nil {
				conn.CloseNow()
				return
			}
		}

		// Drain incoming frames; the read unblocks with an error when the
		// client disconnects.
		for {
			if _, _, err := conn.Read(r.Context()); err != nil {
				h.log.Debug("client disconnected", "room", code)
				conn.CloseNow()
				return
			}
		}
	}
}

// Broadcast sends the document to every connection in the room, including
// the uploader's own.
func (h *Hub) Broadcast(code string, body []byte) {
	h.mu.Lock()
	clients := make([]*client, 0, len(h.rooms[code]))
	for cl := range h.rooms[code] {
		clients = append(clients, cl)
	}
	h.mu.Unlock()

	for _, cl := range clients {
		if err := cl.send(body); err != nil {
			h.log.Debug("broadcast write failed", "room", code, "error", err)
			cl.conn.CloseNow()
		}
	}
}

func (h *Hub) register(code string, cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[code] == nil {
		h.rooms[code] = make(map[*client]struct{})
	}
	h.rooms[code][cl] = struct{}{}
}

func (h *Hub) unregister(code string, cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.rooms[code], cl)
	if len(h.rooms[code]) == 0 {
		delete(h.rooms, code)
	}
}
