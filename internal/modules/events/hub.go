package events

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

type client struct {
	conn    *websocket.Conn
	adminID int64
	writeMu sync.Mutex
}

func (c *client) writeJSON(v any) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(v)
}

func (c *client) writeControl(messageType int) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	return c.conn.WriteControl(messageType, nil, time.Now().Add(writeWait))
}

// Hub fans admin events out to every open websocket. An admin may hold
// several connections at once (one per tab).
type Hub struct {
	clients map[*client]struct{}
	mutex   sync.RWMutex
	log     *slog.Logger
}

func NewHub(log *slog.Logger) *Hub {
	if log == nil {
		log = slog.Default()
	}
	return &Hub{
		clients: make(map[*client]struct{}),
		log:     log,
	}
}

func (h *Hub) register(c *client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.clients[c] = struct{}{}
}

func (h *Hub) unregister(c *client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if _, ok := h.clients[c]; ok {
		_ = c.conn.Close()
		delete(h.clients, c)
	}
}

// Publish delivers e to all connections. Failed connections are dropped;
// the caller is never told about delivery failures.
func (h *Hub) Publish(_ context.Context, e Event) {
	h.mutex.RLock()
	targets := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		targets = append(targets, c)
	}
	h.mutex.RUnlock()

	for _, c := range targets {
		if err := c.writeJSON(e); err != nil {
			h.log.Warn("dropping admin events connection", "admin_id", c.adminID, "error", err)
			h.unregister(c)
		}
	}
}

func (h *Hub) Count() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.clients)
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for c := range h.clients {
		_ = c.conn.Close()
		delete(h.clients, c)
	}
}
