package realtime

import (
	"sync"
)

// Client represents a single websocket client connection.
// The network conn itself is managed in the ws handler.
type Client interface {
	Send(message []byte) bool
	Close()
}

// Hub tracks connected monitoring clients and fans messages out to them.
type Hub struct {
	mu      sync.RWMutex
	clients map[Client]struct{}
	last    []byte
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[Client]struct{})}
}

// Register adds a client and replays the latest message so new viewers
// don't wait a full interval for their first frame.
func (h *Hub) Register(client Client) {
	h.mu.Lock()
	h.clients[client] = struct{}{}
	last := h.last
	h.mu.Unlock()

	if last != nil {
		client.Send(last)
	}
}

// Unregister removes a client.
func (h *Hub) Unregister(client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, client)
}

// Len returns the number of registered clients.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast sends a message to every client. Clients whose send fails are
// left for their handler to clean up.
func (h *Hub) Broadcast(message []byte) {
	h.mu.Lock()
	h.last = message
	clients := make([]Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		c.Send(message)
	}
}
