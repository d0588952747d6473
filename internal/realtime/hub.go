// Package realtime pushes block-list changes to connected content scripts
// over WebSocket, so open tabs re-apply hiding without polling.
package realtime

import (
	"encoding/json"
	"sync"

	"github.com/markb/blockwarden/internal/log"
	"github.com/markb/blockwarden/internal/store"
)

// Event is the message broadcast to every subscriber after a mutation.
type Event struct {
	Type    string                `json:"type"`
	Authors []store.BlockedAuthor `json:"authors"`
}

// EventBlocklistChanged is the only event type currently emitted.
const EventBlocklistChanged = "blocklist_changed"

// Hub manages all WebSocket connections.
type Hub struct {
	mu          sync.RWMutex
	connections map[string]*Conn // connID -> Conn
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		connections: make(map[string]*Conn),
	}
}

// ConnCount returns the number of connected subscribers.
func (h *Hub) ConnCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

// Broadcast sends a blocklist_changed event carrying the full current list
// to every connected subscriber.
func (h *Hub) Broadcast(authors []store.BlockedAuthor) {
	if authors == nil {
		authors = []store.BlockedAuthor{}
	}
	data, err := json.Marshal(Event{Type: EventBlocklistChanged, Authors: authors})
	if err != nil {
		log.Error("realtime: failed to encode event", "error", err.Error())
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, conn := range h.connections {
		conn.enqueue(data)
	}
}

// registerConn adds a connection to the hub.
func (h *Hub) registerConn(conn *Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.connections[conn.id] = conn
}

// unregisterConn removes a connection from the hub.
func (h *Hub) unregisterConn(conn *Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.connections, conn.id)
}
