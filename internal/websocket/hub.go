package websocket

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/mentorstack/mentorstack-api/internal/changefeed"
	"github.com/mentorstack/mentorstack-api/pkg/logger"
	"github.com/mentorstack/mentorstack-api/pkg/metrics"
	"go.uber.org/zap"
)

// Message is a realtime change notification pushed to dashboard clients
type Message struct {
	Type   string `json:"type"`
	Table  string `json:"table"`
	Action string `json:"action"`
	ID     string `json:"id,omitempty"`
}

// NewMessage creates a Message with the Type field derived from table and action
func NewMessage(table, action, id string) Message {
	return Message{
		Type:   fmt.Sprintf("%s_%s", table, action),
		Table:  table,
		Action: action,
		ID:     id,
	}
}

// MessageFromEvent converts a change feed event into a client message
func MessageFromEvent(event changefeed.Event) Message {
	return NewMessage(event.Table, event.Action, event.ID)
}

// Hub maintains the set of active WebSocket clients grouped by mentor.
// Each mentor only ever receives notifications about their own rows.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*Client]struct{}
}

// NewHub creates a new Hub
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]map[*Client]struct{}),
	}
}

// Register adds a client to the hub under its mentor
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	if h.clients[c.mentorID] == nil {
		h.clients[c.mentorID] = make(map[*Client]struct{})
	}
	h.clients[c.mentorID][c] = struct{}{}
	h.mu.Unlock()

	metrics.WebSocketConnections.Inc()
}

// Unregister removes a client from the hub and marks it closed. Feed
// subscription goroutines may still call Enqueue after this point, so the
// send channel is never closed; late enqueues become no-ops instead.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if set, ok := h.clients[c.mentorID]; ok {
		if _, ok := set[c]; ok {
			delete(set, c)
			c.markClosed()
			metrics.WebSocketConnections.Dec()
		}
		if len(set) == 0 {
			delete(h.clients, c.mentorID)
		}
	}
	h.mu.Unlock()
}

// BroadcastToMentor sends a message to every connection the mentor holds.
// Multiple tabs for the same mentor each get their own copy.
func (h *Hub) BroadcastToMentor(mentorID string, msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		logger.Error("Failed to marshal websocket message", zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients[mentorID] {
		select {
		case c.send <- data:
			metrics.WebSocketMessagesSent.WithLabelValues(msg.Table).Inc()
		default:
			// Client buffer full, drop the message to avoid blocking
		}
	}
}

// ClientCount returns the number of connections for one mentor
func (h *Hub) ClientCount(mentorID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[mentorID])
}

// TotalClients returns the number of connections across all mentors
func (h *Hub) TotalClients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, set := range h.clients {
		total += len(set)
	}
	return total
}
