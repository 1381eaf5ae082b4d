package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	ws "github.com/coder/websocket"
	"github.com/mentorstack/mentorstack-api/pkg/metrics"
)

const (
	sendBufferSize = 16
	pingInterval   = 30 * time.Second
)

// Client represents a single WebSocket connection owned by one mentor
type Client struct {
	hub      *Hub
	conn     *ws.Conn
	mentorID string

	// mu guards send against late Enqueue calls from feed subscription
	// goroutines that may still be in flight during teardown. The channel
	// itself is never closed; the write pump exits via context cancel.
	mu     sync.Mutex
	closed bool
	send   chan []byte
}

// NewClient creates a Client tied to the given hub, connection and mentor
func NewClient(hub *Hub, conn *ws.Conn, mentorID string) *Client {
	return &Client{
		hub:      hub,
		conn:     conn,
		mentorID: mentorID,
		send:     make(chan []byte, sendBufferSize),
	}
}

// Enqueue queues a message for this connection only. A full buffer drops
// the message; the client re-fetches authoritative state on every event, so
// a dropped notification is recovered by the next one. After teardown
// Enqueue is a no-op.
func (c *Client) Enqueue(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- data:
		metrics.WebSocketMessagesSent.WithLabelValues(msg.Table).Inc()
	default:
	}
}

// markClosed stops further enqueues. Buffered messages are left for the
// write pump to drain or abandon.
func (c *Client) markClosed() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
}

// Run registers the client, starts the write pump, and runs the read pump.
// It blocks until the connection is closed, then unregisters.
func (c *Client) Run(ctx context.Context) {
	c.hub.Register(c)
	defer c.hub.Unregister(c)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go c.writePump(ctx)
	c.readPump(ctx)
}

// readPump reads and discards all incoming messages. It returns on error
// (connection close), which triggers cleanup.
func (c *Client) readPump(ctx context.Context) {
	for {
		_, _, err := c.conn.Read(ctx)
		if err != nil {
			return
		}
	}
}

// writePump drains the send channel and writes messages to the WebSocket.
// It also sends periodic pings to detect stale connections.
func (c *Client) writePump(ctx context.Context) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case msg := <-c.send:
			if err := c.conn.Write(ctx, ws.MessageText, msg); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.conn.Ping(ctx); err != nil {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}
