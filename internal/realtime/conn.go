// internal/realtime/conn.go
package realtime

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/markb/blockwarden/internal/log"
)

const (
	// Send buffer size for outbound messages
	sendBufferSize = 16

	// Time allowed to write a message
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message
	pongWait = 30 * time.Second

	// Send pings with this period (must be less than pongWait)
	pingPeriod = 25 * time.Second

	// Subscribers never send payloads; anything bigger is a broken client
	maxMessageSize = 1024
)

// Conn represents one subscribed content script.
type Conn struct {
	id        string
	ws        *websocket.Conn
	hub       *Hub
	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

// NewConn creates a connection and registers it with the hub.
func (h *Hub) NewConn(ws *websocket.Conn) *Conn {
	conn := &Conn{
		id:   uuid.New().String(),
		ws:   ws,
		hub:  h,
		send: make(chan []byte, sendBufferSize),
		done: make(chan struct{}),
	}
	h.registerConn(conn)
	return conn
}

// ID returns the connection ID.
func (c *Conn) ID() string {
	return c.id
}

func (c *Conn) enqueue(data []byte) {
	select {
	case c.send <- data:
	case <-c.done:
	default:
		// Buffer full, drop; the next event carries the full list anyway
		log.Warn("realtime: send buffer full, dropping event", "conn_id", c.id)
	}
}

// Close closes the connection and removes it from the hub.
func (c *Conn) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.ws.Close()
		c.hub.unregisterConn(c)
	})
}

// ReadPump consumes inbound frames. Subscribers are not expected to send
// anything; the pump exists to process control frames and detect closes.
func (c *Conn) ReadPump() {
	defer c.Close()

	c.ws.SetReadLimit(maxMessageSize)
	c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		c.ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.ws.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				log.Debug("realtime: read error", "conn_id", c.id, "error", err.Error())
			}
			return
		}
	}
}

// WritePump writes queued events and keepalive pings.
func (c *Conn) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case data := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}
