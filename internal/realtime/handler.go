// internal/realtime/handler.go
package realtime

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/markb/blockwarden/internal/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // extension origins vary per browser; CORS handled elsewhere
	},
}

// HandleWebSocket upgrades the request and starts the connection pumps.
// The subscription is deliberately unauthenticated: it carries the same
// data as the fetchBlockedAuthors message, which is not PIN-gated.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("realtime: upgrade failed", "error", err.Error())
		return
	}

	conn := h.NewConn(ws)
	log.Debug("realtime: new connection", "conn_id", conn.ID())

	go conn.WritePump()
	go conn.ReadPump()
}
