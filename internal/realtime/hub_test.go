// internal/realtime/hub_test.go
package realtime

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/markb/blockwarden/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialTestHub(t *testing.T, hub *Hub) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(hub.HandleWebSocket))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { ws.Close() })
	return ws
}

func waitForConns(t *testing.T, hub *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.ConnCount() != want {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d connections, have %d", want, hub.ConnCount())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestBroadcastReachesSubscriber(t *testing.T) {
	hub := NewHub()
	ws := dialTestHub(t, hub)
	waitForConns(t, hub, 1)

	hub.Broadcast([]store.BlockedAuthor{{ID: 1, Name: "pewdiepie"}})

	ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := ws.ReadMessage()
	require.NoError(t, err)

	var ev Event
	require.NoError(t, json.Unmarshal(data, &ev))
	assert.Equal(t, EventBlocklistChanged, ev.Type)
	require.Len(t, ev.Authors, 1)
	assert.Equal(t, "pewdiepie", ev.Authors[0].Name)
}

func TestBroadcastNilAuthorsSendsEmptyArray(t *testing.T) {
	hub := NewHub()
	ws := dialTestHub(t, hub)
	waitForConns(t, hub, 1)

	hub.Broadcast(nil)

	ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := ws.ReadMessage()
	require.NoError(t, err)

	assert.Contains(t, string(data), `"authors":[]`)
}

func TestCloseUnregisters(t *testing.T) {
	hub := NewHub()
	ws := dialTestHub(t, hub)
	waitForConns(t, hub, 1)

	ws.Close()
	waitForConns(t, hub, 0)
}
