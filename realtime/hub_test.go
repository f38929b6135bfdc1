package realtime

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	return hub
}

func dial(t *testing.T, hub *Hub, room string, initial interface{}) *websocket.Conn {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		_ = hub.Serve(conn, room, initial)
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) map[string]interface{} {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg map[string]interface{}
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestHubSendsInitialSnapshotThenPublishes(t *testing.T) {
	hub := newTestHub(t)
	conn := dial(t, hub, "teams", []string{"A1"})

	first := readMessage(t, conn)
	assert.Equal(t, MessageTypeSnapshot, first["type"])
	assert.Equal(t, "teams", first["room"])
	assert.Equal(t, []interface{}{"A1"}, first["payload"])

	// The pumps start only after registration, so a delivered first frame
	// means the client is already in the room.
	assert.Equal(t, 1, hub.Subscribers("teams"))

	hub.Publish("matches", []string{"ignored"})
	hub.Publish("teams", []string{"A1", "A2"})

	second := readMessage(t, conn)
	assert.Equal(t, []interface{}{"A1", "A2"}, second["payload"])
}

func TestHubDropsClientOnDisconnect(t *testing.T) {
	hub := newTestHub(t)
	conn := dial(t, hub, "leagues", nil)
	readMessage(t, conn)
	require.Eventually(t, func() bool { return hub.Subscribers("leagues") == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())

	assert.Eventually(t, func() bool { return hub.Subscribers("leagues") == 0 }, 2*time.Second, 10*time.Millisecond)
}
