package handlers

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Dosada05/tennis-league/realtime"
	"github.com/Dosada05/tennis-league/services"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubNotifier struct {
	services.ChangeNotifier
}

func (stubNotifier) Snapshot(ctx context.Context, room string) (interface{}, error) {
	if room != services.RoomOngoingMatches {
		return nil, fmt.Errorf("%w: %q", services.ErrUnknownRoom, room)
	}
	return []string{"m1"}, nil
}

func (n stubNotifier) Subscribe(ctx context.Context, room string, join func(initial interface{}) error) error {
	initial, err := n.Snapshot(ctx, room)
	if err != nil {
		return err
	}
	return join(initial)
}

func newWSServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	hub := realtime.NewHub(logger)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	h := NewWebSocketHandler(hub, stubNotifier{}, []string{"https://league.example.com"}, logger)
	r := chi.NewRouter()
	r.Get("/ws/{room}", h.ServeWs)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestServeWsUnknownRoom(t *testing.T) {
	srv := newWSServer(t)

	resp, err := http.Get(srv.URL + "/ws/scores")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServeWsSendsSnapshot(t *testing.T) {
	srv := newWSServer(t)
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/matches:ongoing"

	header := http.Header{"Origin": []string{"https://league.example.com"}}
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg realtime.Message
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, realtime.MessageTypeSnapshot, msg.Type)
	assert.Equal(t, services.RoomOngoingMatches, msg.Room)
	assert.Equal(t, []interface{}{"m1"}, msg.Payload)
}

func TestServeWsRejectsForeignOrigin(t *testing.T) {
	srv := newWSServer(t)
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/matches:ongoing"

	header := http.Header{"Origin": []string{"https://evil.example.com"}}
	_, resp, err := websocket.DefaultDialer.Dial(url, header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
