package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Dosada05/tennis-league/realtime"
	"github.com/Dosada05/tennis-league/services"
	"github.com/gorilla/websocket"
)

type WebSocketHandler struct {
	hub      *realtime.Hub
	notifier services.ChangeNotifier
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewWebSocketHandler accepts connections from allowedOrigins; "*" allows any.
func NewWebSocketHandler(hub *realtime.Hub, notifier services.ChangeNotifier, allowedOrigins []string, logger *slog.Logger) *WebSocketHandler {
	allowAll := false
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		if o == "*" {
			allowAll = true
		}
		allowed[o] = true
	}

	return &WebSocketHandler{
		hub:      hub,
		notifier: notifier,
		logger:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return allowAll || origin == "" || allowed[origin]
			},
		},
	}
}

// ServeWs subscribes the client to one room. The first frame is the current
// snapshot of the room, every later frame a fresh one after a change.
// Клиент подключается к /ws/{room}, например /ws/matches:ongoing
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	room, err := getIDFromURL(r, "room")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	// Неизвестную комнату отклоняем до апгрейда, пока можно ответить кодом.
	if !services.KnownRoom(room) {
		mapServiceErrorToHTTP(w, r, fmt.Errorf("%w: %q", services.ErrUnknownRoom, room))
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade сам отправляет HTTP ошибку клиенту.
		h.logger.WarnContext(r.Context(), "Failed to upgrade websocket connection", slog.String("room", room), slog.Any("error", err))
		return
	}

	err = h.notifier.Subscribe(r.Context(), room, func(initial interface{}) error {
		return h.hub.Serve(conn, room, initial)
	})
	if err != nil {
		if !errors.Is(err, realtime.ErrHubClosed) {
			h.logger.ErrorContext(r.Context(), "Failed to subscribe websocket client", slog.String("room", room), slog.Any("error", err))
		}
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "subscription failed"),
			time.Now().Add(time.Second))
		_ = conn.Close()
		return
	}
	h.logger.DebugContext(r.Context(), "WebSocket client subscribed", slog.String("room", room))
}
