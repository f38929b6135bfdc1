// Package realtime pushes fresh result sets to websocket subscribers.
// Each room carries one kind of snapshot (all matches, ongoing matches,
// teams, leagues); every message replaces the client's previous copy.
package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
)

var ErrHubClosed = errors.New("realtime hub is closed")

// Message is the envelope every subscriber receives.
type Message struct {
	Type    string      `json:"type"`
	Room    string      `json:"room"`
	Payload interface{} `json:"payload"`
}

const MessageTypeSnapshot = "SNAPSHOT"

type Hub struct {
	unregister chan *Client
	rooms      map[string]map[*Client]bool
	closed     bool
	mu         sync.RWMutex
	done       chan struct{}
	logger     *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		unregister: make(chan *Client),
		rooms:      make(map[string]map[*Client]bool),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run removes disconnected clients until ctx is done, then closes every
// client.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case client := <-h.unregister:
			h.mu.Lock()
			h.removeLocked(client)
			h.mu.Unlock()

		case <-ctx.Done():
			h.mu.Lock()
			h.closed = true
			close(h.done)
			for _, clients := range h.rooms {
				for client := range clients {
					h.removeLocked(client)
				}
			}
			h.mu.Unlock()
			h.logger.Info("Realtime hub stopped")
			return
		}
	}
}

// add puts client in its room. Once it returns, every later Publish to the
// room reaches the client.
func (h *Hub) add(client *Client) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrHubClosed
	}
	if _, ok := h.rooms[client.room]; !ok {
		h.rooms[client.room] = make(map[*Client]bool)
	}
	h.rooms[client.room][client] = true
	h.logger.Debug("Client subscribed", slog.String("room", client.room), slog.Int("clients", len(h.rooms[client.room])))
	return nil
}

func (h *Hub) removeLocked(client *Client) {
	clients, ok := h.rooms[client.room]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	client.closeSend()
	if len(clients) == 0 {
		delete(h.rooms, client.room)
	}
	h.logger.Debug("Client unsubscribed", slog.String("room", client.room), slog.Int("clients", len(clients)))
}

// Publish sends a snapshot to everyone in room. Slow clients whose buffer
// is full miss the message; the next snapshot supersedes it anyway.
func (h *Hub) Publish(room string, payload interface{}) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients, ok := h.rooms[room]
	if !ok || len(clients) == 0 {
		return
	}

	data, err := json.Marshal(Message{Type: MessageTypeSnapshot, Room: room, Payload: payload})
	if err != nil {
		h.logger.Error("Failed to marshal realtime message", slog.String("room", room), slog.Any("error", err))
		return
	}

	for client := range clients {
		if !client.trySend(data) {
			h.logger.Warn("Client send buffer full, dropping snapshot", slog.String("room", room))
		}
	}
}

// Subscribers returns the number of clients currently in room.
func (h *Hub) Subscribers(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}
