package ws

import (
	"encoding/json"
	"sync"

	"taskboard/internal/logger"
)

// Hub fans board events out to the clients subscribed to each board.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[string]map[*Client]struct{})}
}

func (h *Hub) Subscribe(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[c.BoardID]
	if !ok {
		room = make(map[*Client]struct{})
		h.rooms[c.BoardID] = room
	}
	room[c] = struct{}{}
	logger.Debug("ws subscribe", "board", c.BoardID, "user", c.UserID, "clients", len(room))
}

func (h *Hub) Unsubscribe(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[c.BoardID]
	if !ok {
		return
	}
	delete(room, c)
	if len(room) == 0 {
		delete(h.rooms, c.BoardID)
	}
}

// Broadcast sends the event to every subscriber of its board. Slow clients
// are skipped rather than blocking the caller.
func (h *Hub) Broadcast(e Event) {
	payload, err := json.Marshal(e)
	if err != nil {
		logger.Error("ws marshal failed", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.rooms[e.Board] {
		select {
		case c.Send <- payload:
		default:
		}
	}
}

// Subscribers returns the number of clients watching a board.
func (h *Hub) Subscribers(boardID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[boardID])
}
