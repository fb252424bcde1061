package realtime

import (
	"log/slog"
	"sync"

	"incidenthub/internal/tracker/model"
)

// Event is the wire envelope for every server<->client message.
type Event struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload"`
}

// Hub is the connected-clients registry. It is owned by the composition root
// and passed into every component that emits; there is no package singleton.
//
// Delivery is at-most-once. A recipient with a full send buffer or no open
// connection simply misses the event; the stored notification record is the
// durable fallback.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	rooms   map[string]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		rooms:   make(map[string]map[*Client]struct{}),
	}
}

// Register admits an authenticated client: it joins its own identity room
// and, for the administrative tier, the shared admins room.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[c] = struct{}{}
	h.joinLocked(c, c.Identity.ID)
	if model.IsElevated(c.Identity.Role) {
		h.joinLocked(c, model.RoomAdmins)
	}

	slog.Info("client connected",
		"user_id", c.Identity.ID,
		"role", c.Identity.Role,
	)
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	for room, members := range h.rooms {
		delete(members, c)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
	close(c.send)

	slog.Info("client disconnected", "user_id", c.Identity.ID)
}

func (h *Hub) Join(c *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	h.joinLocked(c, room)
}

func (h *Hub) Leave(c *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	members, ok := h.rooms[room]
	if !ok {
		return
	}
	delete(members, c)
	if len(members) == 0 {
		delete(h.rooms, room)
	}
}

func (h *Hub) joinLocked(c *Client, room string) {
	members, ok := h.rooms[room]
	if !ok {
		members = make(map[*Client]struct{})
		h.rooms[room] = members
	}
	members[c] = struct{}{}
}

// ToRoom broadcasts an event to every member of the room.
func (h *Hub) ToRoom(room, event string, payload interface{}) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.rooms[room] {
		c.deliver(Event{Event: event, Payload: payload})
	}
}

// ToAll broadcasts an event to every connected client.
func (h *Hub) ToAll(event string, payload interface{}) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		c.deliver(Event{Event: event, Payload: payload})
	}
}

// broadcastExcept mirrors socket.broadcast: every client but the sender.
func (h *Hub) broadcastExcept(sender *Client, event string, payload interface{}) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		if c == sender {
			continue
		}
		c.deliver(Event{Event: event, Payload: payload})
	}
}

// RoomSize reports current room membership.
func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}
