// Package ws wires the WebSocket side-channel: the connection registry,
// presence fan-out and live event delivery.
package ws

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/worklink-app/Backend-Work-Link/src/chat"
	"github.com/worklink-app/Backend-Work-Link/src/metrics"
	"github.com/worklink-app/Backend-Work-Link/src/models"
)

// Envelope is the frame every server-side event is wrapped in.
type Envelope struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub is the connection registry: identity key -> set of live connections.
// It is injected wherever live delivery is needed and implements
// chat.LivePusher. Entries are volatile; a restart empties the registry and
// clients are expected to reconnect.
type Hub struct {
	mu       sync.RWMutex
	clients  map[string]map[*Client]bool
	presence PresenceStore
}

func NewHub(presence PresenceStore) *Hub {
	return &Hub{
		clients:  make(map[string]map[*Client]bool),
		presence: presence,
	}
}

// Register adds a connection for the client's identity and announces the
// updated online set to everyone.
func (h *Hub) Register(c *Client) {
	key := c.principal.Identity.Key()

	h.mu.Lock()
	if h.clients[key] == nil {
		h.clients[key] = make(map[*Client]bool)
	}
	first := len(h.clients[key]) == 0
	h.clients[key][c] = true
	h.mu.Unlock()

	// Presence tracks identities, not sockets: only the first connection of
	// an identity flips it online.
	if first {
		if err := h.presence.Add(context.Background(), key); err != nil {
			log.Printf("Error adding %s to presence: %v", key, err)
		}
	}

	metrics.ActiveConnections.Inc()
	log.Printf("Client registered: %s (%s)", key, c.id)
	h.BroadcastPresence()
}

// Unregister drops one connection. The identity stays reachable while it has
// other live connections.
func (h *Hub) Unregister(c *Client) {
	key := c.principal.Identity.Key()

	h.mu.Lock()
	conns, ok := h.clients[key]
	if !ok || !conns[c] {
		h.mu.Unlock()
		return
	}
	delete(conns, c)
	close(c.send)
	last := len(conns) == 0
	if last {
		delete(h.clients, key)
	}
	h.mu.Unlock()

	if last {
		if err := h.presence.Remove(context.Background(), key); err != nil {
			log.Printf("Error removing %s from presence: %v", key, err)
		}
	}

	metrics.ActiveConnections.Dec()
	log.Printf("Client unregistered: %s (%s)", key, c.id)
	h.BroadcastPresence()
}

// Lookup returns the live connections for an identity.
func (h *Hub) Lookup(identity models.Identity) []*Client {
	h.mu.RLock()
	defer h.mu.RUnlock()
	conns := h.clients[identity.Key()]
	out := make([]*Client, 0, len(conns))
	for c := range conns {
		out = append(out, c)
	}
	return out
}

// Push delivers an event to every live connection of an identity and returns
// the number of connections it was enqueued for. A connection whose send
// buffer is full is dropped and not counted.
func (h *Hub) Push(to models.Identity, event string, payload interface{}) int {
	data, err := json.Marshal(Envelope{Event: event, Data: payload})
	if err != nil {
		log.Printf("Error marshaling %s event: %v", event, err)
		return 0
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.pushLocked(to.Key(), data)
}

func (h *Hub) pushLocked(key string, data []byte) int {
	delivered := 0
	for c := range h.clients[key] {
		select {
		case c.send <- data:
			delivered++
		default:
			// Slow consumer: skip it and let its write deadline tear the
			// connection down through the normal unregister path.
		}
	}
	return delivered
}

// BroadcastPresence sends the current online identity keys to every
// connection. Best-effort: there is no guarantee all peers observe the same
// order of updates.
func (h *Hub) BroadcastPresence() {
	online, err := h.presence.List(context.Background())
	if err != nil {
		log.Printf("Error listing presence: %v", err)
		return
	}

	data, err := json.Marshal(Envelope{Event: chat.EventOnlineUsers, Data: online})
	if err != nil {
		log.Printf("Error marshaling presence event: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for key := range h.clients {
		h.pushLocked(key, data)
	}
}

// SendPresence pushes the online set to a single client, used when a client
// announces itself active.
func (h *Hub) SendPresence(c *Client) {
	online, err := h.presence.List(context.Background())
	if err != nil {
		log.Printf("Error listing presence: %v", err)
		return
	}
	data, err := json.Marshal(Envelope{Event: chat.EventOnlineUsers, Data: online})
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}
