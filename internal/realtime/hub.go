package realtime

import (
	"encoding/json"
	"log"
	"sync"
	"time"
)

// Event types pushed to dashboard clients
const (
	EventDatasetRefreshed  = "dataset_refreshed"
	EventCompletionUpdated = "completion_updated"
)

// Event is the JSON message sent over the websocket.
type Event struct {
	Type         string    `json:"type"`
	CompletionID string    `json:"completionId,omitempty"`
	UserID       string    `json:"userId,omitempty"`
	Cars         int       `json:"cars,omitempty"`
	Completions  int       `json:"completions,omitempty"`
	Partial      bool      `json:"partial,omitempty"`
	At           time.Time `json:"at"`
	Version      int       `json:"version"`
}

// Client represents a single websocket client connection.
// We keep it minimal here; the actual network conn is managed in the ws handler.
type Client interface {
	Send(message []byte) bool
	Close()
}

// Hub maintains active user connections and broadcasts events to them.
type Hub struct {
	mu              sync.RWMutex
	userIdToClients map[string]map[Client]struct{}
}

var hubInstance *Hub
var once sync.Once

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{userIdToClients: make(map[string]map[Client]struct{})}
}

// GetHub returns a singleton hub instance.
func GetHub() *Hub {
	once.Do(func() {
		hubInstance = NewHub()
	})
	return hubInstance
}

// Register adds a client under a user ID.
func (h *Hub) Register(userID string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.userIdToClients[userID]; !ok {
		h.userIdToClients[userID] = make(map[Client]struct{})
	}
	h.userIdToClients[userID][client] = struct{}{}
}

// Unregister removes a client; if user has no more clients, cleans up map.
func (h *Hub) Unregister(userID string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if clients, ok := h.userIdToClients[userID]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.userIdToClients, userID)
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, clients := range h.userIdToClients {
		n += len(clients)
	}
	return n
}

// Broadcast sends a message to every connected client and returns how many
// accepted it. Failed clients are cleaned up by their handler.
func (h *Hub) Broadcast(message []byte) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	sent := 0
	for _, clients := range h.userIdToClients {
		for c := range clients {
			if c.Send(message) {
				sent++
			}
		}
	}
	return sent
}

// Publish stamps and broadcasts an event.
func (h *Hub) Publish(evt Event) {
	if evt.At.IsZero() {
		evt.At = time.Now().UTC()
	}
	if evt.Version == 0 {
		evt.Version = 1
	}
	bytes, err := json.Marshal(evt)
	if err != nil {
		log.Printf("realtime: marshal %s event: %v", evt.Type, err)
		return
	}
	h.Broadcast(bytes)
}
