package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/rs/zerolog"
)

// Message types sent to clients
const (
	MessageTypeChat   = "message"
	MessageTypeSystem = "system"
)

// Message is one chat line fanned out to the members of a room
type Message struct {
	Type      string `json:"type"`
	Room      string `json:"room"`
	User      string `json:"user"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

// ErrHubStopped is returned once Run has exited
var ErrHubStopped = errors.New("chat hub stopped")

// Broadcaster fans a message out to every member of its room
type Broadcaster interface {
	Broadcast(ctx context.Context, message *Message) error
}

// Hub maintains the clients of every room and delivers messages to them.
// Delivery is best effort: a client whose send buffer is full is dropped.
type Hub struct {
	// Registered clients organized by room
	rooms map[string]map[*Client]bool

	broadcast  chan *Message
	register   chan *Client
	unregister chan *Client

	// done is closed when Run returns
	done chan struct{}

	mu     sync.RWMutex
	logger zerolog.Logger

	// connections is notified with +1/-1 as clients come and go
	connections func(delta float64)
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		rooms:       make(map[string]map[*Client]bool),
		broadcast:   make(chan *Message, 64),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		done:        make(chan struct{}),
		logger:      logger,
		connections: func(float64) {},
	}
}

// OnConnectionChange installs a callback for connection count changes
func (h *Hub) OnConnectionChange(fn func(delta float64)) {
	h.connections = fn
}

// Run processes registrations and broadcasts until ctx is done, then closes
// every remaining client.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.deliver(message)

		case <-ctx.Done():
			close(h.done)
			h.closeAll()
			return
		}
	}
}

// Broadcast queues message for local delivery
func (h *Hub) Broadcast(ctx context.Context, message *Message) error {
	select {
	case <-h.done:
		return ErrHubStopped
	default:
	}

	select {
	case h.broadcast <- message:
		return nil
	case <-h.done:
		return ErrHubStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Register adds a client to its room
func (h *Hub) Register(client *Client) error {
	select {
	case h.register <- client:
		return nil
	case <-h.done:
		return ErrHubStopped
	}
}

// Unregister removes a client and closes its send channel
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.rooms[client.room]; !ok {
		h.rooms[client.room] = make(map[*Client]bool)
	}
	h.rooms[client.room][client] = true
	h.connections(1)

	h.logger.Info().
		Str("room", client.room).
		Str("user", client.name).
		Str("addr", client.addr).
		Msg("Client registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.removeLocked(client) {
		h.logger.Info().
			Str("room", client.room).
			Str("user", client.name).
			Str("addr", client.addr).
			Msg("Client unregistered")
	}
}

// removeLocked drops the client from its room; callers hold mu
func (h *Hub) removeLocked(client *Client) bool {
	clients, ok := h.rooms[client.room]
	if !ok {
		return false
	}
	if _, ok := clients[client]; !ok {
		return false
	}

	delete(clients, client)
	close(client.send)
	h.connections(-1)

	if len(clients) == 0 {
		delete(h.rooms, client.room)
	}
	return true
}

func (h *Hub) deliver(message *Message) {
	data, err := json.Marshal(message)
	if err != nil {
		h.logger.Error().Err(err).Str("room", message.Room).Msg("Failed to marshal message for broadcast")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.rooms[message.Room]
	if !ok {
		h.logger.Debug().Str("room", message.Room).Msg("No clients in room for broadcast")
		return
	}

	for client := range clients {
		select {
		case client.send <- data:
		default:
			h.logger.Warn().Str("room", message.Room).Str("user", client.name).Msg("Dropping slow client")
			h.removeLocked(client)
		}
	}

	h.logger.Debug().Str("room", message.Room).Int("clientCount", len(clients)).Msg("Message broadcasted to room")
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, clients := range h.rooms {
		for client := range clients {
			h.removeLocked(client)
		}
	}
}

// ClientCount returns the number of clients connected to room
func (h *Hub) ClientCount(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}
