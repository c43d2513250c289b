package websocket

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 64 * 1024

	sendBufferSize = 256

	// Bound on each participant callback
	eventTimeout = 5 * time.Second
)

var newline = []byte{'\n'}

// Inbound event types
const (
	EventMessage = "message"
	EventLeave   = "leave"
)

// Event is what a client sends: {"type":"message","text":"hi"} or {"type":"leave"}
type Event struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Participant receives the room events of one connection. Implementations
// persist the resulting chat lines and broadcast them.
type Participant interface {
	Join(ctx context.Context) error
	Say(ctx context.Context, text string) error
	Leave(ctx context.Context) error
}

// Client is a middleman between the websocket connection and the hub
type Client struct {
	hub  *Hub
	conn *websocket.Conn

	// Buffered channel of outbound messages
	send chan []byte

	room string
	name string
	addr string

	participant Participant
	logger      zerolog.Logger
}

// NewClient binds a connection to a room. conn may be nil for clients that
// only receive through Messages.
func NewClient(hub *Hub, conn *websocket.Conn, room, name string, participant Participant, logger zerolog.Logger) *Client {
	addr := ""
	if conn != nil {
		addr = conn.RemoteAddr().String()
	}
	return &Client{
		hub:         hub,
		conn:        conn,
		send:        make(chan []byte, sendBufferSize),
		room:        room,
		name:        name,
		addr:        addr,
		participant: participant,
		logger:      logger,
	}
}

// Messages exposes the outbound channel; it is closed when the hub drops the client
func (c *Client) Messages() <-chan []byte {
	return c.send
}

// readPump turns inbound events into participant calls until the peer
// disconnects or leaves, then leaves the room exactly once.
func (c *Client) readPump() {
	defer func() {
		c.callParticipant("leave", c.participant.Leave)
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error { c.conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn().Err(err).Str("room", c.room).Str("user", c.name).Msg("Unexpected WebSocket close")
			} else {
				c.logger.Debug().Err(err).Str("room", c.room).Str("user", c.name).Msg("WebSocket closed")
			}
			return
		}

		var event Event
		if err := json.Unmarshal(bytes.TrimSpace(raw), &event); err != nil {
			c.logger.Warn().Err(err).Str("room", c.room).Str("user", c.name).Msg("Failed to unmarshal client event")
			continue
		}

		switch event.Type {
		case EventMessage:
			text := strings.TrimSpace(event.Text)
			if text == "" {
				continue
			}
			c.callParticipant("message", func(ctx context.Context) error {
				return c.participant.Say(ctx, text)
			})
		case EventLeave:
			return
		default:
			c.logger.Debug().Str("type", event.Type).Str("room", c.room).Msg("Ignoring unknown event type")
		}
	}
}

func (c *Client) callParticipant(event string, fn func(ctx context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), eventTimeout)
	defer cancel()

	if err := fn(ctx); err != nil {
		c.logger.Error().Err(err).Str("event", event).Str("room", c.room).Str("user", c.name).Msg("Failed to handle chat event")
	}
}

// writePump pumps messages from the hub to the websocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Coalesce queued messages into the same frame, one JSON object per line
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write(newline)
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
