package websocket

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// Handler upgrades authorized requests and attaches them to a room
type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
	logger   zerolog.Logger
}

// NewHandler creates a handler accepting the given origins; "*" accepts any
func NewHandler(hub *Hub, allowedOrigins []string, logger zerolog.Logger) *Handler {
	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		logger: logger,
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, a := range allowed {
			if a == "*" || strings.EqualFold(a, origin) {
				return true
			}
		}
		return false
	}
}

// Serve upgrades the connection, registers it in room and announces the join.
// Authorization must already have happened. On upgrade failure the upgrader
// has written the HTTP error response.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request, room, name string, participant Participant) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return fmt.Errorf("websocket upgrade: %w", err)
	}

	client := NewClient(h.hub, conn, room, name, participant, h.logger)
	if err := h.hub.Register(client); err != nil {
		conn.Close()
		return err
	}

	client.callParticipant("join", participant.Join)

	go client.writePump()
	go client.readPump()

	h.logger.Info().
		Str("room", room).
		Str("user", name).
		Str("remoteAddr", client.addr).
		Msg("WebSocket connection established")
	return nil
}
