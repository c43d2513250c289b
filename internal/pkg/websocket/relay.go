package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// RedisRelay publishes room messages on Redis so members connected to any
// instance receive them. Each instance runs Listen to feed its own Hub.
type RedisRelay struct {
	client *redis.Client
	hub    *Hub
	prefix string
	logger zerolog.Logger
}

func NewRedisRelay(client *redis.Client, hub *Hub, keyPrefix string, logger zerolog.Logger) *RedisRelay {
	return &RedisRelay{
		client: client,
		hub:    hub,
		prefix: keyPrefix + "chat:",
		logger: logger,
	}
}

// Channel returns the Redis channel of a room
func (r *RedisRelay) Channel(room string) string {
	return r.prefix + room
}

// Broadcast publishes message on its room channel
func (r *RedisRelay) Broadcast(ctx context.Context, message *Message) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("encode chat message: %w", err)
	}
	if err := r.client.Publish(ctx, r.Channel(message.Room), payload).Err(); err != nil {
		return fmt.Errorf("publish chat message: %w", err)
	}
	return nil
}

// Listen subscribes to every room channel and hands messages to the local
// hub until ctx is cancelled. ready, if not nil, is closed once the
// subscription is confirmed.
func (r *RedisRelay) Listen(ctx context.Context, ready chan<- struct{}) error {
	pubsub := r.client.PSubscribe(ctx, r.prefix+"*")
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe to chat channels: %w", err)
	}
	if ready != nil {
		close(ready)
	}
	r.logger.Info().Str("pattern", r.prefix+"*").Msg("Chat relay subscribed")

	ch := pubsub.Channel()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var message Message
			if err := json.Unmarshal([]byte(msg.Payload), &message); err != nil {
				r.logger.Warn().Err(err).Str("channel", msg.Channel).Msg("Dropping malformed relay message")
				continue
			}
			if message.Room == "" {
				message.Room = strings.TrimPrefix(msg.Channel, r.prefix)
			}
			if err := r.hub.Broadcast(ctx, &message); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
		case <-ctx.Done():
			return nil
		}
	}
}
