package repositories

import (
	"context"

	"github.com/edupulse/edupulse/internal/app/models"
	"github.com/edupulse/edupulse/internal/pkg/docstore"
)

// ChatRepository keeps the append-only per-room logs of the chat_messages document
type ChatRepository struct {
	doc *docstore.Document[models.ChatLogMap]
}

func NewChatRepository(doc *docstore.Document[models.ChatLogMap]) *ChatRepository {
	return &ChatRepository{doc: doc}
}

// Append adds message to the end of the room log
func (r *ChatRepository) Append(ctx context.Context, room string, message models.ChatMessage) error {
	_, err := r.doc.Update(ctx, func(logs models.ChatLogMap) (models.ChatLogMap, error) {
		logs[room] = append(logs[room], message)
		return logs, nil
	})
	return err
}

// History returns the full log of a room, empty when nothing was said yet
func (r *ChatRepository) History(ctx context.Context, room string) ([]models.ChatMessage, error) {
	logs, err := r.doc.Load(ctx)
	if err != nil {
		return nil, err
	}
	if history := logs[room]; history != nil {
		return history, nil
	}
	return []models.ChatMessage{}, nil
}
