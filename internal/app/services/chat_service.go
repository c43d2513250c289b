package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	appauth "github.com/edupulse/edupulse/internal/app/auth"
	"github.com/edupulse/edupulse/internal/app/models"
	"github.com/edupulse/edupulse/internal/app/models/dto"
	"github.com/edupulse/edupulse/internal/app/repositories"
	"github.com/edupulse/edupulse/internal/pkg/apperrors"
	"github.com/edupulse/edupulse/internal/pkg/helpers"
	"github.com/edupulse/edupulse/internal/pkg/metrics"
	"github.com/edupulse/edupulse/internal/pkg/websocket"
	"github.com/rs/zerolog"
)

// ChatService defines the interface for chat operations
type ChatService interface {
	// Authorize resolves a room to its session and checks the caller may use it
	Authorize(ctx context.Context, id appauth.Identity, room string) (*models.MentorshipSession, error)
	Room(ctx context.Context, id appauth.Identity, room string) (*dto.ChatRoomResponse, error)
	PostMessage(ctx context.Context, id appauth.Identity, room, text string) (*models.ChatMessage, error)
	// Participant binds an already authorized caller to a room for the WebSocket gateway
	Participant(id appauth.Identity, room string) websocket.Participant
}

// chatServiceImpl implements ChatService
type chatServiceImpl struct {
	sessionRepo *repositories.SessionRepository
	chatRepo    *repositories.ChatRepository
	broadcaster websocket.Broadcaster
	metrics     *metrics.Metrics
	now         func() time.Time
	logger      zerolog.Logger
}

// NewChatService creates a new ChatService
func NewChatService(
	sessionRepo *repositories.SessionRepository,
	chatRepo *repositories.ChatRepository,
	broadcaster websocket.Broadcaster,
	m *metrics.Metrics,
	now func() time.Time,
	logger zerolog.Logger,
) ChatService {
	return &chatServiceImpl{
		sessionRepo: sessionRepo,
		chatRepo:    chatRepo,
		broadcaster: broadcaster,
		metrics:     m,
		now:         now,
		logger:      logger,
	}
}

func (s *chatServiceImpl) Authorize(ctx context.Context, id appauth.Identity, room string) (*models.MentorshipSession, error) {
	sessionID, ok := strings.CutPrefix(room, models.ChatRoomPrefix)
	if !ok || sessionID == "" {
		return nil, apperrors.NewResourceNotFoundError("Chat room not found")
	}
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := appauth.AuthorizeSessionViewer(id, session); err != nil {
		return nil, apperrors.NewForbiddenError("You do not have access to this chat room")
	}
	return session, nil
}

func (s *chatServiceImpl) Room(ctx context.Context, id appauth.Identity, room string) (*dto.ChatRoomResponse, error) {
	session, err := s.Authorize(ctx, id, room)
	if err != nil {
		return nil, err
	}
	messages, err := s.chatRepo.History(ctx, room)
	if err != nil {
		return nil, fmt.Errorf("error loading chat history: %w", err)
	}
	return &dto.ChatRoomResponse{
		Room:     room,
		Session:  session,
		Messages: messages,
	}, nil
}

func (s *chatServiceImpl) PostMessage(ctx context.Context, id appauth.Identity, room, text string) (*models.ChatMessage, error) {
	if _, err := s.Authorize(ctx, id, room); err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.NewValidationError("text", "text is required")
	}
	return s.publish(ctx, room, id.DisplayName(), text, metrics.ChatKindMessage)
}

func (s *chatServiceImpl) Participant(id appauth.Identity, room string) websocket.Participant {
	return &chatParticipant{service: s, room: room, name: id.DisplayName()}
}

// publish appends the line to the room log, then fans it out. Fan-out is
// best effort: a failure is logged and the appended line is kept.
func (s *chatServiceImpl) publish(ctx context.Context, room, user, text, kind string) (*models.ChatMessage, error) {
	message := models.ChatMessage{
		User:      user,
		Text:      text,
		Timestamp: helpers.FormatTimestamp(s.now()),
	}
	if err := s.chatRepo.Append(ctx, room, message); err != nil {
		return nil, fmt.Errorf("error appending chat message: %w", err)
	}
	s.metrics.RecordChatLine(kind)

	msgType := websocket.MessageTypeSystem
	if kind == metrics.ChatKindMessage {
		msgType = websocket.MessageTypeChat
	}
	if s.broadcaster != nil {
		err := s.broadcaster.Broadcast(ctx, &websocket.Message{
			Type:      msgType,
			Room:      room,
			User:      message.User,
			Text:      message.Text,
			Timestamp: message.Timestamp,
		})
		if err != nil {
			s.logger.Warn().Err(err).Str("room", room).Msg("Failed to broadcast chat message")
		}
	}
	return &message, nil
}

// chatParticipant is one connected member of a room
type chatParticipant struct {
	service *chatServiceImpl
	room    string
	name    string
}

func (p *chatParticipant) Join(ctx context.Context) error {
	_, err := p.service.publish(ctx, p.room, models.SystemSender, p.name+" has joined the chat", metrics.ChatKindJoin)
	return err
}

func (p *chatParticipant) Say(ctx context.Context, text string) error {
	_, err := p.service.publish(ctx, p.room, p.name, text, metrics.ChatKindMessage)
	return err
}

func (p *chatParticipant) Leave(ctx context.Context) error {
	_, err := p.service.publish(ctx, p.room, models.SystemSender, p.name+" has left the chat", metrics.ChatKindLeave)
	return err
}
