package repositories

import (
	"context"
	"sort"

	"github.com/edupulse/edupulse/internal/app/models"
	"github.com/edupulse/edupulse/internal/pkg/apperrors"
	"github.com/edupulse/edupulse/internal/pkg/docstore"
)

// SessionRepository reads and writes the mentorship_sessions document
type SessionRepository struct {
	doc *docstore.Document[models.SessionMap]
}

func NewSessionRepository(doc *docstore.Document[models.SessionMap]) *SessionRepository {
	return &SessionRepository{doc: doc}
}

// Create stores a new session; an id collision is a conflict
func (r *SessionRepository) Create(ctx context.Context, session *models.MentorshipSession) error {
	_, err := r.doc.Update(ctx, func(sessions models.SessionMap) (models.SessionMap, error) {
		if _, exists := sessions[session.SessionID]; exists {
			return sessions, apperrors.NewConflictError("Session id already in use")
		}
		sessions[session.SessionID] = *session
		return sessions, nil
	})
	return err
}

func (r *SessionRepository) GetByID(ctx context.Context, sessionID string) (*models.MentorshipSession, error) {
	sessions, err := r.doc.Load(ctx)
	if err != nil {
		return nil, err
	}
	session, ok := sessions[sessionID]
	if !ok {
		return nil, apperrors.NewResourceNotFoundError("Session not found")
	}
	return &session, nil
}

// Update loads the session, lets fn mutate it and saves the document. When fn
// returns an error nothing is written.
func (r *SessionRepository) Update(ctx context.Context, sessionID string, fn func(*models.MentorshipSession) error) (*models.MentorshipSession, error) {
	var updated models.MentorshipSession
	_, err := r.doc.Update(ctx, func(sessions models.SessionMap) (models.SessionMap, error) {
		session, ok := sessions[sessionID]
		if !ok {
			return sessions, apperrors.NewResourceNotFoundError("Session not found")
		}
		if err := fn(&session); err != nil {
			return sessions, err
		}
		sessions[sessionID] = session
		updated = session
		return sessions, nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// List returns all sessions, newest first
func (r *SessionRepository) List(ctx context.Context) ([]models.MentorshipSession, error) {
	sessions, err := r.doc.Load(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.MentorshipSession, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt > out[j].CreatedAt
		}
		return out[i].SessionID < out[j].SessionID
	})
	return out, nil
}
