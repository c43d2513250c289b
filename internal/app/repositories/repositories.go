package repositories

import (
	"time"

	"github.com/edupulse/edupulse/internal/app/models"
	"github.com/edupulse/edupulse/internal/pkg/docstore"
	"github.com/edupulse/edupulse/internal/seed"
	"github.com/rs/zerolog"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository          *UserRepository
	SessionRepository       *SessionRepository
	PaymentRepository       *PaymentRepository
	ChatRepository          *ChatRepository
	StudentRecordRepository *StudentRecordRepository
}

// NewRepositories binds one document per repository on the given backend.
// now stamps the created_at of seeded accounts.
func NewRepositories(backend docstore.Backend, lgr zerolog.Logger, now func() time.Time) *Repositories {
	users := docstore.New(backend, models.DocumentUsers, func() models.UserMap { return seed.Users(now()) }, lgr)
	sessions := docstore.New(backend, models.DocumentSessions, seed.Sessions, lgr)
	payments := docstore.New(backend, models.DocumentPayments, seed.Payments, lgr)
	chats := docstore.New(backend, models.DocumentChatMessages, seed.ChatMessages, lgr)
	records := docstore.New(backend, models.DocumentStudentRecords, seed.StudentRecords, lgr)

	return &Repositories{
		UserRepository:          NewUserRepository(users),
		SessionRepository:       NewSessionRepository(sessions),
		PaymentRepository:       NewPaymentRepository(payments),
		ChatRepository:          NewChatRepository(chats),
		StudentRecordRepository: NewStudentRecordRepository(records),
	}
}

// Documents lists every document for seeding at startup
func (r *Repositories) Documents() []seed.Ensurer {
	return []seed.Ensurer{
		r.UserRepository.doc,
		r.SessionRepository.doc,
		r.PaymentRepository.doc,
		r.ChatRepository.doc,
		r.StudentRecordRepository.doc,
	}
}
