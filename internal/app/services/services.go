// Package services holds the business logic behind the HTTP handlers.
// Every call receives the caller's auth.Identity explicitly.
package services

import (
	"time"

	"github.com/edupulse/edupulse/internal/app/repositories"
	"github.com/edupulse/edupulse/internal/pkg/auth"
	"github.com/edupulse/edupulse/internal/pkg/metrics"
	"github.com/edupulse/edupulse/internal/pkg/websocket"
	"github.com/rs/zerolog"
)

// DefaultSessionDuration is used when a request does not name a duration, in minutes
const DefaultSessionDuration = 60

// MentorshipSettings holds the pricing and meeting settings of the workflow
type MentorshipSettings struct {
	MeetingBaseURL    string
	DefaultHourlyRate float64
}

// Services groups every service of the application
type Services struct {
	Auth       AuthService
	Analytics  AnalyticsService
	Mentorship MentorshipService
	Payment    PaymentService
	Chat       ChatService
	Dashboard  DashboardService
}

// Options carries what NewServices needs besides the repositories
type Options struct {
	JWT         *auth.JWTService
	Passwords   *auth.PasswordHasher
	Broadcaster websocket.Broadcaster
	Metrics     *metrics.Metrics
	Mentorship  MentorshipSettings
	Now         func() time.Time
	Logger      zerolog.Logger
}

// NewServices wires every service on top of repos
func NewServices(repos *repositories.Repositories, opts Options) *Services {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.NewMetrics()
	}
	lgr := opts.Logger

	return &Services{
		Auth:       NewAuthService(repos.UserRepository, opts.JWT, opts.Passwords, opts.Now, lgr.With().Str("service", "auth").Logger()),
		Analytics:  NewAnalyticsService(repos.StudentRecordRepository, opts.Metrics, opts.Now, lgr.With().Str("service", "analytics").Logger()),
		Mentorship: NewMentorshipService(repos.UserRepository, repos.SessionRepository, opts.Mentorship, opts.Metrics, opts.Now, lgr.With().Str("service", "mentorship").Logger()),
		Payment:    NewPaymentService(repos.SessionRepository, repos.PaymentRepository, opts.Mentorship, opts.Metrics, opts.Now, lgr.With().Str("service", "payment").Logger()),
		Chat:       NewChatService(repos.SessionRepository, repos.ChatRepository, opts.Broadcaster, opts.Metrics, opts.Now, lgr.With().Str("service", "chat").Logger()),
		Dashboard:  NewDashboardService(repos.UserRepository, repos.SessionRepository, repos.StudentRecordRepository, opts.Now, lgr.With().Str("service", "dashboard").Logger()),
	}
}
