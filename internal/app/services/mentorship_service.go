package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	appauth "github.com/edupulse/edupulse/internal/app/auth"
	"github.com/edupulse/edupulse/internal/app/models"
	"github.com/edupulse/edupulse/internal/app/models/dto"
	"github.com/edupulse/edupulse/internal/app/repositories"
	"github.com/edupulse/edupulse/internal/pkg/apperrors"
	"github.com/edupulse/edupulse/internal/pkg/helpers"
	"github.com/edupulse/edupulse/internal/pkg/metrics"
	"github.com/rs/zerolog"
)

// sessionCodeAttempts bounds retries when a generated session id is taken
const sessionCodeAttempts = 5

// MentorshipService drives the session lifecycle:
// pending_approval -> approved -> scheduled -> active -> completed, with
// pending_approval -> rejected as a terminal side branch. Payment moves a
// session from approved to scheduled and lives in PaymentService.
type MentorshipService interface {
	Request(ctx context.Context, id appauth.Identity, req *dto.MentorshipRequest) (*models.MentorshipSession, error)
	Accept(ctx context.Context, id appauth.Identity, req *dto.SessionActionRequest) (*models.MentorshipSession, error)
	Reject(ctx context.Context, id appauth.Identity, sessionID string) (*models.MentorshipSession, error)
	Complete(ctx context.Context, id appauth.Identity, sessionID string) (*models.MentorshipSession, error)
	GetSession(ctx context.Context, id appauth.Identity, sessionID string) (*models.MentorshipSession, error)
	EnterVideoCall(ctx context.Context, id appauth.Identity, sessionID string) (*models.MentorshipSession, error)
}

type mentorshipServiceImpl struct {
	userRepo    *repositories.UserRepository
	sessionRepo *repositories.SessionRepository
	settings    MentorshipSettings
	metrics     *metrics.Metrics
	now         func() time.Time
	newCode     func() string
	logger      zerolog.Logger
}

// NewMentorshipService creates a new MentorshipService
func NewMentorshipService(
	userRepo *repositories.UserRepository,
	sessionRepo *repositories.SessionRepository,
	settings MentorshipSettings,
	m *metrics.Metrics,
	now func() time.Time,
	logger zerolog.Logger,
) MentorshipService {
	return &mentorshipServiceImpl{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		settings:    settings,
		metrics:     m,
		now:         now,
		newCode:     helpers.NewSessionCode,
		logger:      logger,
	}
}

// SessionCost prices a session from the mentor's hourly rate
func SessionCost(hourlyRate float64, duration int) (usd, inr float64) {
	usd = hourlyRate / 60 * float64(duration)
	return usd, usd * models.INRPerUSD
}

func (s *mentorshipServiceImpl) Request(ctx context.Context, id appauth.Identity, req *dto.MentorshipRequest) (*models.MentorshipSession, error) {
	if err := id.RequireRole(models.RoleStudent, "request mentorship"); err != nil {
		return nil, err
	}
	if id.StudentID == "" {
		return nil, apperrors.NewForbiddenError("Your account has no student id")
	}

	mentor, err := s.userRepo.GetMentorByID(ctx, req.MentorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.NewResourceNotFoundError("Mentor not found")
		}
		return nil, fmt.Errorf("error loading mentor: %w", err)
	}

	duration := req.Duration
	if duration <= 0 {
		duration = DefaultSessionDuration
	}
	rate := mentor.HourlyRate
	if rate <= 0 {
		rate = s.settings.DefaultHourlyRate
	}
	costUSD, costINR := SessionCost(rate, duration)

	session := &models.MentorshipSession{
		StudentID:     id.StudentID,
		StudentName:   id.DisplayName(),
		MentorID:      mentor.MentorID,
		MentorName:    mentor.DisplayName(),
		Date:          req.Date,
		Time:          req.Time,
		Duration:      duration,
		Topic:         req.Topic,
		Status:        models.SessionPendingApproval,
		CostUSD:       costUSD,
		CostINR:       costINR,
		PaymentStatus: models.PaymentAwaitingApproval,
		CreatedAt:     helpers.FormatTimestamp(s.now()),
		MeetingLink:   "",
	}

	for attempt := 1; ; attempt++ {
		session.SessionID = s.newCode()
		session.ChatRoom = models.ChatRoomFor(session.SessionID)

		err = s.sessionRepo.Create(ctx, session)
		if err == nil {
			break
		}
		if !errors.Is(err, apperrors.ErrResourceAlreadyExists) || attempt == sessionCodeAttempts {
			return nil, fmt.Errorf("error creating session: %w", err)
		}
	}

	s.metrics.RecordTransition(metrics.TransitionRequest)
	s.logger.Info().
		Str("sessionID", session.SessionID).
		Str("studentID", session.StudentID).
		Str("mentorID", session.MentorID).
		Str("cost", helpers.FormatUSD(session.CostUSD)).
		Msg("Mentorship requested")
	return session, nil
}

func (s *mentorshipServiceImpl) Accept(ctx context.Context, id appauth.Identity, req *dto.SessionActionRequest) (*models.MentorshipSession, error) {
	session, err := s.sessionRepo.Update(ctx, req.SessionID, func(session *models.MentorshipSession) error {
		if err := appauth.AuthorizeSessionMentor(id, session, "accept this request"); err != nil {
			return err
		}
		if session.Status != models.SessionPendingApproval {
			return apperrors.NewInvalidStateError("This session is not pending approval")
		}
		session.Status = models.SessionApproved
		session.PaymentStatus = models.PaymentPending
		session.MentorPaymentDetails = req.PaymentDetails
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordTransition(metrics.TransitionAccept)
	s.logger.Info().Str("sessionID", session.SessionID).Str("mentorID", id.MentorID).Msg("Mentorship accepted")
	return session, nil
}

func (s *mentorshipServiceImpl) Reject(ctx context.Context, id appauth.Identity, sessionID string) (*models.MentorshipSession, error) {
	session, err := s.sessionRepo.Update(ctx, sessionID, func(session *models.MentorshipSession) error {
		if err := appauth.AuthorizeSessionMentor(id, session, "reject this request"); err != nil {
			return err
		}
		if session.Status != models.SessionPendingApproval {
			return apperrors.NewInvalidStateError("This session is not pending approval")
		}
		session.Status = models.SessionRejected
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordTransition(metrics.TransitionReject)
	s.logger.Info().Str("sessionID", session.SessionID).Str("mentorID", id.MentorID).Msg("Mentorship rejected")
	return session, nil
}

func (s *mentorshipServiceImpl) Complete(ctx context.Context, id appauth.Identity, sessionID string) (*models.MentorshipSession, error) {
	session, err := s.sessionRepo.Update(ctx, sessionID, func(session *models.MentorshipSession) error {
		if err := appauth.AuthorizeSessionMentor(id, session, "complete this session"); err != nil {
			return err
		}
		if session.Status != models.SessionActive {
			return apperrors.NewInvalidStateError("Only active sessions can be completed")
		}
		session.Status = models.SessionCompleted
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordTransition(metrics.TransitionComplete)
	s.logger.Info().Str("sessionID", session.SessionID).Msg("Mentorship completed")
	return session, nil
}

func (s *mentorshipServiceImpl) GetSession(ctx context.Context, id appauth.Identity, sessionID string) (*models.MentorshipSession, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := appauth.AuthorizeSessionViewer(id, session); err != nil {
		return nil, err
	}
	return session, nil
}

// EnterVideoCall admits the student or mentor of a scheduled or active
// session. The first entry moves a scheduled session to active.
func (s *mentorshipServiceImpl) EnterVideoCall(ctx context.Context, id appauth.Identity, sessionID string) (*models.MentorshipSession, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := checkVideoCall(id, session); err != nil {
		return nil, err
	}
	if session.Status == models.SessionActive {
		return session, nil
	}

	session, err = s.sessionRepo.Update(ctx, sessionID, func(session *models.MentorshipSession) error {
		if err := checkVideoCall(id, session); err != nil {
			return err
		}
		session.Status = models.SessionActive
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordTransition(metrics.TransitionActivate)
	s.logger.Info().Str("sessionID", session.SessionID).Str("user", id.Username).Msg("Session activated")
	return session, nil
}

func checkVideoCall(id appauth.Identity, session *models.MentorshipSession) error {
	if err := appauth.AuthorizeSessionParty(id, session); err != nil {
		return err
	}
	if session.Status != models.SessionScheduled && session.Status != models.SessionActive {
		return apperrors.NewInvalidStateError("This session is not currently active")
	}
	return nil
}
