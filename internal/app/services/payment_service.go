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
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// PaymentService records payments for approved sessions. No gateway is
// contacted: the payment is fabricated locally and is always completed.
type PaymentService interface {
	Pay(ctx context.Context, id appauth.Identity, req *dto.PaymentRequest) (*dto.PaymentResponse, error)
}

type paymentServiceImpl struct {
	sessionRepo *repositories.SessionRepository
	paymentRepo *repositories.PaymentRepository
	settings    MentorshipSettings
	metrics     *metrics.Metrics
	now         func() time.Time
	logger      zerolog.Logger
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	sessionRepo *repositories.SessionRepository,
	paymentRepo *repositories.PaymentRepository,
	settings MentorshipSettings,
	m *metrics.Metrics,
	now func() time.Time,
	logger zerolog.Logger,
) PaymentService {
	return &paymentServiceImpl{
		sessionRepo: sessionRepo,
		paymentRepo: paymentRepo,
		settings:    settings,
		metrics:     m,
		now:         now,
		logger:      logger,
	}
}

func (s *paymentServiceImpl) Pay(ctx context.Context, id appauth.Identity, req *dto.PaymentRequest) (*dto.PaymentResponse, error) {
	session, err := s.sessionRepo.GetByID(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}
	if err := checkPayable(id, session); err != nil {
		return nil, err
	}

	payment := buildPayment(session, req, helpers.FormatTimestamp(s.now()))
	meetingLink := strings.TrimRight(s.settings.MeetingBaseURL, "/") + "/" + session.SessionID

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("error recording payment: %w", err)
	}

	session, err = s.sessionRepo.Update(ctx, req.SessionID, func(session *models.MentorshipSession) error {
		if err := checkPayable(id, session); err != nil {
			return err
		}
		session.Status = models.SessionScheduled
		session.PaymentStatus = models.PaymentPaid
		session.PaymentID = payment.PaymentID
		session.MeetingLink = meetingLink
		return nil
	})
	if err != nil {
		s.logger.Error().Err(err).
			Str("sessionID", req.SessionID).
			Str("paymentID", payment.PaymentID).
			Msg("Payment recorded but session was not updated")
		return nil, err
	}

	s.metrics.RecordTransition(metrics.TransitionPay)
	s.metrics.RecordPayment(string(payment.Currency), string(payment.PaymentMethod))
	s.logger.Info().
		Str("sessionID", session.SessionID).
		Str("paymentID", payment.PaymentID).
		Str("currency", string(payment.Currency)).
		Float64("amount", payment.Amount).
		Msg("Payment processed")

	return &dto.PaymentResponse{
		PaymentID:   payment.PaymentID,
		MeetingLink: session.MeetingLink,
		Payment:     payment,
		Session:     session,
	}, nil
}

func checkPayable(id appauth.Identity, session *models.MentorshipSession) error {
	if err := appauth.AuthorizeSessionStudent(id, session, "pay"); err != nil {
		return err
	}
	if session.Status != models.SessionApproved {
		return apperrors.NewInvalidStateError("Payment can only be processed for approved sessions")
	}
	return nil
}

// buildPayment prices the session in the requested currency and keeps only
// masked details of the chosen method.
func buildPayment(session *models.MentorshipSession, req *dto.PaymentRequest, timestamp string) *models.Payment {
	currency := req.Currency
	if currency == "" {
		currency = models.CurrencyINR
	}
	method := req.PaymentMethod
	if method == "" {
		method = models.PaymentMethodCreditCard
	}

	amount := session.CostINR
	if currency == models.CurrencyUSD {
		amount = session.CostUSD
	}

	payment := &models.Payment{
		PaymentID:     uuid.New().String(),
		SessionID:     session.SessionID,
		StudentID:     session.StudentID,
		MentorID:      session.MentorID,
		Amount:        amount,
		Currency:      currency,
		PaymentMethod: method,
		Status:        models.PaymentCompleted,
		Timestamp:     timestamp,
	}

	switch method {
	case models.PaymentMethodCreditCard:
		payment.CardLast4 = lastFour(req.CardNumber)
		payment.CardHolder = req.CardHolder
	case models.PaymentMethodUPI:
		payment.UPIID = req.UPIID
	case models.PaymentMethodBankTransfer:
		payment.BankAccountLast4 = lastFour(req.BankAccount)
		payment.IFSCCode = req.IFSCCode
	}
	return payment
}

// lastFour keeps the last four characters of a card or account number,
// "****" when none was given
func lastFour(number string) string {
	number = strings.ReplaceAll(strings.TrimSpace(number), " ", "")
	if number == "" {
		return "****"
	}
	if len(number) <= 4 {
		return number
	}
	return number[len(number)-4:]
}
