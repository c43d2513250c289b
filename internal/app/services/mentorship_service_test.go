package services

import (
	"context"
	"testing"

	"github.com/edupulse/edupulse/internal/app/models"
	"github.com/edupulse/edupulse/internal/app/models/dto"
	"github.com/edupulse/edupulse/internal/pkg/apperrors"
	"github.com/edupulse/edupulse/internal/seed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requestSession(t *testing.T, env *testEnv) *models.MentorshipSession {
	t.Helper()
	session, err := env.svc.Mentorship.Request(context.Background(), studentIdentity(), &dto.MentorshipRequest{
		MentorID: seed.MentorID,
		Date:     "2024-03-20",
		Time:     "15:00",
		Topic:    "Graph algorithms",
	})
	require.NoError(t, err)
	return session
}

func TestSessionCost(t *testing.T) {
	usd, inr := SessionCost(60, 30)
	assert.Equal(t, 30.0, usd)
	assert.Equal(t, 2505.0, inr)

	for _, tc := range []struct {
		rate     float64
		duration int
	}{{50, 60}, {45, 90}, {120, 15}, {33.3, 45}} {
		usd, inr := SessionCost(tc.rate, tc.duration)
		assert.Equal(t, usd*83.5, inr, "rate %v duration %d", tc.rate, tc.duration)
	}
}

func TestRequestPricesFromMentorRate(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	require.NoError(t, env.repos.UserRepository.Create(ctx, &models.User{
		Username: "pricey",
		Role:     models.RoleMentor,
		Name:     "Pricey Mentor",
		MentorProfile: &models.MentorProfile{
			MentorID:   "M60000",
			HourlyRate: 60,
		},
	}))

	session, err := env.svc.Mentorship.Request(ctx, studentIdentity(), &dto.MentorshipRequest{
		MentorID: "M60000",
		Date:     "2024-03-20",
		Time:     "15:00",
		Duration: 30,
		Topic:    "Calculus",
	})
	require.NoError(t, err)

	assert.Equal(t, 30.0, session.CostUSD)
	assert.Equal(t, 2505.0, session.CostINR)
	assert.Equal(t, 30, session.Duration)
	assert.Equal(t, "Pricey Mentor", session.MentorName)
	assert.Equal(t, "John Student", session.StudentName)
}

func TestRequestDefaults(t *testing.T) {
	env := newTestEnv(t)
	session := requestSession(t, env)

	assert.Regexp(t, `^[A-Z0-9]{8}$`, session.SessionID)
	assert.Equal(t, "session_"+session.SessionID, session.ChatRoom)
	assert.Equal(t, DefaultSessionDuration, session.Duration)
	assert.Equal(t, 50.0, session.CostUSD)
	assert.Equal(t, 4175.0, session.CostINR)
	assert.Equal(t, models.SessionPendingApproval, session.Status)
	assert.Equal(t, models.PaymentAwaitingApproval, session.PaymentStatus)
	assert.Equal(t, "2024-03-15 10:30:00", session.CreatedAt)
	assert.Empty(t, session.MeetingLink)

	stored, err := env.repos.SessionRepository.GetByID(context.Background(), session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, session, stored)
}

func TestRequestUsesDefaultRateWhenMentorHasNone(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	require.NoError(t, env.repos.UserRepository.Create(ctx, &models.User{
		Username:      "free",
		Role:          models.RoleMentor,
		MentorProfile: &models.MentorProfile{MentorID: "M00001"},
	}))

	session, err := env.svc.Mentorship.Request(ctx, studentIdentity(), &dto.MentorshipRequest{
		MentorID: "M00001", Date: "d", Time: "t", Duration: 90, Topic: "x",
	})
	require.NoError(t, err)
	assert.Equal(t, 75.0, session.CostUSD)
}

func TestRequestErrors(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := env.svc.Mentorship.Request(ctx, studentIdentity(), &dto.MentorshipRequest{MentorID: "M00000", Date: "d", Time: "t", Topic: "x"})
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	_, err = env.svc.Mentorship.Request(ctx, mentorIdentity(), &dto.MentorshipRequest{MentorID: seed.MentorID, Date: "d", Time: "t", Topic: "x"})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	sessions, err := env.repos.SessionRepository.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestRequestRetriesTakenSessionCode(t *testing.T) {
	env := newTestEnv(t)
	env.putSession(t, models.MentorshipSession{SessionID: "AAAAAAAA", Status: models.SessionPendingApproval})

	codes := []string{"AAAAAAAA", "BBBBBBBB"}
	impl := env.svc.Mentorship.(*mentorshipServiceImpl)
	impl.newCode = func() string {
		code := codes[0]
		codes = codes[1:]
		return code
	}

	session := requestSession(t, env)
	assert.Equal(t, "BBBBBBBB", session.SessionID)
	assert.Equal(t, "session_BBBBBBBB", session.ChatRoom)
}

func TestFullLifecycle(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	session := requestSession(t, env)

	accepted, err := env.svc.Mentorship.Accept(ctx, mentorIdentity(), &dto.SessionActionRequest{
		SessionID:      session.SessionID,
		PaymentDetails: "UPI: jane@bank",
	})
	require.NoError(t, err)
	assert.Equal(t, models.SessionApproved, accepted.Status)
	assert.Equal(t, models.PaymentPending, accepted.PaymentStatus)
	assert.Equal(t, "UPI: jane@bank", accepted.MentorPaymentDetails)

	paid, err := env.svc.Payment.Pay(ctx, studentIdentity(), &dto.PaymentRequest{SessionID: session.SessionID})
	require.NoError(t, err)
	assert.Equal(t, models.SessionScheduled, paid.Session.Status)
	assert.Equal(t, models.PaymentPaid, paid.Session.PaymentStatus)

	active, err := env.svc.Mentorship.EnterVideoCall(ctx, mentorIdentity(), session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, models.SessionActive, active.Status)

	again, err := env.svc.Mentorship.EnterVideoCall(ctx, studentIdentity(), session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, models.SessionActive, again.Status)

	done, err := env.svc.Mentorship.Complete(ctx, mentorIdentity(), session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, models.SessionCompleted, done.Status)
	assert.Equal(t, models.PaymentPaid, done.PaymentStatus)

	_, err = env.svc.Mentorship.EnterVideoCall(ctx, studentIdentity(), session.SessionID)
	assert.ErrorIs(t, err, apperrors.ErrInvalidState)
}

func TestTransitionsRequireOwner(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	session := requestSession(t, env)
	action := &dto.SessionActionRequest{SessionID: session.SessionID}

	_, err := env.svc.Mentorship.Accept(ctx, otherMentorIdentity(), action)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = env.svc.Mentorship.Accept(ctx, studentIdentity(), action)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = env.svc.Mentorship.Reject(ctx, adminIdentity(), session.SessionID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	stored, err := env.repos.SessionRepository.GetByID(ctx, session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, models.SessionPendingApproval, stored.Status)

	_, err = env.svc.Mentorship.Accept(ctx, mentorIdentity(), &dto.SessionActionRequest{SessionID: "NOPE0000"})
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestRejectIsTerminal(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	session := requestSession(t, env)

	rejected, err := env.svc.Mentorship.Reject(ctx, mentorIdentity(), session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, models.SessionRejected, rejected.Status)
	assert.Equal(t, models.PaymentAwaitingApproval, rejected.PaymentStatus)

	_, err = env.svc.Mentorship.Accept(ctx, mentorIdentity(), &dto.SessionActionRequest{SessionID: session.SessionID})
	assert.ErrorIs(t, err, apperrors.ErrInvalidState)

	_, err = env.svc.Mentorship.Reject(ctx, mentorIdentity(), session.SessionID)
	assert.ErrorIs(t, err, apperrors.ErrInvalidState)

	_, err = env.svc.Payment.Pay(ctx, studentIdentity(), &dto.PaymentRequest{SessionID: session.SessionID})
	assert.ErrorIs(t, err, apperrors.ErrInvalidState)

	_, err = env.svc.Mentorship.EnterVideoCall(ctx, studentIdentity(), session.SessionID)
	assert.ErrorIs(t, err, apperrors.ErrInvalidState)

	stored, err := env.repos.SessionRepository.GetByID(ctx, session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, models.SessionRejected, stored.Status)
}

func TestCompleteRequiresActive(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.putSession(t, models.MentorshipSession{
		SessionID: "SCHED001", StudentID: seed.StudentID, MentorID: seed.MentorID,
		Status: models.SessionScheduled, PaymentStatus: models.PaymentPaid,
	})

	_, err := env.svc.Mentorship.Complete(ctx, mentorIdentity(), "SCHED001")
	assert.ErrorIs(t, err, apperrors.ErrInvalidState)

	_, err = env.svc.Mentorship.Complete(ctx, studentIdentity(), "SCHED001")
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestEnterVideoCall(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.putSession(t, models.MentorshipSession{
		SessionID: "VIDEO001", StudentID: seed.StudentID, MentorID: seed.MentorID,
		Status: models.SessionApproved, PaymentStatus: models.PaymentPending,
	})

	_, err := env.svc.Mentorship.EnterVideoCall(ctx, studentIdentity(), "VIDEO001")
	assert.ErrorIs(t, err, apperrors.ErrInvalidState)

	env.putSession(t, models.MentorshipSession{
		SessionID: "VIDEO002", StudentID: seed.StudentID, MentorID: seed.MentorID,
		Status: models.SessionScheduled, PaymentStatus: models.PaymentPaid,
	})

	_, err = env.svc.Mentorship.EnterVideoCall(ctx, adminIdentity(), "VIDEO002")
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = env.svc.Mentorship.EnterVideoCall(ctx, otherStudentIdentity(), "VIDEO002")
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	stored, err := env.repos.SessionRepository.GetByID(ctx, "VIDEO002")
	require.NoError(t, err)
	assert.Equal(t, models.SessionScheduled, stored.Status)

	active, err := env.svc.Mentorship.EnterVideoCall(ctx, studentIdentity(), "VIDEO002")
	require.NoError(t, err)
	assert.Equal(t, models.SessionActive, active.Status)

	_, err = env.svc.Mentorship.EnterVideoCall(ctx, studentIdentity(), "MISSING1")
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestGetSession(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	session := requestSession(t, env)

	for _, id := range []struct {
		name string
		ok   bool
		run  func() error
	}{
		{"student", true, func() error { _, err := env.svc.Mentorship.GetSession(ctx, studentIdentity(), session.SessionID); return err }},
		{"mentor", true, func() error { _, err := env.svc.Mentorship.GetSession(ctx, mentorIdentity(), session.SessionID); return err }},
		{"admin", true, func() error { _, err := env.svc.Mentorship.GetSession(ctx, adminIdentity(), session.SessionID); return err }},
		{"outsider", false, func() error { _, err := env.svc.Mentorship.GetSession(ctx, otherStudentIdentity(), session.SessionID); return err }},
	} {
		err := id.run()
		if id.ok {
			assert.NoError(t, err, id.name)
		} else {
			assert.ErrorIs(t, err, apperrors.ErrPermissionDenied, id.name)
		}
	}
}
