package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/edupulse/edupulse/internal/app/models"
	"github.com/edupulse/edupulse/internal/pkg/apperrors"
	"github.com/edupulse/edupulse/internal/seed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedDashboardSessions(t *testing.T, env *testEnv) {
	t.Helper()
	put := func(id string, status models.SessionStatus, pay models.PaymentStatus, cost float64, createdAt string) {
		env.putSession(t, models.MentorshipSession{
			SessionID: id, StudentID: seed.StudentID, MentorID: seed.MentorID,
			Status: status, PaymentStatus: pay, CostUSD: cost, CreatedAt: createdAt,
		})
	}
	put("PEND0001", models.SessionPendingApproval, models.PaymentAwaitingApproval, 10, "2024-03-01 09:00:00")
	put("APPR0001", models.SessionApproved, models.PaymentPending, 20, "2024-03-02 09:00:00")
	put("SCHD0001", models.SessionScheduled, models.PaymentPaid, 30, "2024-03-03 09:00:00")
	put("ACTV0001", models.SessionActive, models.PaymentPaid, 40, "2024-02-10 09:00:00")
	put("DONE0001", models.SessionCompleted, models.PaymentPaid, 50, "2024-03-04 09:00:00")
	put("REJC0001", models.SessionRejected, models.PaymentAwaitingApproval, 60, "2024-03-05 09:00:00")
}

func TestAdminDashboard(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	seedDashboardSessions(t, env)

	dash, err := env.svc.Dashboard.Admin(ctx, adminIdentity())
	require.NoError(t, err)

	assert.Equal(t, 1, dash.TotalStudents)
	assert.Equal(t, 1, dash.TotalMentors)
	assert.Equal(t, 1, dash.Risk.High)
	assert.Equal(t, 1, dash.Risk.Medium)
	assert.Equal(t, 1, dash.Risk.Low)

	assert.Equal(t, 6, dash.Sessions.Total)
	assert.Equal(t, 1, dash.Sessions.Pending)
	assert.Equal(t, 3, dash.Sessions.Active)
	assert.Equal(t, 1, dash.Sessions.Completed)
	assert.Equal(t, 120.0, dash.TotalRevenue)

	require.Len(t, dash.RecentActivities, 6)
	assert.Equal(t, "REJC0001", dash.RecentActivities[0].SessionID)
	assert.Equal(t, "ACTV0001", dash.RecentActivities[5].SessionID)

	_, err = env.svc.Dashboard.Admin(ctx, studentIdentity())
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestAdminDashboardRecentActivityLimit(t *testing.T) {
	env := newTestEnv(t)
	for i := 0; i < 12; i++ {
		env.putSession(t, models.MentorshipSession{
			SessionID: fmt.Sprintf("RECENT%02d", i),
			Status:    models.SessionPendingApproval,
			CreatedAt: fmt.Sprintf("2024-03-%02d 09:00:00", i+1),
		})
	}

	dash, err := env.svc.Dashboard.Admin(context.Background(), adminIdentity())
	require.NoError(t, err)
	require.Len(t, dash.RecentActivities, recentActivityLimit)
	assert.Equal(t, "RECENT11", dash.RecentActivities[0].SessionID)
	assert.Equal(t, 12, dash.Sessions.Total)
}

func TestStudentDashboard(t *testing.T) {
	env := newTestEnv(t)
	seedDashboardSessions(t, env)
	env.putSession(t, models.MentorshipSession{SessionID: "OTHR0001", StudentID: "S99999", Status: models.SessionActive})

	dash, err := env.svc.Dashboard.Student(context.Background(), studentIdentity())
	require.NoError(t, err)

	assert.Equal(t, seed.StudentID, dash.StudentID)
	assert.Len(t, dash.Records, 1)
	require.Len(t, dash.Mentors, 1)
	assert.Empty(t, dash.Mentors[0].PaymentDetails)

	var active, pending []string
	for _, s := range dash.ActiveSessions {
		active = append(active, s.SessionID)
	}
	for _, s := range dash.PendingSessions {
		pending = append(pending, s.SessionID)
	}
	assert.ElementsMatch(t, []string{"SCHD0001", "ACTV0001"}, active)
	assert.ElementsMatch(t, []string{"PEND0001", "APPR0001"}, pending)

	_, err = env.svc.Dashboard.Student(context.Background(), mentorIdentity())
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestMentorDashboard(t *testing.T) {
	env := newTestEnv(t)
	seedDashboardSessions(t, env)

	dash, err := env.svc.Dashboard.Mentor(context.Background(), mentorIdentity())
	require.NoError(t, err)

	assert.Equal(t, "Dr. Jane Mentor", dash.Mentor.Name)
	assert.Equal(t, 4.8, dash.Mentor.Rating)
	require.Len(t, dash.PendingRequests, 1)
	assert.Len(t, dash.ActiveSessions, 3)
	assert.Len(t, dash.CompletedSessions, 1)

	// paid: scheduled 30 + active 40 + completed 50; the active one is from February
	assert.Equal(t, 120.0, dash.TotalEarnings)
	assert.Equal(t, 80.0, dash.MonthlyEarnings)
	assert.Equal(t, models.MentorReviews, dash.Reviews)

	_, err = env.svc.Dashboard.Mentor(context.Background(), otherMentorIdentity())
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	_, err = env.svc.Dashboard.Mentor(context.Background(), adminIdentity())
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestMentorDashboardDefaults(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	require.NoError(t, env.repos.UserRepository.Create(ctx, &models.User{
		Username:      "bare",
		Role:          models.RoleMentor,
		MentorProfile: &models.MentorProfile{MentorID: "M11111"},
	}))

	id := otherMentorIdentity()
	id.MentorID = "M11111"
	dash, err := env.svc.Dashboard.Mentor(ctx, id)
	require.NoError(t, err)

	assert.Equal(t, 4.5, dash.Mentor.Rating)
	assert.Equal(t, "General Education", dash.Mentor.Specialization)
	assert.Equal(t, 3, dash.Mentor.Experience)
	assert.Equal(t, 50.0, dash.Mentor.HourlyRate)
	assert.Equal(t, []string{"Monday", "Wednesday", "Friday"}, dash.Mentor.Availability)
	assert.Zero(t, dash.TotalEarnings)
}

func TestListMentorsHidesPaymentDetails(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	_, err := env.repos.UserRepository.UpdateMentorProfile(ctx, seed.MentorID, func(p *models.MentorProfile) {
		p.PaymentDetails = "secret account"
	})
	require.NoError(t, err)

	mentors, err := env.svc.Dashboard.ListMentors(ctx)
	require.NoError(t, err)
	require.Len(t, mentors, 1)
	assert.Empty(t, mentors[0].PaymentDetails)

	stored, err := env.repos.UserRepository.GetMentorByID(ctx, seed.MentorID)
	require.NoError(t, err)
	assert.Equal(t, "secret account", stored.PaymentDetails)
}
