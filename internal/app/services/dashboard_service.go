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
	"github.com/rs/zerolog"
)

// recentActivityLimit is how many sessions the admin dashboard lists
const recentActivityLimit = 10

// Shown on the mentor dashboard for profile fields that were never filled in
var mentorProfileDefaults = models.MentorProfile{
	Specialization: "General Education",
	Experience:     3,
	HourlyRate:     50,
	Availability:   []string{"Monday", "Wednesday", "Friday"},
	Rating:         4.5,
}

// DashboardService builds the per-role dashboards
type DashboardService interface {
	Admin(ctx context.Context, id appauth.Identity) (*dto.AdminDashboardResponse, error)
	Student(ctx context.Context, id appauth.Identity) (*dto.StudentDashboardResponse, error)
	Mentor(ctx context.Context, id appauth.Identity) (*dto.MentorDashboardResponse, error)
	ListMentors(ctx context.Context) ([]*dto.UserResponse, error)
}

type dashboardServiceImpl struct {
	userRepo    *repositories.UserRepository
	sessionRepo *repositories.SessionRepository
	recordRepo  *repositories.StudentRecordRepository
	now         func() time.Time
	logger      zerolog.Logger
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	userRepo *repositories.UserRepository,
	sessionRepo *repositories.SessionRepository,
	recordRepo *repositories.StudentRecordRepository,
	now func() time.Time,
	logger zerolog.Logger,
) DashboardService {
	return &dashboardServiceImpl{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		recordRepo:  recordRepo,
		now:         now,
		logger:      logger,
	}
}

func (s *dashboardServiceImpl) Admin(ctx context.Context, id appauth.Identity) (*dto.AdminDashboardResponse, error) {
	if err := id.RequireRole(models.RoleAdmin, "view the admin dashboard"); err != nil {
		return nil, err
	}

	students, err := s.userRepo.ListByRole(ctx, models.RoleStudent)
	if err != nil {
		return nil, fmt.Errorf("error loading students: %w", err)
	}
	mentors, err := s.userRepo.ListByRole(ctx, models.RoleMentor)
	if err != nil {
		return nil, fmt.Errorf("error loading mentors: %w", err)
	}
	records, err := s.recordRepo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading student records: %w", err)
	}
	sessions, err := s.sessionRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading sessions: %w", err)
	}

	resp := &dto.AdminDashboardResponse{
		TotalStudents: len(students),
		TotalMentors:  len(mentors),
		Risk:          riskDistribution(records),
		Students:      dto.NewUserResponses(students),
		Mentors:       dto.NewUserResponses(mentors),
	}

	resp.Sessions.Total = len(sessions)
	for _, session := range sessions {
		switch {
		case session.Status == models.SessionPendingApproval:
			resp.Sessions.Pending++
		case session.Status.InProgress():
			resp.Sessions.Active++
		case session.Status == models.SessionCompleted:
			resp.Sessions.Completed++
		}
		if session.PaymentStatus == models.PaymentPaid {
			resp.TotalRevenue += session.CostUSD
		}
	}

	recent := sessions
	if len(recent) > recentActivityLimit {
		recent = recent[:recentActivityLimit]
	}
	resp.RecentActivities = recent

	return resp, nil
}

// riskDistribution counts each student once, by the level of the latest record.
// A record without a known level counts as Low.
func riskDistribution(records models.StudentRecordMap) dto.RiskDistribution {
	var dist dto.RiskDistribution
	for _, history := range records {
		if len(history) == 0 {
			continue
		}
		switch history[len(history)-1].RiskLevel {
		case models.RiskHigh:
			dist.High++
		case models.RiskMedium:
			dist.Medium++
		default:
			dist.Low++
		}
	}
	return dist
}

func (s *dashboardServiceImpl) Student(ctx context.Context, id appauth.Identity) (*dto.StudentDashboardResponse, error) {
	if err := id.RequireRole(models.RoleStudent, "view the student dashboard"); err != nil {
		return nil, err
	}

	records, err := s.recordRepo.History(ctx, id.StudentID)
	if err != nil {
		return nil, fmt.Errorf("error loading student records: %w", err)
	}
	mentors, err := s.ListMentors(ctx)
	if err != nil {
		return nil, err
	}
	sessions, err := s.sessionRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading sessions: %w", err)
	}

	resp := &dto.StudentDashboardResponse{
		StudentID:       id.StudentID,
		Records:         records,
		Mentors:         mentors,
		ActiveSessions:  []models.MentorshipSession{},
		PendingSessions: []models.MentorshipSession{},
	}
	for _, session := range sessions {
		if id.StudentID == "" || session.StudentID != id.StudentID {
			continue
		}
		switch session.Status {
		case models.SessionScheduled, models.SessionActive:
			resp.ActiveSessions = append(resp.ActiveSessions, session)
		case models.SessionPendingApproval, models.SessionApproved:
			resp.PendingSessions = append(resp.PendingSessions, session)
		}
	}
	return resp, nil
}

func (s *dashboardServiceImpl) Mentor(ctx context.Context, id appauth.Identity) (*dto.MentorDashboardResponse, error) {
	if err := id.RequireRole(models.RoleMentor, "view the mentor dashboard"); err != nil {
		return nil, err
	}

	mentor, err := s.userRepo.GetMentorByID(ctx, id.MentorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.NewResourceNotFoundError("Mentor profile not found")
		}
		return nil, fmt.Errorf("error loading mentor: %w", err)
	}
	profile := withMentorDefaults(*mentor.MentorProfile)
	mentor.MentorProfile = &profile

	sessions, err := s.sessionRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading sessions: %w", err)
	}

	resp := &dto.MentorDashboardResponse{
		Mentor:            dto.NewUserResponse(mentor),
		PendingRequests:   []models.MentorshipSession{},
		ActiveSessions:    []models.MentorshipSession{},
		CompletedSessions: []models.MentorshipSession{},
		Reviews:           append([]models.Review(nil), models.MentorReviews...),
	}

	now := s.now()
	for _, session := range sessions {
		if session.MentorID != id.MentorID {
			continue
		}
		switch {
		case session.Status == models.SessionPendingApproval:
			resp.PendingRequests = append(resp.PendingRequests, session)
			continue
		case session.Status.InProgress():
			resp.ActiveSessions = append(resp.ActiveSessions, session)
		case session.Status == models.SessionCompleted:
			resp.CompletedSessions = append(resp.CompletedSessions, session)
		default:
			continue
		}

		if session.PaymentStatus != models.PaymentPaid {
			continue
		}
		resp.TotalEarnings += session.CostUSD
		if helpers.SameMonth(session.CreatedAt, now) {
			resp.MonthlyEarnings += session.CostUSD
		}
	}
	return resp, nil
}

// withMentorDefaults fills zero valued fields, which is how a profile field
// that was never set reads back from the document
func withMentorDefaults(p models.MentorProfile) models.MentorProfile {
	if p.Rating == 0 {
		p.Rating = mentorProfileDefaults.Rating
	}
	if p.Availability == nil {
		p.Availability = append([]string(nil), mentorProfileDefaults.Availability...)
	}
	if p.Experience == 0 {
		p.Experience = mentorProfileDefaults.Experience
	}
	if p.Specialization == "" {
		p.Specialization = mentorProfileDefaults.Specialization
	}
	if p.HourlyRate == 0 {
		p.HourlyRate = mentorProfileDefaults.HourlyRate
	}
	return p
}

// ListMentors returns the mentor directory. Passwords and payout details are left out.
func (s *dashboardServiceImpl) ListMentors(ctx context.Context) ([]*dto.UserResponse, error) {
	mentors, err := s.userRepo.ListByRole(ctx, models.RoleMentor)
	if err != nil {
		return nil, fmt.Errorf("error loading mentors: %w", err)
	}
	for i := range mentors {
		if mentors[i].MentorProfile == nil {
			continue
		}
		profile := *mentors[i].MentorProfile
		profile.PaymentDetails = ""
		mentors[i].MentorProfile = &profile
	}
	return dto.NewUserResponses(mentors), nil
}
