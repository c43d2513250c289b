package dto

import "github.com/edupulse/edupulse/internal/app/models"

// RiskDistribution counts students by the level of their latest record
type RiskDistribution struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// SessionStats counts sessions by lifecycle bucket
type SessionStats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Active    int `json:"active"`
	Completed int `json:"completed"`
}

// AdminDashboardResponse summarizes the whole platform
type AdminDashboardResponse struct {
	TotalStudents    int                        `json:"total_students"`
	TotalMentors     int                        `json:"total_mentors"`
	Risk             RiskDistribution           `json:"risk"`
	Sessions         SessionStats               `json:"sessions"`
	TotalRevenue     float64                    `json:"total_revenue"`
	RecentActivities []models.MentorshipSession `json:"recent_activities"`
	Students         []*UserResponse            `json:"students"`
	Mentors          []*UserResponse            `json:"mentors"`
}

// StudentDashboardResponse is what a student sees after login
type StudentDashboardResponse struct {
	StudentID       string                     `json:"student_id"`
	Records         []models.StudentRiskRecord `json:"records"`
	Mentors         []*UserResponse            `json:"mentors"`
	ActiveSessions  []models.MentorshipSession `json:"active_sessions"`
	PendingSessions []models.MentorshipSession `json:"pending_sessions"`
}

// MentorDashboardResponse is what a mentor sees after login
type MentorDashboardResponse struct {
	Mentor            *UserResponse              `json:"mentor"`
	PendingRequests   []models.MentorshipSession `json:"pending_requests"`
	ActiveSessions    []models.MentorshipSession `json:"active_sessions"`
	CompletedSessions []models.MentorshipSession `json:"completed_sessions"`
	TotalEarnings     float64                    `json:"total_earnings"`
	MonthlyEarnings   float64                    `json:"monthly_earnings"`
	Reviews           []models.Review            `json:"reviews"`
}
