package models

import "github.com/edupulse/edupulse/internal/pkg/analytics"

// RiskLevel buckets a risk probability
type RiskLevel = analytics.RiskLevel

const (
	RiskLow    = analytics.RiskLow
	RiskMedium = analytics.RiskMedium
	RiskHigh   = analytics.RiskHigh
)

// StudentRiskRecord is one prediction, appended to the student's list in the
// student_records document. The last element is the current status.
type StudentRiskRecord struct {
	StudentID       string    `json:"student_id"`
	Timestamp       string    `json:"timestamp"`
	Attendance      float64   `json:"attendance"`
	AssignmentScore float64   `json:"assignment_score"`
	TestScore       float64   `json:"test_score"`
	RiskLevel       RiskLevel `json:"risk_level"`
	RiskProbability float64   `json:"risk_probability"`
}
