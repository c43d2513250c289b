package dto

import "github.com/edupulse/edupulse/internal/app/models"

// PredictRequest carries the three scores of a prediction. Missing scores
// count as 0 and values are not clamped.
type PredictRequest struct {
	StudentID       string  `json:"student_id"`
	Attendance      float64 `json:"attendance"`
	AssignmentScore float64 `json:"assignment_score"`
	TestScore       float64 `json:"test_score"`
}

// PredictResponse is the outcome of a persisted prediction
type PredictResponse struct {
	StudentID       string           `json:"student_id"`
	RiskProbability float64          `json:"risk_probability"`
	RiskPercentage  int              `json:"risk_percentage"`
	RiskLevel       models.RiskLevel `json:"risk_level"`
	Timestamp       string           `json:"timestamp"`
}

// SentimentRequest holds the feedback text to score
type SentimentRequest struct {
	Text string `json:"text"`
}

// RiskHistoryResponse lists a student's predictions, oldest first
type RiskHistoryResponse struct {
	StudentID string                     `json:"student_id"`
	Current   *models.StudentRiskRecord  `json:"current,omitempty"`
	Records   []models.StudentRiskRecord `json:"records"`
}
