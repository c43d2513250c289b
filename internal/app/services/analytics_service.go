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
	"github.com/edupulse/edupulse/internal/pkg/analytics"
	"github.com/edupulse/edupulse/internal/pkg/apperrors"
	"github.com/edupulse/edupulse/internal/pkg/helpers"
	"github.com/edupulse/edupulse/internal/pkg/metrics"
	"github.com/rs/zerolog"
)

// AnalyticsService scores risk and sentiment
type AnalyticsService interface {
	Predict(ctx context.Context, id appauth.Identity, req *dto.PredictRequest) (*dto.PredictResponse, error)
	RiskHistory(ctx context.Context, id appauth.Identity, studentID string) (*dto.RiskHistoryResponse, error)
	Sentiment(text string) analytics.SentimentResult
}

type analyticsServiceImpl struct {
	recordRepo *repositories.StudentRecordRepository
	metrics    *metrics.Metrics
	now        func() time.Time
	logger     zerolog.Logger
}

// NewAnalyticsService creates a new AnalyticsService
func NewAnalyticsService(recordRepo *repositories.StudentRecordRepository, m *metrics.Metrics, now func() time.Time, logger zerolog.Logger) AnalyticsService {
	return &analyticsServiceImpl{
		recordRepo: recordRepo,
		metrics:    m,
		now:        now,
		logger:     logger,
	}
}

// Predict scores the request and appends the result to the student's history.
// Students always predict for themselves; other callers name the student.
func (s *analyticsServiceImpl) Predict(ctx context.Context, id appauth.Identity, req *dto.PredictRequest) (*dto.PredictResponse, error) {
	studentID := strings.TrimSpace(req.StudentID)
	if id.Role == models.RoleStudent {
		if studentID != "" && studentID != id.StudentID {
			return nil, apperrors.NewForbiddenError("You can only record predictions for yourself")
		}
		studentID = id.StudentID
	}
	if studentID == "" {
		return nil, apperrors.NewValidationError("student_id", "student_id is required")
	}

	probability, level := analytics.ScoreRisk(req.Attendance, req.AssignmentScore, req.TestScore)
	record := models.StudentRiskRecord{
		StudentID:       studentID,
		Timestamp:       helpers.FormatTimestamp(s.now()),
		Attendance:      req.Attendance,
		AssignmentScore: req.AssignmentScore,
		TestScore:       req.TestScore,
		RiskLevel:       level,
		RiskProbability: probability,
	}
	if err := s.recordRepo.Append(ctx, record); err != nil {
		return nil, fmt.Errorf("error saving prediction: %w", err)
	}

	s.metrics.RecordPrediction(string(level))
	s.logger.Info().
		Str("studentID", studentID).
		Str("riskLevel", string(level)).
		Float64("probability", probability).
		Msg("Risk predicted")

	return &dto.PredictResponse{
		StudentID:       studentID,
		RiskProbability: probability,
		RiskPercentage:  analytics.Percent(probability),
		RiskLevel:       level,
		Timestamp:       record.Timestamp,
	}, nil
}

func (s *analyticsServiceImpl) RiskHistory(ctx context.Context, id appauth.Identity, studentID string) (*dto.RiskHistoryResponse, error) {
	if err := appauth.AuthorizeStudentRecords(id, studentID); err != nil {
		return nil, err
	}
	records, err := s.recordRepo.History(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("error loading risk history: %w", err)
	}

	resp := &dto.RiskHistoryResponse{StudentID: studentID, Records: records}
	if n := len(records); n > 0 {
		current := records[n-1]
		resp.Current = &current
	}
	return resp, nil
}

func (s *analyticsServiceImpl) Sentiment(text string) analytics.SentimentResult {
	return analytics.ScoreSentiment(text)
}
