// Package seed holds the default content of every document and materializes
// it at startup.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/edupulse/edupulse/internal/app/models"
	"github.com/edupulse/edupulse/internal/pkg/helpers"
	"github.com/rs/zerolog"
)

// Default seed accounts
const (
	AdminUsername   = "admin"
	StudentUsername = "student"
	MentorUsername  = "mentor"

	StudentID = "S12345"
	MentorID  = "M54321"
)

// Users returns the default admin, student and mentor accounts
func Users(now time.Time) models.UserMap {
	createdAt := helpers.FormatTimestamp(now)
	return models.UserMap{
		AdminUsername: {
			Username:  AdminUsername,
			Password:  "admin123",
			Role:      models.RoleAdmin,
			Email:     "admin@edupulse.com",
			Name:      "Admin User",
			CreatedAt: createdAt,
		},
		StudentUsername: {
			Username:  StudentUsername,
			Password:  "student123",
			Role:      models.RoleStudent,
			Email:     "student@example.com",
			Name:      "John Student",
			CreatedAt: createdAt,
			StudentProfile: &models.StudentProfile{
				StudentID:  StudentID,
				Department: "Computer Science",
				Year:       2,
			},
		},
		MentorUsername: {
			Username:  MentorUsername,
			Password:  "mentor123",
			Role:      models.RoleMentor,
			Email:     "mentor@example.com",
			Name:      "Dr. Jane Mentor",
			CreatedAt: createdAt,
			MentorProfile: &models.MentorProfile{
				MentorID:       MentorID,
				Specialization: "Computer Science",
				Experience:     5,
				HourlyRate:     50,
				Availability:   []string{"Monday", "Wednesday", "Friday"},
				Rating:         4.8,
			},
		},
	}
}

// StudentRecords returns three historical predictions, one per risk level
func StudentRecords() models.StudentRecordMap {
	record := func(id, ts string, att, asg, tst float64, level models.RiskLevel, p float64) []models.StudentRiskRecord {
		return []models.StudentRiskRecord{{
			StudentID:       id,
			Timestamp:       ts,
			Attendance:      att,
			AssignmentScore: asg,
			TestScore:       tst,
			RiskLevel:       level,
			RiskProbability: p,
		}}
	}

	return models.StudentRecordMap{
		"S12345": record("S12345", "2023-05-15 14:30:00", 85.5, 78.0, 72.5, models.RiskLow, 0.25),
		"S67890": record("S67890", "2023-05-15 15:45:00", 65.0, 58.0, 62.0, models.RiskMedium, 0.55),
		"S24680": record("S24680", "2023-05-15 16:20:00", 52.0, 45.0, 48.0, models.RiskHigh, 0.85),
	}
}

func Sessions() models.SessionMap { return models.SessionMap{} }

func ChatMessages() models.ChatLogMap { return models.ChatLogMap{} }

func Payments() models.PaymentMap { return models.PaymentMap{} }

// Ensurer loads a document, writing its seed when absent
type Ensurer interface {
	Name() string
	Ensure(ctx context.Context) error
}

// EnsureDocuments materializes every document so a fresh data directory is
// fully populated before the first request. All documents are attempted.
func EnsureDocuments(ctx context.Context, lgr zerolog.Logger, docs ...Ensurer) error {
	lgr.Info().Int("documents", len(docs)).Msg("Checking/Creating default documents...")

	var finalErr error
	for _, doc := range docs {
		if err := doc.Ensure(ctx); err != nil {
			lgr.Error().Err(err).Str("document", doc.Name()).Msg("Error ensuring document")
			finalErr = errors.Join(finalErr, err)
		}
	}

	if finalErr == nil {
		lgr.Info().Msg("Default documents ready")
	}
	return finalErr
}
