package repositories

import (
	"context"

	"github.com/edupulse/edupulse/internal/app/models"
	"github.com/edupulse/edupulse/internal/pkg/docstore"
)

// StudentRecordRepository keeps the per-student prediction history
type StudentRecordRepository struct {
	doc *docstore.Document[models.StudentRecordMap]
}

func NewStudentRecordRepository(doc *docstore.Document[models.StudentRecordMap]) *StudentRecordRepository {
	return &StudentRecordRepository{doc: doc}
}

func (r *StudentRecordRepository) Append(ctx context.Context, record models.StudentRiskRecord) error {
	_, err := r.doc.Update(ctx, func(records models.StudentRecordMap) (models.StudentRecordMap, error) {
		records[record.StudentID] = append(records[record.StudentID], record)
		return records, nil
	})
	return err
}

// History returns a student's records, oldest first
func (r *StudentRecordRepository) History(ctx context.Context, studentID string) ([]models.StudentRiskRecord, error) {
	records, err := r.doc.Load(ctx)
	if err != nil {
		return nil, err
	}
	if history := records[studentID]; history != nil {
		return history, nil
	}
	return []models.StudentRiskRecord{}, nil
}

// All returns the whole document
func (r *StudentRecordRepository) All(ctx context.Context) (models.StudentRecordMap, error) {
	return r.doc.Load(ctx)
}
