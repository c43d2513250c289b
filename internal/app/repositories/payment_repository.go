package repositories

import (
	"context"

	"github.com/edupulse/edupulse/internal/app/models"
	"github.com/edupulse/edupulse/internal/pkg/apperrors"
	"github.com/edupulse/edupulse/internal/pkg/docstore"
)

// PaymentRepository appends to the payments document. Payments are never updated.
type PaymentRepository struct {
	doc *docstore.Document[models.PaymentMap]
}

func NewPaymentRepository(doc *docstore.Document[models.PaymentMap]) *PaymentRepository {
	return &PaymentRepository{doc: doc}
}

func (r *PaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	_, err := r.doc.Update(ctx, func(payments models.PaymentMap) (models.PaymentMap, error) {
		if _, exists := payments[payment.PaymentID]; exists {
			return payments, apperrors.NewConflictError("Payment already recorded")
		}
		payments[payment.PaymentID] = *payment
		return payments, nil
	})
	return err
}

func (r *PaymentRepository) GetByID(ctx context.Context, paymentID string) (*models.Payment, error) {
	payments, err := r.doc.Load(ctx)
	if err != nil {
		return nil, err
	}
	payment, ok := payments[paymentID]
	if !ok {
		return nil, apperrors.NewResourceNotFoundError("Payment not found")
	}
	return &payment, nil
}

// All returns the whole payments document
func (r *PaymentRepository) All(ctx context.Context) (models.PaymentMap, error) {
	return r.doc.Load(ctx)
}
