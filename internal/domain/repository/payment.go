package repository

import (
	"context"

	"github.com/smartkart/smartkart/internal/domain/model"
)

// PaymentRepository persists settled transactions.
type PaymentRepository interface {
	// Create inserts the payment record. A replayed transaction id yields
	// ErrAlreadyExists and must leave no trace.
	Create(ctx context.Context, payment *model.Payment) (*model.Payment, error)
}
