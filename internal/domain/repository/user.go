package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/smartkart/smartkart/internal/domain/model"
)

// UserRepository persists marketplace accounts.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	// ListSuppliers returns all supplier accounts with their stored geo
	// points, for proximity filtering in the caller.
	ListSuppliers(ctx context.Context) ([]model.User, error)
	// ApplyRating folds one new rating into the supplier's running average
	// as a single atomic update and returns the new average and count.
	ApplyRating(ctx context.Context, supplierID uuid.UUID, rating float64) (float64, int, error)
}
