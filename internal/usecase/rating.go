package usecase

import (
	"context"

	"github.com/google/uuid"

	domainErrors "github.com/smartkart/smartkart/internal/domain/errors"
	"github.com/smartkart/smartkart/internal/domain/model"
	"github.com/smartkart/smartkart/internal/domain/repository"
)

// RatingUseCase lets vendors rate suppliers.
type RatingUseCase struct {
	users repository.UserRepository
}

// NewRatingUseCase constructs RatingUseCase.
func NewRatingUseCase(users repository.UserRepository) *RatingUseCase {
	return &RatingUseCase{users: users}
}

// RateSupplier folds one rating into the supplier's running average and
// returns the new average and count. Vendor-only; rating must be 1..5.
func (u *RatingUseCase) RateSupplier(ctx context.Context, p model.Principal, supplierID uuid.UUID, rating float64) (float64, int, error) {
	if p.Role != model.RoleVendor {
		return 0, 0, domainErrors.ErrForbidden
	}
	if rating < 1 || rating > 5 {
		return 0, 0, domainErrors.ErrInvalidRating
	}
	return u.users.ApplyRating(ctx, supplierID, rating)
}
