package usecase_test

import (
	"context"
	"math"
	"testing"

	"github.com/google/uuid"

	domainErrors "github.com/smartkart/smartkart/internal/domain/errors"
	"github.com/smartkart/smartkart/internal/domain/model"
	testhelpers "github.com/smartkart/smartkart/internal/test"
	"github.com/smartkart/smartkart/internal/usecase"
)

func TestRatingUseCaseRunningAverage(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	uc := usecase.NewRatingUseCase(repo)
	ctx := context.Background()

	supplierID := uuid.New()
	repo.ByID[supplierID] = &model.User{ID: supplierID, Role: model.RoleSupplier}

	vendor := vendorPrincipal()
	rating, count, err := uc.RateSupplier(ctx, vendor, supplierID, 4)
	if err != nil {
		t.Fatalf("rate failed: %v", err)
	}
	if rating != 4 || count != 1 {
		t.Fatalf("first rating = %f/%d, want 4/1", rating, count)
	}

	rating, count, err = uc.RateSupplier(ctx, vendor, supplierID, 5)
	if err != nil {
		t.Fatalf("rate failed: %v", err)
	}
	if math.Abs(rating-4.5) > 1e-9 || count != 2 {
		t.Fatalf("second rating = %f/%d, want 4.5/2", rating, count)
	}
}

func TestRatingUseCaseGuards(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	uc := usecase.NewRatingUseCase(repo)
	ctx := context.Background()

	supplierID := uuid.New()
	repo.ByID[supplierID] = &model.User{ID: supplierID, Role: model.RoleSupplier}

	supplier := model.Principal{ID: uuid.New(), Role: model.RoleSupplier}
	if _, _, err := uc.RateSupplier(ctx, supplier, supplierID, 4); err != domainErrors.ErrForbidden {
		t.Fatalf("expected forbidden for supplier caller, got %v", err)
	}

	for _, bad := range []float64{0, 0.5, 5.5, -1} {
		if _, _, err := uc.RateSupplier(ctx, vendorPrincipal(), supplierID, bad); err != domainErrors.ErrInvalidRating {
			t.Fatalf("rating %f: expected ErrInvalidRating, got %v", bad, err)
		}
	}

	if _, _, err := uc.RateSupplier(ctx, vendorPrincipal(), uuid.New(), 3); err != domainErrors.ErrNotFound {
		t.Fatalf("expected not found for unknown supplier, got %v", err)
	}

	vendorID := uuid.New()
	repo.ByID[vendorID] = &model.User{ID: vendorID, Role: model.RoleVendor}
	if _, _, err := uc.RateSupplier(ctx, vendorPrincipal(), vendorID, 3); err != domainErrors.ErrNotFound {
		t.Fatalf("expected not found when target is not a supplier, got %v", err)
	}
}
