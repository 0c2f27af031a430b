package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/smartkart/smartkart/internal/domain/model"
)

// GroupRepository persists bulk order groups and their settlement state.
type GroupRepository interface {
	// Create writes the group and all member shares in one transaction.
	Create(ctx context.Context, group *model.OrderGroup) (*model.OrderGroup, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.OrderGroup, error)
	// ListByUser returns groups where the user is creator or member.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.OrderGroup, error)
	// AddPayment increments the member's paid amount and the group running
	// total as atomic in-place updates, never read-modify-write. Returns
	// ErrNotGroupMember when the vendor has no share in the group.
	AddPayment(ctx context.Context, groupID, vendorID uuid.UUID, amount model.Money) error
	// CompleteSettled marks up to limit active, fully paid groups as
	// completed and returns them with members loaded.
	CompleteSettled(ctx context.Context, limit int) ([]model.OrderGroup, error)
}
