package usecase

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/smartkart/smartkart/internal/domain/errors"
	"github.com/smartkart/smartkart/internal/domain/model"
	"github.com/smartkart/smartkart/internal/domain/repository"
	"github.com/smartkart/smartkart/internal/notify"
)

// shareTolerance is the permitted deviation of the percentage sum from 100.
const shareTolerance = 0.01

// GroupShare is one member's requested percentage of a new group.
type GroupShare struct {
	VendorID        uuid.UUID
	SharePercentage float64
}

// CreateGroupInput carries everything needed to open a bulk order group.
type CreateGroupInput struct {
	Name         string
	Members      []GroupShare
	TotalAmount  model.Money
	DeliveryDate time.Time
	Description  string
}

// GroupUseCase owns the split arithmetic and settlement accounting of bulk
// order groups.
type GroupUseCase struct {
	groups repository.GroupRepository
	relay  notify.Publisher
}

// NewGroupUseCase constructs GroupUseCase.
func NewGroupUseCase(groups repository.GroupRepository, relay notify.Publisher) *GroupUseCase {
	return &GroupUseCase{groups: groups, relay: relay}
}

// CreateGroup validates shares, computes each member's amount and persists
// the group. Every member is notified with their own share.
func (u *GroupUseCase) CreateGroup(ctx context.Context, creator model.Principal, in CreateGroupInput) (*model.OrderGroup, error) {
	switch creator.Role {
	case model.RoleVendor:
	case model.RoleSupplier:
		return nil, domainErrors.ErrForbidden
	default:
		return nil, domainErrors.ErrForbidden
	}

	if in.Name == "" || in.TotalAmount <= 0 {
		return nil, domainErrors.ErrInvalidAmount
	}
	if len(in.Members) == 0 {
		return nil, domainErrors.ErrInvalidShares
	}

	var sum float64
	for _, m := range in.Members {
		if m.SharePercentage < 0 || m.SharePercentage > 100 {
			return nil, domainErrors.ErrInvalidShares
		}
		sum += m.SharePercentage
	}
	if math.Abs(sum-100) > shareTolerance {
		return nil, domainErrors.ErrInvalidShares
	}

	members := make([]model.GroupMember, len(in.Members))
	var assigned model.Money
	for i, m := range in.Members {
		share := in.TotalAmount.Share(m.SharePercentage)
		if i == len(in.Members)-1 {
			// The last share absorbs rounding so the amounts sum exactly
			// to the group total.
			share = in.TotalAmount - assigned
		}
		assigned += share
		members[i] = model.GroupMember{
			VendorID:        m.VendorID,
			SharePercentage: m.SharePercentage,
			ShareAmount:     share,
		}
	}

	group := &model.OrderGroup{
		ID:           uuid.New(),
		Name:         in.Name,
		CreatedBy:    creator.ID,
		Members:      members,
		TotalAmount:  in.TotalAmount,
		Status:       model.GroupStatusActive,
		DeliveryDate: in.DeliveryDate,
		Description:  in.Description,
	}

	created, err := u.groups.Create(ctx, group)
	if err != nil {
		return nil, err
	}

	for _, m := range created.Members {
		u.relay.Publish(m.VendorID, notify.Event{
			Name: notify.EventNewOrderGroup,
			Payload: notify.NewOrderGroupPayload{
				GroupID:     created.ID,
				Name:        created.Name,
				ShareAmount: m.ShareAmount.Float64(),
			},
		})
	}

	return created, nil
}

// RecordPayment accumulates a member's payment into the group. Both the
// member's paid amount and the running group total are incremented in place;
// overpayment beyond the share or the group total is accepted silently.
func (u *GroupUseCase) RecordPayment(ctx context.Context, groupID, vendorID uuid.UUID, amount model.Money) error {
	if amount <= 0 {
		return domainErrors.ErrInvalidAmount
	}
	return u.groups.AddPayment(ctx, groupID, vendorID, amount)
}

// Get returns the group by id.
func (u *GroupUseCase) Get(ctx context.Context, id uuid.UUID) (*model.OrderGroup, error) {
	return u.groups.GetByID(ctx, id)
}

// ListByUser returns groups where the user is creator or member.
func (u *GroupUseCase) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.OrderGroup, error) {
	return u.groups.ListByUser(ctx, userID)
}

// CompleteSettled flips fully paid active groups to completed and returns
// them. Called by the settlement sweeper.
func (u *GroupUseCase) CompleteSettled(ctx context.Context, limit int) ([]model.OrderGroup, error) {
	return u.groups.CompleteSettled(ctx, limit)
}

// AnnounceCompleted notifies every member that their group is settled.
func (u *GroupUseCase) AnnounceCompleted(group model.OrderGroup) {
	for _, m := range group.Members {
		u.relay.Publish(m.VendorID, notify.Event{
			Name: notify.EventOrderGroupCompleted,
			Payload: notify.GroupCompletedPayload{
				GroupID:   group.ID,
				Name:      group.Name,
				TotalPaid: group.TotalPaidAmount.Float64(),
			},
		})
	}
}
