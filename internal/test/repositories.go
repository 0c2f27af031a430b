package test

import (
	"context"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/smartkart/smartkart/internal/domain/errors"
	"github.com/smartkart/smartkart/internal/domain/model"
	"github.com/smartkart/smartkart/internal/domain/repository"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	ByEmail map[string]*model.User
	ByID    map[uuid.UUID]*model.User
	Err     error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		ByEmail: make(map[string]*model.User),
		ByID:    make(map[uuid.UUID]*model.User),
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, user *model.User) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.ByEmail == nil {
		s.ByEmail = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[uuid.UUID]*model.User)
	}
	if _, exists := s.ByEmail[user.Email]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	user.CreatedAt = time.Now()
	s.ByEmail[user.Email] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByEmail fetches user by email or returns not found.
func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByEmail[email]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ListSuppliers returns every stored supplier account.
func (s *UserRepositoryStub) ListSuppliers(ctx context.Context) ([]model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var suppliers []model.User
	for _, u := range s.ByID {
		if u.Role == model.RoleSupplier {
			suppliers = append(suppliers, *u)
		}
	}
	return suppliers, nil
}

// ApplyRating folds a rating into the stored supplier.
func (s *UserRepositoryStub) ApplyRating(ctx context.Context, supplierID uuid.UUID, rating float64) (float64, int, error) {
	if s.Err != nil {
		return 0, 0, s.Err
	}
	user, ok := s.ByID[supplierID]
	if !ok || user.Role != model.RoleSupplier {
		return 0, 0, domainErrors.ErrNotFound
	}
	user.Rating = (user.Rating*float64(user.RatingCount) + rating) / float64(user.RatingCount+1)
	user.RatingCount++
	return user.Rating, user.RatingCount, nil
}

// OrderRepositoryStub allows tests to customize behaviour.
type OrderRepositoryStub struct {
	CreateFn           func(context.Context, *model.Order) (*model.Order, error)
	GetByIDFn          func(context.Context, uuid.UUID) (*model.Order, error)
	ListByPartyFn      func(context.Context, uuid.UUID, model.Role, repository.OrderFilter) ([]model.Order, int, error)
	UpdateStatusFn     func(context.Context, uuid.UUID, model.OrderStatus, *string) error
	UpdateFn           func(context.Context, uuid.UUID, repository.OrderPatch) error
	SetPaymentStatusFn func(context.Context, uuid.UUID, model.PaymentStatus) error
	TotalPaidFn        func(context.Context, uuid.UUID, model.Role) (model.Money, error)
	DashboardFn        func(context.Context, uuid.UUID, time.Time, time.Time) (*repository.DashboardStats, error)

	Orders       map[uuid.UUID]*model.Order
	StatusCalls  []OrderStatusCall
	PatchCalls   []OrderPatchCall
	PaymentCalls []OrderPaymentCall
}

// OrderStatusCall records one UpdateStatus invocation.
type OrderStatusCall struct {
	OrderID uuid.UUID
	Status  model.OrderStatus
	Notes   *string
}

// OrderPatchCall records one Update invocation.
type OrderPatchCall struct {
	OrderID uuid.UUID
	Patch   repository.OrderPatch
}

// OrderPaymentCall records one SetPaymentStatus invocation.
type OrderPaymentCall struct {
	OrderID uuid.UUID
	Status  model.PaymentStatus
}

// NewOrderRepositoryStub constructs the stub with an initialized store.
func NewOrderRepositoryStub() *OrderRepositoryStub {
	return &OrderRepositoryStub{Orders: make(map[uuid.UUID]*model.Order)}
}

// Create stores the order or delegates to the override.
func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	if s.Orders == nil {
		s.Orders = make(map[uuid.UUID]*model.Order)
	}
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	s.Orders[order.ID] = order
	return order, nil
}

// GetByID returns the stored order or not found.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	if order, ok := s.Orders[id]; ok {
		copied := *order
		return &copied, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ListByParty filters the stored orders by party column.
func (s *OrderRepositoryStub) ListByParty(ctx context.Context, userID uuid.UUID, role model.Role, filter repository.OrderFilter) ([]model.Order, int, error) {
	if s.ListByPartyFn != nil {
		return s.ListByPartyFn(ctx, userID, role, filter)
	}
	var result []model.Order
	for _, o := range s.Orders {
		party := o.VendorID
		if role == model.RoleSupplier {
			party = o.SupplierID
		}
		if party != userID {
			continue
		}
		if filter.Status != nil && o.Status != *filter.Status {
			continue
		}
		result = append(result, *o)
	}
	return result, len(result), nil
}

// UpdateStatus mutates the stored order and records the call.
func (s *OrderRepositoryStub) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus, notes *string) error {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, id, status, notes)
	}
	order, ok := s.Orders[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	order.Status = status
	if notes != nil {
		order.Notes = *notes
	}
	s.StatusCalls = append(s.StatusCalls, OrderStatusCall{OrderID: id, Status: status, Notes: notes})
	return nil
}

// Update applies the patch to the stored order and records the call.
func (s *OrderRepositoryStub) Update(ctx context.Context, id uuid.UUID, patch repository.OrderPatch) error {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, id, patch)
	}
	order, ok := s.Orders[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	if patch.DeliveryDate != nil {
		order.DeliveryDate = *patch.DeliveryDate
	}
	if patch.DeliveryAddress != nil {
		order.DeliveryAddress = *patch.DeliveryAddress
	}
	if patch.Notes != nil {
		order.Notes = *patch.Notes
	}
	s.PatchCalls = append(s.PatchCalls, OrderPatchCall{OrderID: id, Patch: patch})
	return nil
}

// SetPaymentStatus mutates the stored order and records the call.
func (s *OrderRepositoryStub) SetPaymentStatus(ctx context.Context, id uuid.UUID, status model.PaymentStatus) error {
	if s.SetPaymentStatusFn != nil {
		return s.SetPaymentStatusFn(ctx, id, status)
	}
	order, ok := s.Orders[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	order.PaymentStatus = status
	s.PaymentCalls = append(s.PaymentCalls, OrderPaymentCall{OrderID: id, Status: status})
	return nil
}

// TotalPaidByParty sums the stored paid orders of the party.
func (s *OrderRepositoryStub) TotalPaidByParty(ctx context.Context, userID uuid.UUID, role model.Role) (model.Money, error) {
	if s.TotalPaidFn != nil {
		return s.TotalPaidFn(ctx, userID, role)
	}
	var total model.Money
	for _, o := range s.Orders {
		party := o.VendorID
		if role == model.RoleSupplier {
			party = o.SupplierID
		}
		if party == userID && o.PaymentStatus == model.PaymentStatusPaid {
			total += o.TotalAmount
		}
	}
	return total, nil
}

// Dashboard delegates to the override or returns empty stats.
func (s *OrderRepositoryStub) Dashboard(ctx context.Context, supplierID uuid.UUID, monthStart, monthEnd time.Time) (*repository.DashboardStats, error) {
	if s.DashboardFn != nil {
		return s.DashboardFn(ctx, supplierID, monthStart, monthEnd)
	}
	return &repository.DashboardStats{}, nil
}

// GroupRepositoryStub stores order groups in-memory for tests.
type GroupRepositoryStub struct {
	CreateFn          func(context.Context, *model.OrderGroup) (*model.OrderGroup, error)
	AddPaymentFn      func(context.Context, uuid.UUID, uuid.UUID, model.Money) error
	CompleteSettledFn func(context.Context, int) ([]model.OrderGroup, error)

	Groups map[uuid.UUID]*model.OrderGroup
}

// NewGroupRepositoryStub constructs the stub with an initialized store.
func NewGroupRepositoryStub() *GroupRepositoryStub {
	return &GroupRepositoryStub{Groups: make(map[uuid.UUID]*model.OrderGroup)}
}

// Create stores the group or delegates to the override.
func (s *GroupRepositoryStub) Create(ctx context.Context, group *model.OrderGroup) (*model.OrderGroup, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, group)
	}
	if s.Groups == nil {
		s.Groups = make(map[uuid.UUID]*model.OrderGroup)
	}
	group.CreatedAt = time.Now()
	group.UpdatedAt = group.CreatedAt
	s.Groups[group.ID] = group
	return group, nil
}

// GetByID returns the stored group or not found.
func (s *GroupRepositoryStub) GetByID(ctx context.Context, id uuid.UUID) (*model.OrderGroup, error) {
	if group, ok := s.Groups[id]; ok {
		copied := *group
		return &copied, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ListByUser returns groups where the user is creator or member.
func (s *GroupRepositoryStub) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.OrderGroup, error) {
	var result []model.OrderGroup
	for _, g := range s.Groups {
		if g.CreatedBy == userID {
			result = append(result, *g)
			continue
		}
		for _, m := range g.Members {
			if m.VendorID == userID {
				result = append(result, *g)
				break
			}
		}
	}
	return result, nil
}

// AddPayment applies atomic-style increments to the stored group.
func (s *GroupRepositoryStub) AddPayment(ctx context.Context, groupID, vendorID uuid.UUID, amount model.Money) error {
	if s.AddPaymentFn != nil {
		return s.AddPaymentFn(ctx, groupID, vendorID, amount)
	}
	group, ok := s.Groups[groupID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	for i := range group.Members {
		if group.Members[i].VendorID == vendorID {
			group.Members[i].PaidAmount += amount
			group.TotalPaidAmount += amount
			return nil
		}
	}
	return domainErrors.ErrNotGroupMember
}

// CompleteSettled flips fully paid active groups to completed.
func (s *GroupRepositoryStub) CompleteSettled(ctx context.Context, limit int) ([]model.OrderGroup, error) {
	if s.CompleteSettledFn != nil {
		return s.CompleteSettledFn(ctx, limit)
	}
	var completed []model.OrderGroup
	for _, g := range s.Groups {
		if len(completed) >= limit {
			break
		}
		if g.Status == model.GroupStatusActive && g.TotalPaidAmount >= g.TotalAmount {
			g.Status = model.GroupStatusCompleted
			completed = append(completed, *g)
		}
	}
	return completed, nil
}

// PaymentRepositoryStub stores payments keyed by transaction id.
type PaymentRepositoryStub struct {
	CreateFn func(context.Context, *model.Payment) (*model.Payment, error)

	ByTransaction map[string]*model.Payment
}

// NewPaymentRepositoryStub constructs the stub with an initialized store.
func NewPaymentRepositoryStub() *PaymentRepositoryStub {
	return &PaymentRepositoryStub{ByTransaction: make(map[string]*model.Payment)}
}

// Create enforces transaction id uniqueness like the real table.
func (s *PaymentRepositoryStub) Create(ctx context.Context, payment *model.Payment) (*model.Payment, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, payment)
	}
	if s.ByTransaction == nil {
		s.ByTransaction = make(map[string]*model.Payment)
	}
	if _, exists := s.ByTransaction[payment.TransactionID]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	payment.CreatedAt = time.Now()
	s.ByTransaction[payment.TransactionID] = payment
	return payment, nil
}
