package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/smartkart/smartkart/internal/domain/errors"
	"github.com/smartkart/smartkart/internal/domain/model"
	"github.com/smartkart/smartkart/internal/domain/repository"
	"github.com/smartkart/smartkart/internal/notify"
)

// OrderItemInput is one requested line of a new order.
type OrderItemInput struct {
	Name         string
	Quantity     float64
	Unit         string
	PricePerUnit model.Money
}

// CreateOrderInput carries a vendor's purchase request.
type CreateOrderInput struct {
	GroupID         *uuid.UUID
	SupplierID      uuid.UUID
	Items           []OrderItemInput
	DeliveryDate    time.Time
	DeliveryAddress string
	Notes           string
}

// OrderPage is a party-scoped listing slice with pagination totals.
type OrderPage struct {
	Orders      []model.Order
	Total       int
	TotalPages  int
	CurrentPage int
}

// OrderUseCase gates order creation and every status transition by role and
// party membership.
type OrderUseCase struct {
	orders repository.OrderRepository
	relay  notify.Publisher
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, relay notify.Publisher) *OrderUseCase {
	return &OrderUseCase{orders: orders, relay: relay}
}

// Create opens a new pending order. Vendor-only; line totals and the order
// total are computed here, never trusted from the client.
func (u *OrderUseCase) Create(ctx context.Context, p model.Principal, in CreateOrderInput) (*model.Order, error) {
	switch p.Role {
	case model.RoleVendor:
	case model.RoleSupplier:
		return nil, domainErrors.ErrForbidden
	default:
		return nil, domainErrors.ErrForbidden
	}

	if len(in.Items) == 0 {
		return nil, domainErrors.ErrInvalidAmount
	}

	items := make([]model.OrderItem, len(in.Items))
	var total model.Money
	for i, it := range in.Items {
		if it.Name == "" || it.Quantity <= 0 || it.PricePerUnit < 0 {
			return nil, domainErrors.ErrInvalidAmount
		}
		lineTotal := model.MoneyFromFloat(it.PricePerUnit.Float64() * it.Quantity)
		items[i] = model.OrderItem{
			Name:         it.Name,
			Quantity:     it.Quantity,
			Unit:         it.Unit,
			PricePerUnit: it.PricePerUnit,
			TotalPrice:   lineTotal,
		}
		total += lineTotal
	}

	order := &model.Order{
		ID:              uuid.New(),
		GroupID:         in.GroupID,
		VendorID:        p.ID,
		SupplierID:      in.SupplierID,
		Items:           items,
		TotalAmount:     total,
		Status:          model.OrderStatusPending,
		PaymentStatus:   model.PaymentStatusPending,
		DeliveryDate:    in.DeliveryDate,
		DeliveryAddress: in.DeliveryAddress,
		Notes:           in.Notes,
	}

	created, err := u.orders.Create(ctx, order)
	if err != nil {
		return nil, err
	}

	u.relay.Publish(created.SupplierID, notify.Event{
		Name: notify.EventNewOrder,
		Payload: notify.NewOrderPayload{
			OrderID:     created.ID,
			VendorID:    created.VendorID,
			TotalAmount: created.TotalAmount.Float64(),
		},
	})

	return created, nil
}

// Get returns the order if the caller is one of its parties.
func (u *OrderUseCase) Get(ctx context.Context, p model.Principal, id uuid.UUID) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !order.IsParty(p.ID) {
		return nil, domainErrors.ErrForbidden
	}
	return order, nil
}

// List returns the caller's orders, newest first.
func (u *OrderUseCase) List(ctx context.Context, p model.Principal, status *model.OrderStatus, page, limit int) (*OrderPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	orders, total, err := u.orders.ListByParty(ctx, p.ID, p.Role, repository.OrderFilter{
		Status: status,
		Limit:  limit,
		Offset: (page - 1) * limit,
	})
	if err != nil {
		return nil, err
	}
	return &OrderPage{
		Orders:      orders,
		Total:       total,
		TotalPages:  (total + limit - 1) / limit,
		CurrentPage: page,
	}, nil
}

// Update applies a partial update to mutable fields. Either party may call
// it; vendor and supplier references are never touched.
func (u *OrderUseCase) Update(ctx context.Context, p model.Principal, id uuid.UUID, patch repository.OrderPatch) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !order.IsParty(p.ID) {
		return nil, domainErrors.ErrForbidden
	}
	if err := u.orders.Update(ctx, id, patch); err != nil {
		return nil, err
	}
	return u.orders.GetByID(ctx, id)
}

// Decide accepts or rejects a pending order. Only the order's supplier may
// decide, and only while the order is still pending.
func (u *OrderUseCase) Decide(ctx context.Context, p model.Principal, id uuid.UUID, status model.OrderStatus, reason string) (*model.Order, error) {
	if status != model.OrderStatusAccepted && status != model.OrderStatusRejected {
		return nil, domainErrors.ErrInvalidStatus
	}

	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Role != model.RoleSupplier || order.SupplierID != p.ID {
		return nil, domainErrors.ErrForbidden
	}
	if order.Status != model.OrderStatusPending {
		return nil, domainErrors.ErrConflict
	}

	var notes *string
	if reason != "" {
		notes = &reason
	}
	if err := u.orders.UpdateStatus(ctx, id, status, notes); err != nil {
		return nil, err
	}
	order.Status = status
	if notes != nil {
		order.Notes = *notes
	}

	u.relay.Publish(order.VendorID, notify.Event{
		Name: notify.EventOrderStatusUpdated,
		Payload: notify.OrderStatusPayload{
			OrderID:    order.ID,
			Status:     string(order.Status),
			SupplierID: p.ID,
		},
	})

	return order, nil
}

// Progress advances an accepted order through in_progress, ready and
// delivered. Supplier-only.
func (u *OrderUseCase) Progress(ctx context.Context, p model.Principal, id uuid.UUID, status model.OrderStatus, notes string) (*model.Order, error) {
	switch status {
	case model.OrderStatusInProgress, model.OrderStatusReady, model.OrderStatusDelivered:
	default:
		return nil, domainErrors.ErrInvalidStatus
	}

	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Role != model.RoleSupplier || order.SupplierID != p.ID {
		return nil, domainErrors.ErrForbidden
	}
	switch order.Status {
	case model.OrderStatusAccepted, model.OrderStatusInProgress, model.OrderStatusReady:
	default:
		return nil, domainErrors.ErrConflict
	}

	var notesPtr *string
	if notes != "" {
		notesPtr = &notes
	}
	if err := u.orders.UpdateStatus(ctx, id, status, notesPtr); err != nil {
		return nil, err
	}
	order.Status = status
	if notesPtr != nil {
		order.Notes = notes
	}

	u.relay.Publish(order.VendorID, notify.Event{
		Name: notify.EventOrderStatusUpdated,
		Payload: notify.OrderStatusPayload{
			OrderID:    order.ID,
			Status:     string(order.Status),
			SupplierID: p.ID,
		},
	})

	return order, nil
}

// ScheduleDelivery sets delivery details on the vendor's own order and moves
// it to in_progress. The supplier is notified.
func (u *OrderUseCase) ScheduleDelivery(ctx context.Context, p model.Principal, id uuid.UUID, date time.Time, address, notes string) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Role != model.RoleVendor || order.VendorID != p.ID {
		return nil, domainErrors.ErrForbidden
	}

	patch := repository.OrderPatch{DeliveryDate: &date, DeliveryAddress: &address}
	if notes != "" {
		patch.Notes = &notes
	}
	if err := u.orders.Update(ctx, id, patch); err != nil {
		return nil, err
	}
	if err := u.orders.UpdateStatus(ctx, id, model.OrderStatusInProgress, nil); err != nil {
		return nil, err
	}

	order.DeliveryDate = date
	order.DeliveryAddress = address
	if notes != "" {
		order.Notes = notes
	}
	order.Status = model.OrderStatusInProgress

	u.relay.Publish(order.SupplierID, notify.Event{
		Name: notify.EventDeliveryScheduled,
		Payload: notify.DeliveryScheduledPayload{
			OrderID:         order.ID,
			DeliveryDate:    date,
			DeliveryAddress: address,
		},
	})

	return order, nil
}

// Dashboard aggregates the supplier's month-to-date activity.
func (u *OrderUseCase) Dashboard(ctx context.Context, p model.Principal) (*repository.DashboardStats, error) {
	if p.Role != model.RoleSupplier {
		return nil, domainErrors.ErrForbidden
	}
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)
	return u.orders.Dashboard(ctx, p.ID, monthStart, monthEnd)
}
