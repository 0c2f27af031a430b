package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/smartkart/smartkart/internal/domain/model"
)

// OrderFilter narrows party-scoped order listings.
type OrderFilter struct {
	Status *model.OrderStatus
	Limit  int
	Offset int
}

// OrderPatch carries the mutable order fields for a partial update.
// Vendor and supplier references are deliberately absent.
type OrderPatch struct {
	DeliveryDate    *time.Time
	DeliveryAddress *string
	Notes           *string
}

// DashboardStats aggregates a supplier's month-to-date activity.
type DashboardStats struct {
	MonthlyOrders  int
	MonthlyRevenue model.Money
	PendingOrders  int
	RecentOrders   []model.Order
}

// OrderRepository persists orders.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) (*model.Order, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	// ListByParty returns orders where the user is vendor or supplier
	// depending on role, newest first, plus the total match count.
	ListByParty(ctx context.Context, userID uuid.UUID, role model.Role, filter OrderFilter) ([]model.Order, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus, notes *string) error
	Update(ctx context.Context, id uuid.UUID, patch OrderPatch) error
	SetPaymentStatus(ctx context.Context, id uuid.UUID, status model.PaymentStatus) error
	// TotalPaidByParty sums totals of the user's paid orders.
	TotalPaidByParty(ctx context.Context, userID uuid.UUID, role model.Role) (model.Money, error)
	Dashboard(ctx context.Context, supplierID uuid.UUID, monthStart, monthEnd time.Time) (*DashboardStats, error)
}
