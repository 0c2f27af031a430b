package handlers

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/smartkart/smartkart/internal/domain/model"
	"github.com/smartkart/smartkart/internal/domain/repository"
	"github.com/smartkart/smartkart/internal/usecase"
)

// AuthFacade describes account capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, in usecase.RegisterInput) (*model.User, string, error)
	Authenticate(ctx context.Context, email, password string) (*model.User, string, error)
	ParseToken(token string) (model.Principal, error)
	Profile(ctx context.Context, id uuid.UUID) (*model.User, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	CreateOrder(ctx context.Context, p model.Principal, in usecase.CreateOrderInput) (*model.Order, error)
	Order(ctx context.Context, p model.Principal, id uuid.UUID) (*model.Order, error)
	Orders(ctx context.Context, p model.Principal, status *model.OrderStatus, page, limit int) (*usecase.OrderPage, error)
	UpdateOrder(ctx context.Context, p model.Principal, id uuid.UUID, patch repository.OrderPatch) (*model.Order, error)
	DecideOrder(ctx context.Context, p model.Principal, id uuid.UUID, status model.OrderStatus, reason string) (*model.Order, error)
	ProgressOrder(ctx context.Context, p model.Principal, id uuid.UUID, status model.OrderStatus, notes string) (*model.Order, error)
	ScheduleDelivery(ctx context.Context, p model.Principal, id uuid.UUID, date time.Time, address, notes string) (*model.Order, error)
	SupplierDashboard(ctx context.Context, p model.Principal) (*repository.DashboardStats, error)
}

// GroupFacade provides bulk order group operations.
type GroupFacade interface {
	CreateGroup(ctx context.Context, p model.Principal, in usecase.CreateGroupInput) (*model.OrderGroup, error)
	Group(ctx context.Context, id uuid.UUID) (*model.OrderGroup, error)
	Groups(ctx context.Context, userID uuid.UUID) ([]model.OrderGroup, error)
}

// PaymentFacade provides UPI payment operations.
type PaymentFacade interface {
	PaymentLink(ctx context.Context, orderID uuid.UUID, amount model.Money, description string) (string, model.Money, error)
	ProcessPayment(ctx context.Context, p model.Principal, orderID uuid.UUID, transactionID string, amount model.Money, success bool) (*model.Order, error)
	PaymentStatus(ctx context.Context, orderID uuid.UUID) (*model.Order, error)
	PaymentHistory(ctx context.Context, p model.Principal, page, limit int) (*usecase.PaymentHistory, error)
}

// SupplierFacade provides supplier discovery and rating operations.
type SupplierFacade interface {
	NearbySuppliers(ctx context.Context, longitude, latitude, maxDistance float64) ([]usecase.NearbySupplier, error)
	RateSupplier(ctx context.Context, p model.Principal, supplierID uuid.UUID, rating float64) (float64, int, error)
}

// MarketFacade aggregates the full set of operations used across handlers.
type MarketFacade interface {
	AuthFacade
	OrderFacade
	GroupFacade
	PaymentFacade
	SupplierFacade
}
