package app

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/smartkart/smartkart/internal/domain/model"
	"github.com/smartkart/smartkart/internal/domain/repository"
	"github.com/smartkart/smartkart/internal/usecase"
)

// MarketFacade is the single application surface consumed by HTTP handlers
// and the settlement sweeper.
type MarketFacade struct {
	auth     *usecase.AuthUseCase
	orders   *usecase.OrderUseCase
	groups   *usecase.GroupUseCase
	payments *usecase.PaymentUseCase
	search   *usecase.SearchUseCase
	ratings  *usecase.RatingUseCase
}

// NewMarketFacade constructs MarketFacade.
func NewMarketFacade(
	auth *usecase.AuthUseCase,
	orders *usecase.OrderUseCase,
	groups *usecase.GroupUseCase,
	payments *usecase.PaymentUseCase,
	search *usecase.SearchUseCase,
	ratings *usecase.RatingUseCase,
) *MarketFacade {
	return &MarketFacade{
		auth:     auth,
		orders:   orders,
		groups:   groups,
		payments: payments,
		search:   search,
		ratings:  ratings,
	}
}

func (f *MarketFacade) Register(ctx context.Context, in usecase.RegisterInput) (*model.User, string, error) {
	return f.auth.Register(ctx, in)
}

func (f *MarketFacade) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	return f.auth.Authenticate(ctx, email, password)
}

func (f *MarketFacade) ParseToken(token string) (model.Principal, error) {
	return f.auth.ParseToken(token)
}

func (f *MarketFacade) Profile(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return f.auth.GetByID(ctx, id)
}

func (f *MarketFacade) CreateOrder(ctx context.Context, p model.Principal, in usecase.CreateOrderInput) (*model.Order, error) {
	return f.orders.Create(ctx, p, in)
}

func (f *MarketFacade) Order(ctx context.Context, p model.Principal, id uuid.UUID) (*model.Order, error) {
	return f.orders.Get(ctx, p, id)
}

func (f *MarketFacade) Orders(ctx context.Context, p model.Principal, status *model.OrderStatus, page, limit int) (*usecase.OrderPage, error) {
	return f.orders.List(ctx, p, status, page, limit)
}

func (f *MarketFacade) UpdateOrder(ctx context.Context, p model.Principal, id uuid.UUID, patch repository.OrderPatch) (*model.Order, error) {
	return f.orders.Update(ctx, p, id, patch)
}

func (f *MarketFacade) DecideOrder(ctx context.Context, p model.Principal, id uuid.UUID, status model.OrderStatus, reason string) (*model.Order, error) {
	return f.orders.Decide(ctx, p, id, status, reason)
}

func (f *MarketFacade) ProgressOrder(ctx context.Context, p model.Principal, id uuid.UUID, status model.OrderStatus, notes string) (*model.Order, error) {
	return f.orders.Progress(ctx, p, id, status, notes)
}

func (f *MarketFacade) ScheduleDelivery(ctx context.Context, p model.Principal, id uuid.UUID, date time.Time, address, notes string) (*model.Order, error) {
	return f.orders.ScheduleDelivery(ctx, p, id, date, address, notes)
}

func (f *MarketFacade) SupplierDashboard(ctx context.Context, p model.Principal) (*repository.DashboardStats, error) {
	return f.orders.Dashboard(ctx, p)
}

func (f *MarketFacade) CreateGroup(ctx context.Context, p model.Principal, in usecase.CreateGroupInput) (*model.OrderGroup, error) {
	return f.groups.CreateGroup(ctx, p, in)
}

func (f *MarketFacade) Group(ctx context.Context, id uuid.UUID) (*model.OrderGroup, error) {
	return f.groups.Get(ctx, id)
}

func (f *MarketFacade) Groups(ctx context.Context, userID uuid.UUID) ([]model.OrderGroup, error) {
	return f.groups.ListByUser(ctx, userID)
}

func (f *MarketFacade) PaymentLink(ctx context.Context, orderID uuid.UUID, amount model.Money, description string) (string, model.Money, error) {
	return f.payments.GenerateLink(ctx, orderID, amount, description)
}

func (f *MarketFacade) ProcessPayment(ctx context.Context, p model.Principal, orderID uuid.UUID, transactionID string, amount model.Money, success bool) (*model.Order, error) {
	return f.payments.Process(ctx, p, orderID, transactionID, amount, success)
}

func (f *MarketFacade) PaymentStatus(ctx context.Context, orderID uuid.UUID) (*model.Order, error) {
	return f.payments.Status(ctx, orderID)
}

func (f *MarketFacade) PaymentHistory(ctx context.Context, p model.Principal, page, limit int) (*usecase.PaymentHistory, error) {
	return f.payments.History(ctx, p, page, limit)
}

func (f *MarketFacade) NearbySuppliers(ctx context.Context, longitude, latitude, maxDistance float64) ([]usecase.NearbySupplier, error) {
	return f.search.NearbySuppliers(ctx, longitude, latitude, maxDistance)
}

func (f *MarketFacade) RateSupplier(ctx context.Context, p model.Principal, supplierID uuid.UUID, rating float64) (float64, int, error) {
	return f.ratings.RateSupplier(ctx, p, supplierID, rating)
}

// GroupsForSettlement flips fully paid active groups to completed and
// returns the batch. Used by the settlement sweeper.
func (f *MarketFacade) GroupsForSettlement(ctx context.Context, limit int) ([]model.OrderGroup, error) {
	return f.groups.CompleteSettled(ctx, limit)
}

// AnnounceGroupSettled notifies every member of a completed group.
func (f *MarketFacade) AnnounceGroupSettled(group model.OrderGroup) {
	f.groups.AnnounceCompleted(group)
}
