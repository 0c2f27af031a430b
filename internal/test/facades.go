package test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/smartkart/smartkart/internal/domain/model"
	"github.com/smartkart/smartkart/internal/domain/repository"
	"github.com/smartkart/smartkart/internal/notify"
	"github.com/smartkart/smartkart/internal/usecase"
)

// RelayRecorder captures published notifications for assertions.
type RelayRecorder struct {
	mu     sync.Mutex
	Events []RecordedEvent
}

// RecordedEvent is one captured Publish call.
type RecordedEvent struct {
	UserID uuid.UUID
	Event  notify.Event
}

// Publish records the event.
func (r *RelayRecorder) Publish(userID uuid.UUID, event notify.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Events = append(r.Events, RecordedEvent{UserID: userID, Event: event})
}

// Recorded returns a snapshot of captured events.
func (r *RelayRecorder) Recorded() []RecordedEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]RecordedEvent, len(r.Events))
	copy(out, r.Events)
	return out
}

// ForUser returns captured events addressed to the user.
func (r *RelayRecorder) ForUser(userID uuid.UUID) []notify.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []notify.Event
	for _, e := range r.Events {
		if e.UserID == userID {
			out = append(out, e.Event)
		}
	}
	return out
}

// MarketFacadeStub simulates the application facade for HTTP layer tests.
// Every method delegates to an override when set and otherwise returns a
// benign default.
type MarketFacadeStub struct {
	RegisterFn          func(context.Context, usecase.RegisterInput) (*model.User, string, error)
	AuthenticateFn      func(context.Context, string, string) (*model.User, string, error)
	ParseTokenFn        func(string) (model.Principal, error)
	ProfileFn           func(context.Context, uuid.UUID) (*model.User, error)
	CreateOrderFn       func(context.Context, model.Principal, usecase.CreateOrderInput) (*model.Order, error)
	OrderFn             func(context.Context, model.Principal, uuid.UUID) (*model.Order, error)
	OrdersFn            func(context.Context, model.Principal, *model.OrderStatus, int, int) (*usecase.OrderPage, error)
	UpdateOrderFn       func(context.Context, model.Principal, uuid.UUID, repository.OrderPatch) (*model.Order, error)
	DecideOrderFn       func(context.Context, model.Principal, uuid.UUID, model.OrderStatus, string) (*model.Order, error)
	ProgressOrderFn     func(context.Context, model.Principal, uuid.UUID, model.OrderStatus, string) (*model.Order, error)
	ScheduleDeliveryFn  func(context.Context, model.Principal, uuid.UUID, time.Time, string, string) (*model.Order, error)
	SupplierDashboardFn func(context.Context, model.Principal) (*repository.DashboardStats, error)
	CreateGroupFn       func(context.Context, model.Principal, usecase.CreateGroupInput) (*model.OrderGroup, error)
	GroupFn             func(context.Context, uuid.UUID) (*model.OrderGroup, error)
	GroupsFn            func(context.Context, uuid.UUID) ([]model.OrderGroup, error)
	PaymentLinkFn       func(context.Context, uuid.UUID, model.Money, string) (string, model.Money, error)
	ProcessPaymentFn    func(context.Context, model.Principal, uuid.UUID, string, model.Money, bool) (*model.Order, error)
	PaymentStatusFn     func(context.Context, uuid.UUID) (*model.Order, error)
	PaymentHistoryFn    func(context.Context, model.Principal, int, int) (*usecase.PaymentHistory, error)
	NearbySuppliersFn   func(context.Context, float64, float64, float64) ([]usecase.NearbySupplier, error)
	RateSupplierFn      func(context.Context, model.Principal, uuid.UUID, float64) (float64, int, error)

	Principal model.Principal
}

func (s *MarketFacadeStub) Register(ctx context.Context, in usecase.RegisterInput) (*model.User, string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, in)
	}
	role, _ := model.ParseRole(in.Role)
	return &model.User{ID: uuid.New(), Name: in.Name, Email: in.Email, Role: role}, "token", nil
}

func (s *MarketFacadeStub) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, email, password)
	}
	return &model.User{ID: uuid.New(), Email: email, Role: model.RoleVendor}, "token", nil
}

func (s *MarketFacadeStub) ParseToken(token string) (model.Principal, error) {
	if s.ParseTokenFn != nil {
		return s.ParseTokenFn(token)
	}
	return s.Principal, nil
}

func (s *MarketFacadeStub) Profile(ctx context.Context, id uuid.UUID) (*model.User, error) {
	if s.ProfileFn != nil {
		return s.ProfileFn(ctx, id)
	}
	return &model.User{ID: id, Role: model.RoleVendor}, nil
}

func (s *MarketFacadeStub) CreateOrder(ctx context.Context, p model.Principal, in usecase.CreateOrderInput) (*model.Order, error) {
	if s.CreateOrderFn != nil {
		return s.CreateOrderFn(ctx, p, in)
	}
	return &model.Order{ID: uuid.New(), VendorID: p.ID, SupplierID: in.SupplierID, Status: model.OrderStatusPending, PaymentStatus: model.PaymentStatusPending}, nil
}

func (s *MarketFacadeStub) Order(ctx context.Context, p model.Principal, id uuid.UUID) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, p, id)
	}
	return &model.Order{ID: id, VendorID: p.ID, Status: model.OrderStatusPending, PaymentStatus: model.PaymentStatusPending}, nil
}

func (s *MarketFacadeStub) Orders(ctx context.Context, p model.Principal, status *model.OrderStatus, page, limit int) (*usecase.OrderPage, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, p, status, page, limit)
	}
	return &usecase.OrderPage{CurrentPage: page}, nil
}

func (s *MarketFacadeStub) UpdateOrder(ctx context.Context, p model.Principal, id uuid.UUID, patch repository.OrderPatch) (*model.Order, error) {
	if s.UpdateOrderFn != nil {
		return s.UpdateOrderFn(ctx, p, id, patch)
	}
	return &model.Order{ID: id, VendorID: p.ID}, nil
}

func (s *MarketFacadeStub) DecideOrder(ctx context.Context, p model.Principal, id uuid.UUID, status model.OrderStatus, reason string) (*model.Order, error) {
	if s.DecideOrderFn != nil {
		return s.DecideOrderFn(ctx, p, id, status, reason)
	}
	return &model.Order{ID: id, SupplierID: p.ID, Status: status}, nil
}

func (s *MarketFacadeStub) ProgressOrder(ctx context.Context, p model.Principal, id uuid.UUID, status model.OrderStatus, notes string) (*model.Order, error) {
	if s.ProgressOrderFn != nil {
		return s.ProgressOrderFn(ctx, p, id, status, notes)
	}
	return &model.Order{ID: id, SupplierID: p.ID, Status: status}, nil
}

func (s *MarketFacadeStub) ScheduleDelivery(ctx context.Context, p model.Principal, id uuid.UUID, date time.Time, address, notes string) (*model.Order, error) {
	if s.ScheduleDeliveryFn != nil {
		return s.ScheduleDeliveryFn(ctx, p, id, date, address, notes)
	}
	return &model.Order{ID: id, VendorID: p.ID, Status: model.OrderStatusInProgress, DeliveryDate: date, DeliveryAddress: address}, nil
}

func (s *MarketFacadeStub) SupplierDashboard(ctx context.Context, p model.Principal) (*repository.DashboardStats, error) {
	if s.SupplierDashboardFn != nil {
		return s.SupplierDashboardFn(ctx, p)
	}
	return &repository.DashboardStats{}, nil
}

func (s *MarketFacadeStub) CreateGroup(ctx context.Context, p model.Principal, in usecase.CreateGroupInput) (*model.OrderGroup, error) {
	if s.CreateGroupFn != nil {
		return s.CreateGroupFn(ctx, p, in)
	}
	return &model.OrderGroup{ID: uuid.New(), Name: in.Name, CreatedBy: p.ID, TotalAmount: in.TotalAmount, Status: model.GroupStatusActive}, nil
}

func (s *MarketFacadeStub) Group(ctx context.Context, id uuid.UUID) (*model.OrderGroup, error) {
	if s.GroupFn != nil {
		return s.GroupFn(ctx, id)
	}
	return &model.OrderGroup{ID: id, Status: model.GroupStatusActive}, nil
}

func (s *MarketFacadeStub) Groups(ctx context.Context, userID uuid.UUID) ([]model.OrderGroup, error) {
	if s.GroupsFn != nil {
		return s.GroupsFn(ctx, userID)
	}
	return nil, nil
}

func (s *MarketFacadeStub) PaymentLink(ctx context.Context, orderID uuid.UUID, amount model.Money, description string) (string, model.Money, error) {
	if s.PaymentLinkFn != nil {
		return s.PaymentLinkFn(ctx, orderID, amount, description)
	}
	return "upi://pay?pa=test@upi", amount, nil
}

func (s *MarketFacadeStub) ProcessPayment(ctx context.Context, p model.Principal, orderID uuid.UUID, transactionID string, amount model.Money, success bool) (*model.Order, error) {
	if s.ProcessPaymentFn != nil {
		return s.ProcessPaymentFn(ctx, p, orderID, transactionID, amount, success)
	}
	status := model.PaymentStatusPaid
	if !success {
		status = model.PaymentStatusFailed
	}
	return &model.Order{ID: orderID, VendorID: p.ID, PaymentStatus: status}, nil
}

func (s *MarketFacadeStub) PaymentStatus(ctx context.Context, orderID uuid.UUID) (*model.Order, error) {
	if s.PaymentStatusFn != nil {
		return s.PaymentStatusFn(ctx, orderID)
	}
	return &model.Order{ID: orderID, PaymentStatus: model.PaymentStatusPending}, nil
}

func (s *MarketFacadeStub) PaymentHistory(ctx context.Context, p model.Principal, page, limit int) (*usecase.PaymentHistory, error) {
	if s.PaymentHistoryFn != nil {
		return s.PaymentHistoryFn(ctx, p, page, limit)
	}
	return &usecase.PaymentHistory{CurrentPage: page}, nil
}

func (s *MarketFacadeStub) NearbySuppliers(ctx context.Context, longitude, latitude, maxDistance float64) ([]usecase.NearbySupplier, error) {
	if s.NearbySuppliersFn != nil {
		return s.NearbySuppliersFn(ctx, longitude, latitude, maxDistance)
	}
	return nil, nil
}

func (s *MarketFacadeStub) RateSupplier(ctx context.Context, p model.Principal, supplierID uuid.UUID, rating float64) (float64, int, error) {
	if s.RateSupplierFn != nil {
		return s.RateSupplierFn(ctx, p, supplierID, rating)
	}
	return rating, 1, nil
}

// SettlementFacadeStub mimics sweeper interactions with the facade.
type SettlementFacadeStub struct {
	Batches     [][]model.OrderGroup
	GroupsFn    func(context.Context, int) ([]model.OrderGroup, error)
	AnnounceFn  func(model.OrderGroup)
	Announced   []model.OrderGroup
	mu          sync.Mutex
	batchCursor int32
}

// Lock exposes internal mutex for external synchronization.
func (s *SettlementFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *SettlementFacadeStub) Unlock() { s.mu.Unlock() }

// GroupsForSettlement returns batches from the configured queue.
func (s *SettlementFacadeStub) GroupsForSettlement(ctx context.Context, limit int) ([]model.OrderGroup, error) {
	if s.GroupsFn != nil {
		return s.GroupsFn(ctx, limit)
	}
	call := atomic.AddInt32(&s.batchCursor, 1)
	if int(call) <= len(s.Batches) {
		return s.Batches[call-1], nil
	}
	time.Sleep(10 * time.Millisecond)
	return nil, nil
}

// AnnounceGroupSettled records announced groups.
func (s *SettlementFacadeStub) AnnounceGroupSettled(group model.OrderGroup) {
	if s.AnnounceFn != nil {
		s.AnnounceFn(group)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Announced = append(s.Announced, group)
}

// HealthCheckerStub reports a configurable health state.
type HealthCheckerStub struct {
	Err error
}

// HealthCheck returns the configured error.
func (s HealthCheckerStub) HealthCheck(ctx context.Context) error {
	return s.Err
}
