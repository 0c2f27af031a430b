package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/smartkart/smartkart/internal/domain/errors"
	"github.com/smartkart/smartkart/internal/domain/model"
	"github.com/smartkart/smartkart/internal/domain/repository"
	"github.com/smartkart/smartkart/internal/notify"
	testhelpers "github.com/smartkart/smartkart/internal/test"
	"github.com/smartkart/smartkart/internal/usecase"
)

func repositoryPatch(notes string) repository.OrderPatch {
	return repository.OrderPatch{Notes: &notes}
}

func onionOrderInput(supplierID uuid.UUID) usecase.CreateOrderInput {
	return usecase.CreateOrderInput{
		SupplierID: supplierID,
		Items: []usecase.OrderItemInput{
			{Name: "Onions", Quantity: 25, Unit: "kg", PricePerUnit: model.MoneyFromFloat(30)},
			{Name: "Tomatoes", Quantity: 10, Unit: "kg", PricePerUnit: model.MoneyFromFloat(45.50)},
		},
		DeliveryDate:    time.Now().Add(24 * time.Hour),
		DeliveryAddress: "Stall 14, KR Market",
	}
}

func TestOrderUseCaseCreateComputesTotals(t *testing.T) {
	repo := testhelpers.NewOrderRepositoryStub()
	relay := &testhelpers.RelayRecorder{}
	uc := usecase.NewOrderUseCase(repo, relay)

	vendor := vendorPrincipal()
	supplierID := uuid.New()
	order, err := uc.Create(context.Background(), vendor, onionOrderInput(supplierID))
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	if order.Items[0].TotalPrice != model.MoneyFromFloat(750) {
		t.Fatalf("first line total = %d, want 75000 paise", order.Items[0].TotalPrice)
	}
	if order.Items[1].TotalPrice != model.MoneyFromFloat(455) {
		t.Fatalf("second line total = %d, want 45500 paise", order.Items[1].TotalPrice)
	}
	if order.TotalAmount != model.MoneyFromFloat(1205) {
		t.Fatalf("order total = %d, want 120500 paise", order.TotalAmount)
	}
	if order.Status != model.OrderStatusPending || order.PaymentStatus != model.PaymentStatusPending {
		t.Fatalf("unexpected initial statuses: %s / %s", order.Status, order.PaymentStatus)
	}

	events := relay.ForUser(supplierID)
	if len(events) != 1 || events[0].Name != notify.EventNewOrder {
		t.Fatalf("supplier notifications: %+v", events)
	}
}

func TestOrderUseCaseCreateValidation(t *testing.T) {
	uc := usecase.NewOrderUseCase(testhelpers.NewOrderRepositoryStub(), &testhelpers.RelayRecorder{})
	ctx := context.Background()

	supplier := model.Principal{ID: uuid.New(), Role: model.RoleSupplier}
	if _, err := uc.Create(ctx, supplier, onionOrderInput(uuid.New())); err != domainErrors.ErrForbidden {
		t.Fatalf("expected forbidden for supplier caller, got %v", err)
	}

	in := onionOrderInput(uuid.New())
	in.Items = nil
	if _, err := uc.Create(ctx, vendorPrincipal(), in); err != domainErrors.ErrInvalidAmount {
		t.Fatalf("expected invalid amount for empty items, got %v", err)
	}

	in = onionOrderInput(uuid.New())
	in.Items[0].Quantity = 0
	if _, err := uc.Create(ctx, vendorPrincipal(), in); err != domainErrors.ErrInvalidAmount {
		t.Fatalf("expected invalid amount for zero quantity, got %v", err)
	}
}

func TestOrderUseCaseGetRestrictedToParties(t *testing.T) {
	repo := testhelpers.NewOrderRepositoryStub()
	uc := usecase.NewOrderUseCase(repo, &testhelpers.RelayRecorder{})
	ctx := context.Background()

	vendor := vendorPrincipal()
	supplierID := uuid.New()
	order, err := uc.Create(ctx, vendor, onionOrderInput(supplierID))
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	if _, err := uc.Get(ctx, vendor, order.ID); err != nil {
		t.Fatalf("vendor should see own order: %v", err)
	}
	supplier := model.Principal{ID: supplierID, Role: model.RoleSupplier}
	if _, err := uc.Get(ctx, supplier, order.ID); err != nil {
		t.Fatalf("supplier should see own order: %v", err)
	}
	stranger := vendorPrincipal()
	if _, err := uc.Get(ctx, stranger, order.ID); err != domainErrors.ErrForbidden {
		t.Fatalf("expected forbidden for stranger, got %v", err)
	}
	if _, err := uc.Get(ctx, vendor, uuid.New()); err != domainErrors.ErrNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestOrderUseCaseDecide(t *testing.T) {
	repo := testhelpers.NewOrderRepositoryStub()
	relay := &testhelpers.RelayRecorder{}
	uc := usecase.NewOrderUseCase(repo, relay)
	ctx := context.Background()

	vendor := vendorPrincipal()
	supplierID := uuid.New()
	supplier := model.Principal{ID: supplierID, Role: model.RoleSupplier}
	order, err := uc.Create(ctx, vendor, onionOrderInput(supplierID))
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	if _, err := uc.Decide(ctx, supplier, order.ID, model.OrderStatusDelivered, ""); err != domainErrors.ErrInvalidStatus {
		t.Fatalf("expected invalid status for delivered decision, got %v", err)
	}
	if _, err := uc.Decide(ctx, vendor, order.ID, model.OrderStatusAccepted, ""); err != domainErrors.ErrForbidden {
		t.Fatalf("expected forbidden for vendor decision, got %v", err)
	}
	otherSupplier := model.Principal{ID: uuid.New(), Role: model.RoleSupplier}
	if _, err := uc.Decide(ctx, otherSupplier, order.ID, model.OrderStatusAccepted, ""); err != domainErrors.ErrForbidden {
		t.Fatalf("expected forbidden for foreign supplier, got %v", err)
	}

	accepted, err := uc.Decide(ctx, supplier, order.ID, model.OrderStatusAccepted, "")
	if err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	if accepted.Status != model.OrderStatusAccepted {
		t.Fatalf("status = %s, want accepted", accepted.Status)
	}

	// Already decided orders stay decided.
	if _, err := uc.Decide(ctx, supplier, order.ID, model.OrderStatusRejected, "changed my mind"); err != domainErrors.ErrConflict {
		t.Fatalf("expected conflict for second decision, got %v", err)
	}

	events := relay.ForUser(vendor.ID)
	if len(events) != 1 || events[0].Name != notify.EventOrderStatusUpdated {
		t.Fatalf("vendor notifications: %+v", events)
	}
}

func TestOrderUseCaseDecideRejectStoresReason(t *testing.T) {
	repo := testhelpers.NewOrderRepositoryStub()
	uc := usecase.NewOrderUseCase(repo, &testhelpers.RelayRecorder{})
	ctx := context.Background()

	supplierID := uuid.New()
	supplier := model.Principal{ID: supplierID, Role: model.RoleSupplier}
	order, err := uc.Create(ctx, vendorPrincipal(), onionOrderInput(supplierID))
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	rejected, err := uc.Decide(ctx, supplier, order.ID, model.OrderStatusRejected, "out of stock")
	if err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if rejected.Status != model.OrderStatusRejected || rejected.Notes != "out of stock" {
		t.Fatalf("unexpected rejected order: %+v", rejected)
	}
	if len(repo.StatusCalls) != 1 || repo.StatusCalls[0].Notes == nil || *repo.StatusCalls[0].Notes != "out of stock" {
		t.Fatalf("status calls: %+v", repo.StatusCalls)
	}
}

func TestOrderUseCaseProgress(t *testing.T) {
	repo := testhelpers.NewOrderRepositoryStub()
	uc := usecase.NewOrderUseCase(repo, &testhelpers.RelayRecorder{})
	ctx := context.Background()

	supplierID := uuid.New()
	supplier := model.Principal{ID: supplierID, Role: model.RoleSupplier}
	order, err := uc.Create(ctx, vendorPrincipal(), onionOrderInput(supplierID))
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	// A pending order cannot progress before acceptance.
	if _, err := uc.Progress(ctx, supplier, order.ID, model.OrderStatusInProgress, ""); err != domainErrors.ErrConflict {
		t.Fatalf("expected conflict for pending order, got %v", err)
	}

	if _, err := uc.Decide(ctx, supplier, order.ID, model.OrderStatusAccepted, ""); err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	for _, status := range []model.OrderStatus{model.OrderStatusInProgress, model.OrderStatusReady, model.OrderStatusDelivered} {
		updated, err := uc.Progress(ctx, supplier, order.ID, status, "")
		if err != nil {
			t.Fatalf("progress to %s failed: %v", status, err)
		}
		if updated.Status != status {
			t.Fatalf("status = %s, want %s", updated.Status, status)
		}
	}

	// Delivered is terminal.
	if _, err := uc.Progress(ctx, supplier, order.ID, model.OrderStatusReady, ""); err != domainErrors.ErrConflict {
		t.Fatalf("expected conflict after delivery, got %v", err)
	}

	if _, err := uc.Progress(ctx, supplier, order.ID, model.OrderStatusAccepted, ""); err != domainErrors.ErrInvalidStatus {
		t.Fatalf("expected invalid status for accepted via progress, got %v", err)
	}
}

func TestOrderUseCaseScheduleDelivery(t *testing.T) {
	repo := testhelpers.NewOrderRepositoryStub()
	relay := &testhelpers.RelayRecorder{}
	uc := usecase.NewOrderUseCase(repo, relay)
	ctx := context.Background()

	vendor := vendorPrincipal()
	supplierID := uuid.New()
	order, err := uc.Create(ctx, vendor, onionOrderInput(supplierID))
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	if _, err := uc.ScheduleDelivery(ctx, vendorPrincipal(), order.ID, time.Now(), "elsewhere", ""); err != domainErrors.ErrForbidden {
		t.Fatalf("expected forbidden for foreign vendor, got %v", err)
	}

	date := time.Now().Add(72 * time.Hour).Truncate(time.Second)
	updated, err := uc.ScheduleDelivery(ctx, vendor, order.ID, date, "Gate 3, City Market", "call on arrival")
	if err != nil {
		t.Fatalf("schedule delivery failed: %v", err)
	}
	if updated.Status != model.OrderStatusInProgress {
		t.Fatalf("status = %s, want in_progress", updated.Status)
	}
	if updated.DeliveryAddress != "Gate 3, City Market" || !updated.DeliveryDate.Equal(date) {
		t.Fatalf("delivery details not applied: %+v", updated)
	}

	events := relay.ForUser(supplierID)
	var scheduled bool
	for _, e := range events {
		if e.Name == notify.EventDeliveryScheduled {
			scheduled = true
		}
	}
	if !scheduled {
		t.Fatalf("supplier did not receive delivery event: %+v", events)
	}
}

func TestOrderUseCaseListPagination(t *testing.T) {
	repo := testhelpers.NewOrderRepositoryStub()
	uc := usecase.NewOrderUseCase(repo, &testhelpers.RelayRecorder{})
	ctx := context.Background()

	vendor := vendorPrincipal()
	for i := 0; i < 3; i++ {
		if _, err := uc.Create(ctx, vendor, onionOrderInput(uuid.New())); err != nil {
			t.Fatalf("create order failed: %v", err)
		}
	}

	page, err := uc.List(ctx, vendor, nil, 0, 0)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if page.CurrentPage != 1 || page.Total != 3 || page.TotalPages != 1 {
		t.Fatalf("unexpected page: %+v", page)
	}

	pending := model.OrderStatusPending
	page, err = uc.List(ctx, vendor, &pending, 1, 2)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if page.Total != 3 || page.TotalPages != 2 {
		t.Fatalf("unexpected filtered page: %+v", page)
	}

	delivered := model.OrderStatusDelivered
	page, err = uc.List(ctx, vendor, &delivered, 1, 10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if page.Total != 0 {
		t.Fatalf("expected no delivered orders, got %+v", page)
	}
}

func TestOrderUseCaseUpdatePatch(t *testing.T) {
	repo := testhelpers.NewOrderRepositoryStub()
	uc := usecase.NewOrderUseCase(repo, &testhelpers.RelayRecorder{})
	ctx := context.Background()

	vendor := vendorPrincipal()
	order, err := uc.Create(ctx, vendor, onionOrderInput(uuid.New()))
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	notes := "please pack separately"
	updated, err := uc.Update(ctx, vendor, order.ID, repositoryPatch(notes))
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Notes != notes {
		t.Fatalf("notes = %q, want %q", updated.Notes, notes)
	}

	if _, err := uc.Update(ctx, vendorPrincipal(), order.ID, repositoryPatch("x")); err != domainErrors.ErrForbidden {
		t.Fatalf("expected forbidden for stranger, got %v", err)
	}
}

func TestOrderUseCaseDashboardSupplierOnly(t *testing.T) {
	uc := usecase.NewOrderUseCase(testhelpers.NewOrderRepositoryStub(), &testhelpers.RelayRecorder{})
	ctx := context.Background()

	if _, err := uc.Dashboard(ctx, vendorPrincipal()); err != domainErrors.ErrForbidden {
		t.Fatalf("expected forbidden for vendor, got %v", err)
	}
	supplier := model.Principal{ID: uuid.New(), Role: model.RoleSupplier}
	if _, err := uc.Dashboard(ctx, supplier); err != nil {
		t.Fatalf("dashboard failed: %v", err)
	}
}
