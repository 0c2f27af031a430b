package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/google/uuid"

	domainErrors "github.com/smartkart/smartkart/internal/domain/errors"
	"github.com/smartkart/smartkart/internal/domain/model"
	"github.com/smartkart/smartkart/internal/domain/repository"
	"github.com/smartkart/smartkart/internal/notify"
)

// UPIConfig identifies the merchant in generated payment links.
type UPIConfig struct {
	MerchantVPA  string
	MerchantName string
}

// PaymentHistory is a page of a user's orders with the paid aggregate.
type PaymentHistory struct {
	Orders      []model.Order
	Total       int
	TotalPages  int
	CurrentPage int
	TotalPaid   model.Money
}

// PaymentUseCase generates UPI payment links and settles transactions into
// orders and group shares.
type PaymentUseCase struct {
	orders   repository.OrderRepository
	payments repository.PaymentRepository
	groups   *GroupUseCase
	relay    notify.Publisher
	upi      UPIConfig
}

// NewPaymentUseCase constructs PaymentUseCase.
func NewPaymentUseCase(orders repository.OrderRepository, payments repository.PaymentRepository, groups *GroupUseCase, relay notify.Publisher, upi UPIConfig) *PaymentUseCase {
	return &PaymentUseCase{orders: orders, payments: payments, groups: groups, relay: relay, upi: upi}
}

// GenerateLink builds a upi://pay deep link for the order. The amount
// defaults to the order total.
func (u *PaymentUseCase) GenerateLink(ctx context.Context, orderID uuid.UUID, amount model.Money, description string) (string, model.Money, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return "", 0, err
	}

	if amount <= 0 {
		amount = order.TotalAmount
	}
	if description == "" {
		description = fmt.Sprintf("Payment for order %s", orderID)
	}

	params := url.Values{}
	params.Set("pa", u.upi.MerchantVPA)
	params.Set("pn", u.upi.MerchantName)
	params.Set("tn", description)
	params.Set("am", fmt.Sprintf("%.2f", amount.Float64()))
	params.Set("cu", "INR")
	params.Set("tr", orderID.String())

	return "upi://pay?" + params.Encode(), amount, nil
}

// Process settles a UPI transaction result. On success the order is marked
// paid, the group share is incremented when the order belongs to a group,
// and the supplier is notified. The transaction id is an idempotency key: a
// replayed transaction fails with a conflict and does not double-count.
func (u *PaymentUseCase) Process(ctx context.Context, p model.Principal, orderID uuid.UUID, transactionID string, amount model.Money, success bool) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !success {
		if err := u.orders.SetPaymentStatus(ctx, orderID, model.PaymentStatusFailed); err != nil {
			return nil, err
		}
		order.PaymentStatus = model.PaymentStatusFailed
		return order, nil
	}

	if amount <= 0 || transactionID == "" {
		return nil, domainErrors.ErrInvalidAmount
	}

	if _, err := u.payments.Create(ctx, &model.Payment{
		ID:            uuid.New(),
		OrderID:       orderID,
		VendorID:      p.ID,
		TransactionID: transactionID,
		Amount:        amount,
		Status:        model.PaymentStatusPaid,
	}); err != nil {
		return nil, err
	}

	if err := u.orders.SetPaymentStatus(ctx, orderID, model.PaymentStatusPaid); err != nil {
		return nil, err
	}
	order.PaymentStatus = model.PaymentStatusPaid

	if order.GroupID != nil {
		err := u.groups.RecordPayment(ctx, *order.GroupID, p.ID, amount)
		if err != nil && !errors.Is(err, domainErrors.ErrNotGroupMember) {
			// A payer outside the group settles the order but not the
			// group, mirroring the permissive original behavior.
			return nil, err
		}
	}

	u.relay.Publish(order.SupplierID, notify.Event{
		Name: notify.EventPaymentReceived,
		Payload: notify.PaymentReceivedPayload{
			OrderID:       order.ID,
			Amount:        amount.Float64(),
			TransactionID: transactionID,
		},
	})

	return order, nil
}

// Status returns the payment state of an order.
func (u *PaymentUseCase) Status(ctx context.Context, orderID uuid.UUID) (*model.Order, error) {
	return u.orders.GetByID(ctx, orderID)
}

// History lists the caller's orders with the total paid aggregate.
func (u *PaymentUseCase) History(ctx context.Context, p model.Principal, page, limit int) (*PaymentHistory, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	orders, total, err := u.orders.ListByParty(ctx, p.ID, p.Role, repository.OrderFilter{
		Limit:  limit,
		Offset: (page - 1) * limit,
	})
	if err != nil {
		return nil, err
	}
	totalPaid, err := u.orders.TotalPaidByParty(ctx, p.ID, p.Role)
	if err != nil {
		return nil, err
	}
	return &PaymentHistory{
		Orders:      orders,
		Total:       total,
		TotalPages:  (total + limit - 1) / limit,
		CurrentPage: page,
		TotalPaid:   totalPaid,
	}, nil
}
