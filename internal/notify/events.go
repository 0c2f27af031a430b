package notify

import (
	"time"

	"github.com/google/uuid"
)

// Event names delivered over the per-user channel.
const (
	EventNewOrder            = "new-order"
	EventOrderStatusUpdated  = "order-status-updated"
	EventPaymentReceived     = "payment-received"
	EventNewOrderGroup       = "new-order-group"
	EventDeliveryScheduled   = "delivery-scheduled"
	EventOrderGroupCompleted = "order-group-completed"
)

// Event is one outbound notification. Payload must be JSON-serializable.
type Event struct {
	Name    string `json:"event"`
	Payload any    `json:"data"`
}

// NewOrderPayload announces an incoming order to its supplier.
type NewOrderPayload struct {
	OrderID     uuid.UUID `json:"orderId"`
	VendorID    uuid.UUID `json:"vendorId"`
	TotalAmount float64   `json:"totalAmount"`
}

// OrderStatusPayload announces a lifecycle transition to the vendor.
type OrderStatusPayload struct {
	OrderID    uuid.UUID `json:"orderId"`
	Status     string    `json:"status"`
	SupplierID uuid.UUID `json:"supplierId"`
}

// PaymentReceivedPayload announces a settled payment to the supplier.
type PaymentReceivedPayload struct {
	OrderID       uuid.UUID `json:"orderId"`
	Amount        float64   `json:"amount"`
	TransactionID string    `json:"transactionId"`
}

// NewOrderGroupPayload carries a member's own share of a new group.
type NewOrderGroupPayload struct {
	GroupID     uuid.UUID `json:"groupId"`
	Name        string    `json:"name"`
	ShareAmount float64   `json:"shareAmount"`
}

// DeliveryScheduledPayload announces delivery details to the supplier.
type DeliveryScheduledPayload struct {
	OrderID         uuid.UUID `json:"orderId"`
	DeliveryDate    time.Time `json:"deliveryDate"`
	DeliveryAddress string    `json:"deliveryAddress"`
}

// GroupCompletedPayload tells members their group is fully settled.
type GroupCompletedPayload struct {
	GroupID   uuid.UUID `json:"groupId"`
	Name      string    `json:"name"`
	TotalPaid float64   `json:"totalPaid"`
}
