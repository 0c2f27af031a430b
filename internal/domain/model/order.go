package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus describes the fulfilment lifecycle of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusAccepted   OrderStatus = "accepted"
	OrderStatusRejected   OrderStatus = "rejected"
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusReady      OrderStatus = "ready"
	OrderStatusDelivered  OrderStatus = "delivered"
)

// PaymentStatus is the payment axis, independent from fulfilment status.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// OrderItem is a single line of an order. TotalPrice is fixed at creation.
type OrderItem struct {
	Name         string  `json:"name"`
	Quantity     float64 `json:"quantity"`
	Unit         string  `json:"unit"`
	PricePerUnit Money   `json:"pricePerUnit"`
	TotalPrice   Money   `json:"totalPrice"`
}

// Order is one vendor to supplier purchase. Vendor and supplier references
// are immutable after creation; TotalAmount equals the sum of line totals at
// creation time and is not recomputed afterwards.
type Order struct {
	ID              uuid.UUID
	GroupID         *uuid.UUID
	VendorID        uuid.UUID
	SupplierID      uuid.UUID
	Items           []OrderItem
	TotalAmount     Money
	Status          OrderStatus
	PaymentStatus   PaymentStatus
	DeliveryDate    time.Time
	DeliveryAddress string
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsParty reports whether the user participates in the order.
func (o *Order) IsParty(userID uuid.UUID) bool {
	return o.VendorID == userID || o.SupplierID == userID
}
