package model

import (
	"time"

	"github.com/google/uuid"
)

// Payment records one settled UPI transaction against an order.
// TransactionID is unique; replaying the same transaction is rejected so a
// client retry can never double-count group settlement.
type Payment struct {
	ID            uuid.UUID
	OrderID       uuid.UUID
	VendorID      uuid.UUID
	TransactionID string
	Amount        Money
	Status        PaymentStatus
	CreatedAt     time.Time
}
