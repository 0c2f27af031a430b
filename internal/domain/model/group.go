package model

import (
	"time"

	"github.com/google/uuid"
)

// GroupStatus describes the lifecycle of a bulk order group.
type GroupStatus string

const (
	GroupStatusActive    GroupStatus = "active"
	GroupStatusCompleted GroupStatus = "completed"
	GroupStatusCancelled GroupStatus = "cancelled"
)

// GroupMember is one vendor's share of a bulk order group. ShareAmount is
// computed once at creation; PaidAmount only ever grows.
type GroupMember struct {
	VendorID        uuid.UUID
	SharePercentage float64
	ShareAmount     Money
	PaidAmount      Money
}

// OrderGroup splits one aggregate amount across several vendors.
// TotalPaidAmount is maintained incrementally on each payment event rather
// than recomputed from member sums.
type OrderGroup struct {
	ID              uuid.UUID
	Name            string
	CreatedBy       uuid.UUID
	Members         []GroupMember
	TotalAmount     Money
	TotalPaidAmount Money
	Status          GroupStatus
	DeliveryDate    time.Time
	Description     string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsFullyPaid reports whether accumulated payments cover the group total.
func (g *OrderGroup) IsFullyPaid() bool {
	return g.TotalPaidAmount >= g.TotalAmount
}

// MemberPaidTotal sums member payments directly. The running
// TotalPaidAmount is the authoritative value; this exists to observe drift
// between the two.
func (g *OrderGroup) MemberPaidTotal() Money {
	var total Money
	for _, m := range g.Members {
		total += m.PaidAmount
	}
	return total
}

// Member returns the share entry for the vendor, if present.
func (g *OrderGroup) Member(vendorID uuid.UUID) (*GroupMember, bool) {
	for i := range g.Members {
		if g.Members[i].VendorID == vendorID {
			return &g.Members[i], true
		}
	}
	return nil, false
}
