package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/smartkart/smartkart/internal/domain/model"
)

// OrderItemPayload is one line of an order, amounts in rupees.
type OrderItemPayload struct {
	Name         string  `json:"name"`
	Quantity     float64 `json:"quantity"`
	Unit         string  `json:"unit"`
	PricePerUnit float64 `json:"pricePerUnit"`
	TotalPrice   float64 `json:"totalPrice,omitempty"`
}

// CreateOrderRequest describes a vendor's purchase request.
type CreateOrderRequest struct {
	GroupID         *uuid.UUID         `json:"groupId,omitempty"`
	SupplierID      uuid.UUID          `json:"supplierId"`
	Items           []OrderItemPayload `json:"items"`
	DeliveryDate    time.Time          `json:"deliveryDate"`
	DeliveryAddress string             `json:"deliveryAddress"`
	Notes           string             `json:"notes,omitempty"`
}

// UpdateOrderRequest carries a partial update of mutable order fields.
type UpdateOrderRequest struct {
	DeliveryDate    *time.Time `json:"deliveryDate,omitempty"`
	DeliveryAddress *string    `json:"deliveryAddress,omitempty"`
	Notes           *string    `json:"notes,omitempty"`
}

// OrderDecisionRequest accepts or rejects a pending order.
type OrderDecisionRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// OrderProgressRequest advances an accepted order.
type OrderProgressRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes,omitempty"`
}

// ScheduleDeliveryRequest sets delivery details on the vendor's order.
type ScheduleDeliveryRequest struct {
	DeliveryDate    time.Time `json:"deliveryDate"`
	DeliveryAddress string    `json:"deliveryAddress"`
	Notes           string    `json:"notes,omitempty"`
}

// OrderResponse is the public order representation, amounts in rupees.
type OrderResponse struct {
	ID              uuid.UUID          `json:"id"`
	GroupID         *uuid.UUID         `json:"groupId,omitempty"`
	VendorID        uuid.UUID          `json:"vendorId"`
	SupplierID      uuid.UUID          `json:"supplierId"`
	Items           []OrderItemPayload `json:"items"`
	TotalAmount     float64            `json:"totalAmount"`
	Status          string             `json:"status"`
	PaymentStatus   string             `json:"paymentStatus"`
	DeliveryDate    time.Time          `json:"deliveryDate"`
	DeliveryAddress string             `json:"deliveryAddress,omitempty"`
	Notes           string             `json:"notes,omitempty"`
	CreatedAt       time.Time          `json:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt"`
}

// ToOrderResponse maps a domain order to its public representation.
func ToOrderResponse(o model.Order) OrderResponse {
	items := make([]OrderItemPayload, len(o.Items))
	for i, it := range o.Items {
		items[i] = OrderItemPayload{
			Name:         it.Name,
			Quantity:     it.Quantity,
			Unit:         it.Unit,
			PricePerUnit: it.PricePerUnit.Float64(),
			TotalPrice:   it.TotalPrice.Float64(),
		}
	}
	return OrderResponse{
		ID:              o.ID,
		GroupID:         o.GroupID,
		VendorID:        o.VendorID,
		SupplierID:      o.SupplierID,
		Items:           items,
		TotalAmount:     o.TotalAmount.Float64(),
		Status:          string(o.Status),
		PaymentStatus:   string(o.PaymentStatus),
		DeliveryDate:    o.DeliveryDate,
		DeliveryAddress: o.DeliveryAddress,
		Notes:           o.Notes,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

// OrderListResponse is a paginated order listing.
type OrderListResponse struct {
	Orders      []OrderResponse `json:"orders"`
	Total       int             `json:"total"`
	TotalPages  int             `json:"totalPages"`
	CurrentPage int             `json:"currentPage"`
}

// DashboardResponse aggregates a supplier's month-to-date activity.
type DashboardResponse struct {
	MonthlyOrders  int             `json:"monthlyOrders"`
	MonthlyRevenue float64         `json:"monthlyRevenue"`
	PendingOrders  int             `json:"pendingOrders"`
	RecentOrders   []OrderResponse `json:"recentOrders"`
}
