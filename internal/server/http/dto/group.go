package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/smartkart/smartkart/internal/domain/model"
)

// GroupSharePayload is one member's requested percentage.
type GroupSharePayload struct {
	VendorID        uuid.UUID `json:"vendorId"`
	SharePercentage float64   `json:"sharePercentage"`
}

// CreateGroupRequest opens a bulk order group, total in rupees.
type CreateGroupRequest struct {
	Name         string              `json:"name"`
	Members      []GroupSharePayload `json:"members"`
	TotalAmount  float64             `json:"totalAmount"`
	DeliveryDate time.Time           `json:"deliveryDate"`
	Description  string              `json:"description,omitempty"`
}

// GroupMemberResponse is one member's share and settlement state.
type GroupMemberResponse struct {
	VendorID        uuid.UUID `json:"vendorId"`
	SharePercentage float64   `json:"sharePercentage"`
	ShareAmount     float64   `json:"shareAmount"`
	PaidAmount      float64   `json:"paidAmount"`
}

// GroupResponse is the public group representation, amounts in rupees.
type GroupResponse struct {
	ID              uuid.UUID             `json:"id"`
	Name            string                `json:"name"`
	CreatedBy       uuid.UUID             `json:"createdBy"`
	Members         []GroupMemberResponse `json:"members"`
	TotalAmount     float64               `json:"totalAmount"`
	TotalPaidAmount float64               `json:"totalPaidAmount"`
	Status          string                `json:"status"`
	DeliveryDate    time.Time             `json:"deliveryDate"`
	Description     string                `json:"description,omitempty"`
	CreatedAt       time.Time             `json:"createdAt"`
	UpdatedAt       time.Time             `json:"updatedAt"`
}

// ToGroupResponse maps a domain group to its public representation.
func ToGroupResponse(g model.OrderGroup) GroupResponse {
	members := make([]GroupMemberResponse, len(g.Members))
	for i, m := range g.Members {
		members[i] = GroupMemberResponse{
			VendorID:        m.VendorID,
			SharePercentage: m.SharePercentage,
			ShareAmount:     m.ShareAmount.Float64(),
			PaidAmount:      m.PaidAmount.Float64(),
		}
	}
	return GroupResponse{
		ID:              g.ID,
		Name:            g.Name,
		CreatedBy:       g.CreatedBy,
		Members:         members,
		TotalAmount:     g.TotalAmount.Float64(),
		TotalPaidAmount: g.TotalPaidAmount.Float64(),
		Status:          string(g.Status),
		DeliveryDate:    g.DeliveryDate,
		Description:     g.Description,
		CreatedAt:       g.CreatedAt,
		UpdatedAt:       g.UpdatedAt,
	}
}
