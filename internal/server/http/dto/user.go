package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/smartkart/smartkart/internal/domain/model"
)

// LocationPayload is a GeoJSON-style coordinate pair.
type LocationPayload struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

// UserResponse is the public account representation.
type UserResponse struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	Phone        string          `json:"phone,omitempty"`
	Role         string          `json:"role"`
	BusinessName string          `json:"businessName,omitempty"`
	BusinessType string          `json:"businessType,omitempty"`
	Location     LocationPayload `json:"location"`
	Address      string          `json:"address,omitempty"`
	Rating       float64         `json:"rating"`
	RatingCount  int             `json:"ratingCount"`
	Verified     bool            `json:"verified"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// ToUserResponse maps a domain user to its public representation.
func ToUserResponse(u model.User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Phone:        u.Phone,
		Role:         string(u.Role),
		BusinessName: u.BusinessName,
		BusinessType: u.BusinessType,
		Location:     LocationPayload{Longitude: u.Location.Longitude, Latitude: u.Location.Latitude},
		Address:      u.Address,
		Rating:       u.Rating,
		RatingCount:  u.RatingCount,
		Verified:     u.Verified,
		CreatedAt:    u.CreatedAt,
	}
}

// NearbySupplierResponse pairs a supplier with its distance in meters.
type NearbySupplierResponse struct {
	Supplier UserResponse `json:"supplier"`
	Distance float64      `json:"distance"`
}

// RateSupplierRequest carries one rating.
type RateSupplierRequest struct {
	Rating float64 `json:"rating"`
}

// RatingResponse returns the supplier's updated running average.
type RatingResponse struct {
	Rating      float64 `json:"rating"`
	RatingCount int     `json:"ratingCount"`
}
