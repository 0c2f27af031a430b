package model

import (
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of account kinds. Authorization decisions switch on
// it exhaustively rather than comparing raw strings.
type Role string

const (
	RoleVendor   Role = "vendor"
	RoleSupplier Role = "supplier"
)

// ParseRole validates a role value coming from the outside.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleVendor:
		return RoleVendor, true
	case RoleSupplier:
		return RoleSupplier, true
	default:
		return "", false
	}
}

// GeoPoint is a WGS84 coordinate in decimal degrees.
type GeoPoint struct {
	Longitude float64
	Latitude  float64
}

// User represents a registered marketplace account, vendor or supplier.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Phone        string
	Role         Role
	BusinessName string
	BusinessType string
	Location     GeoPoint
	Address      string
	Rating       float64
	RatingCount  int
	Verified     bool
	CreatedAt    time.Time
}

// Principal is the authenticated identity attached to a request.
type Principal struct {
	ID   uuid.UUID
	Role Role
}
