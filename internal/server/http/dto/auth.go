package dto

// RegisterRequest describes a new account payload.
type RegisterRequest struct {
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	Password     string          `json:"password"`
	Phone        string          `json:"phone"`
	Role         string          `json:"role"`
	BusinessName string          `json:"businessName"`
	BusinessType string          `json:"businessType"`
	Location     LocationPayload `json:"location"`
	Address      string          `json:"address"`
}

// LoginRequest describes email/password payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries the issued token and the account snapshot.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
