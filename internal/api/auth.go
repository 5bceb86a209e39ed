package api

import "github.com/eventz-dev/eventz/internal/domain"

// Request DTOs

type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// WalletLoginRequest carries an already-verified wallet address; signature
// checking happens before this service is reached.
type WalletLoginRequest struct {
	WalletAddress string `json:"walletAddress" validate:"required"`
	Email         string `json:"email" validate:"omitempty,email"`
}

// Response DTOs

// AuthResponse is the serialized identity the UI persists as its session
// marker; the token itself travels in the cookie.
type AuthResponse struct {
	User domain.User `json:"user"`
}
