package dto

import "time"

// LoginRequest payload for operator or viewer login.
type LoginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
}
