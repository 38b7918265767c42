package dto

import "github.com/golang-jwt/jwt/v5"

// AuthClaims defines the custom claims for JWT.
type AuthClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// MessageResponse represents a generic message response.
// @Description Generic message response
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse represents the health check response
// @Description Health check response
type HealthResponse struct {
	Status         string `json:"status"`
	Cache          string `json:"cache"`
	ActiveSessions int    `json:"active_sessions"`
}
