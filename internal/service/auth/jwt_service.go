// Package auth verifies bearer tokens presented to the API and extracts the
// user handle an activity is published under.
package auth

import (
	"context"
	"time"
)

// JWTService defines operations for managing JWT authentication tokens.
type JWTService interface {
	// GenerateToken creates a signed token for handle, valid for lifetime.
	GenerateToken(ctx context.Context, handle string, lifetime time.Duration) (string, error)

	// ValidateToken validates the provided token string and extracts the claims.
	// Returns the claims if the token is valid, or an error if validation
	// fails (expired, invalid signature, no handle, etc.).
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims represents the verified content of a token.
type Claims struct {
	// Handle is the user handle the token was issued for. Tokens without a
	// handle claim fall back to the subject.
	Handle string `json:"handle,omitempty"`

	// Standard registered JWT claims
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
