// Package auth validates the bearer tokens that identify users on incoming
// requests. Token issuance happens outside this service; only validation and
// a generation helper for tooling live here.
package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// JWTService defines operations for consuming JWT authentication tokens.
type JWTService interface {
	// ValidateToken validates the provided token string and extracts the claims.
	// Returns the claims containing user information if the token is valid,
	// or an error if validation fails (expired, invalid signature, etc.).
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)

	// GenerateToken creates a signed JWT containing the user's identity.
	// The API exposes no issuance endpoint; this exists for tests and
	// operational tooling that need a valid token.
	GenerateToken(ctx context.Context, userID uuid.UUID) (string, error)
}

// Claims represents the validated claims extracted from a JWT.
type Claims struct {
	// UserID is the unique identifier of the user the token was issued for.
	UserID uuid.UUID `json:"uid,omitempty"`

	// Standard registered JWT claims
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
