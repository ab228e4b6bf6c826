package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// JWTService issues and validates the JWT token pairs used to authenticate
// API requests.
type JWTService interface {
	// GenerateToken creates a signed access token for the given user.
	GenerateToken(ctx context.Context, userID uuid.UUID) (string, error)

	// ValidateToken checks an access token's signature, expiry, and type,
	// returning the embedded claims on success.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)

	// GenerateRefreshToken creates a signed refresh token for the given user.
	// Refresh tokens outlive access tokens and are exchanged for new pairs.
	GenerateRefreshToken(ctx context.Context, userID uuid.UUID) (string, error)

	// ValidateRefreshToken checks a refresh token and returns its claims.
	// A token of the wrong type fails validation even when otherwise valid.
	ValidateRefreshToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims carries the application-specific token payload alongside the
// standard registered JWT claims.
type Claims struct {
	// UserID is the unique identifier of the user the token was issued for.
	UserID uuid.UUID `json:"uid,omitempty"`

	// TokenType distinguishes access tokens from refresh tokens so one
	// cannot be used in place of the other.
	TokenType string `json:"type,omitempty"`

	// Standard registered JWT claims
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
