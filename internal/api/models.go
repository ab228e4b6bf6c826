package api

import (
	"time"

	"github.com/google/uuid"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// UserID is the unique identifier for the authenticated user
	UserID uuid.UUID `json:"user_id"`

	// AccessToken is the JWT token used for API authorization
	AccessToken string `json:"token"`

	// RefreshToken is the JWT token used to obtain new access tokens
	RefreshToken string `json:"refresh_token,omitempty"`

	// ExpiresAt is the ISO 8601 timestamp when the access token expires
	ExpiresAt string `json:"expires_at,omitempty"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	// RefreshToken is the JWT refresh token to be used to obtain a new token pair
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse defines the successful response for the token refresh endpoint.
type RefreshTokenResponse struct {
	// AccessToken is the new JWT token used for API authorization
	AccessToken string `json:"access_token"`

	// RefreshToken is the new JWT token used to obtain future access tokens
	RefreshToken string `json:"refresh_token"`

	// ExpiresAt is the ISO 8601 timestamp when the access token expires
	ExpiresAt string `json:"expires_at"`
}

// UserResponse defines the public view of a user returned by the /me endpoint.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Credits   int       `json:"credits"`
	Plan      string    `json:"plan"`
	CreatedAt time.Time `json:"created_at"`
}

// GenerateWorksheetRequest defines the payload for the worksheet generation
// endpoint. The constraints mirror the generator's input contract.
type GenerateWorksheetRequest struct {
	Level         string   `json:"level"          validate:"required,oneof=A1 A2 B1 B2"`
	Topic         string   `json:"topic"          validate:"required"`
	AgeGroup      string   `json:"age_group"      validate:"required,oneof=8-10 11-13 14-16 adult"`
	Duration      int      `json:"duration"       validate:"required,gte=10,lte=45"`
	ActivityTypes []string `json:"activity_types" validate:"required,min=1,dive,required"`
	ThemeWords    []string `json:"theme_words"    validate:"omitempty,dive,required"`
}

// GenerateWorksheetResponse defines the successful response for the worksheet
// generation endpoint.
type GenerateWorksheetResponse struct {
	Title             string   `json:"title"`
	EstimatedDuration string   `json:"estimated_duration"`
	Content           []string `json:"content"`
	Solutions         []string `json:"solutions"`
	RemainingCredits  int      `json:"remaining_credits"`
}

// WorksheetSummary is one entry of the worksheet list endpoint.
type WorksheetSummary struct {
	ID        uuid.UUID `json:"id"`
	Level     string    `json:"level"`
	Topic     string    `json:"topic"`
	Exercises int       `json:"exercises"`
	CreatedAt time.Time `json:"created_at"`
}
