package store

import (
	"context"
	"database/sql"

	"github.com/blattwerk/blattwerk-api/internal/domain"
	"github.com/google/uuid"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store.
	// It handles domain validation and password hashing internally.
	// Returns ErrEmailExists if the email is already taken.
	// Returns validation errors from the domain User if data is invalid.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	// The returned user contains all fields except the plaintext password.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	// Returns ErrUserNotFound if the user does not exist.
	// The returned user contains all fields except the plaintext password.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// DecrementCredit atomically deducts one credit from the user's balance
	// if the current balance is at least one, and returns the new balance.
	// The balance is re-read inside the statement, so a stale caller-supplied
	// copy of the user cannot cause a lost update.
	// Returns ErrInsufficientCredits if the current balance is below one.
	// Returns ErrUserNotFound if the user does not exist.
	DecrementCredit(ctx context.Context, id uuid.UUID) (int, error)

	// WithTx returns a new UserStore instance that uses the provided transaction.
	// This allows for multiple operations to be executed within a single transaction.
	// The transaction should be created and managed by the caller (typically a service).
	WithTx(tx *sql.Tx) UserStore
}
