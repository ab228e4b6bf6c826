package store

import (
	"context"
	"database/sql"

	"github.com/blattwerk/blattwerk-api/internal/domain"
	"github.com/google/uuid"
)

// WorksheetStore defines the interface for worksheet data persistence.
// Worksheets are immutable once created, so the interface carries no update
// or delete operations.
type WorksheetStore interface {
	// Create saves a new worksheet to the store.
	// Returns validation errors from the domain Worksheet if data is invalid.
	// Returns ErrInvalidEntity if the owning user does not exist.
	Create(ctx context.Context, worksheet *domain.Worksheet) error

	// GetByID retrieves a worksheet by its unique ID.
	// Returns ErrWorksheetNotFound if the worksheet does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Worksheet, error)

	// ListByUserID retrieves all worksheets owned by the given user,
	// most recent first.
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Worksheet, error)

	// WithTx returns a new WorksheetStore instance that uses the provided
	// transaction. The transaction should be created and managed by the
	// caller (typically a service).
	WithTx(tx *sql.Tx) WorksheetStore
}
