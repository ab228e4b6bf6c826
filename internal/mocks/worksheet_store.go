package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/blattwerk/blattwerk-api/internal/domain"
	"github.com/blattwerk/blattwerk-api/internal/store"
)

// MockWorksheetStore implements store.WorksheetStore for testing
type MockWorksheetStore struct {
	// Function fields for customizable behavior
	CreateFn       func(ctx context.Context, worksheet *domain.Worksheet) error
	GetByIDFn      func(ctx context.Context, id uuid.UUID) (*domain.Worksheet, error)
	ListByUserIDFn func(ctx context.Context, userID uuid.UUID) ([]*domain.Worksheet, error)

	// Data for default implementation
	Worksheets  map[uuid.UUID]*domain.Worksheet
	CreateError error
}

// NewMockWorksheetStore creates a new mock store with initialized defaults
func NewMockWorksheetStore() *MockWorksheetStore {
	return &MockWorksheetStore{
		Worksheets: make(map[uuid.UUID]*domain.Worksheet),
	}
}

// Create implements the WorksheetStore interface
func (m *MockWorksheetStore) Create(ctx context.Context, worksheet *domain.Worksheet) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, worksheet)
	}

	if m.CreateError != nil {
		return m.CreateError
	}

	m.Worksheets[worksheet.ID] = worksheet
	return nil
}

// GetByID implements the WorksheetStore interface
func (m *MockWorksheetStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Worksheet, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	worksheet, exists := m.Worksheets[id]
	if !exists {
		return nil, store.ErrWorksheetNotFound
	}

	return worksheet, nil
}

// ListByUserID implements the WorksheetStore interface
func (m *MockWorksheetStore) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Worksheet, error) {
	if m.ListByUserIDFn != nil {
		return m.ListByUserIDFn(ctx, userID)
	}

	var out []*domain.Worksheet
	for _, ws := range m.Worksheets {
		if ws.UserID == userID {
			out = append(out, ws)
		}
	}

	return out, nil
}

// WithTx implements the WorksheetStore interface for transaction support
func (m *MockWorksheetStore) WithTx(tx *sql.Tx) store.WorksheetStore {
	// For mock purposes, just return the same mock
	return m
}
