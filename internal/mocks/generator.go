package mocks

import (
	"context"
	"sync"

	"github.com/blattwerk/blattwerk-api/internal/domain"
)

// MockGenerator implements generation.Generator for testing
type MockGenerator struct {
	// GenerateFn allows test cases to mock the Generate behavior
	GenerateFn func(ctx context.Context, req *domain.GenerationRequest) (*domain.GenerationResult, error)

	// Default response values
	Result *domain.GenerationResult
	Err    error

	// Call tracking for verification
	GenerateCalls struct {
		// mu protects the call tracking state for concurrent test cases
		mu sync.Mutex

		// Count tracks how many times Generate was called
		Count int

		// Requests contains all requests passed to Generate calls
		Requests []*domain.GenerationRequest
	}
}

// Generate implements the generation.Generator interface
func (m *MockGenerator) Generate(
	ctx context.Context,
	req *domain.GenerationRequest,
) (*domain.GenerationResult, error) {
	m.GenerateCalls.mu.Lock()
	m.GenerateCalls.Count++
	m.GenerateCalls.Requests = append(m.GenerateCalls.Requests, req)
	m.GenerateCalls.mu.Unlock()

	if m.GenerateFn != nil {
		return m.GenerateFn(ctx, req)
	}

	return m.Result, m.Err
}

// NewMockGeneratorWithResult creates a MockGenerator that returns the given result
func NewMockGeneratorWithResult(result *domain.GenerationResult) *MockGenerator {
	return &MockGenerator{Result: result}
}

// NewMockGeneratorWithError creates a MockGenerator that returns the given error
func NewMockGeneratorWithError(err error) *MockGenerator {
	return &MockGenerator{Err: err}
}
