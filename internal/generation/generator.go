package generation

import (
	"context"

	"github.com/blattwerk/blattwerk-api/internal/domain"
)

// Generator defines the interface for producing worksheet content.
// This interface serves as a boundary between the application core and the
// concrete generation strategies (template engine, remote LLM service),
// following the hexagonal architecture pattern.
type Generator interface {
	// Generate creates exercise prompts and parallel solutions for the given
	// request.
	//
	// Parameters:
	//   - ctx: Context for the operation, which can be used for cancellation
	//   - req: The pedagogical parameters of the worksheet
	//
	// Returns:
	//   - The generated content/solutions pair
	//   - An error if the generation fails (see errors.go for specific values)
	Generate(ctx context.Context, req *domain.GenerationRequest) (*domain.GenerationResult, error)
}
