package generation

import (
	"context"
	"errors"
	"log/slog"

	"github.com/blattwerk/blattwerk-api/internal/domain"
)

// FallbackGenerator prefers a remote generator and degrades to the template
// generator on any remote error. The fallback is unconditional: callers only
// ever see a successful result, never a remote-path error.
//
// When no remote generator is configured (remote == nil), the template path
// is used directly and the remote path is never attempted. The toggle is a
// construction-time dependency, not ambient environment state.
type FallbackGenerator struct {
	remote   Generator
	template *TemplateGenerator
	logger   *slog.Logger
}

// Ensure FallbackGenerator implements the Generator interface
var _ Generator = (*FallbackGenerator)(nil)

// NewFallbackGenerator creates a FallbackGenerator.
// remote may be nil, in which case every request takes the template path.
// If logger is nil, the default logger is used.
func NewFallbackGenerator(remote Generator, template *TemplateGenerator, logger *slog.Logger) *FallbackGenerator {
	if template == nil {
		panic("template generator cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &FallbackGenerator{
		remote:   remote,
		template: template,
		logger:   logger.With(slog.String("component", "fallback_generator")),
	}
}

// Generate implements Generator. It cannot fail: the template path has no
// failure modes for validated requests, and remote errors are absorbed.
func (g *FallbackGenerator) Generate(
	ctx context.Context,
	req *domain.GenerationRequest,
) (*domain.GenerationResult, error) {
	if g.remote == nil {
		return g.template.Generate(ctx, req)
	}

	result, err := g.remote.Generate(ctx, req)
	if err != nil {
		// Diagnostic signal only. The error class is logged so operators can
		// distinguish a missing credential from a transient network failure,
		// but caller-visible behavior is identical in every case.
		g.logger.Warn("remote generation failed, falling back to template path",
			slog.String("error", err.Error()),
			slog.String("error_class", classify(err)),
			slog.String("level", req.Level),
			slog.String("topic", req.Topic))
		return g.template.Generate(ctx, req)
	}

	return result, nil
}

// classify maps a remote-path error to a stable label for logs.
func classify(err error) string {
	switch {
	case errors.Is(err, ErrNotConfigured):
		return "configuration"
	case errors.Is(err, ErrInvalidResponse):
		return "malformed_response"
	case errors.Is(err, ErrRemoteFailure):
		return "remote_failure"
	default:
		return "unknown"
	}
}
