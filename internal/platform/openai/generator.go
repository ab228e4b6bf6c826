package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/blattwerk/blattwerk-api/internal/config"
	"github.com/blattwerk/blattwerk-api/internal/domain"
	"github.com/blattwerk/blattwerk-api/internal/generation"
)

// systemInstruction primes the remote model for the worksheet domain.
const systemInstruction = "Du bist ein Assistent für DaZ-Arbeitsblätter."

// Generator implements generation.Generator by calling a remote
// chat-completion service.
type Generator struct {
	logger *slog.Logger
	config config.LLMConfig
	client *http.Client
}

// Ensure Generator implements the generation.Generator interface
var _ generation.Generator = (*Generator)(nil)

// NewGenerator creates a new remote Generator with the provided dependencies.
// The credential may be absent; Generate then fails with ErrNotConfigured and
// the fallback orchestrator takes the template path.
func NewGenerator(logger *slog.Logger, cfg config.LLMConfig) (*Generator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.ModelName == "" {
		return nil, errors.New("model name cannot be empty")
	}
	if cfg.EndpointURL == "" {
		return nil, errors.New("endpoint URL cannot be empty")
	}
	if cfg.TimeoutSeconds <= 0 {
		return nil, fmt.Errorf("invalid timeout: %d seconds", cfg.TimeoutSeconds)
	}

	return &Generator{
		logger: logger.With(slog.String("component", "openai_generator")),
		config: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}, nil
}

// chatMessage is one message of a chat-completion request.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest is the request body for the chat-completion endpoint.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

// chatResponse is the subset of the chat-completion response we consume.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// worksheetPayload is the structured object the model is instructed to emit
// as its message content. Pointer slices distinguish absent fields from empty
// ones.
type worksheetPayload struct {
	Content   *[]string `json:"content"`
	Solutions *[]string `json:"solutions"`
}

// Generate implements generation.Generator.
//
// It fails with generation.ErrNotConfigured when no credential is configured,
// generation.ErrRemoteFailure when the HTTP call does not succeed or times
// out, and generation.ErrInvalidResponse when the response body cannot be
// parsed or lacks the required fields.
func (g *Generator) Generate(
	ctx context.Context,
	req *domain.GenerationRequest,
) (*domain.GenerationResult, error) {
	if !g.config.RemoteConfigured() {
		return nil, generation.ErrNotConfigured
	}

	body, err := json.Marshal(chatRequest{
		Model: g.config.ModelName,
		Messages: []chatMessage{
			{Role: "system", Content: systemInstruction},
			{Role: "user", Content: buildPrompt(req)},
		},
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode request: %v", generation.ErrRemoteFailure, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.config.EndpointURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to build request: %v", generation.ErrRemoteFailure, err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+g.config.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := g.client.Do(httpReq)
	if err != nil {
		g.logger.DebugContext(ctx, "remote generation call failed",
			slog.String("error", err.Error()),
			slog.Duration("elapsed", time.Since(start)))
		return nil, fmt.Errorf("%w: %v", generation.ErrRemoteFailure, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			g.logger.Warn("failed to close response body", slog.String("error", closeErr.Error()))
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		g.logger.DebugContext(ctx, "remote generation returned non-success status",
			slog.Int("status", resp.StatusCode),
			slog.Duration("elapsed", time.Since(start)))
		return nil, fmt.Errorf("%w: unexpected status %d", generation.ErrRemoteFailure, resp.StatusCode)
	}

	var chat chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chat); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response body: %v", generation.ErrInvalidResponse, err)
	}
	if len(chat.Choices) == 0 {
		return nil, fmt.Errorf("%w: response contains no choices", generation.ErrInvalidResponse)
	}

	var payload worksheetPayload
	if err := json.Unmarshal([]byte(chat.Choices[0].Message.Content), &payload); err != nil {
		return nil, fmt.Errorf("%w: message content is not a JSON object: %v", generation.ErrInvalidResponse, err)
	}
	if payload.Content == nil || payload.Solutions == nil {
		return nil, fmt.Errorf("%w: missing content or solutions field", generation.ErrInvalidResponse)
	}
	if len(*payload.Content) == 0 {
		return nil, fmt.Errorf("%w: content array is empty", generation.ErrInvalidResponse)
	}
	if len(*payload.Content) != len(*payload.Solutions) {
		return nil, fmt.Errorf("%w: content has %d entries but solutions has %d",
			generation.ErrInvalidResponse, len(*payload.Content), len(*payload.Solutions))
	}

	g.logger.DebugContext(ctx, "remote generation succeeded",
		slog.Int("exercises", len(*payload.Content)),
		slog.Duration("elapsed", time.Since(start)))

	return &domain.GenerationResult{
		Content:   *payload.Content,
		Solutions: *payload.Solutions,
	}, nil
}

// buildPrompt assembles the natural-language instruction embedding all
// worksheet parameters.
func buildPrompt(req *domain.GenerationRequest) string {
	words := "keine"
	if len(req.ThemeWords) > 0 {
		words = strings.Join(req.ThemeWords, ", ")
	}

	return fmt.Sprintf(
		"Erstelle ein DaZ-Arbeitsblatt in einfachem Deutsch. "+
			"Niveau: %s. Thema: %s. Altersgruppe: %s. "+
			"Dauer: %d Minuten. Aktivitäten: %s. "+
			"Wörterliste: %s. "+
			"Gib 10-15 nummerierte Aufgaben und danach die Lösungen. "+
			"Antwortformat als JSON mit Feldern 'content' und 'solutions' (beide Arrays).",
		req.Level,
		req.Topic,
		req.AgeGroup,
		req.Duration,
		strings.Join(req.ActivityTypes, ", "),
		words,
	)
}
