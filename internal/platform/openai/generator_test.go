package openai

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blattwerk/blattwerk-api/internal/config"
	"github.com/blattwerk/blattwerk-api/internal/domain"
	"github.com/blattwerk/blattwerk-api/internal/generation"
)

func testConfig(endpoint string) config.LLMConfig {
	return config.LLMConfig{
		APIKey:         "test-api-key",
		ModelName:      "gpt-4o-mini",
		EndpointURL:    endpoint,
		Temperature:    0.4,
		TimeoutSeconds: 5,
	}
}

func testRequest() *domain.GenerationRequest {
	return &domain.GenerationRequest{
		Level:         domain.LevelA2,
		Topic:         "Einkaufen",
		AgeGroup:      domain.AgeGroup11To13,
		Duration:      30,
		ActivityTypes: []string{"Wortschatz"},
		ThemeWords:    []string{"Brot", "Milch"},
	}
}

// chatReply builds a chat-completion response whose message content is the
// given JSON string.
func chatReply(content string) map[string]interface{} {
	return map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]interface{}{"content": content}},
		},
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewGenerator_Validation(t *testing.T) {
	t.Parallel()

	logger := discardLogger()

	tests := []struct {
		name   string
		mutate func(*config.LLMConfig)
	}{
		{"empty model name", func(c *config.LLMConfig) { c.ModelName = "" }},
		{"empty endpoint", func(c *config.LLMConfig) { c.EndpointURL = "" }},
		{"zero timeout", func(c *config.LLMConfig) { c.TimeoutSeconds = 0 }},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := testConfig("https://example.invalid/v1/chat/completions")
			tt.mutate(&cfg)

			_, err := NewGenerator(logger, cfg)
			assert.Error(t, err)
		})
	}

	t.Run("nil logger", func(t *testing.T) {
		t.Parallel()

		_, err := NewGenerator(nil, testConfig("https://example.invalid"))
		assert.Error(t, err)
	})
}

func TestGenerator_Generate_Success(t *testing.T) {
	t.Parallel()

	var captured chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-api-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		payload, _ := json.Marshal(map[string][]string{
			"content":   {"1) Aufgabe eins", "2) Aufgabe zwei"},
			"solutions": {"1) Lösung eins", "2) Lösung zwei"},
		})
		require.NoError(t, json.NewEncoder(w).Encode(chatReply(string(payload))))
	}))
	defer server.Close()

	g, err := NewGenerator(discardLogger(), testConfig(server.URL))
	require.NoError(t, err)

	result, err := g.Generate(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, []string{"1) Aufgabe eins", "2) Aufgabe zwei"}, result.Content)
	assert.Equal(t, []string{"1) Lösung eins", "2) Lösung zwei"}, result.Solutions)

	// Request shape
	assert.Equal(t, "gpt-4o-mini", captured.Model)
	require.Len(t, captured.Messages, 2)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Equal(t, "user", captured.Messages[1].Role)
	assert.Contains(t, captured.Messages[1].Content, "Niveau: A2")
	assert.Contains(t, captured.Messages[1].Content, "Wörterliste: Brot, Milch")
	assert.InDelta(t, 0.4, captured.Temperature, 0.001)
}

func TestGenerator_Generate_NotConfigured(t *testing.T) {
	t.Parallel()

	cfg := testConfig("https://example.invalid/v1/chat/completions")
	cfg.APIKey = ""

	g, err := NewGenerator(discardLogger(), cfg)
	require.NoError(t, err)

	_, err = g.Generate(context.Background(), testRequest())
	assert.ErrorIs(t, err, generation.ErrNotConfigured)
}

func TestGenerator_Generate_NonSuccessStatus(t *testing.T) {
	t.Parallel()

	for _, status := range []int{http.StatusTooManyRequests, http.StatusInternalServerError} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		g, err := NewGenerator(discardLogger(), testConfig(server.URL))
		require.NoError(t, err)

		_, err = g.Generate(context.Background(), testRequest())
		assert.ErrorIs(t, err, generation.ErrRemoteFailure, "status %d", status)

		server.Close()
	}
}

func TestGenerator_Generate_Timeout(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	g, err := NewGenerator(discardLogger(), testConfig(server.URL))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = g.Generate(ctx, testRequest())
	assert.ErrorIs(t, err, generation.ErrRemoteFailure)
}

func TestGenerator_Generate_MalformedResponses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{"not json", "not json at all"},
		{"no choices", `{"choices": []}`},
		{"content not json", `{"choices":[{"message":{"content":"plain text"}}]}`},
		{"missing solutions", `{"choices":[{"message":{"content":"{\"content\":[\"1) a\"]}"}}]}`},
		{"missing content", `{"choices":[{"message":{"content":"{\"solutions\":[\"1) a\"]}"}}]}`},
		{"empty arrays", `{"choices":[{"message":{"content":"{\"content\":[],\"solutions\":[]}"}}]}`},
		{"unequal lengths", `{"choices":[{"message":{"content":"{\"content\":[\"1) a\",\"2) b\"],\"solutions\":[\"1) x\"]}"}}]}`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			g, err := NewGenerator(discardLogger(), testConfig(server.URL))
			require.NoError(t, err)

			_, err = g.Generate(context.Background(), testRequest())
			assert.ErrorIs(t, err, generation.ErrInvalidResponse)
		})
	}
}

func TestBuildPrompt_NoThemeWords(t *testing.T) {
	t.Parallel()

	req := testRequest()
	req.ThemeWords = nil

	prompt := buildPrompt(req)
	assert.Contains(t, prompt, "Wörterliste: keine")
	assert.Contains(t, prompt, "Dauer: 30 Minuten")
}
