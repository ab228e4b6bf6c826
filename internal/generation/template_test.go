package generation

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blattwerk/blattwerk-api/internal/domain"
)

func baseRequest() *domain.GenerationRequest {
	return &domain.GenerationRequest{
		Level:         domain.LevelA1,
		Topic:         "Schule",
		AgeGroup:      domain.AgeGroup8To10,
		Duration:      20,
		ActivityTypes: []string{"Lücken ausfüllen"},
	}
}

func TestTemplateGenerator_QuestionCountBands(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		duration int
		want     int
	}{
		{"minimum duration", 10, 10},
		{"upper edge of short band", 20, 10},
		{"lower edge of medium band", 21, 12},
		{"upper edge of medium band", 30, 12},
		{"lower edge of long band", 31, 15},
		{"maximum duration", 45, 15},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := baseRequest()
			req.Duration = tt.duration

			result, err := NewTemplateGenerator().Generate(context.Background(), req)
			require.NoError(t, err)
			assert.Len(t, result.Content, tt.want)
			assert.Len(t, result.Solutions, tt.want)
		})
	}
}

func TestTemplateGenerator_ContentAndSolutionsStayParallel(t *testing.T) {
	t.Parallel()

	for _, level := range []string{domain.LevelA1, domain.LevelA2, domain.LevelB1, domain.LevelB2} {
		req := baseRequest()
		req.Level = level
		req.Duration = 45
		req.ThemeWords = []string{"Buch", "Stift"}

		result, err := NewTemplateGenerator().Generate(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, len(result.Content), len(result.Solutions),
			"level %s produced lists of different length", level)
	}
}

func TestTemplateGenerator_Deterministic(t *testing.T) {
	t.Parallel()

	req := baseRequest()
	req.ThemeWords = []string{"Tafel", "Heft", "Lehrer"}

	g := NewTemplateGenerator()
	first, err := g.Generate(context.Background(), req)
	require.NoError(t, err)

	second, err := g.Generate(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.Content, second.Content)
	assert.Equal(t, first.Solutions, second.Solutions)
}

func TestTemplateGenerator_UnknownLevelUsesBeginnerBank(t *testing.T) {
	t.Parallel()

	known := baseRequest()
	unknown := baseRequest()
	unknown.Level = "C2"

	g := NewTemplateGenerator()
	wantResult, err := g.Generate(context.Background(), known)
	require.NoError(t, err)

	gotResult, err := g.Generate(context.Background(), unknown)
	require.NoError(t, err)

	assert.Equal(t, wantResult.Content, gotResult.Content)
	assert.Equal(t, wantResult.Solutions, gotResult.Solutions)
}

func TestTemplateGenerator_EntryFormat(t *testing.T) {
	t.Parallel()

	req := baseRequest()
	req.ActivityTypes = []string{"Lücken ausfüllen", "Wortschatz"}

	result, err := NewTemplateGenerator().Generate(context.Background(), req)
	require.NoError(t, err)

	for i, entry := range result.Content {
		assert.True(t, strings.HasPrefix(entry, fmt.Sprintf("%d) ", i+1)),
			"entry %d not numbered sequentially: %q", i, entry)
		assert.True(t, strings.HasSuffix(entry, "[Lücken ausfüllen, Wortschatz | 8-10]"),
			"entry %d missing activity/age suffix: %q", i, entry)
	}

	for i, entry := range result.Solutions {
		assert.True(t, strings.HasPrefix(entry, fmt.Sprintf("%d) ", i+1)),
			"solution %d not numbered sequentially: %q", i, entry)
	}
}

func TestTemplateGenerator_ThemeWordsAppendHint(t *testing.T) {
	t.Parallel()

	req := baseRequest()
	req.ThemeWords = []string{"Buch", "Stift"}

	result, err := NewTemplateGenerator().Generate(context.Background(), req)
	require.NoError(t, err)

	// 10 exercises for a 20 minute sheet plus the trailing hint entry.
	require.Len(t, result.Content, 11)
	require.Len(t, result.Solutions, 11)

	hint := "Hinweis-Wörter: Buch, Stift"
	assert.Equal(t, hint, result.Content[10])
	assert.Equal(t, hint, result.Solutions[10])
}

func TestTemplateGenerator_NoThemeWordsNoHint(t *testing.T) {
	t.Parallel()

	result, err := NewTemplateGenerator().Generate(context.Background(), baseRequest())
	require.NoError(t, err)

	require.Len(t, result.Content, 10)
	for _, entry := range result.Content {
		assert.NotContains(t, entry, "Hinweis-Wörter")
	}
}

func TestTemplateGenerator_TopicSubstitution(t *testing.T) {
	t.Parallel()

	req := baseRequest()
	req.Topic = "Freizeit"
	req.Duration = 20

	result, err := NewTemplateGenerator().Generate(context.Background(), req)
	require.NoError(t, err)

	// The A1 bank's vocabulary prompt embeds the topic.
	var found bool
	for _, entry := range result.Content {
		if strings.Contains(entry, "zum Thema 'Freizeit'") {
			found = true
		}
		assert.NotContains(t, entry, "{topic}")
		assert.NotContains(t, entry, "{word}")
	}
	assert.True(t, found, "topic placeholder was not expanded into any entry")
}

func TestQuestionCount(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 10, questionCount(15))
	assert.Equal(t, 10, questionCount(20))
	assert.Equal(t, 12, questionCount(25))
	assert.Equal(t, 12, questionCount(30))
	assert.Equal(t, 15, questionCount(45))
}
