package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWorksheet(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("valid worksheet", func(t *testing.T) {
		t.Parallel()

		ws, err := NewWorksheet(userID, LevelA1, "Schule",
			[]string{"1) a"}, []string{"1) x"})
		require.NoError(t, err)
		assert.Equal(t, userID, ws.UserID)
		assert.False(t, ws.CreatedAt.IsZero())
	})

	t.Run("validation failures", func(t *testing.T) {
		t.Parallel()

		content := []string{"1) a"}
		solutions := []string{"1) x"}

		_, err := NewWorksheet(uuid.Nil, LevelA1, "Schule", content, solutions)
		assert.ErrorIs(t, err, ErrEmptyUserID)

		_, err = NewWorksheet(userID, LevelA1, "", content, solutions)
		assert.ErrorIs(t, err, ErrEmptyTopic)

		_, err = NewWorksheet(userID, LevelA1, "Schule", nil, solutions)
		assert.ErrorIs(t, err, ErrEmptyContent)

		_, err = NewWorksheet(userID, LevelA1, "Schule", content, []string{"1) x", "2) y"})
		assert.ErrorIs(t, err, ErrMismatchedSolutions)
	})
}

func TestGenerationRequest_Validate(t *testing.T) {
	t.Parallel()

	valid := func() *GenerationRequest {
		return &GenerationRequest{
			Level:         LevelB1,
			Topic:         "Reisen",
			AgeGroup:      AgeGroupAdult,
			Duration:      30,
			ActivityTypes: []string{"Wortschatz"},
		}
	}

	assert.NoError(t, valid().Validate())

	// An unrecognized level passes validation; the generator degrades it.
	r := valid()
	r.Level = "C2"
	assert.NoError(t, r.Validate())

	r = valid()
	r.Topic = ""
	assert.ErrorIs(t, r.Validate(), ErrEmptyTopic)

	r = valid()
	r.AgeGroup = "toddler"
	assert.ErrorIs(t, r.Validate(), ErrInvalidAgeGroup)

	r = valid()
	r.Duration = MinDuration - 1
	assert.ErrorIs(t, r.Validate(), ErrInvalidDuration)

	r = valid()
	r.Duration = MaxDuration + 1
	assert.ErrorIs(t, r.Validate(), ErrInvalidDuration)
}
