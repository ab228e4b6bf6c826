package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Worksheet generation levels (CEFR).
const (
	LevelA1 = "A1"
	LevelA2 = "A2"
	LevelB1 = "B1"
	LevelB2 = "B2"
)

// Age groups accepted by the generator.
const (
	AgeGroup8To10  = "8-10"
	AgeGroup11To13 = "11-13"
	AgeGroup14To16 = "14-16"
	AgeGroupAdult  = "adult"
)

// Duration bounds for a worksheet, in minutes.
const (
	MinDuration = 10
	MaxDuration = 45
)

// Worksheet validation errors
var (
	ErrEmptyWorksheetID    = errors.New("worksheet ID cannot be empty")
	ErrEmptyTopic          = errors.New("topic cannot be empty")
	ErrEmptyContent        = errors.New("worksheet content cannot be empty")
	ErrMismatchedSolutions = errors.New("solutions must parallel content")
	ErrInvalidAgeGroup     = errors.New("invalid age group")
	ErrInvalidDuration     = errors.New("duration out of range")
)

// Worksheet is a generated artifact record owned by the user that requested
// it. It is created once per successful generation request and is immutable
// thereafter.
type Worksheet struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Level     string    `json:"level"`
	Topic     string    `json:"topic"`
	Content   []string  `json:"content"`
	Solutions []string  `json:"solutions"`
	CreatedAt time.Time `json:"created_at"`
}

// NewWorksheet creates a Worksheet from a generation result.
// Returns an error if validation fails.
func NewWorksheet(userID uuid.UUID, level, topic string, content, solutions []string) (*Worksheet, error) {
	ws := &Worksheet{
		ID:        uuid.New(),
		UserID:    userID,
		Level:     level,
		Topic:     topic,
		Content:   content,
		Solutions: solutions,
		CreatedAt: time.Now().UTC(),
	}

	if err := ws.Validate(); err != nil {
		return nil, err
	}

	return ws, nil
}

// Validate checks if the Worksheet has valid data.
func (w *Worksheet) Validate() error {
	if w.ID == uuid.Nil {
		return ErrEmptyWorksheetID
	}
	if w.UserID == uuid.Nil {
		return ErrEmptyUserID
	}
	if w.Topic == "" {
		return ErrEmptyTopic
	}
	if len(w.Content) == 0 {
		return ErrEmptyContent
	}
	if len(w.Solutions) != len(w.Content) {
		return ErrMismatchedSolutions
	}
	return nil
}

// GenerationRequest carries the pedagogical parameters of a single worksheet
// generation. It is transient and never persisted.
type GenerationRequest struct {
	Level         string
	Topic         string
	AgeGroup      string
	Duration      int
	ActivityTypes []string
	ThemeWords    []string
}

// Validate checks the request against the stated input constraints.
// An unrecognized level is deliberately NOT an error here: the template
// generator degrades unknown levels to the A1 bank.
func (r *GenerationRequest) Validate() error {
	if r.Topic == "" {
		return ErrEmptyTopic
	}

	switch r.AgeGroup {
	case AgeGroup8To10, AgeGroup11To13, AgeGroup14To16, AgeGroupAdult:
	default:
		return ErrInvalidAgeGroup
	}

	if r.Duration < MinDuration || r.Duration > MaxDuration {
		return ErrInvalidDuration
	}

	return nil
}

// GenerationResult holds the ordered exercise prompts and the parallel
// ordered solutions. Index i of Solutions answers index i of Content, except
// for an optional trailing hint entry appended to both lists when theme words
// were supplied.
type GenerationResult struct {
	Content   []string
	Solutions []string
}
