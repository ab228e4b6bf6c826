package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/blattwerk/blattwerk-api/internal/domain"
	"github.com/blattwerk/blattwerk-api/internal/generation"
	"github.com/blattwerk/blattwerk-api/internal/store"
	"github.com/google/uuid"
)

// Common sentinel errors for WorksheetService
var (
	// ErrInsufficientCredits indicates the user's balance could not cover the
	// generation. No worksheet was persisted and no credit was deducted.
	ErrInsufficientCredits = errors.New("insufficient credits")

	// ErrUserNotFound indicates the requesting user does not exist.
	ErrUserNotFound = errors.New("user not found")
)

// GenerationOutcome is the result of a successful worksheet generation:
// the persisted worksheet and the credit balance remaining after the
// deduction.
type GenerationOutcome struct {
	Worksheet        *domain.Worksheet
	RemainingCredits int
}

// WorksheetService provides worksheet generation with credit accounting.
type WorksheetService interface {
	// Generate produces a worksheet for the given user and request,
	// deducting one credit and persisting the worksheet record in a single
	// atomic transaction. Either both effects are durably visible or
	// neither is.
	Generate(ctx context.Context, userID uuid.UUID, req *domain.GenerationRequest) (*GenerationOutcome, error)

	// ListWorksheets returns the user's previously generated worksheets,
	// most recent first.
	ListWorksheets(ctx context.Context, userID uuid.UUID) ([]*domain.Worksheet, error)
}

// WorksheetServiceError wraps errors from the worksheet service with context.
type WorksheetServiceError struct {
	// Operation is the operation that failed (e.g., "generate")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for WorksheetServiceError.
func (e *WorksheetServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("worksheet service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("worksheet service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *WorksheetServiceError) Unwrap() error {
	return e.Err
}

// NewWorksheetServiceError creates a new WorksheetServiceError.
// Store-level sentinels are mapped to their service-level counterparts and
// returned directly without wrapping.
func NewWorksheetServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrInsufficientCredits), errors.Is(err, store.ErrInsufficientCredits):
		return ErrInsufficientCredits
	case errors.Is(err, ErrUserNotFound), errors.Is(err, store.ErrUserNotFound):
		return ErrUserNotFound
	}

	return &WorksheetServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// worksheetServiceImpl implements the WorksheetService interface
type worksheetServiceImpl struct {
	db             *sql.DB
	userStore      store.UserStore
	worksheetStore store.WorksheetStore
	generator      generation.Generator
	logger         *slog.Logger
}

// NewWorksheetService creates a new WorksheetService.
// It returns an error if any of the required dependencies are nil.
func NewWorksheetService(
	db *sql.DB,
	userStore store.UserStore,
	worksheetStore store.WorksheetStore,
	generator generation.Generator,
	logger *slog.Logger,
) (WorksheetService, error) {
	if db == nil {
		return nil, &WorksheetServiceError{
			Operation: "create_service",
			Message:   "db cannot be nil",
		}
	}
	if userStore == nil {
		return nil, &WorksheetServiceError{
			Operation: "create_service",
			Message:   "userStore cannot be nil",
		}
	}
	if worksheetStore == nil {
		return nil, &WorksheetServiceError{
			Operation: "create_service",
			Message:   "worksheetStore cannot be nil",
		}
	}
	if generator == nil {
		return nil, &WorksheetServiceError{
			Operation: "create_service",
			Message:   "generator cannot be nil",
		}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &worksheetServiceImpl{
		db:             db,
		userStore:      userStore,
		worksheetStore: worksheetStore,
		generator:      generator,
		logger:         logger.With("component", "worksheet_service"),
	}, nil
}

// Generate implements WorksheetService.Generate
//
// Generation runs before the transaction: the generator cannot fail (the
// fallback path absorbs remote errors), so no credit is at risk while the
// content is produced. The deduction and the insert then share one
// transaction with commit-or-rollback on every exit path.
func (s *worksheetServiceImpl) Generate(
	ctx context.Context,
	userID uuid.UUID,
	req *domain.GenerationRequest,
) (*GenerationOutcome, error) {
	if err := req.Validate(); err != nil {
		return nil, NewWorksheetServiceError("generate", "invalid generation request", err)
	}

	result, err := s.generator.Generate(ctx, req)
	if err != nil {
		// Unreachable with the fallback generator wired in; kept so a
		// misconfigured assembly fails loudly instead of persisting garbage.
		s.logger.Error("generator failed",
			"error", err,
			"user_id", userID)
		return nil, NewWorksheetServiceError("generate", "generation failed", err)
	}

	worksheet, err := domain.NewWorksheet(userID, req.Level, req.Topic, result.Content, result.Solutions)
	if err != nil {
		return nil, NewWorksheetServiceError("generate", "invalid generated worksheet", err)
	}

	var remaining int
	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		// The conditional decrement re-reads the balance inside the
		// transaction; a stale caller-side copy of the user is irrelevant.
		remaining, err = s.userStore.WithTx(tx).DecrementCredit(ctx, userID)
		if err != nil {
			return err
		}

		return s.worksheetStore.WithTx(tx).Create(ctx, worksheet)
	})
	if err != nil {
		if errors.Is(err, store.ErrInsufficientCredits) {
			s.logger.Info("generation rejected, balance exhausted",
				"user_id", userID)
		} else {
			s.logger.Error("generation transaction failed",
				"error", err,
				"user_id", userID,
				"worksheet_id", worksheet.ID)
		}
		return nil, NewWorksheetServiceError("generate", "credit deduction transaction failed", err)
	}

	s.logger.Info("worksheet generated",
		"worksheet_id", worksheet.ID,
		"user_id", userID,
		"level", worksheet.Level,
		"exercises", len(worksheet.Content),
		"remaining_credits", remaining)

	return &GenerationOutcome{
		Worksheet:        worksheet,
		RemainingCredits: remaining,
	}, nil
}

// ListWorksheets implements WorksheetService.ListWorksheets
func (s *worksheetServiceImpl) ListWorksheets(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Worksheet, error) {
	worksheets, err := s.worksheetStore.ListByUserID(ctx, userID)
	if err != nil {
		return nil, NewWorksheetServiceError("list_worksheets", "failed to list worksheets", err)
	}
	return worksheets, nil
}
