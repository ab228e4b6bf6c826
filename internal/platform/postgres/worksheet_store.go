package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/blattwerk/blattwerk-api/internal/domain"
	"github.com/blattwerk/blattwerk-api/internal/platform/logger"
	"github.com/blattwerk/blattwerk-api/internal/store"
	"github.com/google/uuid"
)

// PostgresWorksheetStore implements the store.WorksheetStore interface
// using a PostgreSQL database as the storage backend.
type PostgresWorksheetStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresWorksheetStore creates a new PostgreSQL implementation of the
// WorksheetStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresWorksheetStore(db store.DBTX, logger *slog.Logger) *PostgresWorksheetStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresWorksheetStore{
		db:     db,
		logger: logger.With(slog.String("component", "worksheet_store")),
	}
}

// Ensure PostgresWorksheetStore implements store.WorksheetStore interface
var _ store.WorksheetStore = (*PostgresWorksheetStore)(nil)

// WithTx implements store.WorksheetStore.WithTx
func (s *PostgresWorksheetStore) WithTx(tx *sql.Tx) store.WorksheetStore {
	return &PostgresWorksheetStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.WorksheetStore.Create
// Content and solutions are stored as JSONB string arrays.
// Returns store.ErrInvalidEntity if the owning user does not exist.
func (s *PostgresWorksheetStore) Create(ctx context.Context, worksheet *domain.Worksheet) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := worksheet.Validate(); err != nil {
		log.Warn("worksheet validation failed during create",
			slog.String("error", err.Error()),
			slog.String("worksheet_id", worksheet.ID.String()))
		return err
	}

	contentJSON, err := json.Marshal(worksheet.Content)
	if err != nil {
		return fmt.Errorf("failed to encode worksheet content: %w", err)
	}
	solutionsJSON, err := json.Marshal(worksheet.Solutions)
	if err != nil {
		return fmt.Errorf("failed to encode worksheet solutions: %w", err)
	}

	query := `
		INSERT INTO worksheets (id, user_id, level, topic, content, solutions, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		worksheet.ID,
		worksheet.UserID,
		worksheet.Level,
		worksheet.Topic,
		contentJSON,
		solutionsJSON,
		worksheet.CreatedAt,
	)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during worksheet creation",
				slog.String("worksheet_id", worksheet.ID.String()),
				slog.String("user_id", worksheet.UserID.String()))
			return fmt.Errorf("%w: user with ID %s not found",
				store.ErrInvalidEntity, worksheet.UserID)
		}
		log.Error("failed to create worksheet",
			slog.String("error", err.Error()),
			slog.String("worksheet_id", worksheet.ID.String()),
			slog.String("user_id", worksheet.UserID.String()))
		return MapError(err)
	}

	log.Info("worksheet created successfully",
		slog.String("worksheet_id", worksheet.ID.String()),
		slog.String("user_id", worksheet.UserID.String()),
		slog.String("level", worksheet.Level))
	return nil
}

// GetByID implements store.WorksheetStore.GetByID
// Returns store.ErrWorksheetNotFound if the worksheet does not exist.
func (s *PostgresWorksheetStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Worksheet, error) {
	query := `
		SELECT id, user_id, level, topic, content, solutions, created_at
		FROM worksheets
		WHERE id = $1
	`

	worksheet, err := scanWorksheet(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrWorksheetNotFound
		}
		return nil, err
	}
	return worksheet, nil
}

// ListByUserID implements store.WorksheetStore.ListByUserID
func (s *PostgresWorksheetStore) ListByUserID(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Worksheet, error) {
	query := `
		SELECT id, user_id, level, topic, content, solutions, created_at
		FROM worksheets
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			s.logger.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	var worksheets []*domain.Worksheet
	for rows.Next() {
		worksheet, err := scanWorksheet(rows)
		if err != nil {
			return nil, err
		}
		worksheets = append(worksheets, worksheet)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return worksheets, nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scanning.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanWorksheet reads one worksheet row, decoding the JSONB arrays.
func scanWorksheet(row rowScanner) (*domain.Worksheet, error) {
	var worksheet domain.Worksheet
	var contentJSON, solutionsJSON []byte

	err := row.Scan(
		&worksheet.ID,
		&worksheet.UserID,
		&worksheet.Level,
		&worksheet.Topic,
		&contentJSON,
		&solutionsJSON,
		&worksheet.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(contentJSON, &worksheet.Content); err != nil {
		return nil, fmt.Errorf("failed to decode worksheet content: %w", err)
	}
	if err := json.Unmarshal(solutionsJSON, &worksheet.Solutions); err != nil {
		return nil, fmt.Errorf("failed to decode worksheet solutions: %w", err)
	}

	return &worksheet, nil
}
