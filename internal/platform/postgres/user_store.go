package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/blattwerk/blattwerk-api/internal/domain"
	"github.com/blattwerk/blattwerk-api/internal/platform/logger"
	"github.com/blattwerk/blattwerk-api/internal/store"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db         store.DBTX
	bcryptCost int
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the
// UserStore interface. It accepts a database connection or transaction that
// should be initialized and managed by the caller, and the bcrypt cost used
// when hashing passwords at creation time.
func NewPostgresUserStore(db store.DBTX, bcryptCost int) *PostgresUserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}

	return &PostgresUserStore{
		db:         db,
		bcryptCost: bcryptCost,
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// WithTx implements store.UserStore.WithTx
func (s *PostgresUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &PostgresUserStore{
		db:         tx,
		bcryptCost: s.bcryptCost,
	}
}

// Create implements store.UserStore.Create
// It validates the user, hashes the plaintext password with bcrypt, and
// inserts the row. Returns store.ErrEmailExists on a duplicate email.
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContext(ctx)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during create",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.HashedPassword = string(hashed)
	user.Password = "" // Plaintext is never needed past this point

	query := `
		INSERT INTO users (id, email, hashed_password, credits, plan, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		user.ID,
		user.Email,
		user.HashedPassword,
		user.Credits,
		user.Plan,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("duplicate email during user creation",
				slog.String("user_id", user.ID.String()))
			return fmt.Errorf("%w: %v", store.ErrEmailExists, err)
		}
		log.Error("failed to create user",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return MapError(err)
	}

	log.Info("user created successfully",
		slog.String("user_id", user.ID.String()),
		slog.String("plan", user.Plan))
	return nil
}

// GetByID implements store.UserStore.GetByID
// Returns store.ErrUserNotFound if the user does not exist.
func (s *PostgresUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `
		SELECT id, email, hashed_password, credits, plan, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	return s.scanUser(s.db.QueryRowContext(ctx, query, id))
}

// GetByEmail implements store.UserStore.GetByEmail
// Returns store.ErrUserNotFound if the user does not exist.
func (s *PostgresUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, email, hashed_password, credits, plan, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	return s.scanUser(s.db.QueryRowContext(ctx, query, email))
}

// scanUser reads one user row. sql.ErrNoRows maps to store.ErrUserNotFound.
func (s *PostgresUserStore) scanUser(row *sql.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.HashedPassword,
		&user.Credits,
		&user.Plan,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		return nil, MapError(err)
	}
	return &user, nil
}

// DecrementCredit implements store.UserStore.DecrementCredit
//
// The balance check and decrement run in one conditional UPDATE, so the
// current balance is re-read inside the statement and the row is locked for
// the remainder of the enclosing transaction. Two concurrent requests for a
// user with one remaining credit cannot both succeed.
func (s *PostgresUserStore) DecrementCredit(ctx context.Context, id uuid.UUID) (int, error) {
	log := logger.FromContext(ctx)

	query := `
		UPDATE users
		SET credits = credits - 1, updated_at = $2
		WHERE id = $1 AND credits >= 1
		RETURNING credits
	`

	var remaining int
	err := s.db.QueryRowContext(ctx, query, id, time.Now().UTC()).Scan(&remaining)
	if err == nil {
		log.Debug("credit decremented",
			slog.String("user_id", id.String()),
			slog.Int("remaining", remaining))
		return remaining, nil
	}

	if !errors.Is(err, sql.ErrNoRows) {
		log.Error("failed to decrement credit",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return 0, MapError(err)
	}

	// No row updated: either the user is gone or the balance is exhausted.
	var exists bool
	checkErr := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, id).Scan(&exists)
	if checkErr != nil {
		return 0, MapError(checkErr)
	}
	if !exists {
		return 0, store.ErrUserNotFound
	}

	log.Debug("credit decrement rejected, balance exhausted",
		slog.String("user_id", id.String()))
	return 0, store.ErrInsufficientCredits
}
