package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/blattwerk/blattwerk-api/internal/domain"
	"github.com/blattwerk/blattwerk-api/internal/store"
)

func newUserStoreWithMock(t *testing.T) (*PostgresUserStore, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	return NewPostgresUserStore(db, bcrypt.MinCost), mock, func() { _ = db.Close() }
}

func validUser(t *testing.T) *domain.User {
	t.Helper()

	user, err := domain.NewUser("anna@example.com", "password1234")
	require.NoError(t, err)
	return user
}

func TestPostgresUserStore_Create(t *testing.T) {
	t.Run("success hashes password and inserts", func(t *testing.T) {
		s, mock, cleanup := newUserStoreWithMock(t)
		defer cleanup()

		user := validUser(t)

		mock.ExpectExec("INSERT INTO users").
			WithArgs(user.ID, user.Email, sqlmock.AnyArg(), 2, "free",
				sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := s.Create(context.Background(), user)
		require.NoError(t, err)

		// The plaintext must be cleared and the stored hash must verify.
		assert.Empty(t, user.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword(
			[]byte(user.HashedPassword), []byte("password1234")))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate email maps to ErrEmailExists", func(t *testing.T) {
		s, mock, cleanup := newUserStoreWithMock(t)
		defer cleanup()

		mock.ExpectExec("INSERT INTO users").
			WillReturnError(&pgconn.PgError{Code: "23505"})

		err := s.Create(context.Background(), validUser(t))
		assert.ErrorIs(t, err, store.ErrEmailExists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invalid user never reaches the database", func(t *testing.T) {
		s, mock, cleanup := newUserStoreWithMock(t)
		defer cleanup()

		user := validUser(t)
		user.Password = "short"

		err := s.Create(context.Background(), user)
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresUserStore_GetByEmail(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		s, mock, cleanup := newUserStoreWithMock(t)
		defer cleanup()

		want := validUser(t)
		rows := sqlmock.NewRows([]string{
			"id", "email", "hashed_password", "credits", "plan", "created_at", "updated_at",
		}).AddRow(want.ID, want.Email, "hashed", 2, "free", want.CreatedAt, want.UpdatedAt)

		mock.ExpectQuery("SELECT id, email, hashed_password").
			WithArgs(want.Email).
			WillReturnRows(rows)

		got, err := s.GetByEmail(context.Background(), want.Email)
		require.NoError(t, err)
		assert.Equal(t, want.ID, got.ID)
		assert.Equal(t, want.Email, got.Email)
		assert.Equal(t, 2, got.Credits)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing user maps to ErrUserNotFound", func(t *testing.T) {
		s, mock, cleanup := newUserStoreWithMock(t)
		defer cleanup()

		mock.ExpectQuery("SELECT id, email, hashed_password").
			WithArgs("ghost@example.com").
			WillReturnError(sql.ErrNoRows)

		_, err := s.GetByEmail(context.Background(), "ghost@example.com")
		assert.ErrorIs(t, err, store.ErrUserNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresUserStore_GetByID_NotFound(t *testing.T) {
	s, mock, cleanup := newUserStoreWithMock(t)
	defer cleanup()

	id := uuid.New()
	mock.ExpectQuery("SELECT id, email, hashed_password").
		WithArgs(id).
		WillReturnError(sql.ErrNoRows)

	_, err := s.GetByID(context.Background(), id)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUserStore_DecrementCredit(t *testing.T) {
	t.Run("success returns remaining balance", func(t *testing.T) {
		s, mock, cleanup := newUserStoreWithMock(t)
		defer cleanup()

		id := uuid.New()
		mock.ExpectQuery("UPDATE users").
			WithArgs(id, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"credits"}).AddRow(1))

		remaining, err := s.DecrementCredit(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, 1, remaining)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("exhausted balance maps to ErrInsufficientCredits", func(t *testing.T) {
		s, mock, cleanup := newUserStoreWithMock(t)
		defer cleanup()

		id := uuid.New()
		mock.ExpectQuery("UPDATE users").
			WithArgs(id, sqlmock.AnyArg()).
			WillReturnError(sql.ErrNoRows)
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		_, err := s.DecrementCredit(context.Background(), id)
		assert.ErrorIs(t, err, store.ErrInsufficientCredits)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing user maps to ErrUserNotFound", func(t *testing.T) {
		s, mock, cleanup := newUserStoreWithMock(t)
		defer cleanup()

		id := uuid.New()
		mock.ExpectQuery("UPDATE users").
			WithArgs(id, sqlmock.AnyArg()).
			WillReturnError(sql.ErrNoRows)
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		_, err := s.DecrementCredit(context.Background(), id)
		assert.ErrorIs(t, err, store.ErrUserNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
