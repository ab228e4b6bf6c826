package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blattwerk/blattwerk-api/internal/domain"
	"github.com/blattwerk/blattwerk-api/internal/store"
)

func newWorksheetStoreWithMock(t *testing.T) (*PostgresWorksheetStore, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	return NewPostgresWorksheetStore(db, nil), mock, func() { _ = db.Close() }
}

func validWorksheet(t *testing.T) *domain.Worksheet {
	t.Helper()

	ws, err := domain.NewWorksheet(
		uuid.New(),
		domain.LevelA1,
		"Schule",
		[]string{"1) Aufgabe [Lücken ausfüllen | 8-10]"},
		[]string{"1) Lösung"},
	)
	require.NoError(t, err)
	return ws
}

func TestPostgresWorksheetStore_Create(t *testing.T) {
	t.Run("success stores JSON-encoded lists", func(t *testing.T) {
		s, mock, cleanup := newWorksheetStoreWithMock(t)
		defer cleanup()

		ws := validWorksheet(t)

		mock.ExpectExec("INSERT INTO worksheets").
			WithArgs(ws.ID, ws.UserID, ws.Level, ws.Topic,
				[]byte(`["1) Aufgabe [Lücken ausfüllen | 8-10]"]`),
				[]byte(`["1) Lösung"]`),
				sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := s.Create(context.Background(), ws)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing owner maps to ErrInvalidEntity", func(t *testing.T) {
		s, mock, cleanup := newWorksheetStoreWithMock(t)
		defer cleanup()

		mock.ExpectExec("INSERT INTO worksheets").
			WillReturnError(&pgconn.PgError{Code: "23503"})

		err := s.Create(context.Background(), validWorksheet(t))
		assert.ErrorIs(t, err, store.ErrInvalidEntity)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invalid worksheet never reaches the database", func(t *testing.T) {
		s, mock, cleanup := newWorksheetStoreWithMock(t)
		defer cleanup()

		ws := validWorksheet(t)
		ws.Solutions = nil

		err := s.Create(context.Background(), ws)
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresWorksheetStore_GetByID(t *testing.T) {
	t.Run("success decodes JSON lists", func(t *testing.T) {
		s, mock, cleanup := newWorksheetStoreWithMock(t)
		defer cleanup()

		id := uuid.New()
		userID := uuid.New()
		created := time.Now().UTC()

		rows := sqlmock.NewRows([]string{
			"id", "user_id", "level", "topic", "content", "solutions", "created_at",
		}).AddRow(id, userID, "B1", "Reisen",
			[]byte(`["1) a","2) b"]`), []byte(`["1) x","2) y"]`), created)

		mock.ExpectQuery("SELECT id, user_id, level, topic").
			WithArgs(id).
			WillReturnRows(rows)

		ws, err := s.GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, id, ws.ID)
		assert.Equal(t, []string{"1) a", "2) b"}, ws.Content)
		assert.Equal(t, []string{"1) x", "2) y"}, ws.Solutions)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing worksheet maps to ErrWorksheetNotFound", func(t *testing.T) {
		s, mock, cleanup := newWorksheetStoreWithMock(t)
		defer cleanup()

		id := uuid.New()
		mock.ExpectQuery("SELECT id, user_id, level, topic").
			WithArgs(id).
			WillReturnError(sql.ErrNoRows)

		_, err := s.GetByID(context.Background(), id)
		assert.ErrorIs(t, err, store.ErrWorksheetNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresWorksheetStore_ListByUserID(t *testing.T) {
	s, mock, cleanup := newWorksheetStoreWithMock(t)
	defer cleanup()

	userID := uuid.New()
	created := time.Now().UTC()

	rows := sqlmock.NewRows([]string{
		"id", "user_id", "level", "topic", "content", "solutions", "created_at",
	}).
		AddRow(uuid.New(), userID, "A1", "Schule", []byte(`["1) a"]`), []byte(`["1) x"]`), created).
		AddRow(uuid.New(), userID, "A2", "Essen", []byte(`["1) b"]`), []byte(`["1) y"]`), created.Add(-time.Hour))

	mock.ExpectQuery("SELECT id, user_id, level, topic").
		WithArgs(userID).
		WillReturnRows(rows)

	worksheets, err := s.ListByUserID(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, worksheets, 2)
	assert.Equal(t, "Schule", worksheets[0].Topic)
	assert.Equal(t, "Essen", worksheets[1].Topic)
	assert.NoError(t, mock.ExpectationsWereMet())
}
