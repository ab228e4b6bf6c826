package store

import (
	"context"
	"database/sql"
)

// DBTX abstracts the database handle so store implementations can run
// against either a plain *sql.DB or an open *sql.Tx without knowing which.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
