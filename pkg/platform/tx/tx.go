// Package tx holds the query surface shared by *sql.DB and *sql.Tx so a store
// can run either standalone or inside a caller's transaction.
package tx

import (
	"context"
	"database/sql"
)

// DBTX is the subset of *sql.DB and *sql.Tx that stores query through.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)
