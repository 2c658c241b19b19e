// Package store persists the category tree, reference lists and their
// mapping rows, in Postgres or in memory.
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver

	"maintain/pkg/platform/sentinel"
)

const driverName = "pgx"

//go:embed schema.sql
var schemaSQL string

// Open connects to Postgres and verifies the connection.
func Open(ctx context.Context, dsn string, maxOpenConns int, connMaxLifetime time.Duration) (*sql.DB, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if maxOpenConns > 0 {
		db.SetMaxOpenConns(maxOpenConns)
		db.SetMaxIdleConns(maxOpenConns)
	}
	if connMaxLifetime > 0 {
		db.SetConnMaxLifetime(connMaxLifetime)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// ApplySchema creates the tables and indexes if they do not exist.
func ApplySchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range strings.Split(schemaSQL, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("execute ddl: %w", err)
		}
	}
	return nil
}

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translate maps constraint violations to sentinel errors and wraps
// everything else with the operation name.
func translate(op string, err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%s: %w", op, sentinel.ErrConflict)
		case pgForeignKeyViolation:
			return fmt.Errorf("%s: %w", op, sentinel.ErrInvalidState)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
