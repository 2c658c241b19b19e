package main

import (
	"context"
	"database/sql"
	"time"

	"maintain/internal/maintain/service"
	"maintain/internal/maintain/store"
	dErrors "maintain/pkg/domain-errors"
)

const defaultMaintainTxTimeout = 5 * time.Second

type maintainPostgresTx struct {
	db      *sql.DB
	timeout time.Duration
}

func newMaintainPostgresTx(db *sql.DB) *maintainPostgresTx {
	return &maintainPostgresTx{db: db}
}

func (t *maintainPostgresTx) RunInTx(ctx context.Context, fn func(store service.Store) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	timeout := t.timeout
	if timeout == 0 {
		timeout = defaultMaintainTxTimeout
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to begin transaction")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(store.NewPostgresTx(tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to commit transaction")
	}
	return nil
}
