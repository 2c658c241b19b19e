package service

import (
	"context"
	"sync"

	dErrors "maintain/pkg/domain-errors"
)

// StoreTx provides a transactional boundary for store mutations.
// Implementations may wrap a database transaction or, in-memory, a coarse lock.
type StoreTx interface {
	RunInTx(ctx context.Context, fn func(store Store) error) error
}

// snapshotter is implemented by stores that can roll back in memory.
type snapshotter interface {
	Snapshot() (restore func())
}

type inMemoryStoreTx struct {
	mu    sync.Mutex
	store Store
}

// NewInMemoryStoreTx serializes transactions over store and, when the store
// supports snapshots, restores its state when fn fails.
func NewInMemoryStoreTx(store Store) StoreTx {
	return &inMemoryStoreTx{store: store}
}

func (t *inMemoryStoreTx) RunInTx(ctx context.Context, fn func(store Store) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	var restore func()
	if s, ok := t.store.(snapshotter); ok {
		restore = s.Snapshot()
	}
	if err := fn(t.store); err != nil {
		if restore != nil {
			restore()
		}
		return err
	}
	return nil
}
