// Package service implements the category tree, its mapping rows, and the
// instrument and statutory provision reference lists.
package service

import (
	"context"
	"errors"
	"log/slog"

	"maintain/internal/maintain/models"
	dErrors "maintain/pkg/domain-errors"
	"maintain/pkg/platform/sentinel"
)

type CategoryStore interface {
	ListTopLevel(ctx context.Context) ([]*models.Category, error)
	ListChildren(ctx context.Context, parentID int64) ([]*models.Category, error)
	FindCategory(ctx context.Context, parentID *int64, name string) (*models.Category, error)
	CreateCategory(ctx context.Context, c *models.Category) error
	UpdateCategory(ctx context.Context, c *models.Category) error
	DeleteCategories(ctx context.Context, ids []int64) error
}

type MappingStore interface {
	ProvisionTitles(ctx context.Context, categoryID int64) ([]string, error)
	InstrumentNames(ctx context.Context, categoryID int64) ([]string, error)
	DeleteMappings(ctx context.Context, categoryIDs []int64) error
	AddProvisionMappings(ctx context.Context, categoryID int64, provisionIDs []int64) error
	AddInstrumentMappings(ctx context.Context, categoryID int64, instrumentIDs []int64) error
}

type InstrumentStore interface {
	ListInstruments(ctx context.Context) ([]*models.Instrument, error)
	FindInstrument(ctx context.Context, name string) (*models.Instrument, error)
	CreateInstrument(ctx context.Context, i *models.Instrument) error
	UpdateInstrument(ctx context.Context, i *models.Instrument) error
	DeleteInstrument(ctx context.Context, id int64) error
}

type ProvisionStore interface {
	ListProvisions(ctx context.Context, selectable *bool) ([]*models.StatutoryProvision, error)
	FindProvision(ctx context.Context, title string) (*models.StatutoryProvision, error)
	CreateProvision(ctx context.Context, p *models.StatutoryProvision) error
	UpdateProvision(ctx context.Context, p *models.StatutoryProvision) error
	DeleteProvision(ctx context.Context, id int64) error
}

// Store is everything one transaction may touch.
type Store interface {
	CategoryStore
	MappingStore
	InstrumentStore
	ProvisionStore
}

// ListCache caches the reference-list reads. A miss is reported with ok=false
// and a nil error.
type ListCache interface {
	Get(ctx context.Context, key string) (values []string, ok bool, err error)
	Set(ctx context.Context, key string, values []string) error
	Delete(ctx context.Context, keys ...string) error
}

type serviceConfig struct {
	tx     StoreTx
	logger *slog.Logger
	cache  ListCache
}

type Option func(*serviceConfig)

// WithTx sets the transaction runner. Without one an in-memory runner over
// the given store is used.
func WithTx(tx StoreTx) Option {
	return func(c *serviceConfig) {
		c.tx = tx
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *serviceConfig) {
		c.logger = logger
	}
}

// WithListCache enables caching of instrument and provision lists.
func WithListCache(cache ListCache) Option {
	return func(c *serviceConfig) {
		c.cache = cache
	}
}

func buildConfig(store Store, opts []Option) *serviceConfig {
	cfg := &serviceConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.tx == nil {
		cfg.tx = NewInMemoryStoreTx(store)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	return cfg
}

// translate maps a store error to a domain error. Not-found and conflict get
// the caller's message; anything else is internal. A nil error stays nil.
func translate(err error, notFound, conflict, internal string) error {
	if err == nil {
		return nil
	}
	if _, ok := dErrors.As(err); ok {
		return err
	}
	switch {
	case notFound != "" && errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, notFound)
	case conflict != "" && errors.Is(err, sentinel.ErrConflict):
		return dErrors.New(dErrors.CodeConflict, conflict)
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, internal)
	}
}
