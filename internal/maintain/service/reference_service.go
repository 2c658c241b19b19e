package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"maintain/internal/maintain/models"
	dErrors "maintain/pkg/domain-errors"
	"maintain/pkg/platform/sentinel"
)

// Cache keys for the reference lists.
const (
	CacheKeyInstruments            = "maintain:instruments"
	CacheKeyProvisionsAll          = "maintain:provisions:all"
	CacheKeyProvisionsSelectable   = "maintain:provisions:selectable"
	CacheKeyProvisionsUnselectable = "maintain:provisions:unselectable"
)

var provisionCacheKeys = []string{
	CacheKeyProvisionsAll,
	CacheKeyProvisionsSelectable,
	CacheKeyProvisionsUnselectable,
}

// ReferenceService manages the instrument and statutory provision lists.
type ReferenceService struct {
	store  Store
	tx     StoreTx
	cache  ListCache
	logger *slog.Logger
}

func NewReferenceService(store Store, opts ...Option) *ReferenceService {
	cfg := buildConfig(store, opts)
	return &ReferenceService{
		store:  store,
		tx:     cfg.tx,
		cache:  cfg.cache,
		logger: cfg.logger,
	}
}

// ListInstruments returns instrument names ordered by name.
func (s *ReferenceService) ListInstruments(ctx context.Context) ([]string, error) {
	return s.cachedList(ctx, CacheKeyInstruments, "No instruments found.", func() ([]string, error) {
		instruments, err := s.store.ListInstruments(ctx)
		if err != nil {
			return nil, err
		}
		names := make([]string, 0, len(instruments))
		for _, i := range instruments {
			names = append(names, i.Name)
		}
		return names, nil
	})
}

func (s *ReferenceService) CreateInstrument(ctx context.Context, in models.InstrumentInput) error {
	conflict := fmt.Sprintf("Instrument '%s' already exists.", in.Name)
	err := s.tx.RunInTx(ctx, func(st Store) error {
		if err := requireAbsent(st.FindInstrument(ctx, in.Name)); err != nil {
			return translate(err, "", conflict, "failed to check instrument name")
		}
		return translate(st.CreateInstrument(ctx, &models.Instrument{Name: in.Name}), "", conflict,
			"failed to create instrument")
	})
	return s.afterMutation(ctx, err, "instrument created", CacheKeyInstruments)
}

func (s *ReferenceService) UpdateInstrument(ctx context.Context, name string, in models.InstrumentInput) error {
	err := s.tx.RunInTx(ctx, func(st Store) error {
		instrument, err := st.FindInstrument(ctx, name)
		if err != nil {
			return translate(err, fmt.Sprintf("Instrument '%s' does not exist.", name), "", "failed to load instrument")
		}
		conflict := fmt.Sprintf("Instrument with name '%s' already exists.", in.Name)
		if !strings.EqualFold(instrument.Name, in.Name) {
			if err := requireAbsent(st.FindInstrument(ctx, in.Name)); err != nil {
				return translate(err, "", conflict, "failed to check instrument name")
			}
		}
		instrument.Name = in.Name
		return translate(st.UpdateInstrument(ctx, instrument), "", conflict, "failed to update instrument")
	})
	return s.afterMutation(ctx, err, "instrument updated", CacheKeyInstruments)
}

// DeleteInstrument removes an instrument and every category mapping to it.
func (s *ReferenceService) DeleteInstrument(ctx context.Context, name string) error {
	err := s.tx.RunInTx(ctx, func(st Store) error {
		instrument, err := st.FindInstrument(ctx, name)
		if err != nil {
			return translate(err, fmt.Sprintf("Instrument '%s' does not exist.", name), "", "failed to load instrument")
		}
		return translate(st.DeleteInstrument(ctx, instrument.ID), fmt.Sprintf("Instrument '%s' does not exist.", name), "",
			"failed to delete instrument")
	})
	return s.afterMutation(ctx, err, "instrument deleted", CacheKeyInstruments)
}

// ListProvisions returns provision titles ordered by title, optionally
// filtered on the selectable flag.
func (s *ReferenceService) ListProvisions(ctx context.Context, selectable *bool) ([]string, error) {
	key := CacheKeyProvisionsAll
	if selectable != nil {
		key = CacheKeyProvisionsUnselectable
		if *selectable {
			key = CacheKeyProvisionsSelectable
		}
	}
	return s.cachedList(ctx, key, "No provisions found.", func() ([]string, error) {
		provisions, err := s.store.ListProvisions(ctx, selectable)
		if err != nil {
			return nil, err
		}
		titles := make([]string, 0, len(provisions))
		for _, p := range provisions {
			titles = append(titles, p.Title)
		}
		return titles, nil
	})
}

func (s *ReferenceService) CreateProvision(ctx context.Context, in models.ProvisionInput) error {
	conflict := fmt.Sprintf("Statutory provision '%s' already exists.", in.Title)
	err := s.tx.RunInTx(ctx, func(st Store) error {
		if err := requireAbsent(st.FindProvision(ctx, in.Title)); err != nil {
			return translate(err, "", conflict, "failed to check statutory provision title")
		}
		provision := &models.StatutoryProvision{Title: in.Title, Selectable: in.Selectable}
		return translate(st.CreateProvision(ctx, provision), "", conflict, "failed to create statutory provision")
	})
	return s.afterMutation(ctx, err, "statutory provision created", provisionCacheKeys...)
}

func (s *ReferenceService) UpdateProvision(ctx context.Context, title string, in models.ProvisionInput) error {
	err := s.tx.RunInTx(ctx, func(st Store) error {
		provision, err := st.FindProvision(ctx, title)
		if err != nil {
			return translate(err, fmt.Sprintf("Statutory provision '%s' does not exist.", title), "",
				"failed to load statutory provision")
		}
		conflict := fmt.Sprintf("Statutory provision with name '%s' already exists.", in.Title)
		if !strings.EqualFold(provision.Title, in.Title) {
			if err := requireAbsent(st.FindProvision(ctx, in.Title)); err != nil {
				return translate(err, "", conflict, "failed to check statutory provision title")
			}
		}
		provision.Title = in.Title
		provision.Selectable = in.Selectable
		return translate(st.UpdateProvision(ctx, provision), "", conflict, "failed to update statutory provision")
	})
	return s.afterMutation(ctx, err, "statutory provision updated", provisionCacheKeys...)
}

// DeleteProvision removes a provision and every category mapping to it.
func (s *ReferenceService) DeleteProvision(ctx context.Context, title string) error {
	err := s.tx.RunInTx(ctx, func(st Store) error {
		provision, err := st.FindProvision(ctx, title)
		if err != nil {
			return translate(err, fmt.Sprintf("Statutory provision '%s' does not exist.", title), "",
				"failed to load statutory provision")
		}
		return translate(st.DeleteProvision(ctx, provision.ID),
			fmt.Sprintf("Statutory provision '%s' does not exist.", title), "", "failed to delete statutory provision")
	})
	return s.afterMutation(ctx, err, "statutory provision deleted", provisionCacheKeys...)
}

// requireAbsent turns a successful lookup into ErrConflict and a miss into nil.
func requireAbsent(_ any, err error) error {
	switch {
	case err == nil:
		return sentinel.ErrConflict
	case errors.Is(err, sentinel.ErrNotFound):
		return nil
	default:
		return err
	}
}

func (s *ReferenceService) cachedList(ctx context.Context, key, emptyMessage string, load func() ([]string, error)) ([]string, error) {
	if s.cache != nil {
		values, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			s.logger.WarnContext(ctx, "list cache read failed", "key", key, "error", err)
		} else if ok && len(values) > 0 {
			return values, nil
		}
	}

	values, err := load()
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list "+strings.TrimPrefix(key, "maintain:"))
	}
	if len(values) == 0 {
		return nil, dErrors.New(dErrors.CodeNotFound, emptyMessage)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, values); err != nil {
			s.logger.WarnContext(ctx, "list cache write failed", "key", key, "error", err)
		}
	}
	return values, nil
}

func (s *ReferenceService) afterMutation(ctx context.Context, err error, msg string, keys ...string) error {
	if err != nil {
		return err
	}
	if s.cache != nil {
		if err := s.cache.Delete(ctx, keys...); err != nil {
			s.logger.WarnContext(ctx, "list cache invalidation failed", "keys", keys, "error", err)
		}
	}
	s.logger.InfoContext(ctx, msg)
	return nil
}
