package store

import (
	"context"
	"maps"
	"slices"
	"strings"
	"sync"

	"maintain/internal/maintain/models"
	"maintain/pkg/platform/sentinel"
)

// InMemoryStore mirrors the Postgres constraints in process memory: sibling
// name uniqueness, foreign keys on parent and mapping rows, and cascade from
// reference rows to mappings. It is used for local runs and service tests.
type InMemoryStore struct {
	mu    sync.RWMutex
	state memoryState
}

type memoryState struct {
	nextID             int64
	categories         map[int64]models.Category
	instruments        map[int64]models.Instrument
	provisions         map[int64]models.StatutoryProvision
	provisionMappings  map[int64][]int64
	instrumentMappings map[int64][]int64
}

func newMemoryState() memoryState {
	return memoryState{
		categories:         make(map[int64]models.Category),
		instruments:        make(map[int64]models.Instrument),
		provisions:         make(map[int64]models.StatutoryProvision),
		provisionMappings:  make(map[int64][]int64),
		instrumentMappings: make(map[int64][]int64),
	}
}

func (m memoryState) clone() memoryState {
	out := memoryState{
		nextID:             m.nextID,
		categories:         maps.Clone(m.categories),
		instruments:        maps.Clone(m.instruments),
		provisions:         maps.Clone(m.provisions),
		provisionMappings:  make(map[int64][]int64, len(m.provisionMappings)),
		instrumentMappings: make(map[int64][]int64, len(m.instrumentMappings)),
	}
	for k, v := range m.provisionMappings {
		out.provisionMappings[k] = slices.Clone(v)
	}
	for k, v := range m.instrumentMappings {
		out.instrumentMappings[k] = slices.Clone(v)
	}
	return out
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{state: newMemoryState()}
}

// Snapshot captures the current state and returns a function that restores it.
func (s *InMemoryStore) Snapshot() func() {
	s.mu.RLock()
	saved := s.state.clone()
	s.mu.RUnlock()
	return func() {
		s.mu.Lock()
		s.state = saved
		s.mu.Unlock()
	}
}

func (s *InMemoryStore) allocID() int64 {
	s.state.nextID++
	return s.state.nextID
}

func sameParent(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func sortCategories(out []*models.Category) {
	slices.SortFunc(out, func(a, b *models.Category) int {
		if a.DisplayOrder != b.DisplayOrder {
			return a.DisplayOrder - b.DisplayOrder
		}
		return int(a.ID - b.ID)
	})
}

func copyCategory(c models.Category) *models.Category {
	if c.ParentID != nil {
		id := *c.ParentID
		c.ParentID = &id
	}
	if c.Permission != nil {
		p := *c.Permission
		c.Permission = &p
	}
	return &c
}

func (s *InMemoryStore) ListTopLevel(_ context.Context) ([]*models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Category
	for _, c := range s.state.categories {
		if c.ParentID == nil {
			out = append(out, copyCategory(c))
		}
	}
	sortCategories(out)
	return out, nil
}

func (s *InMemoryStore) ListChildren(_ context.Context, parentID int64) ([]*models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Category
	for _, c := range s.state.categories {
		if c.ParentID != nil && *c.ParentID == parentID {
			out = append(out, copyCategory(c))
		}
	}
	sortCategories(out)
	return out, nil
}

func (s *InMemoryStore) FindCategory(_ context.Context, parentID *int64, name string) (*models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.state.categories {
		if sameParent(c.ParentID, parentID) && strings.EqualFold(c.Name, name) {
			return copyCategory(c), nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryStore) siblingNameTaken(parentID *int64, name string, exceptID int64) bool {
	for id, c := range s.state.categories {
		if id != exceptID && sameParent(c.ParentID, parentID) && strings.EqualFold(c.Name, name) {
			return true
		}
	}
	return false
}

func (s *InMemoryStore) CreateCategory(_ context.Context, c *models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ParentID != nil {
		if _, ok := s.state.categories[*c.ParentID]; !ok {
			return sentinel.ErrInvalidState
		}
	}
	if s.siblingNameTaken(c.ParentID, c.Name, 0) {
		return sentinel.ErrConflict
	}
	c.ID = s.allocID()
	s.state.categories[c.ID] = *copyCategory(*c)
	return nil
}

func (s *InMemoryStore) UpdateCategory(_ context.Context, c *models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.state.categories[c.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if s.siblingNameTaken(existing.ParentID, c.Name, c.ID) {
		return sentinel.ErrConflict
	}
	existing.Name = c.Name
	existing.DisplayName = c.DisplayName
	existing.DisplayOrder = c.DisplayOrder
	existing.Permission = c.Permission
	s.state.categories[c.ID] = *copyCategory(existing)
	return nil
}

// DeleteCategories removes the given rows as one statement would: rows in the
// batch may reference each other, but no surviving row or mapping may
// reference a deleted one.
func (s *InMemoryStore) DeleteCategories(_ context.Context, ids []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doomed := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		doomed[id] = struct{}{}
	}
	for id, c := range s.state.categories {
		if _, gone := doomed[id]; gone || c.ParentID == nil {
			continue
		}
		if _, parentGone := doomed[*c.ParentID]; parentGone {
			return sentinel.ErrInvalidState
		}
	}
	for id := range doomed {
		if len(s.state.provisionMappings[id]) > 0 || len(s.state.instrumentMappings[id]) > 0 {
			return sentinel.ErrInvalidState
		}
	}
	for id := range doomed {
		delete(s.state.categories, id)
	}
	return nil
}

func (s *InMemoryStore) ProvisionTitles(_ context.Context, categoryID int64) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []string{}
	for _, id := range s.state.provisionMappings[categoryID] {
		out = append(out, s.state.provisions[id].Title)
	}
	return out, nil
}

func (s *InMemoryStore) InstrumentNames(_ context.Context, categoryID int64) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []string{}
	for _, id := range s.state.instrumentMappings[categoryID] {
		out = append(out, s.state.instruments[id].Name)
	}
	return out, nil
}

func (s *InMemoryStore) DeleteMappings(_ context.Context, categoryIDs []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range categoryIDs {
		delete(s.state.provisionMappings, id)
		delete(s.state.instrumentMappings, id)
	}
	return nil
}

func (s *InMemoryStore) AddProvisionMappings(_ context.Context, categoryID int64, provisionIDs []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.state.categories[categoryID]; !ok {
		return sentinel.ErrInvalidState
	}
	existing := s.state.provisionMappings[categoryID]
	for _, id := range provisionIDs {
		if _, ok := s.state.provisions[id]; !ok {
			return sentinel.ErrInvalidState
		}
		if slices.Contains(existing, id) {
			return sentinel.ErrConflict
		}
		existing = append(existing, id)
	}
	s.state.provisionMappings[categoryID] = existing
	return nil
}

func (s *InMemoryStore) AddInstrumentMappings(_ context.Context, categoryID int64, instrumentIDs []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.state.categories[categoryID]; !ok {
		return sentinel.ErrInvalidState
	}
	existing := s.state.instrumentMappings[categoryID]
	for _, id := range instrumentIDs {
		if _, ok := s.state.instruments[id]; !ok {
			return sentinel.ErrInvalidState
		}
		if slices.Contains(existing, id) {
			return sentinel.ErrConflict
		}
		existing = append(existing, id)
	}
	s.state.instrumentMappings[categoryID] = existing
	return nil
}

func (s *InMemoryStore) ListInstruments(_ context.Context) ([]*models.Instrument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Instrument, 0, len(s.state.instruments))
	for _, i := range s.state.instruments {
		out = append(out, &i)
	}
	slices.SortFunc(out, func(a, b *models.Instrument) int { return strings.Compare(a.Name, b.Name) })
	return out, nil
}

func (s *InMemoryStore) FindInstrument(_ context.Context, name string) (*models.Instrument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, i := range s.state.instruments {
		if strings.EqualFold(i.Name, name) {
			return &i, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryStore) instrumentNameTaken(name string, exceptID int64) bool {
	for id, i := range s.state.instruments {
		if id != exceptID && strings.EqualFold(i.Name, name) {
			return true
		}
	}
	return false
}

func (s *InMemoryStore) CreateInstrument(_ context.Context, i *models.Instrument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.instrumentNameTaken(i.Name, 0) {
		return sentinel.ErrConflict
	}
	i.ID = s.allocID()
	s.state.instruments[i.ID] = *i
	return nil
}

func (s *InMemoryStore) UpdateInstrument(_ context.Context, i *models.Instrument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.state.instruments[i.ID]; !ok {
		return sentinel.ErrNotFound
	}
	if s.instrumentNameTaken(i.Name, i.ID) {
		return sentinel.ErrConflict
	}
	s.state.instruments[i.ID] = *i
	return nil
}

func (s *InMemoryStore) DeleteInstrument(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.state.instruments[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.state.instruments, id)
	for categoryID, ids := range s.state.instrumentMappings {
		s.state.instrumentMappings[categoryID] = slices.DeleteFunc(ids, func(v int64) bool { return v == id })
	}
	return nil
}

func (s *InMemoryStore) ListProvisions(_ context.Context, selectable *bool) ([]*models.StatutoryProvision, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.StatutoryProvision, 0, len(s.state.provisions))
	for _, p := range s.state.provisions {
		if selectable != nil && p.Selectable != *selectable {
			continue
		}
		out = append(out, &p)
	}
	slices.SortFunc(out, func(a, b *models.StatutoryProvision) int { return strings.Compare(a.Title, b.Title) })
	return out, nil
}

func (s *InMemoryStore) FindProvision(_ context.Context, title string) (*models.StatutoryProvision, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.state.provisions {
		if strings.EqualFold(p.Title, title) {
			return &p, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryStore) provisionTitleTaken(title string, exceptID int64) bool {
	for id, p := range s.state.provisions {
		if id != exceptID && strings.EqualFold(p.Title, title) {
			return true
		}
	}
	return false
}

func (s *InMemoryStore) CreateProvision(_ context.Context, p *models.StatutoryProvision) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.provisionTitleTaken(p.Title, 0) {
		return sentinel.ErrConflict
	}
	p.ID = s.allocID()
	s.state.provisions[p.ID] = *p
	return nil
}

func (s *InMemoryStore) UpdateProvision(_ context.Context, p *models.StatutoryProvision) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.state.provisions[p.ID]; !ok {
		return sentinel.ErrNotFound
	}
	if s.provisionTitleTaken(p.Title, p.ID) {
		return sentinel.ErrConflict
	}
	s.state.provisions[p.ID] = *p
	return nil
}

func (s *InMemoryStore) DeleteProvision(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.state.provisions[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.state.provisions, id)
	for categoryID, ids := range s.state.provisionMappings {
		s.state.provisionMappings[categoryID] = slices.DeleteFunc(ids, func(v int64) bool { return v == id })
	}
	return nil
}
