package memory

import (
	"context"
	"sync"
)

// InMemoryTaxonomyStore is a set of known taxonomy ids
type InMemoryTaxonomyStore struct {
	mu  sync.RWMutex
	ids map[string]struct{}
}

// NewInMemoryTaxonomyStore creates a taxonomy store seeded with ids
func NewInMemoryTaxonomyStore(ids ...string) *InMemoryTaxonomyStore {
	store := &InMemoryTaxonomyStore{ids: make(map[string]struct{}, len(ids))}
	store.Add(ids...)
	return store
}

// Add registers taxonomy ids. Empty ids are ignored.
func (s *InMemoryTaxonomyStore) Add(ids ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range ids {
		if id != "" {
			s.ids[id] = struct{}{}
		}
	}
}

// Exists reports whether the taxonomy id is known
func (s *InMemoryTaxonomyStore) Exists(ctx context.Context, taxonomyID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	_, exists := s.ids[taxonomyID]
	return exists, nil
}
