package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/noema/internal/core/domain"
	"github.com/custodia-labs/noema/internal/core/ports/driven"
)

// Ensure IndexStore implements the interface.
var _ driven.IndexStore = (*IndexStore)(nil)

// IndexStore is an in-memory implementation of driven.IndexStore.
type IndexStore struct {
	mu      sync.RWMutex
	entries map[string]domain.IndexEntry
}

// NewIndexStore creates a new in-memory index store.
func NewIndexStore() *IndexStore {
	return &IndexStore{
		entries: make(map[string]domain.IndexEntry),
	}
}

// Put stores or replaces the entry for a record.
func (s *IndexStore) Put(_ context.Context, entry domain.IndexEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[entry.ContentID] = entry
	return nil
}

// Get retrieves the entry for a record.
func (s *IndexStore) Get(_ context.Context, contentID string) (*domain.IndexEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[contentID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &entry, nil
}

// Remove purges the entry for a record. A missing entry is a caller
// contract violation and fails loudly.
func (s *IndexStore) Remove(_ context.Context, contentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[contentID]; !ok {
		return fmt.Errorf("remove %s: %w", contentID, domain.ErrEntryMissing)
	}
	delete(s.entries, contentID)
	return nil
}

// Snapshot returns a consistent copy of all entries, ordered by
// content ID for reproducible iteration.
func (s *IndexStore) Snapshot(_ context.Context) ([]domain.IndexEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]domain.IndexEntry, 0, len(s.entries))
	for _, entry := range s.entries {
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ContentID < entries[j].ContentID
	})

	return entries, nil
}

// Count returns the number of indexed entries.
func (s *IndexStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries), nil
}
