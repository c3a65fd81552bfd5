package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/noema/internal/core/domain"
	"github.com/custodia-labs/noema/internal/core/ports/driven"
)

// Ensure ContentStore implements the interface.
var _ driven.ContentStore = (*ContentStore)(nil)

// ContentStore is an in-memory implementation of driven.ContentStore.
type ContentStore struct {
	mu      sync.RWMutex
	records map[string]domain.ContentRecord
}

// NewContentStore creates a new in-memory content store.
func NewContentStore() *ContentStore {
	return &ContentStore{
		records: make(map[string]domain.ContentRecord),
	}
}

// Save stores a content record.
func (s *ContentStore) Save(_ context.Context, record *domain.ContentRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.ID] = *record
	return nil
}

// Get retrieves a record by ID.
func (s *ContentStore) Get(_ context.Context, id string) (*domain.ContentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &record, nil
}

// List returns all records ordered by creation time ascending.
func (s *ContentStore) List(_ context.Context) ([]domain.ContentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]domain.ContentRecord, 0, len(s.records))
	for _, record := range s.records {
		records = append(records, record)
	}

	sort.Slice(records, func(i, j int) bool {
		if !records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].CreatedAt.Before(records[j].CreatedAt)
		}
		return records[i].ID < records[j].ID
	})

	return records, nil
}

// Delete removes a record.
func (s *ContentStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.records, id)
	return nil
}
