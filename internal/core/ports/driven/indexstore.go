package driven

import (
	"context"

	"github.com/custodia-labs/noema/internal/core/domain"
)

// IndexStore persists search index entries. Exactly one entry exists
// per indexed record. The store is a single serialization point: all
// mutation goes through whole-entry Put/Remove calls, and Snapshot
// returns a consistent copy safe to iterate during concurrent writes.
type IndexStore interface {
	// Put stores or replaces the entry for a record.
	Put(ctx context.Context, entry domain.IndexEntry) error

	// Get retrieves the entry for a record.
	Get(ctx context.Context, contentID string) (*domain.IndexEntry, error)

	// Remove purges the entry for a record. Removing an entry that does
	// not exist returns domain.ErrEntryMissing: the engine never
	// silently drops entries, and a missing one indicates a caller
	// contract violation.
	Remove(ctx context.Context, contentID string) error

	// Snapshot returns a consistent copy of all entries.
	Snapshot(ctx context.Context) ([]domain.IndexEntry, error)

	// Count returns the number of indexed entries.
	Count(ctx context.Context) (int, error)
}
