package driven

import (
	"context"

	"github.com/custodia-labs/noema/internal/core/domain"
)

// ContentStore provides read access to captured content records and
// write access for locally ingested ones. The capture/storage layer
// owns record identity; the engine treats records as immutable.
type ContentStore interface {
	// Save stores a content record.
	Save(ctx context.Context, record *domain.ContentRecord) error

	// Get retrieves a record by ID.
	Get(ctx context.Context, id string) (*domain.ContentRecord, error)

	// List returns all records, ordered by creation time ascending.
	List(ctx context.Context) ([]domain.ContentRecord, error)

	// Delete removes a record.
	Delete(ctx context.Context, id string) error
}
