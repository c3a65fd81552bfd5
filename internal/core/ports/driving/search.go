package driving

import (
	"context"

	"github.com/custodia-labs/noema/internal/core/domain"
)

// SearchService executes multi-strategy retrieval and maintains the
// search index.
type SearchService interface {
	// Search runs the four retrieval passes (exact text, semantic, tag
	// match, contextual), fuses and ranks the results. Filters are
	// validated at this boundary; malformed filters return
	// domain.ErrInvalidInput. Ranking is stable and reproducible for
	// identical inputs.
	Search(ctx context.Context, query string, filters domain.SearchFilters) ([]domain.RankedResult, error)

	// RebuildAll rescans the content store and rebuilds every index
	// entry. Intended for cold start.
	RebuildAll(ctx context.Context) error

	// Upsert incrementally indexes or re-indexes one record.
	Upsert(ctx context.Context, record domain.ContentRecord) error

	// Remove explicitly purges the entry for a deleted record.
	Remove(ctx context.Context, contentID string) error

	// Suggest offers query completions for a partial input, combining
	// recent query history, tag suggestions, indexed titles/keywords
	// and fixed completion templates.
	Suggest(ctx context.Context, partial string) ([]domain.Suggestion, error)
}
