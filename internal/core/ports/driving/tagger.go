package driving

import (
	"context"

	"github.com/custodia-labs/noema/internal/core/domain"
)

// TaggerService derives semantic tags from analyzed content.
type TaggerService interface {
	// Tag converts a record and its analysis into a ranked tag set,
	// capped at 15, sorted by relevance descending, deduplicated by
	// (name, type). A nil analysis falls back to a minimal set of
	// content-type and source tags rather than failing.
	Tag(ctx context.Context, record domain.ContentRecord, analysis *domain.AnalysisResult) ([]domain.SemanticTag, error)

	// Suggest offers tag completions for a partial query, sorted by
	// confidence descending.
	Suggest(partial string) []domain.TagSuggestion
}
