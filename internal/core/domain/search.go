package domain

import (
	"fmt"
	"time"
)

// RetrievalStrategy identifies which search pass produced a result.
type RetrievalStrategy string

// Retrieval strategies, highest tie-break priority first.
const (
	StrategyExactText  RetrievalStrategy = "exact_text"
	StrategySemantic   RetrievalStrategy = "semantic"
	StrategyTagMatch   RetrievalStrategy = "tag_match"
	StrategyContextual RetrievalStrategy = "contextual"
)

// TieBreakRank returns the ordering used to break equal relevance
// scores: exact text beats semantic beats tag beats contextual.
func (s RetrievalStrategy) TieBreakRank() int {
	switch s {
	case StrategyExactText:
		return 0
	case StrategySemantic:
		return 1
	case StrategyTagMatch:
		return 2
	case StrategyContextual:
		return 3
	default:
		return 4
	}
}

// SearchFilters narrows a search query.
type SearchFilters struct {
	// ContentTypes restricts results to the given types. Empty = all.
	ContentTypes []ContentType

	// DateFrom and DateTo bound the record creation time, inclusive.
	// Either may be nil.
	DateFrom *time.Time
	DateTo   *time.Time

	// Tags restricts results to entries sharing at least one tag name.
	Tags []string

	// MinRelevance drops results scoring below this value. Default 0.
	MinRelevance float64
}

// Validate rejects malformed filters at the call boundary.
// Unsatisfiable filters are an error, never silently ignored.
func (f SearchFilters) Validate() error {
	for _, ct := range f.ContentTypes {
		if !ct.IsValid() {
			return fmt.Errorf("%w: unknown content type %q", ErrInvalidInput, ct)
		}
	}
	if f.DateFrom != nil && f.DateTo != nil && f.DateFrom.After(*f.DateTo) {
		return fmt.Errorf("%w: date range start after end", ErrInvalidInput)
	}
	if f.MinRelevance < 0 || f.MinRelevance > 1 {
		return fmt.Errorf("%w: min relevance %g outside [0,1]", ErrInvalidInput, f.MinRelevance)
	}
	return nil
}

// RankedResult is a single scored search hit.
type RankedResult struct {
	// ContentID is the matched record.
	ContentID string

	// Title is the record title at index time.
	Title string

	// Snippet is a short excerpt around the match.
	Snippet string

	// Score is the relevance score, 0-1.
	Score float64

	// Strategy is the retrieval pass that found this result first.
	Strategy RetrievalStrategy
}

// IndexEntry is the per-record cache maintained by the search index.
// Exactly one entry exists per indexed record; stale entries must be
// purged by the caller via an explicit removal call.
type IndexEntry struct {
	ContentID   string
	Title       string
	Body        string
	OCRText     string
	ContentType ContentType

	// Keywords, Entities and TagNames are the analyzed sets cached
	// at index time.
	Keywords []string
	Entities []string
	TagNames []string

	CreatedAt     time.Time
	LastIndexedAt time.Time
}

// Suggestion is a query completion offered for a partial input.
type Suggestion struct {
	// Text is the suggested query.
	Text string

	// Origin records where the suggestion came from
	// (history, tag, title, keyword, template).
	Origin string

	// Confidence ranks the suggestion, 0-1.
	Confidence float64
}
