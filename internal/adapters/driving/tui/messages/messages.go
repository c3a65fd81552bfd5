// Package messages defines Bubbletea message types for the TUI.
// Messages represent events that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/noema/internal/core/domain"
)

// SearchCompleted carries search results back to the model.
type SearchCompleted struct {
	Query   string
	Results []domain.RankedResult
	Err     error
}

// SuggestionsReady carries query completions for the current input.
type SuggestionsReady struct {
	Partial     string
	Suggestions []domain.Suggestion
}

// RecordLoaded carries a stored record for the detail pane.
type RecordLoaded struct {
	Record *domain.ContentRecord
	Err    error
}
