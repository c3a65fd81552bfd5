package driving

import (
	"context"

	"github.com/custodia-labs/noema/internal/core/domain"
)

// AnalyzerService extracts structured understanding from content records.
type AnalyzerService interface {
	// Analyze produces the full analysis for a record: language,
	// category, keywords, entities, sentiment, summary, action items,
	// confidence and priority. Empty input yields an empty default
	// result, never an error. Idempotent given an identical record
	// within the same time window.
	Analyze(ctx context.Context, record domain.ContentRecord) (*domain.AnalysisResult, error)
}
