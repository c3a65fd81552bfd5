package services

import (
	"context"
	"time"

	"github.com/custodia-labs/noema/internal/core/domain"
	"github.com/custodia-labs/noema/internal/core/ports/driving"
	"github.com/custodia-labs/noema/internal/logger"
)

// Ensure Analyzer implements the interface.
var _ driving.AnalyzerService = (*Analyzer)(nil)

// Analyzer composes the extractor and classifier into the full
// analysis pipeline: extraction first, then categorisation over the
// extracted features.
type Analyzer struct {
	extractor  *Extractor
	classifier *Classifier

	// now is injectable for deterministic tests.
	now func() time.Time
}

// NewAnalyzer creates a new analyzer service.
func NewAnalyzer(extractor *Extractor, classifier *Classifier) *Analyzer {
	return &Analyzer{
		extractor:  extractor,
		classifier: classifier,
		now:        time.Now,
	}
}

// Analyze produces the complete analysis for a record. Analysis never
// fails on degenerate input; an empty record yields an empty,
// default-valued result.
func (a *Analyzer) Analyze(ctx context.Context, record domain.ContentRecord) (*domain.AnalysisResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger.Section("Content Analysis")
	logger.Debug("Analyzing record %s (type=%s)", record.ID, record.Type)

	result := a.extractor.Extract(record)
	result.Category = a.classifier.Classify(record, result)
	result.AnalyzedAt = a.now()

	logger.Info("Analysis complete: %s category=%s confidence=%.2f",
		record.ID, result.Category, result.Confidence)

	return result, nil
}
