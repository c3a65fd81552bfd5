package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/noema/internal/core/domain"
)

func TestAnalyzer_Analyze(t *testing.T) {
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	analyzer := NewAnalyzer(NewExtractor(), NewClassifier())
	analyzer.now = fixedClock(now)

	record := domain.ContentRecord{
		ID:   "r1",
		Type: domain.ContentTypeText,
		Body: "Need to call Sarah tomorrow about the budget deadline.",
	}

	result, err := analyzer.Analyze(context.Background(), record)
	require.NoError(t, err)

	assert.Equal(t, "r1", result.ContentID)
	assert.Equal(t, domain.CategoryBusiness, result.Category)
	assert.Equal(t, domain.PriorityHigh, result.Priority)
	assert.Equal(t, now, result.AnalyzedAt)
	assert.Contains(t, result.Keywords, "budget")
}

func TestAnalyzer_Analyze_EmptyRecord(t *testing.T) {
	analyzer := NewAnalyzer(NewExtractor(), NewClassifier())

	result, err := analyzer.Analyze(context.Background(), domain.ContentRecord{ID: "r1", Type: domain.ContentTypeText})
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryPersonal, result.Category)
	assert.Empty(t, result.Keywords)
}

func TestAnalyzer_Analyze_CancelledContext(t *testing.T) {
	analyzer := NewAnalyzer(NewExtractor(), NewClassifier())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := analyzer.Analyze(ctx, domain.ContentRecord{ID: "r1"})
	assert.ErrorIs(t, err, context.Canceled)
}
