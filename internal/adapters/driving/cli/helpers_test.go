package cli

import (
	"context"
	"time"

	"github.com/custodia-labs/noema/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/noema/internal/core/domain"
	"github.com/custodia-labs/noema/internal/core/services"
)

// setupTestServices wires real services over in-memory stores, seeds a
// few records, and returns a cleanup that restores the previous wiring.
func setupTestServices() func() {
	oldAnalyzer := analyzerService
	oldTagger := taggerService
	oldSearch := searchService
	oldTasks := taskService
	oldGraph := graphService
	oldContent := contentStore

	content := memory.NewContentStore()
	analyzer := services.NewAnalyzer(services.NewExtractor(), services.NewClassifier())
	tagger := services.NewTagger()
	search := services.NewSearch(memory.NewIndexStore(), content, analyzer, tagger)
	graph := services.NewGraph(memory.NewGraphStore())

	ctx := context.Background()
	records := []domain.ContentRecord{
		{
			ID:        "note-1",
			Type:      domain.ContentTypeText,
			Title:     "Budget Meeting",
			Body:      "Review the quarterly budget with Sarah before the deadline.",
			Source:    "clipboard",
			CreatedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		},
		{
			ID:        "note-2",
			Type:      domain.ContentTypeText,
			Title:     "Workout Plan",
			Body:      "Morning workout and a long run on the weekend.",
			Source:    "drop-folder",
			CreatedAt: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		},
	}
	for i := range records {
		_ = content.Save(ctx, &records[i])
		_ = search.Upsert(ctx, records[i])
	}
	_, _ = graph.InsertBatch(ctx, records)

	analyzerService = analyzer
	taggerService = tagger
	searchService = search
	taskService = services.NewTasks()
	graphService = graph
	contentStore = content

	return func() {
		analyzerService = oldAnalyzer
		taggerService = oldTagger
		searchService = oldSearch
		taskService = oldTasks
		graphService = oldGraph
		contentStore = oldContent
	}
}
