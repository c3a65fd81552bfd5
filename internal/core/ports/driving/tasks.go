package driving

import (
	"context"

	"github.com/custodia-labs/noema/internal/core/domain"
)

// TaskService generates candidate tasks from analyzed content.
type TaskService interface {
	// Generate produces ranked, deduplicated candidate tasks, capped at
	// 10, sorted by confidence plus priority bonus descending. A nil
	// analysis falls back to the text-only strategies (pattern and
	// time-sensitive) rather than failing.
	Generate(ctx context.Context, record domain.ContentRecord, analysis *domain.AnalysisResult) ([]domain.GeneratedTask, error)
}
