package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/noema/internal/core/domain"
)

func newTestTasks() (*Tasks, time.Time) {
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	tasks := NewTasks()
	tasks.now = fixedClock(now)
	return tasks, now
}

func TestTasks_Generate_CallScenario(t *testing.T) {
	generator, now := newTestTasks()
	ctx := context.Background()

	record := domain.ContentRecord{
		ID:   "r1",
		Type: domain.ContentTypeText,
		Body: "Need to call Sarah tomorrow about the budget deadline.",
	}
	analysis := &domain.AnalysisResult{
		ContentID:   "r1",
		Category:    domain.CategoryBusiness,
		ActionItems: []string{"Need to call Sarah tomorrow about the budget deadline."},
		Priority:    domain.PriorityHigh,
		Confidence:  0.9,
	}

	tasks, err := generator.Generate(ctx, record, analysis)
	require.NoError(t, err)
	require.NotEmpty(t, tasks)

	byMethod := make(map[domain.GenerationMethod][]domain.GeneratedTask)
	for _, task := range tasks {
		byMethod[task.Method] = append(byMethod[task.Method], task)
	}

	// the pattern table sees "call"
	require.Len(t, byMethod[domain.MethodPattern], 1)
	assert.Equal(t, "Make a phone call", byMethod[domain.MethodPattern][0].Title)

	// "today" is checked before "tomorrow"; only the latter appears
	require.Len(t, byMethod[domain.MethodTimeSensitive], 1)
	urgent := byMethod[domain.MethodTimeSensitive][0]
	assert.Equal(t, domain.PriorityHigh, urgent.Priority)
	assert.InDelta(t, 0.85, urgent.Confidence, 1e-9)
	assert.True(t, urgent.HasTag("tomorrow"))
	assert.True(t, urgent.HasTag("urgent"))
	require.NotNil(t, urgent.DueDate)
	assert.Equal(t, now.Add(24*time.Hour), *urgent.DueDate)

	// context rules for business content mentioning budget and deadline
	contextTitles := make([]string, 0)
	for _, task := range byMethod[domain.MethodContextAware] {
		contextTitles = append(contextTitles, task.Title)
	}
	assert.Contains(t, contextTitles, "Review budget figures")
	assert.Contains(t, contextTitles, "Confirm deadline commitments")

	// high analysis priority lifts every sub-high task to medium
	for _, task := range tasks {
		assert.GreaterOrEqual(t, task.Priority.Rank(), domain.PriorityMedium.Rank(),
			"task %q kept priority %s", task.Title, task.Priority)
	}
}

func TestTasks_Generate_RankedByConfidencePlusBonus(t *testing.T) {
	generator, _ := newTestTasks()

	record := domain.ContentRecord{
		ID:   "r1",
		Type: domain.ContentTypeText,
		Body: "Finish the report today.",
	}
	analysis := &domain.AnalysisResult{
		ContentID:   "r1",
		Category:    domain.CategoryBusiness,
		ActionItems: []string{"Finish the report today."},
		Priority:    domain.PriorityLow,
		Confidence:  0.8,
	}

	tasks, err := generator.Generate(context.Background(), record, analysis)
	require.NoError(t, err)
	require.NotEmpty(t, tasks)

	// time-sensitive: 0.85 + 0.3 high beats everything else
	assert.Equal(t, domain.MethodTimeSensitive, tasks[0].Method)

	for i := 1; i < len(tasks); i++ {
		prev := tasks[i-1].Confidence + priorityBonus(tasks[i-1].Priority)
		curr := tasks[i].Confidence + priorityBonus(tasks[i].Priority)
		assert.GreaterOrEqual(t, prev, curr)
	}
}

func TestTasks_Generate_NilAnalysisFallback(t *testing.T) {
	generator, _ := newTestTasks()

	record := domain.ContentRecord{
		ID:   "r1",
		Type: domain.ContentTypeText,
		Body: "Buy groceries this week.",
	}

	tasks, err := generator.Generate(context.Background(), record, nil)
	require.NoError(t, err)
	require.NotEmpty(t, tasks)

	for _, task := range tasks {
		assert.Contains(t, []domain.GenerationMethod{
			domain.MethodPattern, domain.MethodTimeSensitive,
		}, task.Method, "nil analysis only runs text-only strategies")
	}
}

func TestTasks_Generate_EmptyContent(t *testing.T) {
	generator, _ := newTestTasks()

	tasks, err := generator.Generate(context.Background(), domain.ContentRecord{ID: "r1", Type: domain.ContentTypeText}, nil)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestTasks_Generate_CapAtTen(t *testing.T) {
	generator, _ := newTestTasks()

	record := domain.ContentRecord{
		ID:   "r1",
		Type: domain.ContentTypeText,
		Body: "Call Anna. Email Bob. Schedule the meeting. Buy supplies. " +
			"Review the contract. Book the venue. Finish the deck. Pay the invoice.",
	}
	analysis := &domain.AnalysisResult{
		ContentID: "r1",
		Category:  domain.CategoryBusiness,
		ActionItems: []string{
			"Call Anna.", "Email Bob.", "Schedule the meeting.",
		},
		Priority:   domain.PriorityMedium,
		Confidence: 0.8,
	}

	tasks, err := generator.Generate(context.Background(), record, analysis)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(tasks), maxTasks)
	assert.Len(t, tasks, maxTasks)
}

func TestTasks_Generate_CancelledContext(t *testing.T) {
	generator, _ := newTestTasks()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := generator.Generate(ctx, domain.ContentRecord{ID: "r1"}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDedupeTasks(t *testing.T) {
	tasks := []domain.GeneratedTask{
		{Title: "Review budget figures", Category: domain.CategoryBusiness, Confidence: 0.7},
		{Title: "review budget figures", Category: domain.CategoryBusiness, Confidence: 0.5},
		{Title: "Review budget figures", Category: domain.CategoryPersonal, Confidence: 0.5},
	}

	unique := dedupeTasks(tasks)

	require.Len(t, unique, 2)
	// first occurrence wins
	assert.InDelta(t, 0.7, unique[0].Confidence, 1e-9)
	assert.Equal(t, domain.CategoryPersonal, unique[1].Category)
}

func TestBumpPriorities(t *testing.T) {
	tasks := []domain.GeneratedTask{
		{Title: "a", Priority: domain.PriorityLow},
		{Title: "b", Priority: domain.PriorityMedium},
		{Title: "c", Priority: domain.PriorityHigh},
	}

	bumpPriorities(tasks)

	assert.Equal(t, domain.PriorityMedium, tasks[0].Priority)
	assert.Equal(t, domain.PriorityMedium, tasks[1].Priority)
	assert.Equal(t, domain.PriorityHigh, tasks[2].Priority)
}

func TestShorten(t *testing.T) {
	assert.Equal(t, "short", shorten("short", 60))

	long := "Need to call Sarah tomorrow about the quarterly budget deadline review"
	got := shorten(long, 60)
	assert.LessOrEqual(t, len(got), 64)
	assert.True(t, len(got) > 3 && got[len(got)-3:] == "...")
}
