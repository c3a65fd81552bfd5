package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/custodia-labs/noema/internal/core/domain"
	"github.com/custodia-labs/noema/internal/core/ports/driving"
	"github.com/custodia-labs/noema/internal/logger"
)

// Ensure Tasks implements the interface.
var _ driving.TaskService = (*Tasks)(nil)

// maxTasks caps one generation batch.
const maxTasks = 10

// taskPattern maps a keyword set to a concrete follow-up action.
// The first matching pattern per sentence wins.
type taskPattern struct {
	keywords []string
	label    string
	priority domain.Priority
	due      time.Duration
	category domain.Category
}

// taskPatterns is the fixed pattern table for sentence scanning.
var taskPatterns = []taskPattern{
	{[]string{"call", "phone"}, "Make a phone call", domain.PriorityMedium, 24 * time.Hour, domain.CategoryPersonal},
	{[]string{"email", "send"}, "Send a message", domain.PriorityMedium, 24 * time.Hour, domain.CategoryBusiness},
	{[]string{"meeting", "schedule"}, "Schedule a meeting", domain.PriorityMedium, 48 * time.Hour, domain.CategoryBusiness},
	{[]string{"buy", "purchase"}, "Make a purchase", domain.PriorityLow, 72 * time.Hour, domain.CategoryPersonal},
	{[]string{"review", "check"}, "Review the material", domain.PriorityMedium, 48 * time.Hour, domain.CategoryBusiness},
	{[]string{"book", "reserve"}, "Make a booking", domain.PriorityMedium, 48 * time.Hour, domain.CategoryPersonal},
	{[]string{"finish", "complete"}, "Finish outstanding work", domain.PriorityHigh, 24 * time.Hour, domain.CategoryTask},
	{[]string{"pay", "invoice"}, "Handle a payment", domain.PriorityHigh, 48 * time.Hour, domain.CategoryBusiness},
}

// urgencyPhrase maps a fixed phrase to its deadline and priority.
type urgencyPhrase struct {
	phrase   string
	priority domain.Priority
	due      time.Duration
}

// urgencyPhrases are scanned in order; the first match wins.
var urgencyPhrases = []urgencyPhrase{
	{"today", domain.PriorityHigh, 8 * time.Hour},
	{"tomorrow", domain.PriorityHigh, 24 * time.Hour},
	{"this week", domain.PriorityMedium, 5 * 24 * time.Hour},
	{"asap", domain.PriorityHigh, 4 * time.Hour},
	{"urgent", domain.PriorityHigh, 12 * time.Hour},
}

// contextRule emits a generic follow-up when a keyword is present.
type contextRule struct {
	keyword string
	label   string
}

// contextRules are the category-specific rule sets.
var contextRules = map[domain.Category][]contextRule{
	domain.CategoryBusiness: {
		{"meeting", "Prepare meeting agenda"},
		{"budget", "Review budget figures"},
		{"deadline", "Confirm deadline commitments"},
	},
	domain.CategoryPersonal: {
		{"birthday", "Buy a gift"},
		{"grocery", "Plan a shopping trip"},
		{"doctor", "Book a doctor appointment"},
	},
	domain.CategoryLearning: {
		{"course", "Continue the course"},
		{"article", "Finish reading the article"},
		{"notes", "Organise study notes"},
	},
	domain.CategoryReference: {
		{"documentation", "File reference material"},
	},
}

// Tasks generates ranked, deduplicated candidate tasks from content.
type Tasks struct {
	// now is injectable for deterministic tests. Due dates are
	// calendar-relative to generation time, not content creation time.
	now func() time.Time
}

// NewTasks creates a new task generator.
func NewTasks() *Tasks {
	return &Tasks{now: time.Now}
}

// Generate runs the five strategies, concatenates their output,
// deduplicates by (lowercased title, category), applies the priority
// adjustment, ranks by confidence plus priority bonus and caps the
// batch. A nil analysis falls back to the text-only strategies.
func (t *Tasks) Generate(ctx context.Context, record domain.ContentRecord, analysis *domain.AnalysisResult) ([]domain.GeneratedTask, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger.Section("Task Generation")

	now := t.now()
	text := record.CombinedText()

	var tasks []domain.GeneratedTask
	tasks = append(tasks, t.patternTasks(record, text, now)...)

	if analysis != nil {
		tasks = append(tasks, t.actionTasks(record, analysis, now)...)
		tasks = append(tasks, t.aiSuggestedTasks(record, analysis)...)
		tasks = append(tasks, t.contextTasks(record, analysis, now)...)
	} else {
		logger.Warn("Tasks: no analysis for %s, falling back to text-only strategies", record.ID)
	}

	tasks = append(tasks, t.timeSensitiveTasks(record, text, now)...)

	tasks = dedupeTasks(tasks)

	if analysis != nil && analysis.Priority == domain.PriorityHigh {
		bumpPriorities(tasks)
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		si := tasks[i].Confidence + priorityBonus(tasks[i].Priority)
		sj := tasks[j].Confidence + priorityBonus(tasks[j].Priority)
		if si != sj {
			return si > sj
		}
		return tasks[i].Title < tasks[j].Title
	})

	if len(tasks) > maxTasks {
		tasks = tasks[:maxTasks]
	}

	logger.Info("Generated %d tasks for %s", len(tasks), record.ID)
	return tasks, nil
}

// patternTasks scans each sentence against the fixed pattern table.
func (t *Tasks) patternTasks(record domain.ContentRecord, text string, now time.Time) []domain.GeneratedTask {
	var tasks []domain.GeneratedTask

	for _, sentence := range splitSentences(text) {
		lower := " " + strings.ToLower(sentence) + " "

		for _, pattern := range taskPatterns {
			if !matchesAny(lower, pattern.keywords) {
				continue
			}

			due := now.Add(pattern.due)
			tasks = append(tasks, domain.GeneratedTask{
				Title:             pattern.label,
				Description:       strings.TrimSpace(sentence),
				Priority:          pattern.priority,
				Category:          pattern.category,
				DueDate:           &due,
				Confidence:        0.7,
				ContentID:         record.ID,
				SourceText:        strings.TrimSpace(sentence),
				Method:            domain.MethodPattern,
				EstimatedDuration: 30 * time.Minute,
			})
			break // first matching pattern per sentence wins
		}
	}

	return tasks
}

// actionTasks emits one task per extracted action item.
func (t *Tasks) actionTasks(record domain.ContentRecord, analysis *domain.AnalysisResult, now time.Time) []domain.GeneratedTask {
	var tasks []domain.GeneratedTask

	for _, item := range analysis.ActionItems {
		due := now.Add(24 * time.Hour)
		tasks = append(tasks, domain.GeneratedTask{
			Title:             "Complete: " + shorten(item, 60),
			Description:       item,
			Priority:          domain.PriorityMedium,
			Category:          analysis.Category,
			DueDate:           &due,
			Confidence:        0.8,
			ContentID:         record.ID,
			SourceText:        item,
			Method:            domain.MethodActionExtraction,
			EstimatedDuration: 30 * time.Minute,
		})
	}

	return tasks
}

// aiSuggestedTasks wraps action items as softer follow-up suggestions
// with default durations.
func (t *Tasks) aiSuggestedTasks(record domain.ContentRecord, analysis *domain.AnalysisResult) []domain.GeneratedTask {
	var tasks []domain.GeneratedTask

	for _, item := range analysis.ActionItems {
		tasks = append(tasks, domain.GeneratedTask{
			Title:             "Consider: " + shorten(item, 60),
			Description:       item,
			Priority:          domain.PriorityLow,
			Category:          analysis.Category,
			Confidence:        0.5,
			ContentID:         record.ID,
			SourceText:        item,
			Method:            domain.MethodAISuggested,
			EstimatedDuration: time.Hour,
		})
	}

	return tasks
}

// contextTasks applies the category-specific rule sets.
func (t *Tasks) contextTasks(record domain.ContentRecord, analysis *domain.AnalysisResult, now time.Time) []domain.GeneratedTask {
	rules := contextRules[analysis.Category]
	if len(rules) == 0 {
		return nil
	}

	lower := strings.ToLower(record.CombinedText())
	var tasks []domain.GeneratedTask

	for _, rule := range rules {
		if !strings.Contains(lower, rule.keyword) {
			continue
		}
		due := now.Add(72 * time.Hour)
		tasks = append(tasks, domain.GeneratedTask{
			Title:             rule.label,
			Description:       fmt.Sprintf("Suggested from %s content mentioning %q", analysis.Category, rule.keyword),
			Priority:          domain.PriorityLow,
			Category:          analysis.Category,
			DueDate:           &due,
			Confidence:        0.5,
			ContentID:         record.ID,
			SourceText:        rule.keyword,
			Method:            domain.MethodContextAware,
			EstimatedDuration: time.Hour,
		})
	}

	return tasks
}

// timeSensitiveTasks scans for fixed urgency phrases and emits at most
// one task, stopping at the first match.
func (t *Tasks) timeSensitiveTasks(record domain.ContentRecord, text string, now time.Time) []domain.GeneratedTask {
	lower := strings.ToLower(text)

	for _, up := range urgencyPhrases {
		if !strings.Contains(lower, up.phrase) {
			continue
		}

		due := now.Add(up.due)
		tags := []string{strings.ReplaceAll(up.phrase, " ", "-")}
		if up.priority == domain.PriorityHigh {
			tags = append(tags, "urgent")
		}

		return []domain.GeneratedTask{{
			Title:             "Time-sensitive: " + shorten(firstSentenceWith(text, up.phrase), 60),
			Description:       fmt.Sprintf("Content mentions %q", up.phrase),
			Priority:          up.priority,
			Category:          domain.CategoryTask,
			DueDate:           &due,
			Confidence:        0.85,
			ContentID:         record.ID,
			SourceText:        firstSentenceWith(text, up.phrase),
			Method:            domain.MethodTimeSensitive,
			Tags:              tags,
			EstimatedDuration: 30 * time.Minute,
		}}
	}

	return nil
}

// firstSentenceWith returns the first sentence containing the phrase,
// or the whole text when none does.
func firstSentenceWith(text, phrase string) string {
	for _, sentence := range splitSentences(text) {
		if strings.Contains(strings.ToLower(sentence), phrase) {
			return strings.TrimSpace(sentence)
		}
	}
	return strings.TrimSpace(text)
}

// dedupeTasks removes duplicates by (lowercased title, category),
// first occurrence wins.
func dedupeTasks(tasks []domain.GeneratedTask) []domain.GeneratedTask {
	seen := make(map[domain.TaskKey]bool, len(tasks))
	unique := tasks[:0]
	for _, task := range tasks {
		if seen[task.Key()] {
			continue
		}
		seen[task.Key()] = true
		unique = append(unique, task)
	}
	return unique
}

// bumpPriorities lifts sub-high tasks to medium when the source
// content's analysis priority is high. Never straight to high.
func bumpPriorities(tasks []domain.GeneratedTask) {
	for i := range tasks {
		if tasks[i].Priority.Rank() < domain.PriorityHigh.Rank() {
			tasks[i].Priority = domain.PriorityMedium
		}
	}
}

// priorityBonus converts priority into a ranking bonus.
func priorityBonus(p domain.Priority) float64 {
	switch p {
	case domain.PriorityHigh:
		return 0.3
	case domain.PriorityMedium:
		return 0.15
	default:
		return 0
	}
}

// matchesAny reports whether any keyword appears as a whole word.
func matchesAny(paddedLower string, keywords []string) bool {
	for _, kw := range keywords {
		if containsWord(paddedLower, kw) {
			return true
		}
	}
	return false
}

// shorten trims text to a display length on a word boundary.
func shorten(text string, n int) string {
	text = strings.TrimSpace(text)
	if len(text) <= n {
		return text
	}
	cut := text[:n]
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return cut + "..."
}
