package domain

import (
	"strings"
	"time"
)

// GenerationMethod records which strategy produced a task.
type GenerationMethod string

// Recognised generation methods.
const (
	MethodPattern          GenerationMethod = "pattern"
	MethodActionExtraction GenerationMethod = "action_extraction"
	MethodAISuggested      GenerationMethod = "ai_suggested"
	MethodContextAware     GenerationMethod = "context_aware"
	MethodTimeSensitive    GenerationMethod = "time_sensitive"
)

// GeneratedTask is a candidate task derived from a content record.
// Tasks are ephemeral: recomputed per request, never persisted by the
// engine itself.
type GeneratedTask struct {
	// Title is the short task label.
	Title string

	// Description elaborates on the task.
	Description string

	// Priority is the task urgency.
	Priority Priority

	// Category groups the task with its source content's domain.
	Category Category

	// DueDate is the estimated deadline, relative to generation time.
	// Nil when no deadline could be inferred.
	DueDate *time.Time

	// Confidence is how certain the generator is, 0-1.
	Confidence float64

	// ContentID links back to the source record.
	ContentID string

	// SourceText is the snippet that triggered generation.
	SourceText string

	// Method records the generating strategy.
	Method GenerationMethod

	// Tags annotate the task (e.g. "urgent", "tomorrow").
	Tags []string

	// EstimatedDuration is the expected effort.
	EstimatedDuration time.Duration

	// DependsOn lists content IDs this task depends on.
	DependsOn []string
}

// TaskKey is the identity used for deduplication within one
// generation batch.
type TaskKey struct {
	Title    string
	Category Category
}

// Key returns the (normalized title, category) identity.
func (t GeneratedTask) Key() TaskKey {
	return TaskKey{Title: strings.ToLower(strings.TrimSpace(t.Title)), Category: t.Category}
}

// HasTag reports whether the task carries the given tag.
func (t GeneratedTask) HasTag(tag string) bool {
	for _, tg := range t.Tags {
		if tg == tag {
			return true
		}
	}
	return false
}
