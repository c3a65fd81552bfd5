package domain

import "time"

// Category is the coarse classification assigned to a record.
type Category string

// Recognised categories.
const (
	CategoryBusiness      Category = "business"
	CategoryPersonal      Category = "personal"
	CategoryLearning      Category = "learning"
	CategoryReference     Category = "reference"
	CategoryTask          Category = "task"
	CategoryEntertainment Category = "entertainment"
)

// IsValid returns true if the category is recognised.
func (c Category) IsValid() bool {
	switch c {
	case CategoryBusiness, CategoryPersonal, CategoryLearning,
		CategoryReference, CategoryTask, CategoryEntertainment:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (c Category) String() string {
	return string(c)
}

// Priority ranks urgency of analyzed content or generated tasks.
type Priority string

// Priority levels, lowest to highest.
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Rank returns an ordinal for comparison (low=0, medium=1, high=2).
func (p Priority) Rank() int {
	switch p {
	case PriorityMedium:
		return 1
	case PriorityHigh:
		return 2
	default:
		return 0
	}
}

// EntityType classifies a named entity span.
type EntityType string

// Recognised entity types.
const (
	EntityPerson       EntityType = "person"
	EntityLocation     EntityType = "location"
	EntityOrganization EntityType = "organization"
	EntityOther        EntityType = "other"
)

// Entity is a named entity extracted from text.
type Entity struct {
	// Text is the matched span.
	Text string

	// Type is the entity classification.
	Type EntityType

	// Confidence is the tagger's confidence in the span, 0-1.
	Confidence float64

	// Offset is the byte offset of the span in the source text.
	Offset int
}

// Sentiment holds lexicon-derived sentiment scores.
// The three components need not sum to 1.
type Sentiment struct {
	Positive float64
	Negative float64
	Neutral  float64
}

// AnalysisResult is the structured understanding derived from one record.
// It is recomputed wholesale when the source content changes; there is
// no partial update.
type AnalysisResult struct {
	// ContentID links back to the analyzed record.
	ContentID string

	// Language is the detected dominant language code, or "unknown".
	Language string

	// Category is the coarse classification.
	Category Category

	// Keywords are frequency-ranked, most relevant first.
	Keywords []string

	// Entities are the extracted named entities.
	Entities []Entity

	// Sentiment is the lexicon-based sentiment triple.
	Sentiment Sentiment

	// Confidence is the overall analysis confidence, 0-1.
	Confidence float64

	// Summary is the generated abstract of the content.
	Summary string

	// ActionItems are sentences containing actionable verbs.
	ActionItems []string

	// Priority is the derived urgency of the content.
	Priority Priority

	// AnalyzedAt is when this result was produced.
	AnalyzedAt time.Time
}
