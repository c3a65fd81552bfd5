package services

import (
	"strings"

	"github.com/custodia-labs/noema/internal/core/domain"
	"github.com/custodia-labs/noema/internal/logger"
)

// Classification vocabularies. Bucket counting over these four fixed
// lists plus content-type priors decides the category. The decision is
// deterministic given identical vocabularies and text.
var (
	businessVocab = []string{
		"meeting", "budget", "deadline", "client", "project", "invoice",
		"revenue", "contract", "report", "proposal", "quarterly", "sales",
		"presentation", "stakeholder", "strategy",
	}
	personalVocab = []string{
		"family", "friend", "birthday", "dinner", "vacation", "weekend",
		"home", "shopping", "grocery", "doctor", "gift", "party",
		"holiday", "recipe", "workout",
	}
	learningVocab = []string{
		"learn", "study", "course", "tutorial", "chapter", "lecture",
		"research", "article", "book", "notes", "exam", "practice",
		"documentation", "guide", "concept",
	}
	taskVocab = []string{
		"todo", "task", "remind", "reminder", "checklist", "complete",
		"finish", "schedule", "appointment", "due", "urgent", "asap",
	}
)

// Classifier assigns a coarse category using keyword-frequency
// heuristics with content-type priors.
type Classifier struct{}

// NewClassifier creates a new content classifier.
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify picks a category for the record given its extracted
// features. The content type biases the decision:
//
//   - pdf: learning when learning terms appear, otherwise reference
//   - web: business when business terms outnumber personal, otherwise reference
//   - image: bucket counts over OCR text; business above one hit, otherwise personal
//   - text (and mixed): highest bucket count, personal on an all-zero tie
func (c *Classifier) Classify(record domain.ContentRecord, _ *domain.AnalysisResult) domain.Category {
	text := strings.ToLower(record.CombinedText())

	business := countHits(text, businessVocab)
	personal := countHits(text, personalVocab)
	learning := countHits(text, learningVocab)
	task := countHits(text, taskVocab)

	var category domain.Category

	switch record.Type {
	case domain.ContentTypePDF:
		if learning > 0 {
			category = domain.CategoryLearning
		} else {
			category = domain.CategoryReference
		}

	case domain.ContentTypeWeb:
		if business > personal {
			category = domain.CategoryBusiness
		} else {
			category = domain.CategoryReference
		}

	case domain.ContentTypeImage:
		ocr := strings.ToLower(record.OCRText)
		if countHits(ocr, businessVocab) > 1 {
			category = domain.CategoryBusiness
		} else {
			category = domain.CategoryPersonal
		}

	default:
		category = maxBucket(business, personal, learning, task)
	}

	logger.Debug("Classifier: %s type=%s buckets=[b:%d p:%d l:%d t:%d] -> %s",
		record.ID, record.Type, business, personal, learning, task, category)

	return category
}

// countHits counts vocabulary occurrences in the text.
func countHits(text string, vocab []string) int {
	count := 0
	for _, word := range vocab {
		count += strings.Count(text, word)
	}
	return count
}

// maxBucket returns the category with the highest count. The check
// order fixes ties: business, personal, learning, task. An all-zero
// tie defaults to personal.
func maxBucket(business, personal, learning, task int) domain.Category {
	if business == 0 && personal == 0 && learning == 0 && task == 0 {
		return domain.CategoryPersonal
	}

	best, bestCount := domain.CategoryBusiness, business
	if personal > bestCount {
		best, bestCount = domain.CategoryPersonal, personal
	}
	if learning > bestCount {
		best, bestCount = domain.CategoryLearning, learning
	}
	if task > bestCount {
		best, bestCount = domain.CategoryTask, task
	}
	return best
}
