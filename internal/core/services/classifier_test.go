package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/noema/internal/core/domain"
)

func TestClassifier_Classify_TextBuckets(t *testing.T) {
	classifier := NewClassifier()

	tests := []struct {
		name string
		body string
		want domain.Category
	}{
		{"business", "Need to call Sarah tomorrow about the budget deadline", domain.CategoryBusiness},
		{"personal", "Family dinner on the weekend with friends", domain.CategoryPersonal},
		{"learning", "Study the course tutorial chapter tonight", domain.CategoryLearning},
		{"task", "todo: remind me to finish the checklist", domain.CategoryTask},
		{"no signal defaults to personal", "zzz qqq xyz", domain.CategoryPersonal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := domain.ContentRecord{ID: "r1", Type: domain.ContentTypeText, Body: tt.body}
			assert.Equal(t, tt.want, classifier.Classify(record, nil))
		})
	}
}

func TestClassifier_Classify_PDFPriors(t *testing.T) {
	classifier := NewClassifier()

	learning := domain.ContentRecord{
		ID: "pdf-1", Type: domain.ContentTypePDF,
		Body: "Chapter three of the course covers recursion",
	}
	assert.Equal(t, domain.CategoryLearning, classifier.Classify(learning, nil))

	reference := domain.ContentRecord{
		ID: "pdf-2", Type: domain.ContentTypePDF,
		Body: "Warranty terms and conditions",
	}
	assert.Equal(t, domain.CategoryReference, classifier.Classify(reference, nil))
}

func TestClassifier_Classify_WebPriors(t *testing.T) {
	classifier := NewClassifier()

	business := domain.ContentRecord{
		ID: "web-1", Type: domain.ContentTypeWeb,
		Body: "Quarterly revenue report for stakeholder review",
	}
	assert.Equal(t, domain.CategoryBusiness, classifier.Classify(business, nil))

	reference := domain.ContentRecord{
		ID: "web-2", Type: domain.ContentTypeWeb,
		Body: "How mountains form over geological time",
	}
	assert.Equal(t, domain.CategoryReference, classifier.Classify(reference, nil))
}

func TestClassifier_Classify_ImageUsesOCR(t *testing.T) {
	classifier := NewClassifier()

	receipt := domain.ContentRecord{
		ID: "img-1", Type: domain.ContentTypeImage,
		OCRText: "Invoice for the client meeting",
	}
	assert.Equal(t, domain.CategoryBusiness, classifier.Classify(receipt, nil))

	photo := domain.ContentRecord{
		ID: "img-2", Type: domain.ContentTypeImage,
		OCRText: "Happy birthday banner",
	}
	assert.Equal(t, domain.CategoryPersonal, classifier.Classify(photo, nil))
}

func TestMaxBucket_TieOrder(t *testing.T) {
	assert.Equal(t, domain.CategoryBusiness, maxBucket(2, 2, 1, 0))
	assert.Equal(t, domain.CategoryPersonal, maxBucket(1, 3, 3, 0))
	assert.Equal(t, domain.CategoryLearning, maxBucket(0, 1, 2, 2))
	assert.Equal(t, domain.CategoryPersonal, maxBucket(0, 0, 0, 0))
}
