package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/custodia-labs/noema/internal/core/domain"
	"github.com/custodia-labs/noema/internal/core/ports/driving"
	"github.com/custodia-labs/noema/internal/logger"
)

// Ensure Tagger implements the interface.
var _ driving.TaggerService = (*Tagger)(nil)

// maxTags caps the tag set returned for one record.
const maxTags = 15

// tagHierarchy is the static parent-category to child-keyword
// vocabulary. Hierarchy tags are inferred by reverse lookup: a keyword
// matching a child implies its parent.
var tagHierarchy = map[string][]string{
	"work":       {"meeting", "project", "deadline", "client", "budget", "report", "presentation"},
	"technology": {"software", "computer", "programming", "database", "server", "code", "golang"},
	"health":     {"doctor", "exercise", "workout", "diet", "medical", "appointment"},
	"finance":    {"budget", "invoice", "money", "banking", "investment", "revenue", "expense"},
	"travel":     {"flight", "hotel", "vacation", "trip", "booking", "itinerary"},
	"education":  {"course", "study", "tutorial", "lecture", "exam", "research", "notes"},
}

// tagHierarchyOrder fixes iteration order over the hierarchy table so
// tagging and suggestions are reproducible.
var tagHierarchyOrder = []string{"work", "technology", "health", "finance", "travel", "education"}

// Tagger converts classifier and extractor output into a ranked set of
// typed tags.
type Tagger struct {
	// now is injectable for deterministic tests. The temporal tag is
	// computed relative to this clock, so re-tagging the same content
	// later can change it. Documented non-determinism, not a bug.
	now func() time.Time
}

// NewTagger creates a new semantic tagger.
func NewTagger() *Tagger {
	return &Tagger{now: time.Now}
}

// Tag generates tags in a fixed order (category, keywords, entities,
// source, content type, temporal, priority, hierarchy, sentiment),
// removes duplicates by (name, type), sorts by relevance descending
// and caps the set at maxTags.
//
// A nil analysis triggers the fallback path: a minimal set of
// content-type and source tags only. Never an error.
func (t *Tagger) Tag(ctx context.Context, record domain.ContentRecord, analysis *domain.AnalysisResult) ([]domain.SemanticTag, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if analysis == nil {
		logger.Warn("Tagger: no analysis for %s, falling back to minimal tags", record.ID)
		return t.minimalTags(record), nil
	}

	var tags []domain.SemanticTag

	// Category tag.
	tags = append(tags, domain.SemanticTag{
		Name:       analysis.Category.String(),
		Type:       domain.TagTypeCategory,
		Relevance:  0.9,
		Confidence: analysis.Confidence,
		Source:     domain.TagSourceDerived,
	})

	// Keyword tags decay by rank.
	for i, kw := range analysis.Keywords {
		relevance := 0.8 - 0.1*float64(i)
		if relevance < 0.1 {
			relevance = 0.1
		}
		tags = append(tags, domain.SemanticTag{
			Name:       kw,
			Type:       domain.TagTypeKeyword,
			Relevance:  relevance,
			Confidence: analysis.Confidence,
			Source:     domain.TagSourceDerived,
		})
	}

	// Entity tags.
	for _, entity := range analysis.Entities {
		tags = append(tags, domain.SemanticTag{
			Name:       strings.ToLower(entity.Text),
			Type:       domain.TagTypeEntity,
			Relevance:  0.75,
			Confidence: entity.Confidence,
			Source:     domain.TagSourceDerived,
			Metadata:   map[string]string{"entity_type": string(entity.Type)},
		})
	}

	tags = append(tags, t.minimalTags(record)...)

	// Temporal bucket relative to tagging time.
	tags = append(tags, domain.SemanticTag{
		Name:       temporalBucket(record.CreatedAt, t.now()),
		Type:       domain.TagTypeTemporal,
		Relevance:  0.65,
		Confidence: 1.0,
		Source:     domain.TagSourceSystem,
	})

	// Priority tag for high-urgency content.
	if analysis.Priority == domain.PriorityHigh {
		tags = append(tags, domain.SemanticTag{
			Name:       "high-priority",
			Type:       domain.TagTypePriority,
			Relevance:  0.8,
			Confidence: analysis.Confidence,
			Source:     domain.TagSourceDerived,
		})
	}

	// Hierarchy parents inferred from keywords and the category.
	tags = append(tags, hierarchyTags(analysis.Keywords)...)

	// Sentiment tag only for strongly polarised content.
	if analysis.Sentiment.Positive > 0.7 {
		tags = append(tags, sentimentTag("positive"))
	} else if analysis.Sentiment.Negative > 0.7 {
		tags = append(tags, sentimentTag("negative"))
	}

	tags = dedupeTags(tags)

	sort.SliceStable(tags, func(i, j int) bool {
		return tags[i].Relevance > tags[j].Relevance
	})

	if len(tags) > maxTags {
		tags = tags[:maxTags]
	}

	logger.Debug("Tagger: %s -> %d tags", record.ID, len(tags))
	return tags, nil
}

// minimalTags is the fallback tag set: content type and source only.
func (t *Tagger) minimalTags(record domain.ContentRecord) []domain.SemanticTag {
	tags := []domain.SemanticTag{{
		Name:       record.Type.String(),
		Type:       domain.TagTypeContentType,
		Relevance:  0.7,
		Confidence: 1.0,
		Source:     domain.TagSourceSystem,
	}}

	if source := strings.ToLower(strings.TrimSpace(record.Source)); source != "" {
		tags = append(tags, domain.SemanticTag{
			Name:       source,
			Type:       domain.TagTypeSource,
			Relevance:  0.6,
			Confidence: 1.0,
			Source:     domain.TagSourceSystem,
		})
	}

	return tags
}

// hierarchyTags reverse-looks-up keywords against the hierarchy table.
func hierarchyTags(keywords []string) []domain.SemanticTag {
	var tags []domain.SemanticTag

	for _, parent := range tagHierarchyOrder {
		for _, child := range tagHierarchy[parent] {
			if !containsString(keywords, child) {
				continue
			}
			tags = append(tags, domain.SemanticTag{
				Name:       parent,
				Type:       domain.TagTypeHierarchy,
				Relevance:  0.5,
				Confidence: 0.8,
				Source:     domain.TagSourceHeuristic,
			})
			break
		}
	}

	return tags
}

func sentimentTag(polarity string) domain.SemanticTag {
	return domain.SemanticTag{
		Name:       polarity,
		Type:       domain.TagTypeSentiment,
		Relevance:  0.4,
		Confidence: 0.8,
		Source:     domain.TagSourceHeuristic,
	}
}

// temporalBucket classifies the record's age at tagging time.
func temporalBucket(created, now time.Time) string {
	cy, cm, cd := created.Date()
	ny, nm, nd := now.Date()
	if cy == ny && cm == nm && cd == nd {
		return "today"
	}

	yesterday := now.AddDate(0, 0, -1)
	yy, ym, yd := yesterday.Date()
	if cy == yy && cm == ym && cd == yd {
		return "yesterday"
	}

	age := now.Sub(created)
	switch {
	case age <= 7*24*time.Hour:
		return "this-week"
	case age <= 30*24*time.Hour:
		return "this-month"
	default:
		return "older"
	}
}

// dedupeTags removes duplicates by (name, type), first occurrence wins.
func dedupeTags(tags []domain.SemanticTag) []domain.SemanticTag {
	seen := make(map[domain.TagKey]bool, len(tags))
	unique := tags[:0]
	for _, tag := range tags {
		if seen[tag.Key()] {
			continue
		}
		seen[tag.Key()] = true
		unique = append(unique, tag)
	}
	return unique
}

// Suggest matches the partial query against the hierarchy vocabulary
// (parents 0.9, children 0.8) and content-type names (0.7), sorted by
// confidence descending.
func (t *Tagger) Suggest(partial string) []domain.TagSuggestion {
	partial = strings.ToLower(strings.TrimSpace(partial))
	if partial == "" {
		return nil
	}

	var suggestions []domain.TagSuggestion
	seen := make(map[string]bool)

	add := func(name string, tagType domain.TagType, confidence float64) {
		if seen[name] {
			return
		}
		seen[name] = true
		suggestions = append(suggestions, domain.TagSuggestion{
			Name:       name,
			Type:       tagType,
			Confidence: confidence,
		})
	}

	for _, parent := range tagHierarchyOrder {
		if strings.Contains(parent, partial) {
			add(parent, domain.TagTypeHierarchy, 0.9)
		}
		for _, child := range tagHierarchy[parent] {
			if strings.Contains(child, partial) {
				add(child, domain.TagTypeKeyword, 0.8)
			}
		}
	}

	for _, ct := range []domain.ContentType{
		domain.ContentTypeText, domain.ContentTypeImage, domain.ContentTypeWeb,
		domain.ContentTypePDF, domain.ContentTypeMixed,
	} {
		if strings.Contains(ct.String(), partial) {
			add(ct.String(), domain.TagTypeContentType, 0.7)
		}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Confidence > suggestions[j].Confidence
	})

	return suggestions
}

// containsString reports whether list contains s.
func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
