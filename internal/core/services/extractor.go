package services

import (
	"sort"
	"strings"
	"unicode"

	"github.com/custodia-labs/noema/internal/core/domain"
	"github.com/custodia-labs/noema/internal/logger"
)

// Extraction limits.
const (
	maxKeywords     = 10
	maxActionItems  = 3
	minKeywordLen   = 4 // keywords must be longer than 3 characters
	summaryVerbatim = 200

	// entityConfidence is deliberately a fixed scalar. Ranking behavior
	// downstream depends on it; do not change it silently.
	entityConfidence = 0.8
)

// Extractor derives language, keywords, entities, sentiment, summary
// and action items from raw text. It is a leaf component with no
// dependencies.
type Extractor struct{}

// NewExtractor creates a new text feature extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract analyzes the record's combined body and OCR text. Empty
// input yields empty lists and a neutral sentiment, never an error.
// The returned result has no category; the classifier fills that in.
func (e *Extractor) Extract(record domain.ContentRecord) *domain.AnalysisResult {
	text := strings.TrimSpace(record.CombinedText())

	result := &domain.AnalysisResult{
		ContentID:  record.ID,
		Language:   "unknown",
		Sentiment:  domain.Sentiment{Neutral: 1},
		Confidence: e.confidence(record),
		Priority:   domain.PriorityLow,
	}

	if text == "" {
		logger.Debug("Extractor: empty input for %s, returning defaults", record.ID)
		return result
	}

	tokens := tokenize(text)

	result.Language = detectLanguage(tokens)
	result.Keywords = extractKeywords(tokens)
	result.Entities = extractEntities(text)
	result.Sentiment = scoreSentiment(tokens)
	result.Summary = summarize(text)
	result.ActionItems = extractActionItems(text)
	result.Priority = derivePriority(text, result.ActionItems)

	logger.Debug("Extractor: %s lang=%s keywords=%d entities=%d actions=%d",
		record.ID, result.Language, len(result.Keywords), len(result.Entities), len(result.ActionItems))

	return result
}

// confidence scores how much signal the record offers:
// base 0.5, +0.2 for body text, +0.1 for OCR text, +0.1 for a
// non-mixed content type, capped at 1.0.
func (e *Extractor) confidence(record domain.ContentRecord) float64 {
	c := 0.5
	if strings.TrimSpace(record.Body) != "" {
		c += 0.2
	}
	if strings.TrimSpace(record.OCRText) != "" {
		c += 0.1
	}
	if record.Type != domain.ContentTypeMixed {
		c += 0.1
	}
	if c > 1.0 {
		c = 1.0
	}
	return c
}

// tokenize lowercases text and splits it into letter/digit runs.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// detectLanguage counts marker-word hits per language and returns the
// dominant one, or "unknown" when nothing matches.
func detectLanguage(tokens []string) string {
	tokenSet := make(map[string]int, len(tokens))
	for _, t := range tokens {
		tokenSet[t]++
	}

	best, bestCount := "unknown", 0
	for _, lang := range languageOrder {
		count := 0
		for _, marker := range languageMarkers[lang] {
			count += tokenSet[marker]
		}
		if count > bestCount {
			best, bestCount = lang, count
		}
	}
	return best
}

// extractKeywords returns the top content words ranked by frequency.
// Ties keep first-occurrence order so results are reproducible.
func extractKeywords(tokens []string) []string {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)

	for i, tok := range tokens {
		if len([]rune(tok)) < minKeywordLen || stopWords[tok] {
			continue
		}
		if _, ok := counts[tok]; !ok {
			firstSeen[tok] = i
		}
		counts[tok]++
	}

	keywords := make([]string, 0, len(counts))
	for word := range counts {
		keywords = append(keywords, word)
	}

	sort.Slice(keywords, func(i, j int) bool {
		if counts[keywords[i]] != counts[keywords[j]] {
			return counts[keywords[i]] > counts[keywords[j]]
		}
		return firstSeen[keywords[i]] < firstSeen[keywords[j]]
	})

	if len(keywords) > maxKeywords {
		keywords = keywords[:maxKeywords]
	}
	return keywords
}

// organizationSuffixes mark a capitalized span as an organization.
var organizationSuffixes = []string{
	"inc", "corp", "ltd", "llc", "gmbh", "company", "university",
	"institute", "technologies", "labs", "bank", "group",
}

// locationCues are prepositions that typically precede a place name.
var locationCues = map[string]bool{
	"in": true, "at": true, "near": true, "to": true, "from": true,
}

// personTitles precede a person's name.
var personTitles = map[string]bool{
	"mr": true, "mrs": true, "ms": true, "dr": true, "prof": true,
}

// extractEntities finds capitalized spans and classifies them as
// person, location, organization or other. Confidence is the fixed
// entityConfidence constant.
func extractEntities(text string) []domain.Entity {
	var entities []domain.Entity

	words := strings.Fields(text)
	offset := 0
	sentenceStart := true

	for i := 0; i < len(words); i++ {
		word := words[i]
		pos := strings.Index(text[offset:], word) + offset
		offset = pos + len(word)

		clean := strings.Trim(word, ".,!?;:'\"()")
		endsSentence := strings.ContainsAny(word, ".!?")

		if clean == "" || !isCapitalized(clean) || sentenceStart {
			sentenceStart = endsSentence
			continue
		}
		sentenceStart = endsSentence

		// Grow the span across consecutive capitalized words.
		span := clean
		spanEnd := i
		for j := i + 1; j < len(words) && !endsSentence; j++ {
			next := strings.Trim(words[j], ".,!?;:'\"()")
			if next == "" || !isCapitalized(next) {
				break
			}
			span += " " + next
			spanEnd = j
			endsSentence = strings.ContainsAny(words[j], ".!?")
		}

		prev := ""
		if i > 0 {
			prev = strings.ToLower(strings.Trim(words[i-1], ".,!?;:'\"()"))
		}

		entities = append(entities, domain.Entity{
			Text:       span,
			Type:       classifyEntity(span, prev),
			Confidence: entityConfidence,
			Offset:     pos,
		})
		i = spanEnd
	}

	return entities
}

// classifyEntity picks an entity type from surface cues.
func classifyEntity(span, precedingWord string) domain.EntityType {
	lower := strings.ToLower(span)
	for _, suffix := range organizationSuffixes {
		if strings.Contains(lower, suffix) {
			return domain.EntityOrganization
		}
	}
	if personTitles[precedingWord] {
		return domain.EntityPerson
	}
	if locationCues[precedingWord] {
		return domain.EntityLocation
	}
	// A bare single capitalized word mid-sentence is most often a name.
	if !strings.Contains(span, " ") {
		return domain.EntityPerson
	}
	return domain.EntityOther
}

// isCapitalized reports whether the word starts with an uppercase letter.
func isCapitalized(word string) bool {
	for _, r := range word {
		return unicode.IsUpper(r)
	}
	return false
}

// scoreSentiment counts lexicon hits normalized by total word count.
// Neutral is the remainder, clamped at zero.
func scoreSentiment(tokens []string) domain.Sentiment {
	if len(tokens) == 0 {
		return domain.Sentiment{Neutral: 1}
	}

	var pos, neg int
	for _, tok := range tokens {
		if positiveWords[tok] {
			pos++
		}
		if negativeWords[tok] {
			neg++
		}
	}

	total := float64(len(tokens))
	s := domain.Sentiment{
		Positive: float64(pos) / total,
		Negative: float64(neg) / total,
	}
	s.Neutral = 1 - s.Positive - s.Negative
	if s.Neutral < 0 {
		s.Neutral = 0
	}
	return s
}

// summarize returns short text verbatim, otherwise the first two
// sentences, trimmed and period-terminated.
func summarize(text string) string {
	if len(text) <= summaryVerbatim {
		return text
	}

	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return text
	}
	if len(sentences) > 2 {
		sentences = sentences[:2]
	}

	summary := strings.TrimSpace(strings.Join(sentences, " "))
	if !strings.HasSuffix(summary, ".") && !strings.HasSuffix(summary, "!") && !strings.HasSuffix(summary, "?") {
		summary += "."
	}
	return summary
}

// splitSentences splits text on sentence terminators.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	for _, r := range text {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			s := strings.TrimSpace(current.String())
			if s != "" {
				sentences = append(sentences, s)
			}
			current.Reset()
		}
	}

	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}

	return sentences
}

// extractActionItems returns sentences containing an action verb,
// capped at maxActionItems.
func extractActionItems(text string) []string {
	var items []string

	for _, sentence := range splitSentences(text) {
		lower := " " + strings.ToLower(sentence) + " "
		for _, verb := range actionVerbs {
			if containsWord(lower, verb) {
				items = append(items, sentence)
				break
			}
		}
		if len(items) >= maxActionItems {
			break
		}
	}

	return items
}

// containsWord reports whether lower (padded with spaces) contains the
// verb as a whole word.
func containsWord(padded, word string) bool {
	idx := strings.Index(padded, word)
	for idx >= 0 {
		before := padded[idx-1]
		after := byte(' ')
		if idx+len(word) < len(padded) {
			after = padded[idx+len(word)]
		}
		if !unicode.IsLetter(rune(before)) && !unicode.IsLetter(rune(after)) {
			return true
		}
		next := strings.Index(padded[idx+1:], word)
		if next < 0 {
			return false
		}
		idx = idx + 1 + next
	}
	return false
}

// derivePriority escalates on urgency words, then on action items.
func derivePriority(text string, actionItems []string) domain.Priority {
	lower := strings.ToLower(text)
	for _, w := range urgencyWords {
		if strings.Contains(lower, w) {
			return domain.PriorityHigh
		}
	}
	if len(actionItems) > 0 {
		return domain.PriorityMedium
	}
	return domain.PriorityLow
}
