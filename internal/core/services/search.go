package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/noema/internal/core/domain"
	"github.com/custodia-labs/noema/internal/core/ports/driven"
	"github.com/custodia-labs/noema/internal/core/ports/driving"
	"github.com/custodia-labs/noema/internal/logger"
)

// Ensure Search implements the interface.
var _ driving.SearchService = (*Search)(nil)

// Retrieval pass parameters.
const (
	exactPassCap          = 50
	semanticKeywordWeight = 0.7
	semanticEntityWeight  = 0.3
	semanticThreshold     = 0.3
	contextKeywordWeight  = 0.6
	contextEntityWeight   = 0.4
	contextThreshold      = 0.4

	// centralityBoost scales the graph-derived ranking bonus.
	centralityBoost = 0.1

	historyCap    = 20
	rebuildLimit  = 4
	snippetLength = 160
)

// queryIntent classifies what the user is trying to do.
type queryIntent string

const (
	intentQuestion queryIntent = "question"
	intentAction   queryIntent = "action"
	intentSearch   queryIntent = "search"
)

// questionWords and actionWords are the fixed intent vocabularies.
var (
	questionWords = []string{"who", "what", "when", "where", "why", "how"}
	actionWords   = []string{"find", "show", "open", "create", "remind", "schedule", "call", "todo"}
)

// completionTemplates are fixed query-completion prefixes.
var completionTemplates = []string{
	"how to ", "what is ", "where is ", "when did ", "notes about ",
}

// Search maintains the keyword index and executes the four retrieval
// strategies. The index store is the single serialization point for
// entries; searches read a consistent snapshot.
type Search struct {
	store    driven.IndexStore
	content  driven.ContentStore
	analyzer driving.AnalyzerService
	tagger   driving.TaggerService

	// graph is optional; when present, centrality feeds a small
	// ranking boost.
	graph driving.GraphService

	mu      sync.Mutex
	history []string // most recent first

	now func() time.Time
}

// NewSearch creates a new search service.
func NewSearch(
	store driven.IndexStore,
	content driven.ContentStore,
	analyzer driving.AnalyzerService,
	tagger driving.TaggerService,
) *Search {
	return &Search{
		store:    store,
		content:  content,
		analyzer: analyzer,
		tagger:   tagger,
		now:      time.Now,
	}
}

// SetGraph wires the optional knowledge graph for ranking boosts.
func (s *Search) SetGraph(graph driving.GraphService) {
	s.graph = graph
}

// RebuildAll rescans the content store and rebuilds every index entry.
// Analysis fans out to a bounded errgroup; the store itself serializes
// writes.
func (s *Search) RebuildAll(ctx context.Context) error {
	logger.Section("Index Rebuild")

	records, err := s.content.List(ctx)
	if err != nil {
		return fmt.Errorf("list content: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(rebuildLimit)

	for _, record := range records {
		record := record
		g.Go(func() error {
			entry, err := s.buildEntry(ctx, record)
			if err != nil {
				return err
			}
			return s.store.Put(ctx, *entry)
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("rebuild index: %w", err)
	}

	logger.Info("Index rebuilt: %d entries", len(records))
	return nil
}

// Upsert incrementally indexes or re-indexes one record.
func (s *Search) Upsert(ctx context.Context, record domain.ContentRecord) error {
	entry, err := s.buildEntry(ctx, record)
	if err != nil {
		return err
	}
	return s.store.Put(ctx, *entry)
}

// Remove explicitly purges the entry for a deleted record. A missing
// entry is a caller contract violation and surfaces as an error.
func (s *Search) Remove(ctx context.Context, contentID string) error {
	return s.store.Remove(ctx, contentID)
}

// buildEntry analyzes and tags a record into its index entry. When
// analysis fails the entry degrades to raw text plus the tagger's
// minimal fallback tags rather than failing the indexing call.
func (s *Search) buildEntry(ctx context.Context, record domain.ContentRecord) (*domain.IndexEntry, error) {
	analysis, err := s.analyzer.Analyze(ctx, record)
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		logger.Warn("Index: analysis failed for %s: %v (degrading)", record.ID, err)
		analysis = nil
	}

	tags, err := s.tagger.Tag(ctx, record, analysis)
	if err != nil {
		return nil, fmt.Errorf("tag %s: %w", record.ID, err)
	}

	entry := &domain.IndexEntry{
		ContentID:     record.ID,
		Title:         record.Title,
		Body:          record.Body,
		OCRText:       record.OCRText,
		ContentType:   record.Type,
		CreatedAt:     record.CreatedAt,
		LastIndexedAt: s.now(),
	}

	if analysis != nil {
		entry.Keywords = analysis.Keywords
		for _, e := range analysis.Entities {
			entry.Entities = append(entry.Entities, strings.ToLower(e.Text))
		}
	}
	for _, tag := range tags {
		entry.TagNames = append(entry.TagNames, tag.Name)
	}

	return entry, nil
}

// Search validates filters, runs the four retrieval passes in
// parallel, fuses the results and ranks them. Ranking is stable and
// reproducible for identical inputs.
func (s *Search) Search(ctx context.Context, query string, filters domain.SearchFilters) ([]domain.RankedResult, error) {
	logger.Section("Search Execution")
	logger.Debug("Query: %q", query)

	if err := filters.Validate(); err != nil {
		return nil, err
	}

	query = strings.TrimSpace(query)
	if query == "" {
		logger.Debug("Empty query, returning no results")
		return []domain.RankedResult{}, nil
	}

	entries, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("index snapshot: %w", err)
	}

	// Type, date and tag filters narrow the candidate set for every pass.
	entries = filterEntries(entries, filters)
	logger.Debug("Candidates after filters: %d", len(entries))

	// Analyze the query once; all passes share the extracted features.
	queryFeatures, err := s.analyzer.Analyze(ctx, domain.ContentRecord{
		ID:   "query",
		Type: domain.ContentTypeText,
		Body: query,
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		return nil, fmt.Errorf("analyze query: %w: %v", domain.ErrAnalysisUnavailable, err)
	}
	intent := classifyIntent(query)
	logger.Debug("Query intent: %s, keywords: %v", intent, queryFeatures.Keywords)

	var exact, semantic, tag, contextual []domain.RankedResult

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		exact = exactPass(entries, query)
		return gctx.Err()
	})
	g.Go(func() error {
		semantic = semanticPass(entries, queryFeatures)
		return gctx.Err()
	})
	g.Go(func() error {
		tag = tagPass(entries, query)
		return gctx.Err()
	})
	g.Go(func() error {
		contextual = contextualPass(entries, queryFeatures, intent)
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Debug("Pass results: exact=%d semantic=%d tag=%d contextual=%d",
		len(exact), len(semantic), len(tag), len(contextual))

	results := fusePasses(exact, semantic, tag, contextual)

	if s.graph != nil {
		s.applyCentralityBoost(ctx, results)
	}

	// Minimum relevance applies after boosting.
	if filters.MinRelevance > 0 {
		kept := results[:0]
		for _, r := range results {
			if r.Score >= filters.MinRelevance {
				kept = append(kept, r)
			}
		}
		results = kept
	}

	sortResults(results)

	s.recordQuery(query)
	logger.Info("Final results: %d", len(results))
	return results, nil
}

// filterEntries applies content-type, date-range and tag filters.
func filterEntries(entries []domain.IndexEntry, filters domain.SearchFilters) []domain.IndexEntry {
	var kept []domain.IndexEntry

	for _, entry := range entries {
		if len(filters.ContentTypes) > 0 && !containsType(filters.ContentTypes, entry.ContentType) {
			continue
		}
		if filters.DateFrom != nil && entry.CreatedAt.Before(*filters.DateFrom) {
			continue
		}
		if filters.DateTo != nil && entry.CreatedAt.After(*filters.DateTo) {
			continue
		}
		if len(filters.Tags) > 0 && !sharesTag(entry.TagNames, filters.Tags) {
			continue
		}
		kept = append(kept, entry)
	}

	return kept
}

func containsType(types []domain.ContentType, t domain.ContentType) bool {
	for _, ct := range types {
		if ct == t {
			return true
		}
	}
	return false
}

func sharesTag(entryTags, filterTags []string) bool {
	for _, ft := range filterTags {
		ft = strings.ToLower(ft)
		for _, et := range entryTags {
			if et == ft {
				return true
			}
		}
	}
	return false
}

// exactPass matches the query as a case-insensitive substring against
// title, body and OCR text. Results sort by creation date descending
// and are capped. Title hits outrank body hits outrank OCR hits.
func exactPass(entries []domain.IndexEntry, query string) []domain.RankedResult {
	lower := strings.ToLower(query)
	var results []domain.RankedResult

	for _, entry := range entries {
		var score float64
		switch {
		case strings.Contains(strings.ToLower(entry.Title), lower):
			score = 1.0
		case strings.Contains(strings.ToLower(entry.Body), lower):
			score = 0.9
		case strings.Contains(strings.ToLower(entry.OCRText), lower):
			score = 0.8
		default:
			continue
		}

		results = append(results, domain.RankedResult{
			ContentID: entry.ContentID,
			Title:     entry.Title,
			Snippet:   snippetAround(entry.Body, lower),
			Score:     score,
			Strategy:  domain.StrategyExactText,
		})
	}

	// Creation date descending; entry order in the snapshot is stable,
	// so index into it for the sort key.
	byID := entryIndex(entries)
	sort.SliceStable(results, func(i, j int) bool {
		return byID[results[i].ContentID].CreatedAt.After(byID[results[j].ContentID].CreatedAt)
	})

	if len(results) > exactPassCap {
		results = results[:exactPassCap]
	}
	return results
}

// semanticPass scores keyword and entity set overlap between the
// analyzed query and each entry.
func semanticPass(entries []domain.IndexEntry, query *domain.AnalysisResult) []domain.RankedResult {
	queryEntities := make([]string, 0, len(query.Entities))
	for _, e := range query.Entities {
		queryEntities = append(queryEntities, strings.ToLower(e.Text))
	}

	var results []domain.RankedResult
	for _, entry := range entries {
		score := semanticKeywordWeight*jaccard(query.Keywords, entry.Keywords) +
			semanticEntityWeight*jaccard(queryEntities, entry.Entities)
		if score <= semanticThreshold {
			continue
		}
		results = append(results, domain.RankedResult{
			ContentID: entry.ContentID,
			Title:     entry.Title,
			Snippet:   truncate(entry.Body, snippetLength),
			Score:     score,
			Strategy:  domain.StrategySemantic,
		})
	}
	return results
}

// tagPass scores the fraction of an entry's tag set that fuzzily
// matches any query token (substring in either direction).
func tagPass(entries []domain.IndexEntry, query string) []domain.RankedResult {
	tokens := tokenize(query)

	var results []domain.RankedResult
	for _, entry := range entries {
		if len(entry.TagNames) == 0 {
			continue
		}

		matched := 0
		for _, tag := range entry.TagNames {
			for _, tok := range tokens {
				if strings.Contains(tag, tok) || strings.Contains(tok, tag) {
					matched++
					break
				}
			}
		}
		if matched == 0 {
			continue
		}

		results = append(results, domain.RankedResult{
			ContentID: entry.ContentID,
			Title:     entry.Title,
			Snippet:   truncate(entry.Body, snippetLength),
			Score:     float64(matched) / float64(len(entry.TagNames)),
			Strategy:  domain.StrategyTagMatch,
		})
	}
	return results
}

// contextualPass combines intent classification with weighted keyword
// and entity overlap. An entry whose tags align with the intent gets a
// small affinity bonus.
func contextualPass(entries []domain.IndexEntry, query *domain.AnalysisResult, intent queryIntent) []domain.RankedResult {
	queryEntities := make([]string, 0, len(query.Entities))
	for _, e := range query.Entities {
		queryEntities = append(queryEntities, strings.ToLower(e.Text))
	}

	var results []domain.RankedResult
	for _, entry := range entries {
		score := contextKeywordWeight*jaccard(query.Keywords, entry.Keywords) +
			contextEntityWeight*jaccard(queryEntities, entry.Entities) +
			intentAffinity(intent, entry)
		if score <= contextThreshold {
			continue
		}
		results = append(results, domain.RankedResult{
			ContentID: entry.ContentID,
			Title:     entry.Title,
			Snippet:   truncate(entry.Body, snippetLength),
			Score:     score,
			Strategy:  domain.StrategyContextual,
		})
	}
	return results
}

// intentAffinity rewards entries whose tags match what the intent is
// looking for: actions favour task-like content, questions favour
// learning and reference material.
func intentAffinity(intent queryIntent, entry domain.IndexEntry) float64 {
	switch intent {
	case intentAction:
		if containsString(entry.TagNames, "task") || containsString(entry.TagNames, "high-priority") {
			return 0.1
		}
	case intentQuestion:
		if containsString(entry.TagNames, "learning") || containsString(entry.TagNames, "reference") {
			return 0.1
		}
	}
	return 0
}

// classifyIntent picks the query intent from fixed keyword lists.
func classifyIntent(query string) queryIntent {
	lower := strings.ToLower(strings.TrimSpace(query))
	tokens := tokenize(lower)
	if len(tokens) == 0 {
		return intentSearch
	}

	if strings.HasSuffix(lower, "?") || containsString(questionWords, tokens[0]) {
		return intentQuestion
	}
	for _, w := range actionWords {
		if containsString(tokens, w) {
			return intentAction
		}
	}
	return intentSearch
}

// fusePasses unions the pass outputs, deduplicating by content ID.
// Passes are visited in strategy priority order so the first
// occurrence wins.
func fusePasses(passes ...[]domain.RankedResult) []domain.RankedResult {
	seen := make(map[string]bool)
	var fused []domain.RankedResult

	for _, pass := range passes {
		for _, result := range pass {
			if seen[result.ContentID] {
				continue
			}
			seen[result.ContentID] = true
			fused = append(fused, result)
		}
	}
	return fused
}

// applyCentralityBoost adds a small graph-derived bonus to each result.
// Records absent from the graph are left unboosted.
func (s *Search) applyCentralityBoost(ctx context.Context, results []domain.RankedResult) {
	for i := range results {
		centrality, err := s.graph.Centrality(ctx, results[i].ContentID)
		if err != nil {
			if !errors.Is(err, domain.ErrNotFound) {
				logger.Warn("Centrality boost failed for %s: %v", results[i].ContentID, err)
			}
			continue
		}
		results[i].Score += centralityBoost * centrality
		if results[i].Score > 1 {
			results[i].Score = 1
		}
	}
}

// sortResults orders by score descending, breaking ties by strategy
// priority, then content ID for full determinism.
func sortResults(results []domain.RankedResult) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		if results[i].Strategy != results[j].Strategy {
			return results[i].Strategy.TieBreakRank() < results[j].Strategy.TieBreakRank()
		}
		return results[i].ContentID < results[j].ContentID
	})
}

// recordQuery prepends to the bounded history, most recent first.
func (s *Search) recordQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Drop an earlier occurrence before re-inserting at the front.
	for i, q := range s.history {
		if q == query {
			s.history = append(s.history[:i], s.history[i+1:]...)
			break
		}
	}
	s.history = append([]string{query}, s.history...)
	if len(s.history) > historyCap {
		s.history = s.history[:historyCap]
	}
}

// Suggest combines recent-query history, tag suggestions, indexed
// title and keyword matches, and fixed completion templates.
func (s *Search) Suggest(ctx context.Context, partial string) ([]domain.Suggestion, error) {
	partial = strings.ToLower(strings.TrimSpace(partial))
	if partial == "" {
		return nil, nil
	}

	var suggestions []domain.Suggestion
	seen := make(map[string]bool)

	add := func(text, origin string, confidence float64) {
		key := strings.ToLower(text)
		if seen[key] || text == "" {
			return
		}
		seen[key] = true
		suggestions = append(suggestions, domain.Suggestion{
			Text:       text,
			Origin:     origin,
			Confidence: confidence,
		})
	}

	// Recent queries, most recent first.
	s.mu.Lock()
	for _, q := range s.history {
		if strings.Contains(strings.ToLower(q), partial) {
			add(q, "history", 0.95)
		}
	}
	s.mu.Unlock()

	// Tag vocabulary.
	for _, ts := range s.tagger.Suggest(partial) {
		add(ts.Name, "tag", ts.Confidence)
	}

	// Indexed titles and keywords.
	entries, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("index snapshot: %w", err)
	}
	for _, entry := range entries {
		if strings.Contains(strings.ToLower(entry.Title), partial) {
			add(entry.Title, "title", 0.6)
		}
		for _, kw := range entry.Keywords {
			if strings.Contains(kw, partial) {
				add(kw, "keyword", 0.5)
			}
		}
	}

	// Fixed completion templates, prefix-filtered.
	for _, template := range completionTemplates {
		if strings.HasPrefix(template, partial) {
			add(template, "template", 0.4)
		}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Confidence > suggestions[j].Confidence
	})

	if len(suggestions) > historyCap {
		suggestions = suggestions[:historyCap]
	}
	return suggestions, nil
}

// entryIndex maps content IDs to entries for sort keys.
func entryIndex(entries []domain.IndexEntry) map[string]domain.IndexEntry {
	byID := make(map[string]domain.IndexEntry, len(entries))
	for _, entry := range entries {
		byID[entry.ContentID] = entry
	}
	return byID
}

// snippetAround extracts text surrounding the first match.
func snippetAround(body, lowerQuery string) string {
	if body == "" {
		return ""
	}
	idx := strings.Index(strings.ToLower(body), lowerQuery)
	if idx < 0 {
		return truncate(body, snippetLength)
	}

	start := idx - snippetLength/2
	if start < 0 {
		start = 0
	}
	end := start + snippetLength
	if end > len(body) {
		end = len(body)
	}

	// Align the cut points to rune boundaries.
	for start > 0 && !utf8.RuneStart(body[start]) {
		start--
	}
	for end < len(body) && !utf8.RuneStart(body[end]) {
		end++
	}

	snippet := strings.TrimSpace(body[start:end])
	if start > 0 {
		snippet = "..." + snippet
	}
	if end < len(body) {
		snippet += "..."
	}
	return snippet
}

// truncate shortens text to at most n bytes on a rune boundary.
func truncate(text string, n int) string {
	if len(text) <= n {
		return text
	}
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n]) + "..."
}
