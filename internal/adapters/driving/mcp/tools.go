package mcp

import (
	"context"
	"errors"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/noema/internal/core/domain"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query        string   `json:"query" jsonschema:"the search query to find content"`
	Limit        int      `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
	ContentTypes []string `json:"content_types,omitempty" jsonschema:"restrict results to these content types (text, image, web, pdf, mixed)"`
	Tags         []string `json:"tags,omitempty" jsonschema:"restrict results to entries carrying at least one of these tags"`
	MinRelevance float64  `json:"min_relevance,omitempty" jsonschema:"drop results scoring below this value (0-1)"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	ContentID string  `json:"content_id"`
	Title     string  `json:"title"`
	Snippet   string  `json:"snippet,omitempty"`
	Score     float64 `json:"score"`
	Strategy  string  `json:"strategy"`
}

// AnalyzeInput is the input schema for the analyze tool. Either a
// stored content ID or inline text must be provided.
type AnalyzeInput struct {
	ContentID string `json:"content_id,omitempty" jsonschema:"ID of a stored content record to analyze"`
	Text      string `json:"text,omitempty" jsonschema:"inline text to analyze when no content ID is given"`
	Title     string `json:"title,omitempty" jsonschema:"optional title for inline text"`
}

// AnalyzeOutput is the output schema for the analyze tool.
type AnalyzeOutput struct {
	Language    string   `json:"language"`
	Category    string   `json:"category"`
	Keywords    []string `json:"keywords,omitempty"`
	Entities    []string `json:"entities,omitempty"`
	Summary     string   `json:"summary,omitempty"`
	ActionItems []string `json:"action_items,omitempty"`
	Priority    string   `json:"priority"`
	Confidence  float64  `json:"confidence"`
}

// TasksInput is the input schema for the generate_tasks tool.
type TasksInput struct {
	ContentID string `json:"content_id,omitempty" jsonschema:"ID of a stored content record to generate tasks from"`
	Text      string `json:"text,omitempty" jsonschema:"inline text to generate tasks from when no content ID is given"`
}

// TasksOutput is the output schema for the generate_tasks tool.
type TasksOutput struct {
	Tasks []TaskOutput `json:"tasks"`
	Count int          `json:"count"`
}

// TaskOutput represents a single generated task.
type TaskOutput struct {
	Title      string   `json:"title"`
	Priority   string   `json:"priority"`
	Category   string   `json:"category"`
	DueDate    string   `json:"due_date,omitempty"`
	Confidence float64  `json:"confidence"`
	Method     string   `json:"method"`
	Tags       []string `json:"tags,omitempty"`
}

// RelatedInput is the input schema for the related_content tool.
type RelatedInput struct {
	ContentID  string `json:"content_id" jsonschema:"ID of the content record to find related items for"`
	MaxResults int    `json:"max_results,omitempty" jsonschema:"maximum number of related items (default 10)"`
}

// RelatedOutput is the output schema for the related_content tool.
type RelatedOutput struct {
	ContentIDs []string `json:"content_ids"`
	Count      int      `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Search across all indexed content using exact, semantic, tag and contextual strategies",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze",
		Description: "Analyze content: language, category, keywords, entities, summary, action items and priority",
	}, s.handleAnalyze)

	if s.ports.Tasks != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "generate_tasks",
			Description: "Generate candidate tasks from content",
		}, s.handleTasks)
	}

	if s.ports.Graph != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "related_content",
			Description: "Find content related to a record through the knowledge graph",
		}, s.handleRelated)
	}
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 10
	}

	filters := domain.SearchFilters{
		Tags:         input.Tags,
		MinRelevance: input.MinRelevance,
	}
	for _, ct := range input.ContentTypes {
		filters.ContentTypes = append(filters.ContentTypes, domain.ContentType(ct))
	}

	results, err := s.ports.Search.Search(ctx, input.Query, filters)
	if err != nil {
		return nil, SearchOutput{}, err
	}
	if len(results) > limit {
		results = results[:limit]
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}
	for i := range results {
		output.Results[i] = SearchResultOutput{
			ContentID: results[i].ContentID,
			Title:     results[i].Title,
			Snippet:   results[i].Snippet,
			Score:     results[i].Score,
			Strategy:  string(results[i].Strategy),
		}
	}

	return nil, output, nil
}

// handleAnalyze handles the analyze tool invocation.
func (s *Server) handleAnalyze(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AnalyzeInput,
) (*mcp.CallToolResult, AnalyzeOutput, error) {
	record, err := s.resolveRecord(ctx, input.ContentID, input.Text, input.Title)
	if err != nil {
		return nil, AnalyzeOutput{}, err
	}

	analysis, err := s.ports.Analyzer.Analyze(ctx, *record)
	if err != nil {
		return nil, AnalyzeOutput{}, err
	}

	output := AnalyzeOutput{
		Language:    analysis.Language,
		Category:    string(analysis.Category),
		Keywords:    analysis.Keywords,
		Summary:     analysis.Summary,
		ActionItems: analysis.ActionItems,
		Priority:    string(analysis.Priority),
		Confidence:  analysis.Confidence,
	}
	for _, e := range analysis.Entities {
		output.Entities = append(output.Entities, e.Text)
	}

	return nil, output, nil
}

// handleTasks handles the generate_tasks tool invocation.
func (s *Server) handleTasks(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input TasksInput,
) (*mcp.CallToolResult, TasksOutput, error) {
	record, err := s.resolveRecord(ctx, input.ContentID, input.Text, "")
	if err != nil {
		return nil, TasksOutput{}, err
	}

	analysis, err := s.ports.Analyzer.Analyze(ctx, *record)
	if err != nil {
		return nil, TasksOutput{}, err
	}

	tasks, err := s.ports.Tasks.Generate(ctx, *record, analysis)
	if err != nil {
		return nil, TasksOutput{}, err
	}

	output := TasksOutput{
		Tasks: make([]TaskOutput, len(tasks)),
		Count: len(tasks),
	}
	for i, task := range tasks {
		out := TaskOutput{
			Title:      task.Title,
			Priority:   string(task.Priority),
			Category:   string(task.Category),
			Confidence: task.Confidence,
			Method:     string(task.Method),
			Tags:       task.Tags,
		}
		if task.DueDate != nil {
			out.DueDate = task.DueDate.Format(time.RFC3339)
		}
		output.Tasks[i] = out
	}

	return nil, output, nil
}

// handleRelated handles the related_content tool invocation.
func (s *Server) handleRelated(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RelatedInput,
) (*mcp.CallToolResult, RelatedOutput, error) {
	maxResults := input.MaxResults
	if maxResults <= 0 {
		maxResults = 10
	}

	ids, err := s.ports.Graph.RelatedNodes(ctx, input.ContentID, maxResults)
	if err != nil {
		return nil, RelatedOutput{}, err
	}

	return nil, RelatedOutput{ContentIDs: ids, Count: len(ids)}, nil
}

// resolveRecord loads a stored record by ID, or wraps inline text in an
// ephemeral record.
func (s *Server) resolveRecord(ctx context.Context, contentID, text, title string) (*domain.ContentRecord, error) {
	if contentID != "" {
		if s.ports.Content == nil {
			return nil, errors.New("mcp: content store not configured, pass inline text instead")
		}
		return s.ports.Content.Get(ctx, contentID)
	}
	if text == "" {
		return nil, errors.New("mcp: either content_id or text is required")
	}
	return &domain.ContentRecord{
		ID:        "inline",
		Type:      domain.ContentTypeText,
		Title:     title,
		Body:      text,
		Source:    "mcp",
		CreatedAt: time.Now(),
	}, nil
}
