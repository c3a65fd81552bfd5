package mcp

import (
	"github.com/custodia-labs/noema/internal/core/ports/driven"
	"github.com/custodia-labs/noema/internal/core/ports/driving"
)

// Ports aggregates all port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Analyzer produces content analysis.
	Analyzer driving.AnalyzerService

	// Search provides multi-strategy retrieval.
	Search driving.SearchService

	// Tasks generates candidate tasks. Optional.
	Tasks driving.TaskService

	// Graph exposes the knowledge graph. Optional.
	Graph driving.GraphService

	// Content provides access to stored records for resources and
	// by-ID tool calls. Optional.
	Content driven.ContentStore
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Analyzer == nil {
		return ErrMissingAnalyzerService
	}
	if p.Search == nil {
		return ErrMissingSearchService
	}
	// Tasks, Graph and Content are optional
	return nil
}
