// Package mcp provides an MCP (Model Context Protocol) server adapter for Noema.
// It enables AI assistants like Claude to analyze, search and plan over locally
// captured content.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")

// ErrMissingAnalyzerService is returned when the analyzer service is not provided.
var ErrMissingAnalyzerService = errors.New("mcp: analyzer service is required")
