// Package tui provides an interactive terminal user interface for noema.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/noema/internal/core/ports/driven"
	"github.com/custodia-labs/noema/internal/core/ports/driving"
)

// Ports aggregates the port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search provides search and query suggestion capabilities.
	Search driving.SearchService

	// Content provides read access to stored records for the detail
	// view. Optional; without it results cannot be opened.
	Content driven.ContentStore
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
