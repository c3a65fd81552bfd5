package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input, including
	// unsatisfiable search filters.
	ErrInvalidInput = errors.New("invalid input")

	// Graph and index contract violations. These indicate programmer
	// error on the caller's side and fail loudly rather than auto-heal.

	// ErrDuplicateNode indicates a record was inserted into the graph twice.
	ErrDuplicateNode = errors.New("duplicate graph node")

	// ErrEntryMissing indicates an index entry was expected but absent.
	ErrEntryMissing = errors.New("index entry missing")

	// ErrAnalysisUnavailable indicates the analyzer could not produce a
	// result. Indexing degrades to raw text when it hits this; query
	// analysis cannot, so Search wraps and returns it.
	ErrAnalysisUnavailable = errors.New("analysis unavailable")
)
