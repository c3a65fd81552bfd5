// Package domain defines the core business entities for Noema.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - ContentRecord: A captured piece of content to be analyzed
//   - AnalysisResult: Structured understanding derived from a record
//   - SemanticTag: A typed, ranked tag attached to a record
//   - GraphNode / SemanticConnection: The knowledge graph model
//   - RankedResult: A scored search hit
//   - GeneratedTask: A candidate task derived from content
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
