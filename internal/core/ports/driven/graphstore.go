package driven

import (
	"context"

	"github.com/custodia-labs/noema/internal/core/domain"
)

// GraphStore persists knowledge graph nodes and edges. The store is a
// single serialization point: it accepts whole-batch insertions and is
// never read-modified by outside callers. Readers take a consistent
// snapshot rather than iterating under concurrent mutation.
type GraphStore interface {
	// AddNodes inserts nodes for a batch of records. Inserting a node
	// whose content ID already exists returns domain.ErrDuplicateNode:
	// duplicates indicate a caller contract violation and fail loudly.
	AddNodes(ctx context.Context, nodes []domain.GraphNode) error

	// AddEdges commits a chunk of edges atomically: either all edges in
	// the call become visible or none do.
	AddEdges(ctx context.Context, edges []domain.SemanticConnection) error

	// Node retrieves a node by content ID.
	Node(ctx context.Context, contentID string) (*domain.GraphNode, error)

	// NodeCount returns the number of stored nodes.
	NodeCount(ctx context.Context) (int, error)

	// EdgesOf returns all edges touching the given content ID.
	EdgesOf(ctx context.Context, contentID string) ([]domain.SemanticConnection, error)

	// Snapshot returns a consistent copy of the whole graph.
	Snapshot(ctx context.Context) (*domain.GraphStructure, error)
}
