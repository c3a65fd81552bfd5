package driving

import (
	"context"

	"github.com/custodia-labs/noema/internal/core/domain"
)

// GraphService maintains the semantic knowledge graph.
type GraphService interface {
	// InsertBatch adds records as nodes and computes pairwise semantic
	// connections within fixed-size chunks. Returns the structure that
	// was inserted. Edges are committed all-or-nothing per chunk, so
	// cancellation between chunks never leaves partial edges visible.
	InsertBatch(ctx context.Context, records []domain.ContentRecord) (*domain.GraphStructure, error)

	// Centrality returns degree centrality for a node:
	// degree / (totalNodes - 1), 0 when the graph has at most one node.
	Centrality(ctx context.Context, contentID string) (float64, error)

	// Clusters computes connected components over the stored edge set,
	// considering only edges stronger than domain.ClusterEdgeThreshold.
	// Components smaller than two members are discarded.
	Clusters(ctx context.Context) ([]domain.Cluster, error)

	// RelatedNodes performs a bounded breadth-first traversal from the
	// given node, returning up to maxResults reachable content IDs in
	// visit order.
	RelatedNodes(ctx context.Context, fromID string, maxResults int) ([]string, error)

	// Structure returns a snapshot of the whole stored graph.
	Structure(ctx context.Context) (*domain.GraphStructure, error)
}
