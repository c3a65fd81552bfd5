package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/noema/internal/core/domain"
	"github.com/custodia-labs/noema/internal/core/ports/driven"
)

// Ensure GraphStore implements the interface.
var _ driven.GraphStore = (*GraphStore)(nil)

// GraphStore is an in-memory implementation of driven.GraphStore.
// Mutation happens only through whole-batch AddNodes/AddEdges calls.
type GraphStore struct {
	mu    sync.RWMutex
	nodes map[string]domain.GraphNode
	edges []domain.SemanticConnection
}

// NewGraphStore creates a new in-memory graph store.
func NewGraphStore() *GraphStore {
	return &GraphStore{
		nodes: make(map[string]domain.GraphNode),
	}
}

// AddNodes inserts a batch of nodes. A duplicate content ID fails
// loudly before any node of the batch is inserted.
func (s *GraphStore) AddNodes(_ context.Context, nodes []domain.GraphNode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, node := range nodes {
		if _, exists := s.nodes[node.ContentID]; exists {
			return fmt.Errorf("node %s: %w", node.ContentID, domain.ErrDuplicateNode)
		}
	}
	for _, node := range nodes {
		s.nodes[node.ContentID] = node
	}
	return nil
}

// AddEdges commits a chunk of edges atomically.
func (s *GraphStore) AddEdges(_ context.Context, edges []domain.SemanticConnection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.edges = append(s.edges, edges...)
	return nil
}

// Node retrieves a node by content ID.
func (s *GraphStore) Node(_ context.Context, contentID string) (*domain.GraphNode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	node, ok := s.nodes[contentID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &node, nil
}

// NodeCount returns the number of stored nodes.
func (s *GraphStore) NodeCount(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.nodes), nil
}

// EdgesOf returns all edges touching the given content ID.
func (s *GraphStore) EdgesOf(_ context.Context, contentID string) ([]domain.SemanticConnection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var edges []domain.SemanticConnection
	for _, edge := range s.edges {
		if edge.FromID == contentID || edge.ToID == contentID {
			edges = append(edges, edge)
		}
	}
	return edges, nil
}

// Snapshot returns a consistent copy of the whole graph.
func (s *GraphStore) Snapshot(_ context.Context) (*domain.GraphStructure, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := &domain.GraphStructure{
		Nodes: make([]domain.GraphNode, 0, len(s.nodes)),
		Edges: make([]domain.SemanticConnection, len(s.edges)),
	}
	for _, node := range s.nodes {
		snapshot.Nodes = append(snapshot.Nodes, node)
	}
	copy(snapshot.Edges, s.edges)

	return snapshot, nil
}
