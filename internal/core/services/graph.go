package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/custodia-labs/noema/internal/core/domain"
	"github.com/custodia-labs/noema/internal/core/ports/driven"
	"github.com/custodia-labs/noema/internal/core/ports/driving"
	"github.com/custodia-labs/noema/internal/logger"
)

// Ensure Graph implements the interface.
var _ driving.GraphService = (*Graph)(nil)

// Similarity weights and thresholds for edge computation.
const (
	titleWeight    = 0.3
	bodyWeight     = 0.4
	temporalWeight = 0.2
	sourceWeight   = 0.1

	similarTopicThreshold   = 0.7
	relatedContentThreshold = 0.6
	temporalTypeThreshold   = 0.8

	// temporalHalfLife is the time difference at which temporal
	// similarity decays to one half.
	temporalHalfLife = 7 * 24 * time.Hour

	// defaultChunkSize bounds pairwise cost per batch to chunk² rather
	// than batch². Cross-chunk relationships are never computed; this
	// is a scalability compromise, not full accuracy.
	defaultChunkSize = 10

	defaultGraphWorkers = 4

	// relatedMaxHops bounds the breadth-first neighbour traversal.
	relatedMaxHops = 3
)

// Graph maintains the semantic knowledge graph: nodes per content
// item and weighted edges from pairwise similarity.
type Graph struct {
	store driven.GraphStore

	chunkSize int
	workers   int
	now       func() time.Time
}

// NewGraph creates a new knowledge graph service.
func NewGraph(store driven.GraphStore) *Graph {
	return &Graph{
		store:     store,
		chunkSize: defaultChunkSize,
		workers:   defaultGraphWorkers,
		now:       time.Now,
	}
}

// SetChunkSize overrides the pairwise batching chunk size.
func (g *Graph) SetChunkSize(size int) {
	if size > 0 {
		g.chunkSize = size
	}
}

// SetWorkers overrides the worker pool size for chunk processing.
func (g *Graph) SetWorkers(n int) {
	if n > 0 {
		g.workers = n
	}
}

// InsertBatch adds one node per record and computes pairwise edges
// within fixed-size chunks. Chunks fan out to a worker pool and fan
// back in to a single aggregator; each chunk's edges are committed to
// the store atomically, so abandoning the batch between chunks never
// leaves partial edges visible.
func (g *Graph) InsertBatch(ctx context.Context, records []domain.ContentRecord) (*domain.GraphStructure, error) {
	logger.Section("Graph Insertion")
	logger.Debug("Inserting batch of %d records (chunk size %d)", len(records), g.chunkSize)

	now := g.now()
	nodes := make([]domain.GraphNode, len(records))
	for i, record := range records {
		nodes[i] = domain.GraphNode{
			ContentID: record.ID,
			Weight:    temporalDecay(record.CreatedAt, now),
		}
	}

	// Duplicate inserts are a caller contract violation; the store
	// fails loudly and the batch stops before any edges are computed.
	if err := g.store.AddNodes(ctx, nodes); err != nil {
		return nil, fmt.Errorf("add nodes: %w", err)
	}

	chunks := chunkRecords(records, g.chunkSize)

	pool, err := ants.NewPool(g.workers)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		mu       sync.Mutex
		allEdges []domain.SemanticConnection
		firstErr error
		wg       sync.WaitGroup
	)

	for _, chunk := range chunks {
		chunk := chunk
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()

			// Abandonment check between chunks: a cancelled batch
			// computes and commits nothing further.
			if ctx.Err() != nil {
				return
			}

			edges := g.chunkEdges(chunk)
			if len(edges) == 0 {
				return
			}

			// All-or-nothing per chunk.
			if err := g.store.AddEdges(ctx, edges); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}

			mu.Lock()
			allEdges = append(allEdges, edges...)
			mu.Unlock()
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			if firstErr == nil {
				firstErr = submitErr
			}
			mu.Unlock()
		}
	}

	wg.Wait()

	if firstErr != nil {
		return nil, fmt.Errorf("insert batch: %w", firstErr)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stable edge order for reproducible results.
	sort.Slice(allEdges, func(i, j int) bool {
		if allEdges[i].FromID != allEdges[j].FromID {
			return allEdges[i].FromID < allEdges[j].FromID
		}
		return allEdges[i].ToID < allEdges[j].ToID
	})

	logger.Info("Graph insertion: %d nodes, %d edges", len(nodes), len(allEdges))

	return &domain.GraphStructure{Nodes: nodes, Edges: allEdges}, nil
}

// chunkEdges computes all qualifying edges for one chunk's unordered
// pairs. Self-pairs are never evaluated.
func (g *Graph) chunkEdges(chunk []domain.ContentRecord) []domain.SemanticConnection {
	var edges []domain.SemanticConnection

	for i := 0; i < len(chunk); i++ {
		for j := i + 1; j < len(chunk); j++ {
			if edge, ok := semanticConnection(chunk[i], chunk[j]); ok {
				edges = append(edges, edge)
			}
		}
	}

	return edges
}

// semanticConnection scores a pair and builds the edge when the
// combined score exceeds the creation threshold.
func semanticConnection(a, b domain.ContentRecord) (domain.SemanticConnection, bool) {
	titleSim := jaccard(tokenize(a.Title), tokenize(b.Title))
	bodySim := jaccard(tokenize(a.Body), tokenize(b.Body))
	temporalSim := temporalDecay(a.CreatedAt, b.CreatedAt)

	sourceSim := 0.0
	if a.Source != "" && a.Source == b.Source {
		sourceSim = 1.0
	}

	strength := titleWeight*titleSim + bodyWeight*bodySim +
		temporalWeight*temporalSim + sourceWeight*sourceSim

	if strength <= domain.EdgeCreationThreshold {
		return domain.SemanticConnection{}, false
	}

	return domain.SemanticConnection{
		FromID:   a.ID,
		ToID:     b.ID,
		Strength: strength,
		Type:     connectionType(titleSim, bodySim, temporalSim),
		Evidence: fmt.Sprintf("title=%.2f body=%.2f temporal=%.2f source=%.0f",
			titleSim, bodySim, temporalSim, sourceSim),
	}, true
}

// connectionType picks the label by which signal dominates.
func connectionType(titleSim, bodySim, temporalSim float64) domain.ConnectionType {
	switch {
	case titleSim > similarTopicThreshold:
		return domain.ConnectionSimilarTopic
	case bodySim > relatedContentThreshold:
		return domain.ConnectionRelatedContent
	case temporalSim > temporalTypeThreshold:
		return domain.ConnectionTemporallyRelated
	default:
		return domain.ConnectionWeaklyRelated
	}
}

// jaccard computes set overlap over whitespace-tokenized lowercase words.
func jaccard(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	setA := make(map[string]bool, len(a))
	for _, w := range a {
		setA[w] = true
	}
	setB := make(map[string]bool, len(b))
	for _, w := range b {
		setB[w] = true
	}

	intersection := 0
	for w := range setA {
		if setB[w] {
			intersection++
		}
	}

	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// temporalDecay is an exponential decay over the time difference, with
// half relevance at temporalHalfLife.
func temporalDecay(a, b time.Time) float64 {
	diff := math.Abs(a.Sub(b).Hours())
	half := temporalHalfLife.Hours()
	return math.Exp(-math.Ln2 * diff / half)
}

// chunkRecords splits records into fixed-size chunks.
func chunkRecords(records []domain.ContentRecord, size int) [][]domain.ContentRecord {
	var chunks [][]domain.ContentRecord
	for start := 0; start < len(records); start += size {
		end := start + size
		if end > len(records) {
			end = len(records)
		}
		chunks = append(chunks, records[start:end])
	}
	return chunks
}

// Centrality returns degree centrality: degree / (totalNodes - 1),
// zero for a graph with at most one node.
func (g *Graph) Centrality(ctx context.Context, contentID string) (float64, error) {
	if _, err := g.store.Node(ctx, contentID); err != nil {
		return 0, fmt.Errorf("centrality %s: %w", contentID, err)
	}

	total, err := g.store.NodeCount(ctx)
	if err != nil {
		return 0, err
	}
	if total <= 1 {
		return 0, nil
	}

	edges, err := g.store.EdgesOf(ctx, contentID)
	if err != nil {
		return 0, err
	}

	return float64(len(edges)) / float64(total-1), nil
}

// Clusters computes connected components over the stored edge set,
// considering only edges stronger than the cluster threshold.
// Components with fewer than two members are discarded.
func (g *Graph) Clusters(ctx context.Context) ([]domain.Cluster, error) {
	snapshot, err := g.store.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("graph snapshot: %w", err)
	}

	adjacency := make(map[string][]string)
	for _, edge := range snapshot.Edges {
		if edge.Strength <= domain.ClusterEdgeThreshold {
			continue
		}
		adjacency[edge.FromID] = append(adjacency[edge.FromID], edge.ToID)
		adjacency[edge.ToID] = append(adjacency[edge.ToID], edge.FromID)
	}

	visited := make(map[string]bool)
	var clusters []domain.Cluster

	// Deterministic component discovery order.
	ids := make([]string, 0, len(adjacency))
	for id := range adjacency {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		if visited[id] {
			continue
		}

		var members []string
		queue := []string{id}
		visited[id] = true
		for len(queue) > 0 {
			current := queue[0]
			queue = queue[1:]
			members = append(members, current)
			for _, neighbour := range adjacency[current] {
				if !visited[neighbour] {
					visited[neighbour] = true
					queue = append(queue, neighbour)
				}
			}
		}

		if len(members) < 2 {
			continue
		}
		sort.Strings(members)
		clusters = append(clusters, domain.Cluster{Members: members})
	}

	logger.Debug("Clusters: %d components over %d edges", len(clusters), len(snapshot.Edges))
	return clusters, nil
}

// RelatedNodes performs a bounded breadth-first traversal from the
// given node over the stored edge set, with a visited set, a max-hop
// cutoff and a max-result cutoff. Neighbours are visited strongest
// edge first so traversal order is reproducible.
func (g *Graph) RelatedNodes(ctx context.Context, fromID string, maxResults int) ([]string, error) {
	if _, err := g.store.Node(ctx, fromID); err != nil {
		return nil, fmt.Errorf("related nodes %s: %w", fromID, err)
	}
	if maxResults <= 0 {
		return nil, nil
	}

	visited := map[string]bool{fromID: true}
	var results []string

	type hop struct {
		id    string
		depth int
	}
	queue := []hop{{id: fromID, depth: 0}}

	for len(queue) > 0 && len(results) < maxResults {
		current := queue[0]
		queue = queue[1:]

		if current.depth >= relatedMaxHops {
			continue
		}

		edges, err := g.store.EdgesOf(ctx, current.id)
		if err != nil {
			return nil, err
		}

		sort.Slice(edges, func(i, j int) bool {
			if edges[i].Strength != edges[j].Strength {
				return edges[i].Strength > edges[j].Strength
			}
			return edges[i].Other(current.id) < edges[j].Other(current.id)
		})

		for _, edge := range edges {
			neighbour := edge.Other(current.id)
			if neighbour == "" || visited[neighbour] {
				continue
			}
			visited[neighbour] = true
			results = append(results, neighbour)
			if len(results) >= maxResults {
				break
			}
			queue = append(queue, hop{id: neighbour, depth: current.depth + 1})
		}
	}

	return results, nil
}

// Structure returns a snapshot of the whole stored graph.
func (g *Graph) Structure(ctx context.Context) (*domain.GraphStructure, error) {
	return g.store.Snapshot(ctx)
}
