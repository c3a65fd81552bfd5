package domain

// ConnectionType labels the dominant signal behind a semantic connection.
type ConnectionType string

// Recognised connection types.
const (
	ConnectionSimilarTopic      ConnectionType = "similar_topic"
	ConnectionRelatedContent    ConnectionType = "related_content"
	ConnectionTemporallyRelated ConnectionType = "temporally_related"
	ConnectionWeaklyRelated     ConnectionType = "weakly_related"
)

// EdgeCreationThreshold is the minimum combined similarity score for an
// edge to exist. A connection with strength at or below this value is
// never created.
const EdgeCreationThreshold = 0.3

// ClusterEdgeThreshold is the minimum edge strength considered when
// computing connected-component clusters.
const ClusterEdgeThreshold = 0.7

// GraphNode wraps a content record ID with an importance weight.
type GraphNode struct {
	// ContentID is the record this node represents.
	ContentID string

	// Weight is the node importance, 0-1.
	Weight float64
}

// SemanticConnection is a weighted, typed edge between two content items.
// Edges are stored with a from/to pair but treated as undirected for
// traversal purposes.
type SemanticConnection struct {
	// FromID and ToID identify the connected records.
	FromID string
	ToID   string

	// Strength is the combined similarity score, always above
	// EdgeCreationThreshold.
	Strength float64

	// Type labels the dominant similarity signal.
	Type ConnectionType

	// Evidence is a short human-readable justification.
	Evidence string
}

// Other returns the opposite endpoint of the edge, or "" if id is not
// an endpoint.
func (c SemanticConnection) Other(id string) string {
	switch id {
	case c.FromID:
		return c.ToID
	case c.ToID:
		return c.FromID
	default:
		return ""
	}
}

// GraphStructure is a snapshot of nodes and edges produced by a batch
// insertion, or of the whole stored graph.
type GraphStructure struct {
	Nodes []GraphNode
	Edges []SemanticConnection
}

// Cluster is a connected component of strongly linked records.
type Cluster struct {
	// Members are the content IDs in the component, sorted.
	Members []string
}
