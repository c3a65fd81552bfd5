package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// uriScheme is the custom URI scheme for Noema resources.
const uriScheme = "noema://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing captured content.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "content",
		Name:        "content",
		Description: "List of all captured content records",
		MIMEType:    "application/json",
	}, s.handleContentListResource)

	// Template for individual record bodies.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "content/{contentId}",
		Name:        "content-body",
		Description: "Full text of a specific content record",
		MIMEType:    "text/plain",
	}, s.handleContentBodyResource)

	// Static resource for graph clusters.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "graph/clusters",
		Name:        "graph-clusters",
		Description: "Connected clusters of strongly related content",
		MIMEType:    "application/json",
	}, s.handleClustersResource)
}

// contentSummary is the JSON shape of one record in the content list.
type contentSummary struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	Source    string `json:"source"`
	CreatedAt string `json:"created_at"`
}

// handleContentListResource returns a listing of all stored records.
func (s *Server) handleContentListResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Content == nil {
		return jsonResource(req.Params.URI, "[]")
	}

	records, err := s.ports.Content.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing content: %w", err)
	}

	summaries := make([]contentSummary, len(records))
	for i, record := range records {
		summaries[i] = contentSummary{
			ID:        record.ID,
			Type:      string(record.Type),
			Title:     record.Title,
			Source:    record.Source,
			CreatedAt: record.CreatedAt.Format(time.RFC3339),
		}
	}

	data, err := json.Marshal(summaries)
	if err != nil {
		return nil, fmt.Errorf("marshalling content list: %w", err)
	}
	return jsonResource(req.Params.URI, string(data))
}

// handleContentBodyResource returns the combined text of one record.
func (s *Server) handleContentBodyResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Content == nil {
		return nil, fmt.Errorf("content store not configured")
	}

	contentID := strings.TrimPrefix(req.Params.URI, uriScheme+"content/")
	record, err := s.ports.Content.Get(ctx, contentID)
	if err != nil {
		return nil, fmt.Errorf("getting content %s: %w", contentID, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     record.CombinedText(),
		}},
	}, nil
}

// handleClustersResource returns the graph's strong clusters.
func (s *Server) handleClustersResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Graph == nil {
		return jsonResource(req.Params.URI, "[]")
	}

	clusters, err := s.ports.Graph.Clusters(ctx)
	if err != nil {
		return nil, fmt.Errorf("computing clusters: %w", err)
	}

	members := make([][]string, len(clusters))
	for i, cluster := range clusters {
		members[i] = cluster.Members
	}

	data, err := json.Marshal(members)
	if err != nil {
		return nil, fmt.Errorf("marshalling clusters: %w", err)
	}
	return jsonResource(req.Params.URI, string(data))
}

func jsonResource(uri, text string) (*mcp.ReadResourceResult, error) {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     text,
		}},
	}, nil
}
