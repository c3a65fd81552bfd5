package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var relatedMax int

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Knowledge graph commands",
	Long:  `Inspect and rebuild the semantic knowledge graph linking content records.`,
}

var graphRebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the graph from all stored content",
	RunE:  runGraphRebuild,
}

var graphRelatedCmd = &cobra.Command{
	Use:   "related [content-id]",
	Short: "Find content related to a record",
	Args:  cobra.ExactArgs(1),
	RunE:  runGraphRelated,
}

var graphClustersCmd = &cobra.Command{
	Use:   "clusters",
	Short: "Show clusters of strongly linked content",
	RunE:  runGraphClusters,
}

var graphCentralityCmd = &cobra.Command{
	Use:   "centrality [content-id]",
	Short: "Show how central a record is in the graph",
	Args:  cobra.ExactArgs(1),
	RunE:  runGraphCentrality,
}

var graphStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show graph size",
	RunE:  runGraphStats,
}

func init() {
	graphRelatedCmd.Flags().IntVarP(&relatedMax, "max", "n", 10, "maximum number of related records")
	graphCmd.AddCommand(graphRebuildCmd)
	graphCmd.AddCommand(graphRelatedCmd)
	graphCmd.AddCommand(graphClustersCmd)
	graphCmd.AddCommand(graphCentralityCmd)
	graphCmd.AddCommand(graphStatsCmd)
	rootCmd.AddCommand(graphCmd)
}

func runGraphRebuild(cmd *cobra.Command, _ []string) error {
	if graphService == nil {
		return errors.New("graph service not configured")
	}
	if contentStore == nil {
		return errors.New("content store not configured")
	}

	ctx := context.Background()
	records, err := contentStore.List(ctx)
	if err != nil {
		return fmt.Errorf("listing content: %w", err)
	}

	structure, err := graphService.InsertBatch(ctx, records)
	if err != nil {
		return fmt.Errorf("graph rebuild failed: %w", err)
	}

	cmd.Printf("Graph rebuilt: %d nodes, %d edges\n", len(structure.Nodes), len(structure.Edges))
	return nil
}

func runGraphRelated(cmd *cobra.Command, args []string) error {
	if graphService == nil {
		return errors.New("graph service not configured")
	}

	ids, err := graphService.RelatedNodes(context.Background(), args[0], relatedMax)
	if err != nil {
		return fmt.Errorf("related lookup failed: %w", err)
	}

	if len(ids) == 0 {
		cmd.Println("No related content found.")
		return nil
	}
	for _, id := range ids {
		cmd.Println(id)
	}
	return nil
}

func runGraphClusters(cmd *cobra.Command, _ []string) error {
	if graphService == nil {
		return errors.New("graph service not configured")
	}

	clusters, err := graphService.Clusters(context.Background())
	if err != nil {
		return fmt.Errorf("cluster computation failed: %w", err)
	}

	if len(clusters) == 0 {
		cmd.Println("No clusters found.")
		return nil
	}
	for i, cluster := range clusters {
		cmd.Printf("  [%d] %s\n", i+1, strings.Join(cluster.Members, ", "))
	}
	return nil
}

func runGraphStats(cmd *cobra.Command, _ []string) error {
	if graphService == nil {
		return errors.New("graph service not configured")
	}

	structure, err := graphService.Structure(context.Background())
	if err != nil {
		return fmt.Errorf("graph snapshot failed: %w", err)
	}

	cmd.Printf("Nodes: %d\nEdges: %d\n", len(structure.Nodes), len(structure.Edges))
	return nil
}

func runGraphCentrality(cmd *cobra.Command, args []string) error {
	if graphService == nil {
		return errors.New("graph service not configured")
	}

	centrality, err := graphService.Centrality(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("centrality lookup failed: %w", err)
	}

	cmd.Printf("%.3f\n", centrality)
	return nil
}
