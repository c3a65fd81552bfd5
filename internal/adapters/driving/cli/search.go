package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/noema/internal/core/domain"
)

var (
	searchLimit        int
	searchJSON         bool
	searchTypes        []string
	searchTags         []string
	searchMinRelevance float64
	searchFrom         string
	searchTo           string
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search indexed content",
	Long: `Searches across all indexed content using four retrieval strategies:
exact text, semantic keyword/entity overlap, tag matching and
contextual category affinity. Results are fused and ranked.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().StringSliceVar(&searchTypes, "type", nil, "restrict to content types (text, image, web, pdf, mixed)")
	searchCmd.Flags().StringSliceVar(&searchTags, "tag", nil, "restrict to entries carrying one of these tags")
	searchCmd.Flags().Float64Var(&searchMinRelevance, "min-relevance", 0, "drop results scoring below this value")
	searchCmd.Flags().StringVar(&searchFrom, "from", "", "only content created on or after this date (YYYY-MM-DD)")
	searchCmd.Flags().StringVar(&searchTo, "to", "", "only content created on or before this date (YYYY-MM-DD)")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	if searchService == nil {
		return errors.New("search service not configured")
	}

	limit := searchLimit
	minRelevance := searchMinRelevance
	if configStore != nil {
		if !cmd.Flags().Changed("limit") {
			if v := configStore.GetInt("search.max_results"); v > 0 {
				limit = v
			}
		}
		if !cmd.Flags().Changed("min-relevance") {
			if v := configStore.GetFloat("search.min_relevance"); v > 0 {
				minRelevance = v
			}
		}
	}

	filters := domain.SearchFilters{
		Tags:         searchTags,
		MinRelevance: minRelevance,
	}
	for _, t := range searchTypes {
		filters.ContentTypes = append(filters.ContentTypes, domain.ContentType(t))
	}
	if searchFrom != "" {
		from, err := time.Parse("2006-01-02", searchFrom)
		if err != nil {
			return fmt.Errorf("invalid --from date: %w", err)
		}
		filters.DateFrom = &from
	}
	if searchTo != "" {
		to, err := time.Parse("2006-01-02", searchTo)
		if err != nil {
			return fmt.Errorf("invalid --to date: %w", err)
		}
		filters.DateTo = &to
	}

	ctx := context.Background()
	results, err := searchService.Search(ctx, query, filters)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	if len(results) > limit {
		results = results[:limit]
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}

	return outputSearchTable(cmd, results)
}

func outputSearchJSON(cmd *cobra.Command, results []domain.RankedResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []domain.RankedResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		title := results[i].Title
		if title == "" {
			title = results[i].ContentID
		}

		cmd.Printf("  [%d] %s (%.2f, %s)\n", i+1, title, results[i].Score, results[i].Strategy)
		if results[i].Snippet != "" {
			cmd.Printf("      %s\n", results[i].Snippet)
		}
		cmd.Println()
	}

	return nil
}
