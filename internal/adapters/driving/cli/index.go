package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Search index commands",
}

var indexRebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the search index from all stored content",
	Long: `Rescans the content store and rebuilds every index entry. Use after
restoring a database or when the index has drifted from the content.`,
	RunE: runIndexRebuild,
}

func init() {
	indexCmd.AddCommand(indexRebuildCmd)
	rootCmd.AddCommand(indexCmd)
}

func runIndexRebuild(cmd *cobra.Command, _ []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	if err := searchService.RebuildAll(context.Background()); err != nil {
		return fmt.Errorf("index rebuild failed: %w", err)
	}

	cmd.Println("Index rebuilt.")
	return nil
}
