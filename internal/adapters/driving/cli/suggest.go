package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest [partial]",
	Short: "Suggest query completions",
	Long: `Offers completions for a partial query, drawn from recent search
history, known tags, indexed titles and keywords, and fixed templates.`,
	Args: cobra.ExactArgs(1),
	RunE: runSuggest,
}

func init() {
	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	suggestions, err := searchService.Suggest(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("suggest failed: %w", err)
	}

	if len(suggestions) == 0 {
		cmd.Println("No suggestions.")
		return nil
	}
	for _, s := range suggestions {
		cmd.Printf("  %-30s (%s, %.2f)\n", s.Text, s.Origin, s.Confidence)
	}
	return nil
}
