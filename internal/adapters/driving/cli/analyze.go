package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/noema/internal/core/domain"
)

var (
	analyzeID   string
	analyzeJSON bool
	analyzeTags bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [text]",
	Short: "Analyze content",
	Long: `Runs the full analysis pipeline over a piece of content: language
detection, keyword extraction, entity recognition, sentiment, summary,
action items, category and priority.

Pass text inline, or --id to analyze a stored record.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeID, "id", "", "analyze a stored record by ID")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "output the result as JSON")
	analyzeCmd.Flags().BoolVar(&analyzeTags, "tags", false, "also derive semantic tags")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if analyzerService == nil {
		return errors.New("analyzer service not configured")
	}

	text := ""
	if len(args) > 0 {
		text = args[0]
	}

	ctx := context.Background()
	record, err := loadRecord(ctx, analyzeID, text)
	if err != nil {
		return err
	}

	analysis, err := analyzerService.Analyze(ctx, *record)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	var tags []domain.SemanticTag
	if analyzeTags && taggerService != nil {
		tags, err = taggerService.Tag(ctx, *record, analysis)
		if err != nil {
			return fmt.Errorf("tagging failed: %w", err)
		}
	}

	if analyzeJSON {
		out := struct {
			Analysis *domain.AnalysisResult `json:"analysis"`
			Tags     []domain.SemanticTag   `json:"tags,omitempty"`
		}{analysis, tags}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	return outputAnalysis(cmd, analysis, tags)
}

func outputAnalysis(cmd *cobra.Command, analysis *domain.AnalysisResult, tags []domain.SemanticTag) error {
	cmd.Printf("Language:   %s\n", analysis.Language)
	cmd.Printf("Category:   %s\n", analysis.Category)
	cmd.Printf("Priority:   %s\n", analysis.Priority)
	cmd.Printf("Confidence: %.2f\n", analysis.Confidence)

	if len(analysis.Keywords) > 0 {
		cmd.Printf("Keywords:   %s\n", strings.Join(analysis.Keywords, ", "))
	}
	if len(analysis.Entities) > 0 {
		cmd.Println("Entities:")
		for _, e := range analysis.Entities {
			cmd.Printf("  %s (%s, %.2f)\n", e.Text, e.Type, e.Confidence)
		}
	}
	cmd.Printf("Sentiment:  +%.2f / -%.2f / =%.2f\n",
		analysis.Sentiment.Positive, analysis.Sentiment.Negative, analysis.Sentiment.Neutral)

	if analysis.Summary != "" {
		cmd.Printf("Summary:    %s\n", analysis.Summary)
	}
	if len(analysis.ActionItems) > 0 {
		cmd.Println("Action items:")
		for _, item := range analysis.ActionItems {
			cmd.Printf("  - %s\n", item)
		}
	}
	if len(tags) > 0 {
		cmd.Println("Tags:")
		for _, tag := range tags {
			cmd.Printf("  %s (%s, %.2f)\n", tag.Name, tag.Type, tag.Relevance)
		}
	}

	return nil
}
