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
	tasksID   string
	tasksJSON bool
)

var tasksCmd = &cobra.Command{
	Use:   "tasks [text]",
	Short: "Generate candidate tasks from content",
	Long: `Derives actionable tasks from a piece of content using pattern
matching, action item extraction, urgency phrases and category context.
Tasks are ranked by confidence and priority.

Pass text inline, or --id to use a stored record.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTasks,
}

func init() {
	tasksCmd.Flags().StringVar(&tasksID, "id", "", "generate tasks from a stored record by ID")
	tasksCmd.Flags().BoolVar(&tasksJSON, "json", false, "output tasks as JSON")
	rootCmd.AddCommand(tasksCmd)
}

func runTasks(cmd *cobra.Command, args []string) error {
	if taskService == nil {
		return errors.New("task service not configured")
	}
	if analyzerService == nil {
		return errors.New("analyzer service not configured")
	}

	text := ""
	if len(args) > 0 {
		text = args[0]
	}

	ctx := context.Background()
	record, err := loadRecord(ctx, tasksID, text)
	if err != nil {
		return err
	}

	analysis, err := analyzerService.Analyze(ctx, *record)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	tasks, err := taskService.Generate(ctx, *record, analysis)
	if err != nil {
		return fmt.Errorf("task generation failed: %w", err)
	}

	if tasksJSON {
		data, err := json.MarshalIndent(tasks, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal tasks: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	return outputTasks(cmd, tasks)
}

func outputTasks(cmd *cobra.Command, tasks []domain.GeneratedTask) error {
	if len(tasks) == 0 {
		cmd.Println("No tasks found.")
		return nil
	}

	cmd.Printf("Tasks (%d):\n\n", len(tasks))
	for i, task := range tasks {
		cmd.Printf("  [%d] %s (%s, %.2f)\n", i+1, task.Title, task.Priority, task.Confidence)
		if task.Description != "" {
			cmd.Printf("      %s\n", task.Description)
		}
		if task.DueDate != nil {
			cmd.Printf("      Due: %s\n", task.DueDate.Format(time.RFC1123))
		}
		cmd.Printf("      Method: %s\n", task.Method)
		cmd.Println()
	}

	return nil
}
