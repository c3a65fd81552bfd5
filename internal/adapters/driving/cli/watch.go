package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/noema/internal/ingest"
)

var (
	watchExtensions []string
	watchRate       float64
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Watch a directory and ingest new files",
	Long: `Watches a directory for new and changed files and runs each one
through the full pipeline: analyze, tag, index and link into the
knowledge graph. Runs until interrupted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringSliceVar(&watchExtensions, "ext", []string{".txt", ".md"}, "file extensions to ingest")
	watchCmd.Flags().Float64Var(&watchRate, "rate", 5, "maximum files ingested per second")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if analyzerService == nil || searchService == nil {
		return errors.New("ingest services not configured")
	}
	if contentStore == nil {
		return errors.New("content store not configured")
	}

	var dir string
	if len(args) > 0 {
		dir = args[0]
	}
	extensions := watchExtensions
	if configStore != nil {
		if _, ok := configStore.Get("watch.enabled"); ok && !configStore.GetBool("watch.enabled") {
			return errors.New("watching is disabled, set watch.enabled to true")
		}
		if dir == "" {
			dir = configStore.GetString("watch.dir")
		}
		if !cmd.Flags().Changed("ext") {
			if exts := configStore.GetStringSlice("watch.extensions"); len(exts) > 0 {
				extensions = exts
			}
		}
	}
	if dir == "" {
		return errors.New("provide a directory or set watch.dir")
	}

	watcher, err := ingest.NewWatcher(dir, ingest.Pipeline{
		Analyzer: analyzerService,
		Tagger:   taggerService,
		Search:   searchService,
		Graph:    graphService,
		Content:  contentStore,
	}, ingest.WithExtensions(extensions), ingest.WithRate(watchRate))
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer watcher.Close()

	fmt.Fprintf(cmd.OutOrStdout(), "Watching %s (Ctrl+C to stop)\n", dir)
	return watcher.Run(cmd.Context())
}
