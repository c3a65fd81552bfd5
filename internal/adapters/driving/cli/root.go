// Package cli implements the cobra command tree for the noema binary.
// Commands talk to the core services through the driving ports; the
// concrete services are injected once at startup via SetServices.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/noema/internal/core/ports/driven"
	"github.com/custodia-labs/noema/internal/core/ports/driving"
	"github.com/custodia-labs/noema/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

var verbose bool

// Services bundles everything the CLI commands need.
type Services struct {
	Analyzer driving.AnalyzerService
	Tagger   driving.TaggerService
	Search   driving.SearchService
	Tasks    driving.TaskService
	Graph    driving.GraphService
	Content  driven.ContentStore
	Config   driven.ConfigStore
}

var (
	analyzerService driving.AnalyzerService
	taggerService   driving.TaggerService
	searchService   driving.SearchService
	taskService     driving.TaskService
	graphService    driving.GraphService
	contentStore    driven.ContentStore
	configStore     driven.ConfigStore
)

// SetServices injects the concrete services. Call before Execute.
func SetServices(s *Services) {
	if s == nil {
		return
	}
	analyzerService = s.Analyzer
	taggerService = s.Tagger
	searchService = s.Search
	taskService = s.Tasks
	graphService = s.Graph
	contentStore = s.Content
	configStore = s.Config
}

// SetVersion overrides the reported version string.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

var rootCmd = &cobra.Command{
	Use:   "noema",
	Short: "Content intelligence engine",
	Long: `Noema analyzes captured content: it extracts keywords, entities and
sentiment, classifies and tags records, links them into a knowledge
graph, and makes everything searchable.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}
