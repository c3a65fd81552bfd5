// Command noema is the content intelligence engine CLI.
package main

import (
	"fmt"
	"os"

	"github.com/custodia-labs/noema/internal/adapters/driven/config/file"
	"github.com/custodia-labs/noema/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/noema/internal/adapters/driving/cli"
	"github.com/custodia-labs/noema/internal/core/services"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	config, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store, err := sqlite.NewStore("")
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	defer store.Close()

	analyzer := services.NewAnalyzer(services.NewExtractor(), services.NewClassifier())
	tagger := services.NewTagger()
	graph := services.NewGraph(store.GraphStore())
	if size := config.GetInt("graph.chunk_size"); size > 0 {
		graph.SetChunkSize(size)
	}

	search := services.NewSearch(store.IndexStore(), store.ContentStore(), analyzer, tagger)
	search.SetGraph(graph)

	cli.SetVersion(version)
	cli.SetServices(&cli.Services{
		Analyzer: analyzer,
		Tagger:   tagger,
		Search:   search,
		Tasks:    services.NewTasks(),
		Graph:    graph,
		Content:  store.ContentStore(),
		Config:   config,
	})

	return cli.Execute()
}
