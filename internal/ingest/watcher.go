// Package ingest watches a directory and feeds new or changed files
// through the full pipeline: analyze, tag, index and link into the
// knowledge graph.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/noema/internal/core/domain"
	"github.com/custodia-labs/noema/internal/core/ports/driven"
	"github.com/custodia-labs/noema/internal/core/ports/driving"
	"github.com/custodia-labs/noema/internal/logger"
)

// defaultRate bounds how many files are ingested per second.
const defaultRate = 5

// Pipeline bundles the services a watcher drives. Analyzer, Search and
// Content are required; Tagger and Graph are optional enrichments.
type Pipeline struct {
	Analyzer driving.AnalyzerService
	Tagger   driving.TaggerService
	Search   driving.SearchService
	Graph    driving.GraphService
	Content  driven.ContentStore
}

// Validate ensures the required services are present.
func (p Pipeline) Validate() error {
	if p.Analyzer == nil {
		return errors.New("ingest: analyzer service is required")
	}
	if p.Search == nil {
		return errors.New("ingest: search service is required")
	}
	if p.Content == nil {
		return errors.New("ingest: content store is required")
	}
	return nil
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithExtensions restricts ingestion to the given file extensions
// (including the leading dot). Defaults to .txt and .md.
func WithExtensions(exts []string) Option {
	return func(w *Watcher) {
		if len(exts) == 0 {
			return
		}
		w.exts = make(map[string]bool, len(exts))
		for _, ext := range exts {
			w.exts[strings.ToLower(ext)] = true
		}
	}
}

// WithRate sets the maximum number of files ingested per second.
func WithRate(perSecond float64) Option {
	return func(w *Watcher) {
		if perSecond > 0 {
			w.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		}
	}
}

// Watcher ingests files from a watched directory.
type Watcher struct {
	dir      string
	pipeline Pipeline
	fs       *fsnotify.Watcher
	limiter  *rate.Limiter
	exts     map[string]bool

	// byPath remembers the record ID minted for each file, so a
	// rewrite re-indexes the same record instead of minting a twin.
	mu     sync.Mutex
	byPath map[string]string

	// newID and now are injectable for deterministic tests.
	newID func() string
	now   func() time.Time
}

// NewWatcher creates a watcher over dir. The directory must exist.
func NewWatcher(dir string, pipeline Pipeline, opts ...Option) (*Watcher, error) {
	if err := pipeline.Validate(); err != nil {
		return nil, err
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("watch dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("watch dir: %s is not a directory", dir)
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fs.Add(dir); err != nil {
		fs.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}

	w := &Watcher{
		dir:      dir,
		pipeline: pipeline,
		fs:       fs,
		limiter:  rate.NewLimiter(defaultRate, 1),
		exts:     map[string]bool{".txt": true, ".md": true},
		byPath:   make(map[string]string),
		newID:    uuid.NewString,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Close releases the underlying filesystem watcher.
func (w *Watcher) Close() error {
	return w.fs.Close()
}

// Run processes filesystem events until the context is cancelled.
// Ingestion failures for individual files are logged, not fatal.
func (w *Watcher) Run(ctx context.Context) error {
	logger.Section("Watch")
	logger.Info("Watching %s", w.dir)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
				continue
			}
			if !w.wantsFile(event.Name) {
				continue
			}
			if err := w.limiter.Wait(ctx); err != nil {
				return err
			}
			if err := w.IngestFile(ctx, event.Name); err != nil {
				logger.Warn("Ingest %s: %v", event.Name, err)
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}

// wantsFile applies the extension filter.
func (w *Watcher) wantsFile(path string) bool {
	return w.exts[strings.ToLower(filepath.Ext(path))]
}

// IngestFile reads one file and runs it through the pipeline. A path
// seen before keeps its record ID and is re-indexed in place.
func (w *Watcher) IngestFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}

	w.mu.Lock()
	id, seen := w.byPath[path]
	if !seen {
		id = w.newID()
		w.byPath[path] = id
	}
	w.mu.Unlock()

	record := domain.ContentRecord{
		ID:        id,
		Type:      domain.ContentTypeText,
		Title:     strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Body:      string(data),
		Source:    "drop-folder",
		CreatedAt: w.now(),
	}

	if err := w.pipeline.Content.Save(ctx, &record); err != nil {
		return fmt.Errorf("saving record: %w", err)
	}
	if err := w.pipeline.Search.Upsert(ctx, record); err != nil {
		return fmt.Errorf("indexing record: %w", err)
	}

	// New files join the graph; rewrites keep their existing node.
	if w.pipeline.Graph != nil && !seen {
		if _, err := w.pipeline.Graph.InsertBatch(ctx, []domain.ContentRecord{record}); err != nil {
			return fmt.Errorf("linking record: %w", err)
		}
	}

	logger.Debug("Ingested %s as %s", path, id)
	return nil
}

// TrackedCount returns how many distinct files have been ingested.
func (w *Watcher) TrackedCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.byPath)
}
