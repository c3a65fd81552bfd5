package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/noema/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/noema/internal/core/domain"
	"github.com/custodia-labs/noema/internal/core/ports/driven"
)

// Store is a unified SQLite-based storage that provides access to
// all persistence interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.noema/data/noema.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".noema", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "noema.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// ContentStore returns a ContentStore interface backed by this store.
func (s *Store) ContentStore() driven.ContentStore {
	return &contentStore{store: s}
}

// IndexStore returns an IndexStore interface backed by this store.
func (s *Store) IndexStore() driven.IndexStore {
	return &indexStore{store: s}
}

// GraphStore returns a GraphStore interface backed by this store.
func (s *Store) GraphStore() driven.GraphStore {
	return &graphStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Content Store ====================

// contentStore implements driven.ContentStore.
type contentStore struct {
	store *Store
}

var _ driven.ContentStore = (*contentStore)(nil)

// Save stores or updates a content record.
func (s *contentStore) Save(ctx context.Context, record *domain.ContentRecord) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO content (id, type, title, body, ocr_text, source, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			type = excluded.type,
			title = excluded.title,
			body = excluded.body,
			ocr_text = excluded.ocr_text,
			source = excluded.source,
			created_at = excluded.created_at
	`, record.ID, record.Type, record.Title, record.Body,
		record.OCRText, record.Source, record.CreatedAt.UTC())

	if err != nil {
		return fmt.Errorf("saving content: %w", err)
	}
	return nil
}

// Get retrieves a content record by ID.
func (s *contentStore) Get(ctx context.Context, id string) (*domain.ContentRecord, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, type, title, body, ocr_text, source, created_at
		FROM content WHERE id = ?
	`, id)

	record, err := scanContent(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning content: %w", err)
	}
	return record, nil
}

// List returns all records ordered by creation time ascending, ties by ID.
func (s *contentStore) List(ctx context.Context) ([]domain.ContentRecord, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, type, title, body, ocr_text, source, created_at
		FROM content ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying content: %w", err)
	}
	defer rows.Close()

	var records []domain.ContentRecord //nolint:prealloc // size unknown from query
	for rows.Next() {
		record, err := scanContent(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning content: %w", err)
		}
		records = append(records, *record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating content: %w", err)
	}
	return records, nil
}

// Delete removes a content record.
func (s *contentStore) Delete(ctx context.Context, id string) error {
	result, err := s.store.db.ExecContext(ctx, "DELETE FROM content WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting content: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting content: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanContent(row scanner) (*domain.ContentRecord, error) {
	var record domain.ContentRecord
	var createdAt sql.NullTime
	if err := row.Scan(&record.ID, &record.Type, &record.Title, &record.Body,
		&record.OCRText, &record.Source, &createdAt); err != nil {
		return nil, err
	}
	if createdAt.Valid {
		record.CreatedAt = createdAt.Time
	}
	return &record, nil
}

// ==================== Index Store ====================

// indexStore implements driven.IndexStore.
type indexStore struct {
	store *Store
}

var _ driven.IndexStore = (*indexStore)(nil)

// Put stores or replaces the index entry for a record.
func (s *indexStore) Put(ctx context.Context, entry domain.IndexEntry) error {
	keywords, err := marshalStrings(entry.Keywords)
	if err != nil {
		return fmt.Errorf("marshalling keywords: %w", err)
	}
	entities, err := marshalStrings(entry.Entities)
	if err != nil {
		return fmt.Errorf("marshalling entities: %w", err)
	}
	tagNames, err := marshalStrings(entry.TagNames)
	if err != nil {
		return fmt.Errorf("marshalling tag names: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO index_entries (content_id, title, body, ocr_text, content_type,
			keywords, entities, tag_names, created_at, last_indexed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(content_id) DO UPDATE SET
			title = excluded.title,
			body = excluded.body,
			ocr_text = excluded.ocr_text,
			content_type = excluded.content_type,
			keywords = excluded.keywords,
			entities = excluded.entities,
			tag_names = excluded.tag_names,
			created_at = excluded.created_at,
			last_indexed_at = excluded.last_indexed_at
	`, entry.ContentID, entry.Title, entry.Body, entry.OCRText, entry.ContentType,
		keywords, entities, tagNames, entry.CreatedAt.UTC(), entry.LastIndexedAt.UTC())

	if err != nil {
		return fmt.Errorf("saving index entry: %w", err)
	}
	return nil
}

// Get retrieves the index entry for a record.
func (s *indexStore) Get(ctx context.Context, contentID string) (*domain.IndexEntry, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT content_id, title, body, ocr_text, content_type,
			keywords, entities, tag_names, created_at, last_indexed_at
		FROM index_entries WHERE content_id = ?
	`, contentID)

	entry, err := scanIndexEntry(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning index entry: %w", err)
	}
	return entry, nil
}

// Remove purges the entry for a record. A missing entry is a caller
// contract violation and fails loudly.
func (s *indexStore) Remove(ctx context.Context, contentID string) error {
	result, err := s.store.db.ExecContext(ctx, "DELETE FROM index_entries WHERE content_id = ?", contentID)
	if err != nil {
		return fmt.Errorf("removing index entry: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("removing index entry: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("remove %s: %w", contentID, domain.ErrEntryMissing)
	}
	return nil
}

// Snapshot returns all entries ordered by content ID.
func (s *indexStore) Snapshot(ctx context.Context) ([]domain.IndexEntry, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT content_id, title, body, ocr_text, content_type,
			keywords, entities, tag_names, created_at, last_indexed_at
		FROM index_entries ORDER BY content_id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying index entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.IndexEntry //nolint:prealloc // size unknown from query
	for rows.Next() {
		entry, err := scanIndexEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning index entry: %w", err)
		}
		entries = append(entries, *entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating index entries: %w", err)
	}
	return entries, nil
}

// Count returns the number of indexed entries.
func (s *indexStore) Count(ctx context.Context) (int, error) {
	var count int
	row := s.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM index_entries")
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("counting index entries: %w", err)
	}
	return count, nil
}

func scanIndexEntry(row scanner) (*domain.IndexEntry, error) {
	var entry domain.IndexEntry
	var keywords, entities, tagNames string
	var createdAt, lastIndexedAt sql.NullTime
	if err := row.Scan(&entry.ContentID, &entry.Title, &entry.Body, &entry.OCRText,
		&entry.ContentType, &keywords, &entities, &tagNames, &createdAt, &lastIndexedAt); err != nil {
		return nil, err
	}

	var err error
	if entry.Keywords, err = unmarshalStrings(keywords); err != nil {
		return nil, fmt.Errorf("unmarshaling keywords: %w", err)
	}
	if entry.Entities, err = unmarshalStrings(entities); err != nil {
		return nil, fmt.Errorf("unmarshaling entities: %w", err)
	}
	if entry.TagNames, err = unmarshalStrings(tagNames); err != nil {
		return nil, fmt.Errorf("unmarshaling tag names: %w", err)
	}

	if createdAt.Valid {
		entry.CreatedAt = createdAt.Time
	}
	if lastIndexedAt.Valid {
		entry.LastIndexedAt = lastIndexedAt.Time
	}
	return &entry, nil
}

func marshalStrings(values []string) (string, error) {
	if values == nil {
		return "[]", nil
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func unmarshalStrings(data string) ([]string, error) {
	if data == "" || data == "[]" {
		return nil, nil
	}
	var values []string
	if err := json.Unmarshal([]byte(data), &values); err != nil {
		return nil, err
	}
	return values, nil
}

// ==================== Graph Store ====================

// graphStore implements driven.GraphStore.
type graphStore struct {
	store *Store
}

var _ driven.GraphStore = (*graphStore)(nil)

// AddNodes inserts a batch of nodes transactionally. A duplicate
// content ID fails the whole batch before anything is committed.
func (s *graphStore) AddNodes(ctx context.Context, nodes []domain.GraphNode) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	for _, node := range nodes {
		var exists int
		row := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM graph_nodes WHERE content_id = ?", node.ContentID)
		if err := row.Scan(&exists); err != nil {
			return fmt.Errorf("checking node %s: %w", node.ContentID, err)
		}
		if exists > 0 {
			return fmt.Errorf("node %s: %w", node.ContentID, domain.ErrDuplicateNode)
		}

		if _, err := tx.ExecContext(ctx,
			"INSERT INTO graph_nodes (content_id, weight) VALUES (?, ?)",
			node.ContentID, node.Weight); err != nil {
			return fmt.Errorf("inserting node %s: %w", node.ContentID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing nodes: %w", err)
	}
	return nil
}

// AddEdges commits a chunk of edges atomically.
func (s *graphStore) AddEdges(ctx context.Context, edges []domain.SemanticConnection) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	for _, edge := range edges {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO graph_edges (from_id, to_id, strength, type, evidence)
			VALUES (?, ?, ?, ?, ?)
		`, edge.FromID, edge.ToID, edge.Strength, edge.Type, edge.Evidence); err != nil {
			return fmt.Errorf("inserting edge %s->%s: %w", edge.FromID, edge.ToID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing edges: %w", err)
	}
	return nil
}

// Node retrieves a node by content ID.
func (s *graphStore) Node(ctx context.Context, contentID string) (*domain.GraphNode, error) {
	row := s.store.db.QueryRowContext(ctx,
		"SELECT content_id, weight FROM graph_nodes WHERE content_id = ?", contentID)

	var node domain.GraphNode
	if err := row.Scan(&node.ContentID, &node.Weight); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning node: %w", err)
	}
	return &node, nil
}

// NodeCount returns the number of stored nodes.
func (s *graphStore) NodeCount(ctx context.Context) (int, error) {
	var count int
	row := s.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM graph_nodes")
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("counting nodes: %w", err)
	}
	return count, nil
}

// EdgesOf returns all edges touching the given content ID.
func (s *graphStore) EdgesOf(ctx context.Context, contentID string) ([]domain.SemanticConnection, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT from_id, to_id, strength, type, evidence
		FROM graph_edges WHERE from_id = ? OR to_id = ?
		ORDER BY id ASC
	`, contentID, contentID)
	if err != nil {
		return nil, fmt.Errorf("querying edges: %w", err)
	}
	defer rows.Close()

	var edges []domain.SemanticConnection //nolint:prealloc // size unknown from query
	for rows.Next() {
		var edge domain.SemanticConnection
		if err := rows.Scan(&edge.FromID, &edge.ToID, &edge.Strength, &edge.Type, &edge.Evidence); err != nil {
			return nil, fmt.Errorf("scanning edge: %w", err)
		}
		edges = append(edges, edge)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating edges: %w", err)
	}
	return edges, nil
}

// Snapshot returns the whole stored graph.
func (s *graphStore) Snapshot(ctx context.Context) (*domain.GraphStructure, error) {
	snapshot := &domain.GraphStructure{}

	nodeRows, err := s.store.db.QueryContext(ctx,
		"SELECT content_id, weight FROM graph_nodes ORDER BY content_id ASC")
	if err != nil {
		return nil, fmt.Errorf("querying nodes: %w", err)
	}
	defer nodeRows.Close()

	for nodeRows.Next() {
		var node domain.GraphNode
		if err := nodeRows.Scan(&node.ContentID, &node.Weight); err != nil {
			return nil, fmt.Errorf("scanning node: %w", err)
		}
		snapshot.Nodes = append(snapshot.Nodes, node)
	}
	if err := nodeRows.Err(); err != nil {
		return nil, fmt.Errorf("iterating nodes: %w", err)
	}

	edgeRows, err := s.store.db.QueryContext(ctx,
		"SELECT from_id, to_id, strength, type, evidence FROM graph_edges ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("querying edges: %w", err)
	}
	defer edgeRows.Close()

	for edgeRows.Next() {
		var edge domain.SemanticConnection
		if err := edgeRows.Scan(&edge.FromID, &edge.ToID, &edge.Strength, &edge.Type, &edge.Evidence); err != nil {
			return nil, fmt.Errorf("scanning edge: %w", err)
		}
		snapshot.Edges = append(snapshot.Edges, edge)
	}
	if err := edgeRows.Err(); err != nil {
		return nil, fmt.Errorf("iterating edges: %w", err)
	}

	return snapshot, nil
}
