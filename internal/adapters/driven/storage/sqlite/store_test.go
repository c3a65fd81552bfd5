package sqlite

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/noema/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "noema-test-*")
	require.NoError(t, err)

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NotNil(t, store)

	cleanup := func() {
		assert.NoError(t, store.Close())
		assert.NoError(t, os.RemoveAll(tempDir))
	}

	return store, cleanup
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := os.Stat(store.Path())
	assert.NoError(t, err)
}

func TestNewStore_MigrationsIdempotent(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "noema-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	first, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	// Re-opening the same database must not re-run migrations.
	second, err := NewStore(tempDir)
	require.NoError(t, err)
	assert.NoError(t, second.Close())
}

func TestContentStore_SaveGetDelete(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	contentStore := store.ContentStore()

	record := &domain.ContentRecord{
		ID:        "content-1",
		Type:      domain.ContentTypeText,
		Title:     "Meeting Notes",
		Body:      "Quarterly budget review",
		Source:    "clipboard",
		CreatedAt: time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC),
	}

	require.NoError(t, contentStore.Save(ctx, record))

	saved, err := contentStore.Get(ctx, "content-1")
	require.NoError(t, err)
	assert.Equal(t, "Meeting Notes", saved.Title)
	assert.Equal(t, domain.ContentTypeText, saved.Type)
	assert.True(t, record.CreatedAt.Equal(saved.CreatedAt))

	require.NoError(t, contentStore.Delete(ctx, "content-1"))

	_, err = contentStore.Get(ctx, "content-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, contentStore.Delete(ctx, "content-1"), domain.ErrNotFound)
}

func TestContentStore_Save_Upserts(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	contentStore := store.ContentStore()
	created := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)

	require.NoError(t, contentStore.Save(ctx, &domain.ContentRecord{
		ID: "content-1", Type: domain.ContentTypeText, Title: "Old", CreatedAt: created,
	}))
	require.NoError(t, contentStore.Save(ctx, &domain.ContentRecord{
		ID: "content-1", Type: domain.ContentTypeText, Title: "New", CreatedAt: created,
	}))

	records, err := contentStore.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "New", records[0].Title)
}

func TestContentStore_List_Ordered(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	contentStore := store.ContentStore()
	base := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	for i, id := range []string{"c", "a", "b"} {
		require.NoError(t, contentStore.Save(ctx, &domain.ContentRecord{
			ID: id, Type: domain.ContentTypeText, CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	records, err := contentStore.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "c", records[0].ID)
	assert.Equal(t, "a", records[1].ID)
	assert.Equal(t, "b", records[2].ID)
}

func TestIndexStore_RoundTrip(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	indexStore := store.IndexStore()

	entry := domain.IndexEntry{
		ContentID:     "content-1",
		Title:         "Budget Review",
		Body:          "Quarterly numbers",
		ContentType:   domain.ContentTypeText,
		Keywords:      []string{"budget", "quarterly"},
		Entities:      []string{"acme corp"},
		TagNames:      []string{"business", "budget"},
		CreatedAt:     time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC),
		LastIndexedAt: time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC),
	}

	require.NoError(t, indexStore.Put(ctx, entry))

	got, err := indexStore.Get(ctx, "content-1")
	require.NoError(t, err)
	assert.Equal(t, entry.Keywords, got.Keywords)
	assert.Equal(t, entry.Entities, got.Entities)
	assert.Equal(t, entry.TagNames, got.TagNames)

	count, err := indexStore.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestIndexStore_Remove_Missing(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	err := store.IndexStore().Remove(context.Background(), "never-indexed")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEntryMissing)
}

func TestIndexStore_Snapshot_Sorted(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	indexStore := store.IndexStore()
	now := time.Now().UTC()

	for _, id := range []string{"charlie", "alpha", "bravo"} {
		require.NoError(t, indexStore.Put(ctx, domain.IndexEntry{
			ContentID: id, ContentType: domain.ContentTypeText, CreatedAt: now, LastIndexedAt: now,
		}))
	}

	entries, err := indexStore.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "alpha", entries[0].ContentID)
	assert.Equal(t, "bravo", entries[1].ContentID)
	assert.Equal(t, "charlie", entries[2].ContentID)
}

func TestGraphStore_AddNodes_DuplicateRollsBack(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	graphStore := store.GraphStore()

	require.NoError(t, graphStore.AddNodes(ctx, []domain.GraphNode{{ContentID: "a", Weight: 0.5}}))

	err := graphStore.AddNodes(ctx, []domain.GraphNode{{ContentID: "b"}, {ContentID: "a"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDuplicateNode)

	// the failing batch must not leave b behind
	count, err := graphStore.NodeCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestGraphStore_EdgesAndSnapshot(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	graphStore := store.GraphStore()

	require.NoError(t, graphStore.AddNodes(ctx, []domain.GraphNode{
		{ContentID: "a", Weight: 1}, {ContentID: "b", Weight: 0.5}, {ContentID: "c", Weight: 0.2},
	}))
	require.NoError(t, graphStore.AddEdges(ctx, []domain.SemanticConnection{
		{FromID: "a", ToID: "b", Strength: 0.8, Type: domain.ConnectionSimilarTopic, Evidence: "title=0.9"},
		{FromID: "b", ToID: "c", Strength: 0.4, Type: domain.ConnectionWeaklyRelated},
	}))

	edges, err := graphStore.EdgesOf(ctx, "b")
	require.NoError(t, err)
	assert.Len(t, edges, 2)

	node, err := graphStore.Node(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 1.0, node.Weight)

	_, err = graphStore.Node(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	snapshot, err := graphStore.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, snapshot.Nodes, 3)
	require.Len(t, snapshot.Edges, 2)
	assert.Equal(t, domain.ConnectionSimilarTopic, snapshot.Edges[0].Type)
	assert.Equal(t, "title=0.9", snapshot.Edges[0].Evidence)
}
