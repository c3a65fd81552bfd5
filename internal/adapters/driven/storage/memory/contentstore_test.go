package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/noema/internal/core/domain"
)

func TestNewContentStore(t *testing.T) {
	store := NewContentStore()
	require.NotNil(t, store)
	assert.NotNil(t, store.records)
}

func TestContentStore_SaveAndGet(t *testing.T) {
	store := NewContentStore()
	ctx := context.Background()

	record := &domain.ContentRecord{
		ID:        "content-1",
		Type:      domain.ContentTypeText,
		Title:     "Meeting Notes",
		Body:      "Quarterly budget review next Tuesday",
		Source:    "clipboard",
		CreatedAt: time.Now(),
	}

	err := store.Save(ctx, record)
	require.NoError(t, err)

	saved, err := store.Get(ctx, "content-1")
	require.NoError(t, err)
	assert.Equal(t, "content-1", saved.ID)
	assert.Equal(t, "Meeting Notes", saved.Title)
	assert.Equal(t, domain.ContentTypeText, saved.Type)
}

func TestContentStore_Get_NotFound(t *testing.T) {
	store := NewContentStore()

	_, err := store.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestContentStore_List_OrderedByCreation(t *testing.T) {
	store := NewContentStore()
	ctx := context.Background()

	base := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	for i, id := range []string{"c", "a", "b"} {
		err := store.Save(ctx, &domain.ContentRecord{
			ID:        id,
			Type:      domain.ContentTypeText,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}

	records, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "c", records[0].ID)
	assert.Equal(t, "a", records[1].ID)
	assert.Equal(t, "b", records[2].ID)
}

func TestContentStore_Delete(t *testing.T) {
	store := NewContentStore()
	ctx := context.Background()

	err := store.Save(ctx, &domain.ContentRecord{ID: "content-1", Type: domain.ContentTypeText})
	require.NoError(t, err)

	err = store.Delete(ctx, "content-1")
	require.NoError(t, err)

	_, err = store.Get(ctx, "content-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = store.Delete(ctx, "content-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
