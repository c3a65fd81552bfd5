package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestNewConfigStore_DefaultDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot determine home directory")
	}

	store, err := NewConfigStore("")

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(home, ".noema", "config.toml"), store.Path())

	// Cleanup
	_ = os.Remove(store.Path())
}

func TestConfigStore_SetAndGet(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	err = store.Set("search.max_results", 25)
	require.NoError(t, err)

	val, ok := store.Get("search.max_results")
	assert.True(t, ok)
	assert.Equal(t, 25, val)
}

func TestConfigStore_GetString(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	err = store.Set("watch.dir", "/tmp/drop")
	require.NoError(t, err)

	assert.Equal(t, "/tmp/drop", store.GetString("watch.dir"))

	// Non-existent key
	assert.Equal(t, "", store.GetString("nonexistent"))

	// Wrong type
	err = store.Set("graph.chunk_size", 10)
	require.NoError(t, err)
	assert.Equal(t, "", store.GetString("graph.chunk_size"))
}

func TestConfigStore_GetInt(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	err = store.Set("graph.chunk_size", 10)
	require.NoError(t, err)

	assert.Equal(t, 10, store.GetInt("graph.chunk_size"))
	assert.Equal(t, 0, store.GetInt("nonexistent"))

	err = store.Set("watch.dir", "/tmp/drop")
	require.NoError(t, err)
	assert.Equal(t, 0, store.GetInt("watch.dir"))
}

func TestConfigStore_GetFloat(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	err = store.Set("search.min_relevance", 0.4)
	require.NoError(t, err)

	assert.InDelta(t, 0.4, store.GetFloat("search.min_relevance"), 1e-9)
	assert.Zero(t, store.GetFloat("nonexistent"))

	// Whole numbers written without a decimal point still read as floats
	err = store.Set("search.cap", 50)
	require.NoError(t, err)
	assert.InDelta(t, 50, store.GetFloat("search.cap"), 1e-9)
}

func TestConfigStore_GetBool(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	err = store.Set("watch.enabled", true)
	require.NoError(t, err)

	assert.True(t, store.GetBool("watch.enabled"))
	assert.False(t, store.GetBool("nonexistent"))
}

func TestConfigStore_GetStringSlice(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	err = store.Set("watch.extensions", []string{".txt", ".md"})
	require.NoError(t, err)

	assert.Equal(t, []string{".txt", ".md"}, store.GetStringSlice("watch.extensions"))
	assert.Nil(t, store.GetStringSlice("nonexistent"))
}

func TestConfigStore_PersistsAcrossInstances(t *testing.T) {
	tmpDir := t.TempDir()

	first, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, first.Set("search.min_relevance", 0.4))
	require.NoError(t, first.Set("watch.dir", "/tmp/drop"))

	second, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.InDelta(t, 0.4, second.GetFloat("search.min_relevance"), 1e-9)
	assert.Equal(t, "/tmp/drop", second.GetString("watch.dir"))
}

func TestConfigStore_LoadFlattensNestedTables(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := "[search]\nmin_relevance = 0.4\nmax_results = 25\n\n[watch]\ndir = \"/tmp/drop\"\n"
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.InDelta(t, 0.4, store.GetFloat("search.min_relevance"), 1e-9)
	assert.Equal(t, 25, store.GetInt("search.max_results"))
	assert.Equal(t, "/tmp/drop", store.GetString("watch.dir"))
}
