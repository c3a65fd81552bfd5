package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchCmd_DisabledBySetting(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	cleanupConfig := setupTestConfig(t)
	defer cleanupConfig()

	require.NoError(t, configStore.Set("watch.enabled", false))

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"watch", t.TempDir()})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "watching is disabled")
}

func TestWatchCmd_DirFromConfig(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	cleanupConfig := setupTestConfig(t)
	defer cleanupConfig()

	dir := t.TempDir()
	require.NoError(t, configStore.Set("watch.dir", dir))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"watch"})
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetContext(context.Background())
		watchCmd.SetContext(nil)
	}()

	// cobra only passes the root context down to a subcommand whose own
	// context is nil, so clear what an earlier Execute left behind.
	watchCmd.SetContext(nil)

	err := rootCmd.ExecuteContext(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, buf.String(), "Watching "+dir)
}

func TestWatchCmd_NoDirAnywhere(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	cleanupConfig := setupTestConfig(t)
	defer cleanupConfig()

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"watch"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "provide a directory or set watch.dir")
}
