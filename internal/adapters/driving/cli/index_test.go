package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndexCmd_HasRebuildSubcommand(t *testing.T) {
	names := make([]string, 0, len(indexCmd.Commands()))
	for _, c := range indexCmd.Commands() {
		names = append(names, c.Name())
	}

	assert.Contains(t, names, "rebuild")
}

func TestIndexRebuildCmd_Executes(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"index", "rebuild"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Index rebuilt.")
}

func TestIndexRebuildCmd_ServiceNotConfigured(t *testing.T) {
	oldService := searchService
	searchService = nil
	defer func() {
		searchService = oldService
	}()

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"index", "rebuild"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
}
