package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeCmd_Use(t *testing.T) {
	assert.Equal(t, "analyze [text]", analyzeCmd.Use)
}

func TestAnalyzeCmd_ExecutesWithInlineText(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"analyze", "Call Sarah about the budget deadline today."})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Language:   en")
	assert.Contains(t, buf.String(), "Priority:   high")
	assert.Contains(t, buf.String(), "Sarah")
}

func TestAnalyzeCmd_ExecutesWithStoredID(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"analyze", "--id", "note-1"})
	defer func() {
		rootCmd.SetArgs(nil)
		analyzeID = ""
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Category:   business")
}

func TestAnalyzeCmd_WithTags(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"analyze", "--tags", "Review the budget proposal with the team."})
	defer func() {
		rootCmd.SetArgs(nil)
		analyzeTags = false
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Tags:")
}

func TestAnalyzeCmd_JSONOutput(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"analyze", "--json", "Send the report."})
	defer func() {
		rootCmd.SetArgs(nil)
		analyzeJSON = false
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "\"analysis\"")
}

func TestAnalyzeCmd_NoInput(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"analyze"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "provide text or --id")
}

func TestAnalyzeCmd_ServiceNotConfigured(t *testing.T) {
	oldService := analyzerService
	analyzerService = nil
	defer func() {
		analyzerService = oldService
	}()

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"analyze", "some text"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "analyzer service not configured")
}
