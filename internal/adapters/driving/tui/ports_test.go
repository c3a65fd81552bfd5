package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPorts_Validate_Success(t *testing.T) {
	ports := &Ports{Search: &MockSearchService{}}

	assert.NoError(t, ports.Validate())
}

func TestPorts_Validate_MissingSearch(t *testing.T) {
	ports := &Ports{Content: &MockContentStore{}}

	err := ports.Validate()

	assert.ErrorIs(t, err, ErrMissingSearchService)
}
