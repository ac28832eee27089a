package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_AreDistinct(t *testing.T) {
	errs := []error{
		ErrMissingDatasetService,
		ErrMissingQueryService,
		ErrInvalidPorts,
	}

	seen := make(map[string]bool)
	for _, err := range errs {
		msg := err.Error()
		assert.False(t, seen[msg], "duplicate error message: %s", msg)
		seen[msg] = true
	}
}

func TestErrMissingDatasetService_Message(t *testing.T) {
	assert.Contains(t, ErrMissingDatasetService.Error(), "dataset service")
}

func TestErrMissingQueryService_Message(t *testing.T) {
	assert.Contains(t, ErrMissingQueryService.Error(), "query service")
}

func TestErrInvalidPorts_Message(t *testing.T) {
	assert.Contains(t, ErrInvalidPorts.Error(), "invalid ports")
}
