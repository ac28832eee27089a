package mcp

import (
	"github.com/custodia-labs/dtindex/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Dataset loads the index dataset.
	Dataset driving.DatasetService

	// Query searches a loaded dataset.
	Query driving.QueryService

	// Settings supplies the default dataset path. Optional.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Dataset == nil {
		return ErrMissingDatasetService
	}
	if p.Query == nil {
		return ErrMissingQueryService
	}
	return nil
}
