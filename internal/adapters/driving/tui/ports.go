// Package tui provides an interactive terminal user interface for dtindex.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/dtindex/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Dataset loads the index dataset.
	Dataset driving.DatasetService

	// Query runs searches and computes statistics.
	Query driving.QueryService

	// Settings resolves the configured dataset path. Optional.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(dataset driving.DatasetService, query driving.QueryService) *Ports {
	return &Ports{
		Dataset: dataset,
		Query:   query,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Dataset == nil {
		return ErrMissingDatasetService
	}
	if p.Query == nil {
		return ErrMissingQueryService
	}
	return nil
}
