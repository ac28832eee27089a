// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/dtindex/internal/core/domain"
)

// DatasetLoaded carries the result of loading the dataset.
type DatasetLoaded struct {
	Dataset *domain.Dataset
	Err     error
}

// DatasetChanged is sent when the dataset file changed on disk.
type DatasetChanged struct {
	Path string
}

// ExportCompleted reports where the current results were written.
type ExportCompleted struct {
	Path  string
	Count int
	Err   error
}

// ErrorOccurred is sent when an error needs to be displayed.
type ErrorOccurred struct {
	Err error
}

// Quit is sent to exit the application.
type Quit struct{}
