package driven

import (
	"context"

	"github.com/custodia-labs/dtindex/internal/core/domain"
)

// TableLoader reads a tabular source file.
// Each loader handles a fixed set of file extensions.
type TableLoader interface {
	// Extensions returns the lower-case extensions handled, with the dot.
	Extensions() []string

	// Load reads the file at path into a RawTable.
	// Failures are *domain.LoadError values.
	Load(ctx context.Context, path string) (*domain.RawTable, error)
}
