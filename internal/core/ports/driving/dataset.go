package driving

import (
	"context"

	"github.com/custodia-labs/dtindex/internal/core/domain"
)

// DatasetService loads the index dataset.
type DatasetService interface {
	// Load returns the normalised dataset for path, reading the file only
	// when no live cached copy exists.
	Load(ctx context.Context, path string) (*domain.Dataset, error)

	// Invalidate forgets any cached dataset for path.
	Invalidate(path string)
}
