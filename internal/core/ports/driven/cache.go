package driven

import "github.com/custodia-labs/dtindex/internal/core/domain"

// DatasetCache holds loaded datasets keyed by source path.
// Entries expire after the cache's time-to-live.
type DatasetCache interface {
	// Get returns the live dataset for path, if any.
	Get(path string) (*domain.Dataset, bool)

	// Put stores a dataset for path, replacing any previous entry.
	Put(path string, ds *domain.Dataset)

	// Invalidate drops the entry for path.
	Invalidate(path string)
}
