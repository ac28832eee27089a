package driven

import "github.com/custodia-labs/dtindex/internal/core/domain"

// TableNormaliser turns a RawTable into the canonical Dataset.
type TableNormaliser interface {
	// Normalise validates the schema and coerces every row.
	// Failures are *domain.SchemaError values; no partial dataset is returned.
	Normalise(raw *domain.RawTable) (*domain.Dataset, error)
}
