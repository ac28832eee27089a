package driving

import (
	"context"

	"github.com/custodia-labs/dtindex/internal/core/domain"
)

// QueryService answers searches over a loaded dataset.
type QueryService interface {
	// Query runs req against ds. It never fails; an empty term or an
	// internal fault yields an empty result.
	Query(ctx context.Context, ds *domain.Dataset, req domain.QueryRequest) *domain.QueryResult

	// Summarize computes statistics over records. The boolean is false
	// when records is empty.
	Summarize(records []domain.Record) (domain.Stats, bool)
}
