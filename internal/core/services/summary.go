package services

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/custodia-labs/dtindex/internal/core/domain"
)

// Summarize computes count, distinct entities and mean/max/min of the
// index values. Records without a score count towards Count but not the
// aggregates. It returns false for an empty set.
func (s *QueryService) Summarize(records []domain.Record) (domain.Stats, bool) {
	if len(records) == 0 {
		return domain.Stats{}, false
	}

	first := records[0]
	stats := domain.Stats{
		Count:            len(records),
		DistinctEntities: domain.CountDistinctCodes(records),
		Mean:             math.NaN(),
		Max:              math.NaN(),
		Min:              math.NaN(),
		MinYear:          first.Year,
		MaxYear:          first.Year,
	}

	sum := decimal.Zero
	for _, r := range records {
		if r.Year < stats.MinYear {
			stats.MinYear = r.Year
		}
		if r.Year > stats.MaxYear {
			stats.MaxYear = r.Year
		}
		if !r.HasIndexValue() {
			continue
		}

		sum = sum.Add(decimal.NewFromFloat(r.IndexValue))
		if stats.Scored == 0 || r.IndexValue > stats.Max {
			stats.Max = r.IndexValue
		}
		if stats.Scored == 0 || r.IndexValue < stats.Min {
			stats.Min = r.IndexValue
		}
		stats.Scored++
	}
	if stats.Scored > 0 {
		stats.Mean = sum.Div(decimal.NewFromInt(int64(stats.Scored))).Round(2).InexactFloat64()
	}

	return stats, true
}
