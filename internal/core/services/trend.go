package services

import (
	"sort"

	"github.com/custodia-labs/dtindex/internal/core/domain"
)

// Trend groups records into one series per entity name, in order of first
// appearance. Points within a series are sorted by ascending year.
func Trend(records []domain.Record) []domain.TrendSeries {
	index := make(map[string]int)
	series := make([]domain.TrendSeries, 0)
	for _, r := range records {
		i, ok := index[r.EntityName]
		if !ok {
			i = len(series)
			index[r.EntityName] = i
			series = append(series, domain.TrendSeries{EntityName: r.EntityName, StockCode: r.StockCode})
		}
		series[i].Points = append(series[i].Points, domain.TrendPoint{Year: r.Year, IndexValue: r.IndexValue})
	}
	for i := range series {
		points := series[i].Points
		sort.SliceStable(points, func(a, b int) bool { return points[a].Year < points[b].Year })
	}
	return series
}
