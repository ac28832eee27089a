package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/dtindex/internal/core/domain"
)

func historyDataset() *domain.Dataset {
	return domain.NewDataset([]domain.Record{
		{StockCode: "600008", EntityName: "首创股份", Year: 2010, IndexValue: 12.35},
		{StockCode: "000100", EntityName: "TCL科技", Year: 2010, IndexValue: 5},
		{StockCode: "600008", EntityName: "首创股份", Year: 2012, IndexValue: 20.1},
		{StockCode: "600008", EntityName: "首创环保", Year: 2021, IndexValue: 40},
		{StockCode: "000100", EntityName: "TCL科技", Year: 2012, IndexValue: 7.5},
		{StockCode: "600008", EntityName: "首创股份", Year: 2012, IndexValue: 21},
	})
}

func query(t *testing.T, ds *domain.Dataset, req domain.QueryRequest) *domain.QueryResult {
	t.Helper()
	result := NewQueryService().Query(context.Background(), ds, req)
	require.NotNil(t, result)
	return result
}

func TestQueryService_CodeExample(t *testing.T) {
	result := query(t, exampleDataset(), domain.QueryRequest{
		Term: "600008", Mode: domain.SearchByStockCode, Year: domain.AllYears,
	})

	require.Len(t, result.AllYears, 1)
	assert.Equal(t, "首创股份", result.AllYears[0].EntityName)
	assert.Equal(t, 12.35, result.AllYears[0].IndexValue)
	assert.Equal(t, result.AllYears, result.Filtered)
	assert.Empty(t, result.Diagnostic)
}

func TestQueryService_NameExampleWithSummary(t *testing.T) {
	svc := NewQueryService()
	result := svc.Query(context.Background(), exampleDataset(), domain.QueryRequest{
		Term: "首创", Mode: domain.SearchByEntityName, Year: domain.ForYear(2010),
	})
	require.Len(t, result.Filtered, 1)

	stats, ok := svc.Summarize(result.Filtered)

	require.True(t, ok)
	assert.Equal(t, 1, stats.Count)
	assert.Equal(t, 1, stats.DistinctEntities)
	assert.Equal(t, 12.35, stats.Mean)
	assert.Equal(t, 12.35, stats.Max)
	assert.Equal(t, 12.35, stats.Min)
}

func TestQueryService_EmptyTermMatchesNothing(t *testing.T) {
	for _, term := range []string{"", "   ", "\t"} {
		t.Run(fmt.Sprintf("%q", term), func(t *testing.T) {
			result := query(t, exampleDataset(), domain.QueryRequest{
				Term: term, Mode: domain.SearchByStockCode, Year: domain.AllYears,
			})

			assert.Empty(t, result.AllYears)
			assert.Empty(t, result.Filtered)
			assert.True(t, result.Empty())
			assert.NotNil(t, result.Filtered)
		})
	}
}

func TestQueryService_CodeIsZeroPadded(t *testing.T) {
	result := query(t, exampleDataset(), domain.QueryRequest{Term: " 100 ", Mode: domain.SearchByStockCode})

	require.Len(t, result.AllYears, 1)
	assert.Equal(t, "000100", result.AllYears[0].StockCode)
}

func TestQueryService_CodeSubstringAfterPadding(t *testing.T) {
	// "8" pads to "000008", which no code contains.
	result := query(t, exampleDataset(), domain.QueryRequest{Term: "8", Mode: domain.SearchByStockCode})
	assert.Empty(t, result.AllYears)

	// Terms of six or more characters are used as is.
	result = query(t, exampleDataset(), domain.QueryRequest{Term: "6000081", Mode: domain.SearchByStockCode})
	assert.Empty(t, result.AllYears)
}

func TestQueryService_NameIsCaseInsensitive(t *testing.T) {
	result := query(t, exampleDataset(), domain.QueryRequest{Term: "tcl", Mode: domain.SearchByEntityName})

	require.Len(t, result.AllYears, 1)
	assert.Equal(t, "000100", result.AllYears[0].StockCode)
}

func TestQueryService_DefaultModeIsStockCode(t *testing.T) {
	result := query(t, exampleDataset(), domain.QueryRequest{Term: "600008"})

	assert.Len(t, result.AllYears, 1)
}

func TestQueryService_UnknownMode(t *testing.T) {
	result := query(t, exampleDataset(), domain.QueryRequest{Term: "600008", Mode: "industry"})

	assert.True(t, result.Empty())
	assert.Contains(t, result.Diagnostic, "unknown search mode")
}

func TestQueryService_FilteredSortedYearDescendingStable(t *testing.T) {
	result := query(t, historyDataset(), domain.QueryRequest{Term: "600008", Mode: domain.SearchByStockCode})

	years := make([]int, 0, len(result.Filtered))
	values := make([]float64, 0, len(result.Filtered))
	for _, r := range result.Filtered {
		years = append(years, r.Year)
		values = append(values, r.IndexValue)
	}
	assert.Equal(t, []int{2021, 2012, 2012, 2010}, years)
	// Ties keep dataset order.
	assert.Equal(t, []float64{40, 20.1, 21, 12.35}, values)
}

func TestQueryService_AllYearsKeepsDatasetOrder(t *testing.T) {
	result := query(t, historyDataset(), domain.QueryRequest{
		Term: "600008", Mode: domain.SearchByStockCode, Year: domain.ForYear(2012),
	})

	years := make([]int, 0, len(result.AllYears))
	for _, r := range result.AllYears {
		years = append(years, r.Year)
	}
	assert.Equal(t, []int{2010, 2012, 2021, 2012}, years)
	assert.Len(t, result.Filtered, 2)
}

func TestQueryService_YearFilterIsSubset(t *testing.T) {
	ds := historyDataset()
	for _, year := range []int{2010, 2012, 2021, 1999} {
		result := query(t, ds, domain.QueryRequest{
			Term: "首创", Mode: domain.SearchByEntityName, Year: domain.ForYear(year),
		})

		for _, r := range result.Filtered {
			assert.Equal(t, year, r.Year)
			assert.Contains(t, result.AllYears, r)
		}
	}
}

func TestQueryService_SubstringInvariants(t *testing.T) {
	ds := historyDataset()

	byName := query(t, ds, domain.QueryRequest{Term: "首创", Mode: domain.SearchByEntityName})
	require.Len(t, byName.AllYears, 4)
	for _, r := range byName.AllYears {
		assert.Contains(t, r.EntityName, "首创")
	}

	byCode := query(t, ds, domain.QueryRequest{Term: "100", Mode: domain.SearchByStockCode})
	require.Len(t, byCode.AllYears, 2)
	for _, r := range byCode.AllYears {
		assert.Contains(t, r.StockCode, "000100")
	}
}

func TestQueryService_UnknownYear(t *testing.T) {
	result := query(t, historyDataset(), domain.QueryRequest{
		Term: "600008", Mode: domain.SearchByStockCode, Year: domain.ForYear(2030),
	})

	assert.NotEmpty(t, result.AllYears)
	assert.Empty(t, result.Filtered)
}

func TestQueryService_DoesNotModifyDataset(t *testing.T) {
	ds := historyDataset()
	before := append([]domain.Record(nil), ds.Records()...)

	result := query(t, ds, domain.QueryRequest{Term: "600008", Mode: domain.SearchByStockCode})
	result.Filtered[0].EntityName = "changed"

	assert.Equal(t, before, ds.Records())
}

func TestQueryService_NilDataset(t *testing.T) {
	result := query(t, nil, domain.QueryRequest{Term: "600008"})

	assert.True(t, result.Empty())
	assert.Empty(t, result.Diagnostic)
}

func TestQueryService_RecoversFromPanic(t *testing.T) {
	svc := NewQueryService()
	svc.matcher = func(domain.SearchMode, string) (func(domain.Record) bool, error) {
		return func(domain.Record) bool { panic("bad record") }, nil
	}
	req := domain.QueryRequest{Term: "600008"}

	result := svc.Query(context.Background(), exampleDataset(), req)

	require.NotNil(t, result)
	assert.True(t, result.Empty())
	assert.Empty(t, result.AllYears)
	assert.Equal(t, req, result.Request)
	assert.Contains(t, result.Diagnostic, "bad record")
}

func TestQueryService_RequestEchoed(t *testing.T) {
	req := domain.QueryRequest{Term: "首创", Mode: domain.SearchByEntityName, Year: domain.ForYear(2010)}

	result := query(t, exampleDataset(), req)

	assert.Equal(t, req, result.Request)
}
