package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/dtindex/internal/core/domain"
	"github.com/custodia-labs/dtindex/internal/core/services"
)

// LoadInput is the input schema for the load_dataset tool.
type LoadInput struct {
	Path string `json:"path,omitempty" jsonschema:"dataset file to load; defaults to the configured dataset"`
}

// LoadOutput is the output schema for the load_dataset tool.
type LoadOutput struct {
	Status    domain.LoadStatus `json:"status"`
	Message   string            `json:"message"`
	DatasetID string            `json:"dataset_id,omitempty"`
	Path      string            `json:"path,omitempty"`
	Format    string            `json:"format,omitempty"`
	Encoding  string            `json:"encoding,omitempty"`
	Records   int               `json:"records"`
	Companies int               `json:"companies"`
	Years     []int             `json:"years,omitempty"`
}

// SearchInput is the input schema for the search_index tool.
type SearchInput struct {
	Term  string `json:"term" jsonschema:"stock code or part of a company name"`
	By    string `json:"by,omitempty" jsonschema:"field to search: code (default) or name"`
	Year  string `json:"year,omitempty" jsonschema:"restrict to one year such as 2010, or all (default)"`
	Trend bool   `json:"trend,omitempty" jsonschema:"include each company's values over all years"`
	Path  string `json:"path,omitempty" jsonschema:"dataset file; defaults to the configured dataset"`
}

// SearchOutput is the output schema for the search_index tool.
type SearchOutput struct {
	Term       string               `json:"term"`
	Mode       string               `json:"mode"`
	Year       string               `json:"year"`
	Count      int                  `json:"count"`
	Stats      *StatsOutput  `json:"stats,omitempty"`
	Records    []RecordOutput `json:"records"`
	Trend      []TrendOutput  `json:"trend,omitempty"`
	Hint       string         `json:"hint,omitempty"`
	Diagnostic string         `json:"diagnostic,omitempty"`
}

// RecordOutput is a single search result. IndexValue is null when the
// dataset has no score for that year.
type RecordOutput struct {
	StockCode  string   `json:"stock_code"`
	EntityName string   `json:"entity_name"`
	Year       int      `json:"year"`
	IndexValue *float64 `json:"index_value"`
}

// StatsOutput summarises the search results. The aggregates are null when
// no result carries a score.
type StatsOutput struct {
	Count            int      `json:"count"`
	DistinctEntities int      `json:"distinct_entities"`
	Scored           int      `json:"scored"`
	Mean             *float64 `json:"mean"`
	Max              *float64 `json:"max"`
	Min              *float64 `json:"min"`
	MinYear          int      `json:"min_year"`
	MaxYear          int      `json:"max_year"`
}

// TrendOutput is one company's values over all matching years.
type TrendOutput struct {
	EntityName string             `json:"entity_name"`
	StockCode  string             `json:"stock_code"`
	Points     []TrendPointOutput `json:"points"`
}

// TrendPointOutput is one year of a trend.
type TrendPointOutput struct {
	Year       int      `json:"year"`
	IndexValue *float64 `json:"index_value"`
}

// YearsInput is the input schema for the list_years tool.
type YearsInput struct {
	Path string `json:"path,omitempty" jsonschema:"dataset file; defaults to the configured dataset"`
}

// YearsOutput is the output schema for the list_years tool.
type YearsOutput struct {
	Years []int `json:"years"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "load_dataset",
		Description: "Load the digital transformation index dataset and report its size",
	}, s.handleLoad)

	mcp.AddTool(s.server, &mcp.Tool{
		Name: "search_index",
		Description: "Look up listed companies' yearly digital transformation index " +
			"by stock code or company name",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_years",
		Description: "List the years covered by the dataset",
	}, s.handleListYears)
}

// handleLoad handles the load_dataset tool invocation. Load failures are
// reported in the output rather than as tool errors.
func (s *Server) handleLoad(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input LoadInput,
) (*mcp.CallToolResult, LoadOutput, error) {
	ds, err := s.load(ctx, input.Path)
	outcome := services.Outcome(ds, err)

	output := LoadOutput{
		Status:  outcome.Status,
		Message: outcome.Message,
	}
	if outcome.OK() {
		output.DatasetID = ds.ID
		output.Path = ds.Path
		output.Format = ds.Format
		output.Encoding = ds.Encoding
		output.Records = ds.Len()
		output.Companies = ds.DistinctCodes()
		output.Years = ds.Years()
	}
	return nil, output, nil
}

// handleSearch handles the search_index tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	if err := domain.ValidateTerm(input.Term); err != nil {
		return nil, SearchOutput{}, err
	}
	mode := domain.SearchByStockCode
	if input.By != "" {
		m, err := domain.ParseSearchMode(input.By)
		if err != nil {
			return nil, SearchOutput{}, err
		}
		mode = m
	}
	year, err := domain.ParseYearFilter(input.Year)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	ds, err := s.load(ctx, input.Path)
	if err != nil {
		return nil, SearchOutput{}, fmt.Errorf("loading dataset: %w", err)
	}

	result := s.ports.Query.Query(ctx, ds, domain.QueryRequest{Term: input.Term, Mode: mode, Year: year})

	output := SearchOutput{
		Term:       input.Term,
		Mode:       mode.String(),
		Year:       year.String(),
		Count:      len(result.Filtered),
		Records:    toRecordOutputs(result.Filtered),
		Diagnostic: result.Diagnostic,
	}
	if stats, ok := s.ports.Query.Summarize(result.Filtered); ok {
		output.Stats = toStatsOutput(stats)
	} else {
		output.Hint = fmt.Sprintf("no match; try a stock code such as %s", domain.NoMatchHint)
	}
	if input.Trend {
		output.Trend = toTrendOutputs(services.Trend(result.AllYears))
	}
	return nil, output, nil
}

// handleListYears handles the list_years tool invocation.
func (s *Server) handleListYears(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input YearsInput,
) (*mcp.CallToolResult, YearsOutput, error) {
	ds, err := s.load(ctx, input.Path)
	if err != nil {
		return nil, YearsOutput{}, fmt.Errorf("loading dataset: %w", err)
	}
	return nil, YearsOutput{Years: ds.Years()}, nil
}

func toRecordOutputs(records []domain.Record) []RecordOutput {
	out := make([]RecordOutput, 0, len(records))
	for _, r := range records {
		out = append(out, RecordOutput{
			StockCode:  r.StockCode,
			EntityName: r.EntityName,
			Year:       r.Year,
			IndexValue: domain.ScorePtr(r.IndexValue),
		})
	}
	return out
}

func toStatsOutput(s domain.Stats) *StatsOutput {
	return &StatsOutput{
		Count:            s.Count,
		DistinctEntities: s.DistinctEntities,
		Scored:           s.Scored,
		Mean:             domain.ScorePtr(s.Mean),
		Max:              domain.ScorePtr(s.Max),
		Min:              domain.ScorePtr(s.Min),
		MinYear:          s.MinYear,
		MaxYear:          s.MaxYear,
	}
}

func toTrendOutputs(series []domain.TrendSeries) []TrendOutput {
	out := make([]TrendOutput, 0, len(series))
	for _, ts := range series {
		points := make([]TrendPointOutput, 0, len(ts.Points))
		for _, p := range ts.Points {
			points = append(points, TrendPointOutput{Year: p.Year, IndexValue: domain.ScorePtr(p.IndexValue)})
		}
		out = append(out, TrendOutput{EntityName: ts.EntityName, StockCode: ts.StockCode, Points: points})
	}
	return out
}
