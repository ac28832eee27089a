package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/custodia-labs/dtindex/internal/core/domain"
	"github.com/custodia-labs/dtindex/internal/core/ports/driving"
	"github.com/custodia-labs/dtindex/internal/logger"
)

// Ensure QueryService implements the interface.
var _ driving.QueryService = (*QueryService)(nil)

// matcherFunc builds the record predicate for a trimmed, non-empty term.
type matcherFunc func(mode domain.SearchMode, term string) (func(domain.Record) bool, error)

// QueryService filters a shared dataset. It keeps no per-request state.
type QueryService struct {
	matcher matcherFunc
}

// NewQueryService creates a new query service.
func NewQueryService() *QueryService {
	return &QueryService{matcher: recordMatcher}
}

// Query runs req against ds. The dataset is only read; the result holds
// copies of the matching records.
func (s *QueryService) Query(_ context.Context, ds *domain.Dataset, req domain.QueryRequest) (result *domain.QueryResult) {
	logger.Section("Query Execution")
	logger.Debug("Term: %q, mode: %s, year: %s", req.Term, req.Mode, req.Year)

	result = emptyResult(req)
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("query %q failed: %v", req.Term, r)
			result = emptyResult(req)
			result.Diagnostic = fmt.Sprintf("query failed: %v", r)
		}
	}()

	term := strings.TrimSpace(req.Term)
	if term == "" {
		logger.Debug("Empty term, returning no results")
		return result
	}

	match, err := s.matcher(req.Mode, term)
	if err != nil {
		result.Diagnostic = err.Error()
		return result
	}

	for _, r := range ds.Records() {
		if match(r) {
			result.AllYears = append(result.AllYears, r)
		}
	}
	for _, r := range result.AllYears {
		if req.Year.Matches(r.Year) {
			result.Filtered = append(result.Filtered, r)
		}
	}
	sort.SliceStable(result.Filtered, func(i, j int) bool {
		return result.Filtered[i].Year > result.Filtered[j].Year
	})

	logger.Debug("Matched %d records, %d after year filter", len(result.AllYears), len(result.Filtered))
	return result
}

func emptyResult(req domain.QueryRequest) *domain.QueryResult {
	return &domain.QueryResult{
		Request:  req,
		AllYears: []domain.Record{},
		Filtered: []domain.Record{},
	}
}

// recordMatcher implements the two search modes. An unset mode searches
// stock codes.
func recordMatcher(mode domain.SearchMode, term string) (func(domain.Record) bool, error) {
	switch mode {
	case domain.SearchByStockCode, "":
		code := domain.PadStockCode(term)
		return func(r domain.Record) bool {
			return strings.Contains(r.StockCode, code)
		}, nil
	case domain.SearchByEntityName:
		needle := strings.ToLower(term)
		return func(r domain.Record) bool {
			return strings.Contains(strings.ToLower(r.EntityName), needle)
		}, nil
	default:
		return nil, fmt.Errorf("%w: unknown search mode %q", domain.ErrInvalidInput, mode)
	}
}
