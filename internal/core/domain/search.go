package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// NoMatchHint is the example query shown when a search finds nothing.
const NoMatchHint = "600008"

// AllYearsLabel is the display label of the AllYears filter.
const AllYearsLabel = "全部年份"

// SearchMode selects which field the search term is matched against.
type SearchMode string

// Available search modes.
const (
	// SearchByStockCode matches the zero padded term inside stock codes.
	SearchByStockCode SearchMode = "code"

	// SearchByEntityName matches the term case-insensitively inside names.
	SearchByEntityName SearchMode = "name"
)

// IsValid returns true if the search mode is recognised.
func (m SearchMode) IsValid() bool {
	return m == SearchByStockCode || m == SearchByEntityName
}

// String returns the string representation.
func (m SearchMode) String() string {
	return string(m)
}

// Description returns a human-readable description of the mode.
func (m SearchMode) Description() string {
	switch m {
	case SearchByStockCode:
		return "Stock code"
	case SearchByEntityName:
		return "Company name"
	default:
		return "Unknown"
	}
}

// ParseSearchMode accepts the mode names used by the CLI and the original
// column headers.
func ParseSearchMode(s string) (SearchMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "code", "stock_code", "stock", ColumnStockCode:
		return SearchByStockCode, nil
	case "name", "entity_name", "company", ColumnEntityName:
		return SearchByEntityName, nil
	default:
		return "", fmt.Errorf("%w: unknown search mode %q", ErrInvalidInput, s)
	}
}

// YearFilter restricts a query to a single year. The zero value is AllYears.
type YearFilter struct {
	year int
}

// AllYears applies no year restriction.
var AllYears = YearFilter{}

// ForYear restricts results to year.
func ForYear(year int) YearFilter {
	return YearFilter{year: year}
}

// IsAll reports whether the filter applies no restriction.
func (f YearFilter) IsAll() bool {
	return f.year == 0
}

// Year returns the selected year, or 0 for AllYears.
func (f YearFilter) Year() int {
	return f.year
}

// Matches reports whether a record of the given year passes the filter.
func (f YearFilter) Matches(year int) bool {
	return f.IsAll() || f.year == year
}

// String returns "all" or the year.
func (f YearFilter) String() string {
	if f.IsAll() {
		return "all"
	}
	return strconv.Itoa(f.year)
}

// Label returns the display label used in banners and export names.
func (f YearFilter) Label() string {
	if f.IsAll() {
		return AllYearsLabel
	}
	return strconv.Itoa(f.year)
}

// ParseYearFilter accepts "", "all", AllYearsLabel or a year number.
func ParseYearFilter(s string) (YearFilter, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "all", AllYearsLabel:
		return AllYears, nil
	}
	year, err := strconv.Atoi(s)
	if err != nil || year <= 0 {
		return AllYears, fmt.Errorf("%w: invalid year %q", ErrInvalidInput, s)
	}
	return ForYear(year), nil
}

// QueryRequest is one search submission.
type QueryRequest struct {
	// Term is the text to look for.
	Term string

	// Mode selects the matched field.
	Mode SearchMode

	// Year restricts the filtered view.
	Year YearFilter
}

// ValidateTerm rejects terms that are empty after trimming.
// Callers validate before querying; the engine itself treats an empty
// term as matching nothing.
func ValidateTerm(term string) error {
	if strings.TrimSpace(term) == "" {
		return ErrEmptySearchTerm
	}
	return nil
}

// QueryResult holds the two views of a search.
type QueryResult struct {
	// Request is the query that produced this result.
	Request QueryRequest

	// AllYears holds every record matching the term, in dataset order.
	// Used for trend rendering.
	AllYears []Record

	// Filtered holds AllYears restricted by the year filter, sorted by
	// year descending. Ties keep dataset order.
	Filtered []Record

	// Diagnostic explains an empty result caused by an internal failure.
	Diagnostic string
}

// Empty reports whether the filtered view has no records.
func (r *QueryResult) Empty() bool {
	return r == nil || len(r.Filtered) == 0
}
