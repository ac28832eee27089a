package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Column headers of the canonical dataset file. These exact strings are
// matched when reading and written when exporting.
const (
	ColumnStockCode  = "股票代码"
	ColumnEntityName = "企业名称"
	ColumnYear       = "年份"
	ColumnIndexValue = "数字化转型指数"
)

// RequiredColumns lists the canonical columns in file order.
var RequiredColumns = []string{ColumnStockCode, ColumnEntityName, ColumnYear, ColumnIndexValue}

// Valid year range of the index, inclusive.
const (
	MinYear = 1999
	MaxYear = 2023
)

// StockCodeWidth is the fixed width of a stock code after padding.
const StockCodeWidth = 6

// Record is one (entity, year) observation of the digital transformation index.
type Record struct {
	// StockCode is the six digit, zero padded listing code.
	StockCode string `json:"stock_code"`

	// EntityName is the company's display name, trimmed.
	EntityName string `json:"entity_name"`

	// Year is the observation year, within [MinYear, MaxYear].
	Year int `json:"year"`

	// IndexValue is the index score rounded to two decimal places. A blank
	// score is NaN; JSON renders it as null.
	IndexValue float64 `json:"index_value"`
}

// HasIndexValue reports whether the record carries a score.
func (r Record) HasIndexValue() bool {
	return !math.IsNaN(r.IndexValue)
}

// MarshalJSON writes a missing score as null.
func (r Record) MarshalJSON() ([]byte, error) {
	type plain Record
	return json.Marshal(struct {
		plain
		IndexValue *float64 `json:"index_value"`
	}{plain(r), ScorePtr(r.IndexValue)})
}

// ScorePtr returns nil for a missing score and a pointer to v otherwise.
func ScorePtr(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

// FormatScore renders v with two decimals, or "-" when the score is missing.
func FormatScore(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// InYearRange reports whether year lies within [MinYear, MaxYear].
func InYearRange(year int) bool {
	return year >= MinYear && year <= MaxYear
}

// PadLeft left-pads s with zeros to width characters. A leading sign stays
// in front of the padding. Strings already at or over width are returned
// unchanged.
func PadLeft(s string, width int) string {
	runes := []rune(s)
	if len(runes) >= width {
		return s
	}
	fill := strings.Repeat("0", width-len(runes))
	if len(runes) > 0 && (runes[0] == '+' || runes[0] == '-') {
		return string(runes[0]) + fill + string(runes[1:])
	}
	return fill + s
}

// PadStockCode pads a stock code to StockCodeWidth.
func PadStockCode(s string) string {
	return PadLeft(s, StockCodeWidth)
}

// IsValidStockCode reports whether code is exactly six ASCII digits.
func IsValidStockCode(code string) bool {
	if len(code) != StockCodeWidth {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	return true
}
