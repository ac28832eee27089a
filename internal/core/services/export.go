package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/custodia-labs/dtindex/internal/core/domain"
)

// utf8BOM lets spreadsheet applications detect the export as UTF-8.
const utf8BOM = "\ufeff"

// WriteCSV writes records as a UTF-8 CSV with a byte order mark, using the
// canonical column headers. Scores are written with two decimals; a missing
// score is an empty cell.
func WriteCSV(w io.Writer, records []domain.Record) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return fmt.Errorf("write bom: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(domain.RequiredColumns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range records {
		row := []string{
			r.StockCode,
			r.EntityName,
			strconv.Itoa(r.Year),
			exportScore(r),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write record %s/%d: %w", r.StockCode, r.Year, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func exportScore(r domain.Record) string {
	if !r.HasIndexValue() {
		return ""
	}
	return strconv.FormatFloat(r.IndexValue, 'f', 2, 64)
}

// ExportFileName names an export of the results for term and year,
// e.g. "转型指数_查询结果_600008_全部年份.csv".
func ExportFileName(term string, year domain.YearFilter) string {
	term = strings.NewReplacer("/", "_", "\\", "_").Replace(strings.TrimSpace(term))
	return fmt.Sprintf("转型指数_查询结果_%s_%s.csv", term, year.Label())
}
