// Package record validates a RawTable against the canonical index schema
// and coerces its rows into domain.Record values.
//
// Normalisation is fail-fast: a single cell that cannot be coerced aborts
// the whole load with a *domain.SchemaError. No partial dataset is ever
// returned. A blank score is not a coercion failure; the record keeps a
// NaN score.
package record

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/custodia-labs/dtindex/internal/core/domain"
	"github.com/custodia-labs/dtindex/internal/core/ports/driven"
	"github.com/custodia-labs/dtindex/internal/logger"
)

// Ensure Normaliser implements the interface.
var _ driven.TableNormaliser = (*Normaliser)(nil)

// scorePlaces is the number of decimals index values are rounded to.
const scorePlaces = 2

// Normaliser handles the canonical four-column index table.
type Normaliser struct {
	now func() time.Time
}

// New creates a new record normaliser.
func New() *Normaliser {
	return &Normaliser{now: time.Now}
}

// columns holds the positions of the required columns in a RawTable.
type columns struct {
	code, name, year, index int
}

// Normalise validates raw and converts every row, then drops rows whose
// year lies outside [domain.MinYear, domain.MaxYear].
func (n *Normaliser) Normalise(raw *domain.RawTable) (*domain.Dataset, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}
	defer logger.Timed("normalise")()

	cols, err := locate(raw)
	if err != nil {
		return nil, err
	}

	records := make([]domain.Record, 0, len(raw.Rows))
	dropped := 0
	for i, row := range raw.Rows {
		rec, err := convert(row, cols, i+1)
		if err != nil {
			return nil, err
		}
		if !domain.InYearRange(rec.Year) {
			dropped++
			continue
		}
		records = append(records, rec)
	}
	if dropped > 0 {
		logger.Debug("dropped %d rows outside %d-%d", dropped, domain.MinYear, domain.MaxYear)
	}

	ds := domain.NewDataset(records)
	ds.ID = uuid.NewString()
	ds.Path = raw.Path
	ds.Format = raw.Format
	ds.Encoding = raw.Encoding
	ds.LoadedAt = n.now()

	logger.Debug("normalised %d records, %d companies", ds.Len(), ds.DistinctCodes())
	return ds, nil
}

// locate finds every required column, reporting all missing ones at once.
func locate(raw *domain.RawTable) (columns, error) {
	pos := make([]int, len(domain.RequiredColumns))
	var missing []string
	for i, name := range domain.RequiredColumns {
		pos[i] = raw.ColumnIndex(name)
		if pos[i] < 0 {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return columns{}, &domain.SchemaError{Kind: domain.ErrMissingColumns, Columns: missing}
	}
	return columns{code: pos[0], name: pos[1], year: pos[2], index: pos[3]}, nil
}

func convert(row []string, cols columns, line int) (domain.Record, error) {
	code, ok := StockCode(cell(row, cols.code))
	if !ok {
		return domain.Record{}, coercion(domain.ColumnStockCode, cell(row, cols.code), line)
	}

	name := strings.TrimSpace(cell(row, cols.name))
	if name == "" {
		return domain.Record{}, coercion(domain.ColumnEntityName, cell(row, cols.name), line)
	}

	year, ok := Year(cell(row, cols.year))
	if !ok {
		return domain.Record{}, coercion(domain.ColumnYear, cell(row, cols.year), line)
	}

	index, ok := IndexValue(cell(row, cols.index))
	if !ok {
		return domain.Record{}, coercion(domain.ColumnIndexValue, cell(row, cols.index), line)
	}

	return domain.Record{StockCode: code, EntityName: name, Year: year, IndexValue: index}, nil
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func coercion(column, sample string, line int) error {
	return &domain.SchemaError{Kind: domain.ErrTypeCoercion, Column: column, Sample: sample, Row: line}
}

// StockCode trims s, reduces an integral decimal such as "8.0" to its
// digits and pads it to six characters. ok is false unless the result is
// exactly six ASCII digits.
func StockCode(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if strings.Contains(s, ".") {
		if d, err := decimal.NewFromString(s); err == nil && d.IsInteger() {
			s = d.String()
		}
	}
	code := domain.PadStockCode(s)
	return code, domain.IsValidStockCode(code)
}

// Year parses an integer year, accepting integral decimals like "2010.0".
func Year(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if y, err := strconv.Atoi(s); err == nil {
		return y, true
	}
	d, err := decimal.NewFromString(s)
	if err != nil || !d.IsInteger() {
		return 0, false
	}
	return int(d.IntPart()), true
}

// IndexValue parses s and rounds it half away from zero to two decimals.
// Rounding works on the decimal text, so "12.345" becomes 12.35. A blank
// cell yields NaN.
func IndexValue(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN(), true
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, false
	}
	return Round(d), true
}

// Round rounds d to the stored score precision.
func Round(d decimal.Decimal) float64 {
	return d.Round(scorePlaces).InexactFloat64()
}

// ToRawTable renders a dataset back into the canonical table layout.
// Normalising the result reproduces the dataset's records.
func ToRawTable(ds *domain.Dataset) *domain.RawTable {
	raw := &domain.RawTable{
		Path:     ds.Path,
		Format:   ds.Format,
		Encoding: ds.Encoding,
		Header:   append([]string(nil), domain.RequiredColumns...),
		Rows:     make([][]string, 0, ds.Len()),
	}
	for _, r := range ds.Records() {
		raw.Rows = append(raw.Rows, []string{
			r.StockCode,
			r.EntityName,
			strconv.Itoa(r.Year),
			rawScore(r),
		})
	}
	return raw
}

func rawScore(r domain.Record) string {
	if !r.HasIndexValue() {
		return ""
	}
	return strconv.FormatFloat(r.IndexValue, 'f', -1, 64)
}
