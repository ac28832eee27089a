// Package spreadsheet loads XLSX and XLSM workbooks.
package spreadsheet

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/custodia-labs/dtindex/internal/core/domain"
	"github.com/custodia-labs/dtindex/internal/core/ports/driven"
	"github.com/custodia-labs/dtindex/internal/logger"
)

// Ensure Loader implements the interface.
var _ driven.TableLoader = (*Loader)(nil)

// Loader reads one worksheet of a workbook.
type Loader struct {
	sheet string
}

// New creates a spreadsheet loader. An empty sheet name selects the
// workbook's first sheet.
func New(sheet string) *Loader {
	return &Loader{sheet: sheet}
}

// Extensions returns the file extensions this loader handles.
func (l *Loader) Extensions() []string {
	return []string{".xlsx", ".xlsm"}
}

// Load reads the configured sheet of the workbook at path.
// Rows shorter than the header are padded with empty cells; longer rows
// are cut to the header width. Entirely blank rows are skipped.
func (l *Loader) Load(ctx context.Context, path string) (*domain.RawTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &domain.LoadError{Kind: domain.ErrFileNotFound, Path: path}
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	book, err := excelize.OpenReader(f)
	if err != nil {
		return nil, readError(path, "", err)
	}
	defer book.Close()

	sheet := l.sheet
	if sheet == "" {
		sheets := book.GetSheetList()
		if len(sheets) == 0 {
			return nil, readError(path, "workbook has no sheets", nil)
		}
		sheet = sheets[0]
	}

	// Stored values, not display text: a "0" number format would otherwise
	// turn 12.345 into "12" before rounding.
	rows, err := book.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, readError(path, fmt.Sprintf("sheet %q", sheet), err)
	}
	if len(rows) == 0 {
		return nil, readError(path, fmt.Sprintf("sheet %q has no header row", sheet), nil)
	}

	header := rows[0]
	data := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if blank(row) {
			continue
		}
		data = append(data, fit(row, len(header)))
	}

	logger.Info("read sheet %q of %s (%d rows)", sheet, filepath.Base(path), len(data))
	return &domain.RawTable{
		Path:   path,
		Format: domain.FormatXLSX,
		Header: header,
		Rows:   data,
	}, nil
}

func readError(path, detail string, err error) error {
	return &domain.LoadError{Kind: domain.ErrSpreadsheetRead, Path: path, Detail: detail, Err: err}
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func fit(row []string, width int) []string {
	out := make([]string, width)
	copy(out, row)
	return out
}
