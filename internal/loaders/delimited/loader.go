// Package delimited loads CSV and TSV files whose text encoding is not
// known in advance.
package delimited

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/dtindex/internal/core/domain"
	"github.com/custodia-labs/dtindex/internal/core/ports/driven"
	"github.com/custodia-labs/dtindex/internal/encodings"
	"github.com/custodia-labs/dtindex/internal/logger"
)

// Ensure Loader implements the interface.
var _ driven.TableLoader = (*Loader)(nil)

var errNoHeader = errors.New("no header row")

var delimiters = map[string]rune{
	".csv": ',',
	".tsv": '\t',
}

// Loader reads delimited text, trying each candidate encoding in order.
// The first encoding under which the whole file decodes and parses wins.
type Loader struct {
	candidates []encodings.Encoding
}

// New creates a loader with an ordered candidate list.
func New(candidates []encodings.Encoding) *Loader {
	return &Loader{candidates: candidates}
}

// Extensions returns the file extensions this loader handles.
func (l *Loader) Extensions() []string {
	return []string{".csv", ".tsv"}
}

// Candidates returns the encoding names in the order they are tried.
func (l *Loader) Candidates() []string {
	names := make([]string, len(l.candidates))
	for i, c := range l.candidates {
		names[i] = c.Name()
	}
	return names
}

// Load reads the file at path into a RawTable.
func (l *Loader) Load(ctx context.Context, path string) (*domain.RawTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &domain.LoadError{Kind: domain.ErrFileNotFound, Path: path}
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	comma := delimiterFor(path)
	attempts := make([]string, 0, len(l.candidates))

	for _, enc := range l.candidates {
		text, err := enc.Decode(data)
		if err != nil {
			logger.Debug("encoding %s rejected: %v", enc.Name(), err)
			attempts = append(attempts, fmt.Sprintf("%s: %v", enc.Name(), err))
			continue
		}

		header, rows, err := parse(text, comma)
		if err != nil {
			logger.Debug("encoding %s decoded but did not parse: %v", enc.Name(), err)
			attempts = append(attempts, fmt.Sprintf("%s: %v", enc.Name(), err))
			continue
		}

		logger.Info("decoded %s as %s (%d rows)", filepath.Base(path), enc.Name(), len(rows))
		return &domain.RawTable{
			Path:     path,
			Format:   domain.FormatCSV,
			Encoding: enc.Name(),
			Header:   header,
			Rows:     rows,
		}, nil
	}

	detail := strings.Join(attempts, "; ")
	if hint := encodings.Hint(data); hint != "" {
		detail += "; detected " + hint
	}
	detail += "; re-save the file as UTF-8"

	return nil, &domain.LoadError{Kind: domain.ErrEncodingUndetected, Path: path, Detail: detail}
}

func delimiterFor(path string) rune {
	if comma, ok := delimiters[strings.ToLower(filepath.Ext(path))]; ok {
		return comma
	}
	return ','
}

// parse splits decoded text into a header and data rows. Every row must
// have as many fields as the header.
func parse(text string, comma rune) ([]string, [][]string, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.Comma = comma

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, errNoHeader
	}
	return records[0], records[1:], nil
}
