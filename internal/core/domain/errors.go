package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Ingestion Errors.

	// ErrFileNotFound indicates the dataset file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrUnsupportedFormat indicates the file extension has no loader.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrEncodingUndetected indicates no candidate encoding could decode
	// and parse a delimited text file.
	ErrEncodingUndetected = errors.New("encoding undetected")

	// ErrSpreadsheetRead indicates the spreadsheet reader failed.
	ErrSpreadsheetRead = errors.New("spreadsheet read failure")

	// Schema Errors.

	// ErrMissingColumns indicates required columns are absent.
	ErrMissingColumns = errors.New("missing columns")

	// ErrTypeCoercion indicates a cell could not be converted to its
	// column's type. The whole load fails.
	ErrTypeCoercion = errors.New("type coercion failure")

	// Query Errors.

	// ErrEmptySearchTerm indicates a blank search term.
	ErrEmptySearchTerm = errors.New("empty search term")
)

// LoadError reports why a file could not be read into a RawTable.
// Kind is one of the ingestion sentinels above.
type LoadError struct {
	Kind   error
	Path   string
	Detail string
	Err    error
}

// Error implements error.
func (e *LoadError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Path != "" {
		fmt.Fprintf(&b, ": %s", e.Path)
	}
	if e.Detail != "" {
		fmt.Fprintf(&b, ": %s", e.Detail)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

// Unwrap exposes both the kind and the underlying cause to errors.Is.
func (e *LoadError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// SchemaError reports a RawTable that does not fit the canonical schema.
type SchemaError struct {
	// Kind is ErrMissingColumns or ErrTypeCoercion.
	Kind error

	// Columns lists every missing column, in canonical order.
	Columns []string

	// Column, Sample and Row locate a coercion failure. Row is the
	// 1-based data row.
	Column string
	Sample string
	Row    int
}

// Error implements error.
func (e *SchemaError) Error() string {
	if errors.Is(e.Kind, ErrMissingColumns) {
		return fmt.Sprintf("%s: %s", e.Kind, strings.Join(e.Columns, ", "))
	}
	return fmt.Sprintf("%s: column %s, row %d, value %q", e.Kind, e.Column, e.Row, e.Sample)
}

// Unwrap returns the kind so errors.Is matches the sentinel.
func (e *SchemaError) Unwrap() error {
	return e.Kind
}
