// Package domain defines the core business entities for dtindex.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Record: One (stock code, year) observation of the transformation index
//   - Dataset: The normalised, immutable table of records
//   - RawTable: Header and string cells as read from a source file
//   - QueryRequest / QueryResult: Input and output of one search
//   - Stats: Summary statistics over a set of records
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
