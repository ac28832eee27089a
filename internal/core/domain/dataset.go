package domain

import (
	"sort"
	"time"
)

// Dataset is the normalised table of index records.
// A Dataset is immutable once built; the slice returned by Records is shared
// between all readers and must not be modified.
type Dataset struct {
	// ID identifies this load of the data. A reload yields a new ID.
	ID string

	// Path is the file the records were loaded from.
	Path string

	// Format is the source format (FormatCSV or FormatXLSX).
	Format string

	// Encoding is the text encoding that decoded a CSV source.
	Encoding string

	// LoadedAt is when normalisation finished.
	LoadedAt time.Time

	records []Record
}

// NewDataset builds a Dataset that owns records.
func NewDataset(records []Record) *Dataset {
	return &Dataset{records: records}
}

// Records returns the records in source order.
func (d *Dataset) Records() []Record {
	if d == nil {
		return nil
	}
	return d.records
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.records)
}

// DistinctCodes returns the number of unique stock codes.
func (d *Dataset) DistinctCodes() int {
	return CountDistinctCodes(d.Records())
}

// Years returns the distinct years present, ascending.
func (d *Dataset) Years() []int {
	seen := make(map[int]struct{})
	years := make([]int, 0)
	for _, r := range d.Records() {
		if _, ok := seen[r.Year]; ok {
			continue
		}
		seen[r.Year] = struct{}{}
		years = append(years, r.Year)
	}
	sort.Ints(years)
	return years
}

// Head returns up to n leading records.
func (d *Dataset) Head(n int) []Record {
	records := d.Records()
	if n < 0 {
		n = 0
	}
	if n > len(records) {
		n = len(records)
	}
	return records[:n]
}

// CountDistinctCodes counts unique stock codes across records.
func CountDistinctCodes(records []Record) int {
	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		seen[r.StockCode] = struct{}{}
	}
	return len(seen)
}

// LoadStatus is the outcome of a dataset load as seen by a collaborator.
type LoadStatus string

// Load statuses.
const (
	LoadStatusSuccess LoadStatus = "success"
	LoadStatusError   LoadStatus = "error"
)

// LoadOutcome is the collaborator-facing result of loading a dataset.
// Dataset is nil when Status is LoadStatusError.
type LoadOutcome struct {
	Status  LoadStatus
	Dataset *Dataset
	Message string
}

// OK reports whether the load succeeded.
func (o LoadOutcome) OK() bool {
	return o.Status == LoadStatusSuccess
}
