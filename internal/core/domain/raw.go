package domain

// Source formats a RawTable can come from.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// RawTable is a tabular file as read by a loader, before normalisation.
// Every cell is kept as text; type coercion is the normaliser's job.
type RawTable struct {
	// Path is the file the table was read from.
	Path string

	// Format is the source format (FormatCSV or FormatXLSX).
	Format string

	// Encoding is the text encoding that decoded the file.
	// Empty for spreadsheet sources.
	Encoding string

	// Header holds the column names from the first row.
	Header []string

	// Rows holds the data rows. Each row has len(Header) cells.
	Rows [][]string
}

// ColumnIndex returns the position of the first column named name, or -1.
func (t *RawTable) ColumnIndex(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}
