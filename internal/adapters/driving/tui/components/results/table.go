// Package results renders query results as a navigable table.
package results

import (
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/dtindex/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/dtindex/internal/core/domain"
)

// Column widths other than the company name.
const (
	codeWidth  = 8
	yearWidth  = 6
	indexWidth = 10
	minName    = 12
)

// Table wraps a bubbles table of records.
type Table struct {
	table   table.Model
	records []domain.Record
}

// NewTable creates an empty, unfocused results table.
func NewTable(s *styles.Styles) *Table {
	if s == nil {
		s = styles.DefaultStyles()
	}
	t := table.New(
		table.WithColumns(columns(80)),
		table.WithHeight(10),
	)
	t.SetStyles(s.Table())
	return &Table{table: t}
}

func columns(width int) []table.Column {
	name := width - codeWidth - yearWidth - indexWidth - 8
	if name < minName {
		name = minName
	}
	return []table.Column{
		{Title: "Code", Width: codeWidth},
		{Title: "Company", Width: name},
		{Title: "Year", Width: yearWidth},
		{Title: "Index", Width: indexWidth},
	}
}

// SetRecords replaces the rows and moves the cursor to the top.
func (t *Table) SetRecords(records []domain.Record) {
	t.records = records
	rows := make([]table.Row, 0, len(records))
	for _, r := range records {
		rows = append(rows, table.Row{
			r.StockCode,
			r.EntityName,
			strconv.Itoa(r.Year),
			domain.FormatScore(r.IndexValue),
		})
	}
	t.table.SetRows(rows)
	t.table.SetCursor(0)
}

// Records returns the records shown.
func (t *Table) Records() []domain.Record {
	return t.records
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.records)
}

// Selected returns the record under the cursor, or nil when empty.
func (t *Table) Selected() *domain.Record {
	i := t.table.Cursor()
	if i < 0 || i >= len(t.records) {
		return nil
	}
	return &t.records[i]
}

// Cursor returns the selected row index.
func (t *Table) Cursor() int {
	return t.table.Cursor()
}

// SetSize fits the table to width and height.
func (t *Table) SetSize(width, height int) {
	if height < 3 {
		height = 3
	}
	t.table.SetColumns(columns(width))
	t.table.SetWidth(width)
	t.table.SetHeight(height)
}

// Focus enables keyboard navigation.
func (t *Table) Focus() {
	t.table.Focus()
}

// Blur disables keyboard navigation.
func (t *Table) Blur() {
	t.table.Blur()
}

// Focused reports whether the table takes keyboard input.
func (t *Table) Focused() bool {
	return t.table.Focused()
}

// Update forwards navigation keys to the table.
func (t *Table) Update(msg tea.Msg) (*Table, tea.Cmd) {
	var cmd tea.Cmd
	t.table, cmd = t.table.Update(msg)
	return t, cmd
}

// View renders the table.
func (t *Table) View() string {
	return t.table.View()
}
