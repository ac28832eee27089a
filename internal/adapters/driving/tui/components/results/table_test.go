package results

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/dtindex/internal/core/domain"
)

func sampleRecords() []domain.Record {
	return []domain.Record{
		{StockCode: "600008", EntityName: "首创股份", Year: 2012, IndexValue: 25.5},
		{StockCode: "600008", EntityName: "首创股份", Year: 2011, IndexValue: 20.1},
		{StockCode: "600008", EntityName: "首创股份", Year: 2010, IndexValue: 12.35},
	}
}

func TestNewTable(t *testing.T) {
	tbl := NewTable(nil)

	require.NotNil(t, tbl)
	assert.Zero(t, tbl.Len())
	assert.Nil(t, tbl.Selected())
	assert.False(t, tbl.Focused())
}

func TestTable_SetRecords(t *testing.T) {
	tbl := NewTable(nil)
	tbl.SetRecords(sampleRecords())

	assert.Equal(t, 3, tbl.Len())
	require.NotNil(t, tbl.Selected())
	assert.Equal(t, 2012, tbl.Selected().Year)

	view := tbl.View()
	assert.Contains(t, view, "Company")
	assert.Contains(t, view, "12.35")
	assert.Contains(t, view, "25.50")
}

func TestTable_NavigationWhenFocused(t *testing.T) {
	tbl := NewTable(nil)
	tbl.SetRecords(sampleRecords())

	tbl.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 0, tbl.Cursor(), "unfocused table ignores keys")

	tbl.Focus()
	tbl.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, tbl.Cursor())
	assert.Equal(t, 2011, tbl.Selected().Year)
}

func TestTable_SetRecordsResetsCursor(t *testing.T) {
	tbl := NewTable(nil)
	tbl.Focus()
	tbl.SetRecords(sampleRecords())
	tbl.Update(tea.KeyMsg{Type: tea.KeyDown})

	tbl.SetRecords(sampleRecords()[:1])

	assert.Equal(t, 0, tbl.Cursor())
}

func TestColumns_MinimumNameWidth(t *testing.T) {
	cols := columns(10)

	require.Len(t, cols, 4)
	assert.Equal(t, minName, cols[1].Width)
	assert.Equal(t, 80-codeWidth-yearWidth-indexWidth-8, columns(80)[1].Width)
}
