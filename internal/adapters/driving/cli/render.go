package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/dtindex/internal/core/domain"
)

const (
	defaultWidth = 80
	minNameWidth = 8

	// Width taken by the code, year and index columns plus borders.
	fixedColumnsWidth = 6 + 4 + 8 + 13
)

// terminalWidth returns the width of the command's output terminal, or
// defaultWidth when output is not a terminal.
func terminalWidth(cmd *cobra.Command) int {
	if f, ok := cmd.OutOrStdout().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			return w
		}
	}
	return defaultWidth
}

// truncate shortens s to at most width display cells, marking the cut
// with an ellipsis. Wide (CJK) characters count as two cells.
func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	if width <= 1 {
		return "…"
	}
	var b strings.Builder
	used := 0
	for _, r := range s {
		w := lipgloss.Width(string(r))
		if used+w > width-1 {
			break
		}
		b.WriteRune(r)
		used += w
	}
	b.WriteString("…")
	return b.String()
}

// recordTable renders records as a bordered table sized to width.
func recordTable(records []domain.Record, width int) string {
	nameWidth := width - fixedColumnsWidth
	if nameWidth < minNameWidth {
		nameWidth = minNameWidth
	}

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.StockCode,
			truncate(r.EntityName, nameWidth),
			strconv.Itoa(r.Year),
			domain.FormatScore(r.IndexValue),
		})
	}

	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Code", "Company", "Year", "Index").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			if col == 3 {
				return cell.Align(lipgloss.Right)
			}
			return cell
		}).
		String()
}

// trendLine renders one series as "name (code): 2010 12.35, 2012 20.10".
func trendLine(s domain.TrendSeries) string {
	parts := make([]string, 0, len(s.Points))
	for _, p := range s.Points {
		parts = append(parts, fmt.Sprintf("%d %s", p.Year, domain.FormatScore(p.IndexValue)))
	}
	return fmt.Sprintf("%s (%s): %s", s.EntityName, s.StockCode, strings.Join(parts, ", "))
}
