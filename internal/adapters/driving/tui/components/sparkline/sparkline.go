// Package sparkline draws index trends as block character strips.
package sparkline

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/dtindex/internal/core/domain"
)

var blocks = []rune("▁▂▃▄▅▆▇█")

// Render maps values onto block heights between their min and max.
// A flat series renders at mid height and a missing (NaN) value is a gap.
func Render(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		lo = min(lo, v)
		hi = max(hi, v)
	}

	var b strings.Builder
	for _, v := range values {
		if math.IsNaN(v) {
			b.WriteRune(' ')
			continue
		}
		level := len(blocks) / 2
		if hi > lo {
			level = int(math.Round((v - lo) / (hi - lo) * float64(len(blocks)-1)))
		}
		b.WriteRune(blocks[level])
	}
	return b.String()
}

// Row renders "name ▁▃█ 2010-2012" for one series, cut to width cells.
func Row(series domain.TrendSeries, style lipgloss.Style, width int) string {
	if len(series.Points) == 0 {
		return ""
	}
	values := make([]float64, len(series.Points))
	for i, p := range series.Points {
		values[i] = p.IndexValue
	}
	first, last := series.Points[0], series.Points[len(series.Points)-1]
	row := fmt.Sprintf("%s %s %d-%d (%s → %s)",
		series.EntityName, style.Render(Render(values)), first.Year, last.Year,
		domain.FormatScore(first.IndexValue), domain.FormatScore(last.IndexValue))
	if width > 0 && lipgloss.Width(row) > width {
		return lipgloss.NewStyle().MaxWidth(width).Render(row)
	}
	return row
}
