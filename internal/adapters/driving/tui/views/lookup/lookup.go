// Package lookup provides the index lookup view: search input, year and
// mode selectors, result statistics, the results table and trend rows.
package lookup

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/dtindex/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/dtindex/internal/adapters/driving/tui/components/results"
	"github.com/custodia-labs/dtindex/internal/adapters/driving/tui/components/sparkline"
	"github.com/custodia-labs/dtindex/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/dtindex/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/dtindex/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/dtindex/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/dtindex/internal/core/domain"
	"github.com/custodia-labs/dtindex/internal/core/ports/driving"
	"github.com/custodia-labs/dtindex/internal/core/services"
)

// maxTrendRows caps the trend rows drawn below the table.
const maxTrendRows = 5

// errNoDataset is shown when a search is submitted before loading finished.
var errNoDataset = errors.New("dataset not loaded")

// View is the lookup screen.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.SearchInput
	table     *results.Table
	statusbar *status.Bar

	queryService driving.QueryService
	ctx          context.Context

	dataset *domain.Dataset
	years   []int
	yearIdx int // index into years, -1 for all years

	// last is the remembered query, rerun when the year changes or the
	// dataset reloads. Nil after a reset.
	last   *domain.QueryRequest
	result *domain.QueryResult
	stats  domain.Stats
	trend  []domain.TrendSeries

	exportDir string
	width     int
	height    int
	err       error
}

// NewView creates a lookup view.
func NewView(s *styles.Styles, km *keymap.KeyMap, queryService driving.QueryService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:       s,
		keymap:       km,
		input:        input.NewSearchInput(s),
		table:        results.NewTable(s),
		statusbar:    status.NewBar(s, km),
		queryService: queryService,
		ctx:          context.Background(),
		yearIdx:      -1,
		exportDir:    ".",
		width:        80,
		height:       24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// WithExportDir sets where exported CSV files are written.
func (v *View) WithExportDir(dir string) *View {
	v.exportDir = dir
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	v.statusbar.SetState(status.StateLoading)
	return v.input.Init()
}

// SetDataset installs a freshly loaded dataset. The year selection is kept
// when the year still exists, and the remembered query is rerun.
func (v *View) SetDataset(ds *domain.Dataset) {
	selected := v.Year()
	v.dataset = ds
	v.years = ds.Years()
	v.yearIdx = -1
	if !selected.IsAll() {
		for i, y := range v.years {
			if y == selected.Year() {
				v.yearIdx = i
			}
		}
	}
	v.err = nil

	if v.last != nil {
		v.rerun()
		return
	}
	v.statusbar.SetState(status.StateReady)
	v.statusbar.SetMessage(services.LoadMessage(ds))
}

// SetError shows err in the status bar.
func (v *View) SetError(err error) {
	v.err = err
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(err.Error())
}

// Update handles messages for the lookup view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.ExportCompleted:
		if msg.Err != nil {
			v.SetError(fmt.Errorf("export failed: %w", msg.Err))
			return v, nil
		}
		v.statusbar.SetState(status.StateExported)
		v.statusbar.SetMessage(fmt.Sprintf("exported %d records to %s", msg.Count, msg.Path))
		return v, nil

	case messages.ErrorOccurred:
		v.SetError(msg.Err)
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keymap.ToggleMode):
		if v.input.Mode() == domain.SearchByStockCode {
			v.input.SetMode(domain.SearchByEntityName)
		} else {
			v.input.SetMode(domain.SearchByStockCode)
		}
		return v, nil

	case key.Matches(msg, v.keymap.NextYear):
		v.cycleYear(1)
		return v, nil

	case key.Matches(msg, v.keymap.PrevYear):
		v.cycleYear(-1)
		return v, nil

	case key.Matches(msg, v.keymap.Reset):
		return v, v.Reset()

	case key.Matches(msg, v.keymap.Export):
		return v, v.export()

	case key.Matches(msg, v.keymap.Focus):
		return v, v.toggleFocus()
	}

	if v.input.Focused() {
		if key.Matches(msg, v.keymap.Search) {
			v.run(v.input.Value(), v.input.Mode())
			return v, nil
		}
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}

	var cmd tea.Cmd
	v.table, cmd = v.table.Update(msg)
	return v, cmd
}

// run queries the dataset for term in mode with the selected year.
func (v *View) run(term string, mode domain.SearchMode) {
	if err := domain.ValidateTerm(term); err != nil {
		v.SetError(err)
		return
	}
	if v.dataset == nil {
		v.SetError(errNoDataset)
		return
	}

	req := domain.QueryRequest{Term: term, Mode: mode, Year: v.Year()}
	v.last = &req
	v.result = v.queryService.Query(v.ctx, v.dataset, req)
	v.table.SetRecords(v.result.Filtered)
	v.trend = services.Trend(v.result.AllYears)
	v.err = nil

	stats, ok := v.queryService.Summarize(v.result.Filtered)
	v.stats = stats
	v.statusbar.SetResultCount(len(v.result.Filtered))
	switch {
	case v.result.Diagnostic != "":
		v.SetError(errors.New(v.result.Diagnostic))
	case ok:
		v.statusbar.SetState(status.StateResults)
		v.statusbar.SetMessage(stats.Headline(req.Year))
	default:
		v.statusbar.SetState(status.StateReady)
		v.statusbar.SetMessage("no matching records")
	}
}

// cycleYear moves the year filter by step through all-years and the
// dataset's years, rerunning the remembered query.
func (v *View) cycleYear(step int) {
	n := len(v.years) + 1
	pos := (v.yearIdx + 1 + step + n) % n
	v.yearIdx = pos - 1
	if v.last != nil {
		v.rerun()
	}
}

// rerun repeats the remembered query with its own mode, which is also
// restored in the input.
func (v *View) rerun() {
	v.input.SetMode(v.last.Mode)
	v.run(v.last.Term, v.last.Mode)
}

// Year returns the selected year filter.
func (v *View) Year() domain.YearFilter {
	if v.yearIdx < 0 || v.yearIdx >= len(v.years) {
		return domain.AllYears
	}
	return domain.ForYear(v.years[v.yearIdx])
}

// Reset clears the term, the results and the remembered query.
func (v *View) Reset() tea.Cmd {
	v.input.Reset()
	v.input.SetMode(domain.SearchByStockCode)
	v.yearIdx = -1
	v.last = nil
	v.result = nil
	v.trend = nil
	v.stats = domain.Stats{}
	v.err = nil
	v.table.SetRecords(nil)
	v.table.Blur()
	v.statusbar.Clear()
	v.statusbar.SetBrowsing(false)
	if v.dataset != nil {
		v.statusbar.SetMessage(services.LoadMessage(v.dataset))
	}
	return v.input.Focus()
}

func (v *View) toggleFocus() tea.Cmd {
	if v.input.Focused() {
		if v.table.Len() == 0 {
			return nil
		}
		v.input.Blur()
		v.table.Focus()
		v.statusbar.SetBrowsing(true)
		return nil
	}
	v.table.Blur()
	v.statusbar.SetBrowsing(false)
	return v.input.Focus()
}

// export writes the displayed records to a CSV named after the query.
func (v *View) export() tea.Cmd {
	if v.result.Empty() {
		v.SetError(errors.New("nothing to export"))
		return nil
	}
	records := v.result.Filtered
	path := filepath.Join(v.exportDir, services.ExportFileName(v.result.Request.Term, v.result.Request.Year))
	return func() tea.Msg {
		return writeExport(path, records)
	}
}

func writeExport(path string, records []domain.Record) messages.ExportCompleted {
	f, err := os.Create(path)
	if err != nil {
		return messages.ExportCompleted{Path: path, Err: err}
	}
	if err := services.WriteCSV(f, records); err != nil {
		_ = f.Close()
		return messages.ExportCompleted{Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return messages.ExportCompleted{Path: path, Err: err}
	}
	return messages.ExportCompleted{Path: path, Count: len(records)}
}

// View renders the lookup screen.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("dtindex"))
	b.WriteString(v.styles.Muted.Render("  数字化转型指数"))
	if v.dataset != nil {
		b.WriteString(v.styles.Muted.Render("  " + services.LoadMessage(v.dataset)))
	}
	b.WriteString("\n\n")

	mode := v.styles.Badge.Render(v.input.Mode().String())
	year := v.styles.Badge.Render(v.Year().Label())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, v.input.View(), " ", mode, " ", year))
	b.WriteString("\n")

	b.WriteString(v.renderBody())
	b.WriteString("\n")
	b.WriteString(v.statusbar.View())
	return b.String()
}

func (v *View) renderBody() string {
	if v.result == nil {
		return v.styles.Muted.Render("Type a stock code or company name and press enter.") + "\n"
	}
	if v.result.Diagnostic != "" {
		return v.styles.Warning.Render(v.result.Diagnostic) + "\n"
	}
	if v.result.Empty() {
		hint := fmt.Sprintf("No records match %q. Try %s.", v.result.Request.Term, domain.NoMatchHint)
		return v.styles.Warning.Render(hint) + "\n"
	}

	var b strings.Builder
	b.WriteString(v.styles.Banner.Render(v.stats.Headline(v.result.Request.Year)))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render(v.stats.Spread()))
	b.WriteString("\n\n")
	b.WriteString(v.table.View())
	b.WriteString("\n")

	if len(v.trend) > 0 {
		b.WriteString("\n")
		b.WriteString(v.styles.Subtitle.Render("Trend"))
		b.WriteString("\n")
		for i, series := range v.trend {
			if i == maxTrendRows {
				b.WriteString(v.styles.Muted.Render(fmt.Sprintf("+%d more", len(v.trend)-maxTrendRows)))
				b.WriteString("\n")
				break
			}
			b.WriteString(sparkline.Row(series, v.styles.Sparkline, v.width))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// SetDimensions sizes the view and its components.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.input.SetWidth(width / 2)
	v.statusbar.SetWidth(width)

	// Header, input, banner, trend and status rows.
	tableHeight := height - 12 - min(len(v.trend), maxTrendRows+1)
	v.table.SetSize(width, tableHeight)
}

// Query returns the current input text.
func (v *View) Query() string {
	return v.input.Value()
}

// Mode returns the selected search mode.
func (v *View) Mode() domain.SearchMode {
	return v.input.Mode()
}

// LastQuery returns the remembered query, or nil.
func (v *View) LastQuery() *domain.QueryRequest {
	return v.last
}

// Result returns the last query result, or nil.
func (v *View) Result() *domain.QueryResult {
	return v.result
}

// Trend returns the trend series of the last result.
func (v *View) Trend() []domain.TrendSeries {
	return v.trend
}

// Dataset returns the loaded dataset, or nil.
func (v *View) Dataset() *domain.Dataset {
	return v.dataset
}

// Err returns the last error shown.
func (v *View) Err() error {
	return v.err
}

// Status returns the status bar state.
func (v *View) Status() status.State {
	return v.statusbar.State()
}

// StatusMessage returns the status bar message.
func (v *View) StatusMessage() string {
	return v.statusbar.Message()
}

// Browsing reports whether the results table has focus.
func (v *View) Browsing() bool {
	return v.table.Focused()
}

// SelectedRecord returns the record under the table cursor.
func (v *View) SelectedRecord() *domain.Record {
	return v.table.Selected()
}
