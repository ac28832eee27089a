// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/dtindex/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/dtindex/internal/core/domain"
)

// Placeholders shown for each search mode.
const (
	codePlaceholder = "Stock code, e.g. " + domain.NoMatchHint
	namePlaceholder = "Company name, e.g. 首创"
)

// SearchInput wraps a bubbles textinput labelled with the active search mode.
type SearchInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	mode      domain.SearchMode
	width     int
}

// NewSearchInput creates a new search input in stock code mode.
func NewSearchInput(s *styles.Styles) *SearchInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Prompt = ""
	ti.Focus()
	ti.CharLimit = 64
	ti.Width = 40

	in := &SearchInput{
		textinput: ti,
		styles:    s,
		width:     50,
	}
	in.SetMode(domain.SearchByStockCode)
	return in
}

// Init initialises the search input.
func (s *SearchInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (s *SearchInput) Update(msg tea.Msg) (*SearchInput, tea.Cmd) {
	var cmd tea.Cmd
	s.textinput, cmd = s.textinput.Update(msg)
	return s, cmd
}

// View renders the search input.
func (s *SearchInput) View() string {
	label := s.styles.Title.Render(s.mode.Description() + ": ")
	input := s.styles.InputField.Render(s.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, input)
}

// Mode returns the search mode shown in the label.
func (s *SearchInput) Mode() domain.SearchMode {
	return s.mode
}

// SetMode switches the label and placeholder to mode.
func (s *SearchInput) SetMode(mode domain.SearchMode) {
	s.mode = mode
	if mode == domain.SearchByEntityName {
		s.textinput.Placeholder = namePlaceholder
	} else {
		s.textinput.Placeholder = codePlaceholder
	}
}

// Value returns the current input value.
func (s *SearchInput) Value() string {
	return s.textinput.Value()
}

// SetValue sets the input value.
func (s *SearchInput) SetValue(value string) {
	s.textinput.SetValue(value)
}

// Focus sets focus on the input.
func (s *SearchInput) Focus() tea.Cmd {
	return s.textinput.Focus()
}

// Blur removes focus from the input.
func (s *SearchInput) Blur() {
	s.textinput.Blur()
}

// Focused returns whether the input is focused.
func (s *SearchInput) Focused() bool {
	return s.textinput.Focused()
}

// SetWidth sets the width of the input.
func (s *SearchInput) SetWidth(width int) {
	s.width = width
	// Account for label and padding
	inputWidth := width - 20
	if inputWidth < 20 {
		inputWidth = 20
	}
	s.textinput.Width = inputWidth
}

// Width returns the current width.
func (s *SearchInput) Width() int {
	return s.width
}

// Reset clears the input.
func (s *SearchInput) Reset() {
	s.textinput.Reset()
}
