// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
// Bindings that act while typing use control keys so they never collide
// with search input.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Search submits the current term.
	Search key.Binding

	// ToggleMode switches between stock code and company name search.
	ToggleMode key.Binding

	// NextYear and PrevYear cycle the year filter.
	NextYear key.Binding
	PrevYear key.Binding

	// Reset clears the input, the results and the remembered query.
	Reset key.Binding

	// Export writes the current results to a CSV file.
	Export key.Binding

	// Focus moves between the input and the results table.
	Focus key.Binding

	// Up navigates up in the results.
	Up key.Binding

	// Down navigates down in the results.
	Down key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Search: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "search"),
		),
		ToggleMode: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "code/name"),
		),
		NextYear: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "next year"),
		),
		PrevYear: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("ctrl+p", "prev year"),
		),
		Reset: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "reset"),
		),
		Export: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("ctrl+e", "export"),
		),
		Focus: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "input/results"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
	}
}

// ShortHelp returns the bindings shown while typing.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.ToggleMode, k.NextYear, k.Reset, k.Quit}
}

// ResultsHelp returns the bindings shown while browsing results.
func (k *KeyMap) ResultsHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Export, k.Focus, k.Quit}
}

// FullHelp returns the full list of keybindings.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Search, k.ToggleMode, k.NextYear, k.PrevYear},
		{k.Up, k.Down, k.Focus},
		{k.Reset, k.Export, k.Quit},
	}
}
