package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/dtindex/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/dtindex/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/dtindex/internal/adapters/driving/tui/views/lookup"
	"github.com/custodia-labs/dtindex/internal/core/domain"
	"github.com/custodia-labs/dtindex/internal/logger"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// lookupView is the search screen.
	lookupView *lookup.View

	// path is the dataset file.
	path string

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application reading the dataset at path.
// An empty path falls back to the configured dataset path.
func NewApp(ports *Ports, path string) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	return &App{
		ports:      ports,
		ctx:        context.Background(),
		styles:     s,
		lookupView: lookup.NewView(s, nil, ports.Query),
		path:       resolvePath(ports, path),
	}, nil
}

func resolvePath(ports *Ports, path string) string {
	if p := strings.TrimSpace(path); p != "" {
		return p
	}
	if ports.Settings != nil {
		if settings, err := ports.Settings.Get(); err == nil && settings.Dataset.Path != "" {
			return settings.Dataset.Path
		}
	}
	return domain.DefaultDatasetPath
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.lookupView.WithContext(ctx)
	return a
}

// WithExportDir sets where exported CSV files are written.
func (a *App) WithExportDir(dir string) *App {
	a.lookupView.WithExportDir(dir)
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("dtindex - Digital Transformation Index"),
		a.lookupView.Init(),
		a.loadDataset(),
	)
}

// loadDataset loads the dataset off the update loop.
func (a *App) loadDataset() tea.Cmd {
	ctx, svc, path := a.ctx, a.ports.Dataset, a.path
	return func() tea.Msg {
		ds, err := svc.Load(ctx, path)
		return messages.DatasetLoaded{Dataset: ds, Err: err}
	}
}

// Update implements tea.Model.
// It handles messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.lookupView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		a.lookupView, cmd = a.lookupView.Update(msg)
		a.err = a.lookupView.Err()
		return a, cmd

	case messages.DatasetLoaded:
		if msg.Err != nil {
			a.err = fmt.Errorf("failed to load dataset: %w", msg.Err)
			a.lookupView.SetError(a.err)
			return a, nil
		}
		a.err = nil
		a.lookupView.SetDataset(msg.Dataset)
		return a, nil

	case messages.DatasetChanged:
		logger.Debug("tui: dataset %s changed, reloading", msg.Path)
		return a, a.loadDataset()

	case messages.ErrorOccurred:
		a.err = msg.Err
		a.lookupView, cmd = a.lookupView.Update(msg)
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	a.lookupView, cmd = a.lookupView.Update(msg)
	return a, cmd
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}
	return a.lookupView.View()
}

// Notify returns a callback that asks a running program to reload the
// dataset. It is safe to call from other goroutines.
func Notify(p *tea.Program) func(path string) {
	return func(path string) {
		p.Send(messages.DatasetChanged{Path: path})
	}
}

// Lookup returns the lookup view.
func (a *App) Lookup() *lookup.View {
	return a.lookupView
}

// Path returns the dataset file the app reads.
func (a *App) Path() string {
	return a.path
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.lookupView.SetDimensions(width, height)
}
