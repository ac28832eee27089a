package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/dtindex/internal/adapters/driving/tui"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive lookup screen.

Type a stock code or company name and press enter. Results show the
statistics banner, a table sorted by year and one trend row per company.

Controls:
  Enter          - Search
  Tab            - Switch between stock code and company name
  Ctrl+N/Ctrl+P  - Next / previous year (all years first)
  Esc            - Move between input and results
  ↑/k, ↓/j       - Navigate results
  Ctrl+E         - Export results as CSV to the export directory
  Ctrl+R         - Reset the query
  Ctrl+C         - Quit`,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().Bool("watch", false, "reload the dataset when the file changes")
	tuiCmd.Flags().String("export-dir", ".", "directory for exported CSV files")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	watchFile, err := cmd.Flags().GetBool("watch")
	if err != nil {
		return fmt.Errorf("getting watch flag: %w", err)
	}
	exportDir, err := cmd.Flags().GetString("export-dir")
	if err != nil {
		return fmt.Errorf("getting export-dir flag: %w", err)
	}

	path, err := datasetPath()
	if err != nil {
		return err
	}

	ports := &tui.Ports{
		Dataset:  datasetService,
		Query:    queryService,
		Settings: settingsService,
	}

	app, err := tui.NewApp(ports, path)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context()).WithExportDir(exportDir)

	p := tea.NewProgram(app, tea.WithAltScreen())

	if watchFile {
		cancel, err := startWatcher(cmd.Context(), tui.Notify(p))
		if err != nil {
			return err
		}
		defer cancel()
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
