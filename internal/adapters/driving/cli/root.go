// Package cli implements the dtindex command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/dtindex/internal/core/domain"
	"github.com/custodia-labs/dtindex/internal/core/ports/driving"
	"github.com/custodia-labs/dtindex/internal/logger"
)

// version is set at build time.
var version = "dev"

// Services used by the commands. Set by SetServices.
var (
	datasetService  driving.DatasetService
	queryService    driving.QueryService
	settingsService driving.SettingsService
)

// Global flags.
var (
	verbose     bool
	datasetFile string
)

var rootCmd = &cobra.Command{
	Use:   "dtindex",
	Short: "Look up the digital transformation index of listed companies",
	Long: `dtindex loads the yearly digital transformation index of Chinese listed
companies (1999-2023) from a CSV or Excel file and answers lookups by stock
code or company name.

The dataset path comes from --file, or from the dataset.path setting.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug logs to stderr")
	rootCmd.PersistentFlags().StringVarP(&datasetFile, "file", "f", "", "dataset file (overrides dataset.path)")
}

// Services groups the driving ports the commands call.
type Services struct {
	Dataset  driving.DatasetService
	Query    driving.QueryService
	Settings driving.SettingsService
}

// SetServices sets the services used by all commands.
func SetServices(s Services) {
	datasetService = s.Dataset
	queryService = s.Query
	settingsService = s.Settings
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// datasetPath returns --file when given, else the configured path.
func datasetPath() (string, error) {
	if p := strings.TrimSpace(datasetFile); p != "" {
		return p, nil
	}
	if settingsService == nil {
		return domain.DefaultDatasetPath, nil
	}
	settings, err := settingsService.Get()
	if err != nil {
		return "", fmt.Errorf("failed to get settings: %w", err)
	}
	return settings.Dataset.Path, nil
}

// loadDataset loads the dataset for the current invocation.
func loadDataset(ctx context.Context) (*domain.Dataset, error) {
	if datasetService == nil {
		return nil, errors.New("dataset service not configured")
	}
	path, err := datasetPath()
	if err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ds, err := datasetService.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}
	return ds, nil
}
