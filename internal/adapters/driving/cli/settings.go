package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change settings stored in config.toml.

Keys:
  dataset.path      dataset file (CSV, TSV or Excel)
  dataset.sheet     worksheet to read from Excel files (default: first)
  loader.encodings  comma separated CSV encodings, tried in order
  cache.ttl         how long a loaded dataset is reused, e.g. 30m`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Example: `  dtindex settings set dataset.path ./汇总.xlsx
  dtindex settings set loader.encodings utf-8-sig,gb18030`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsUnsetCmd = &cobra.Command{
	Use:   "unset [key]",
	Short: "Restore a setting to its default",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsUnset,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsUnsetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Dataset]")
	cmd.Printf("  Path: %s\n", settings.Dataset.Path)
	sheet := settings.Dataset.Sheet
	if sheet == "" {
		sheet = "(first sheet)"
	}
	cmd.Printf("  Sheet: %s\n", sheet)
	cmd.Println()

	cmd.Println("[Loader]")
	cmd.Printf("  Encodings: %s\n", strings.Join(settings.Loader.Encodings, ", "))
	cmd.Println()

	cmd.Println("[Cache]")
	ttl := settings.Cache.TTL.String()
	if settings.Cache.TTL == 0 {
		ttl = "never expires"
	}
	cmd.Printf("  TTL: %s\n", ttl)
	cmd.Println()

	cmd.Printf("Config file: %s\n", settingsService.ConfigPath())
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	cmd.Printf("Set %s = %s\n", key, value)
	return nil
}

func runSettingsUnset(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.Unset(args[0]); err != nil {
		return fmt.Errorf("failed to unset %s: %w", args[0], err)
	}
	cmd.Printf("Unset %s\n", args[0])
	return nil
}
