package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/dtindex/internal/core/services"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load the dataset and report what was read",
	Long: `Loads the dataset file, validates its columns and prints a summary.

CSV files are decoded with the first encoding in loader.encodings that
reads the whole file.`,
	Args: cobra.NoArgs,
	RunE: runLoad,
}

func init() {
	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, _ []string) error {
	ds, err := loadDataset(cmd.Context())
	if err != nil {
		return err
	}

	cmd.Println(services.LoadMessage(ds))
	cmd.Printf("  Path:     %s\n", ds.Path)
	cmd.Printf("  Format:   %s\n", ds.Format)
	if ds.Encoding != "" {
		cmd.Printf("  Encoding: %s\n", ds.Encoding)
	}
	if years := ds.Years(); len(years) > 0 {
		cmd.Printf("  Years:    %d-%d\n", years[0], years[len(years)-1])
	}
	return nil
}
