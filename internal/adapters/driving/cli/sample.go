package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var sampleLimit int

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Show the first records of the dataset",
	Args:  cobra.NoArgs,
	RunE:  runSample,
}

func init() {
	sampleCmd.Flags().IntVarP(&sampleLimit, "limit", "n", 10, "number of records to show")
	rootCmd.AddCommand(sampleCmd)
}

func runSample(cmd *cobra.Command, _ []string) error {
	if sampleLimit < 1 {
		return fmt.Errorf("limit must be positive, got %d", sampleLimit)
	}

	ds, err := loadDataset(cmd.Context())
	if err != nil {
		return err
	}

	cmd.Println(recordTable(ds.Head(sampleLimit), terminalWidth(cmd)))
	return nil
}
