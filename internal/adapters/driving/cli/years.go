package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var yearsCmd = &cobra.Command{
	Use:   "years",
	Short: "List the years present in the dataset",
	Args:  cobra.NoArgs,
	RunE:  runYears,
}

func init() {
	rootCmd.AddCommand(yearsCmd)
}

func runYears(cmd *cobra.Command, _ []string) error {
	ds, err := loadDataset(cmd.Context())
	if err != nil {
		return err
	}

	years := ds.Years()
	if len(years) == 0 {
		cmd.Println("Dataset has no records.")
		return nil
	}
	parts := make([]string, len(years))
	for i, y := range years {
		parts[i] = strconv.Itoa(y)
	}
	cmd.Println(strings.Join(parts, " "))
	return nil
}
