package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/dtindex/internal/core/domain"
	"github.com/custodia-labs/dtindex/internal/core/services"
)

var (
	searchBy     string
	searchYear   string
	searchJSON   bool
	searchTrend  bool
	searchExport string
)

var searchCmd = &cobra.Command{
	Use:   "search [term]",
	Short: "Look up index values by stock code or company name",
	Long: `Looks up every record whose stock code or company name contains the term.

Stock codes are zero padded to six digits before matching, so "8" looks for
"000008". Company names match case-insensitively.

Examples:
  dtindex search 600008
  dtindex search --by name 首创 --year 2010
  dtindex search 600008 --trend
  dtindex search 600008 --export results/`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchBy, "by", "b", "code", "search field: code or name")
	searchCmd.Flags().StringVarP(&searchYear, "year", "y", "all", "restrict to one year, or all")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().BoolVar(&searchTrend, "trend", false, "print each company's index over all years")
	searchCmd.Flags().StringVarP(&searchExport, "export", "e", "",
		"write results as CSV to a file, a directory, or - for stdout")
	rootCmd.AddCommand(searchCmd)
}

// searchOutput is the JSON shape of a search.
type searchOutput struct {
	Term       string               `json:"term"`
	Mode       domain.SearchMode    `json:"mode"`
	Year       string               `json:"year"`
	Stats      *domain.Stats        `json:"stats,omitempty"`
	Filtered   []domain.Record      `json:"filtered"`
	AllYears   []domain.Record      `json:"all_years"`
	Trend      []domain.TrendSeries `json:"trend,omitempty"`
	Diagnostic string               `json:"diagnostic,omitempty"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	if queryService == nil {
		return errors.New("query service not configured")
	}

	term := args[0]
	if err := domain.ValidateTerm(term); err != nil {
		return err
	}
	mode, err := domain.ParseSearchMode(searchBy)
	if err != nil {
		return err
	}
	year, err := domain.ParseYearFilter(searchYear)
	if err != nil {
		return err
	}

	ds, err := loadDataset(cmd.Context())
	if err != nil {
		return err
	}

	req := domain.QueryRequest{Term: term, Mode: mode, Year: year}
	result := queryService.Query(cmd.Context(), ds, req)
	if result.Diagnostic != "" {
		cmd.PrintErrf("Warning: %s\n", result.Diagnostic)
	}

	if searchExport != "" {
		if err := exportResult(cmd, result); err != nil {
			return err
		}
		if searchExport == "-" {
			return nil
		}
	}

	if searchJSON {
		return outputSearchJSON(cmd, result)
	}
	return outputSearchTable(cmd, result)
}

func outputSearchJSON(cmd *cobra.Command, result *domain.QueryResult) error {
	out := searchOutput{
		Term:       result.Request.Term,
		Mode:       result.Request.Mode,
		Year:       result.Request.Year.String(),
		Filtered:   result.Filtered,
		AllYears:   result.AllYears,
		Diagnostic: result.Diagnostic,
	}
	if stats, ok := queryService.Summarize(result.Filtered); ok {
		out.Stats = &stats
	}
	if searchTrend {
		out.Trend = services.Trend(result.AllYears)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, result *domain.QueryResult) error {
	stats, ok := queryService.Summarize(result.Filtered)
	if !ok {
		cmd.Printf("No records match %q. Try a stock code such as %s.\n",
			result.Request.Term, domain.NoMatchHint)
		return nil
	}

	cmd.Println(stats.Headline(result.Request.Year))
	cmd.Println(stats.Spread())
	cmd.Println(recordTable(result.Filtered, terminalWidth(cmd)))

	if searchTrend {
		cmd.Println()
		cmd.Println("Trend:")
		for _, s := range services.Trend(result.AllYears) {
			cmd.Printf("  %s\n", trendLine(s))
		}
	}
	return nil
}

// exportResult writes the filtered records as CSV. A directory target
// receives the default export file name.
func exportResult(cmd *cobra.Command, result *domain.QueryResult) error {
	if searchExport == "-" {
		return services.WriteCSV(cmd.OutOrStdout(), result.Filtered)
	}

	path := searchExport
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, services.ExportFileName(result.Request.Term, result.Request.Year))
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	if err := writeAndClose(f, result.Filtered); err != nil {
		return fmt.Errorf("failed to export results: %w", err)
	}
	cmd.PrintErrf("Exported %d records to %s\n", len(result.Filtered), path)
	return nil
}

func writeAndClose(w io.WriteCloser, records []domain.Record) error {
	if err := services.WriteCSV(w, records); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}
