package commands

import (
	"fuelscraper/internal/report"
	"fuelscraper/internal/stations"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	sortBy   *string
	sortDesc *bool
)

func init() {
	sortBy = sortCmd.Flags().String("by", "price", "The field to sort by, name, price or last_updated.")
	sortDesc = sortCmd.Flags().Bool("desc", false, "Sort in descending order.")
	rootCmd.AddCommand(sortCmd)
}

func sortRecords(records []stations.StationRecord, by string, desc bool) ([]stations.StationRecord, error) {
	key, err := stations.ParseSortKey(by)
	if err != nil {
		return nil, err
	}
	sorted, err := newSorter().Sort(records, key, !desc)
	if err != nil {
		return nil, err
	}
	if dropped := len(records) - len(sorted); dropped > 0 {
		slog.Info("stations without a price were left out", "count", dropped)
	}
	return sorted, nil
}

var sortCmd = &cobra.Command{
	Use:   "sort <file.csv> [--by <name|price|last_updated>] [--desc]",
	Short: "Sorts a saved file and saves the result as sorted_<file>.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		records, format, err := loadRecords(args[0])
		if err != nil {
			return err
		}

		sorted, err := sortRecords(records, *sortBy, *sortDesc)
		if err != nil {
			return err
		}

		path, err := saveRecords("sorted_"+stem(args[0]), format, sorted)
		if err != nil {
			return err
		}
		report.Records(os.Stdout, sorted)
		slog.Info("saved sorted stations", "by", *sortBy, "path", path)
		return nil
	},
}
