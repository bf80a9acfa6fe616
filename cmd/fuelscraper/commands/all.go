package commands

import (
	"fuelscraper/internal/report"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	allQuery queryFlags
	allBy    *string
	allDesc  *bool
)

func init() {
	allQuery = addQueryFlags(allCmd)
	allBy = allCmd.Flags().String("by", "price", "The field to sort by, name, price or last_updated.")
	allDesc = allCmd.Flags().Bool("desc", false, "Sort in descending order.")
	rootCmd.AddCommand(allCmd)
}

var allCmd = &cobra.Command{
	Use:   "all --search <city or postal code> [--by <field>] [--desc]",
	Short: "Scrapes, saves, sorts and graphs in one go.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		query, format, err := allQuery.query()
		if err != nil {
			return err
		}

		records, err := acquire(cmd.Context(), query, *allQuery.db)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			slog.Warn("no stations found", "search", query.Search)
			return nil
		}

		path, err := saveRecords("gas_prices", format, records)
		if err != nil {
			return err
		}
		slog.Info("saved stations", "path", path)

		sorted, err := sortRecords(records, *allBy, *allDesc)
		if err != nil {
			return err
		}
		path, err = saveRecords("sorted_gas_prices", format, sorted)
		if err != nil {
			return err
		}
		report.Records(os.Stdout, sorted)
		slog.Info("saved sorted stations", "by", *allBy, "path", path)

		return graphRecords(sorted)
	},
}
