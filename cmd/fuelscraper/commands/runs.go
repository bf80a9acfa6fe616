package commands

import (
	"errors"
	"fmt"
	"fuelscraper/internal/export"
	"fuelscraper/internal/history"
	"fuelscraper/internal/report"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	runsDb     *string
	runsExport *string
)

func init() {
	runsDb = runsCmd.Flags().String("db", "", "The history database, defaults to the db of the config.")
	runsExport = runsCmd.Flags().String("export", "", "Save the records of the given run to a file of this format, csv or txt.")
	rootCmd.AddCommand(runsCmd)
}

var runsCmd = &cobra.Command{
	Use:   "runs [run id] [--db <path/to/history.db>] [--export <csv|txt>]",
	Short: "Lists the recorded acquisitions, or the stations of a single one.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := openHistory(*runsDb)
		if err != nil {
			return err
		}
		if database == nil {
			return errors.New("no history database, pass --db or set db in the config")
		}
		defer database.Close()
		store := history.NewStore(database)

		if len(args) == 0 {
			runs, err := store.Runs(cmd.Context())
			if err != nil {
				return err
			}
			report.Runs(os.Stdout, runs)
			return nil
		}

		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid run id %q: %w", args[0], err)
		}
		records, err := store.Records(cmd.Context(), id)
		if err != nil {
			return err
		}
		report.Records(os.Stdout, records)

		if *runsExport != "" {
			format, err := export.ParseFormat(*runsExport)
			if err != nil {
				return err
			}
			path, err := saveRecords("run_"+id.String(), format, records)
			if err != nil {
				return err
			}
			slog.Info("saved run", "path", path)
		}
		return nil
	},
}
