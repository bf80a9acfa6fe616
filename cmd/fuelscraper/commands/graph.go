package commands

import (
	"fuelscraper/internal/chart"
	"fuelscraper/internal/report"
	"fuelscraper/internal/stations"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(graphCmd)
}

func graphRecords(records []stations.StationRecord) error {
	summary, err := chart.Summarize(records)
	if err != nil {
		return err
	}

	name := "gas_prices_" + clock.Now().Local().Format("20060102150405") + ".svg"
	path, err := writeFile(name, func(w io.Writer) error {
		return chart.RenderSVG(w, records)
	})
	if err != nil {
		return err
	}

	report.Summary(os.Stdout, summary)
	slog.Info("saved graph", "path", path)
	return nil
}

var graphCmd = &cobra.Command{
	Use:   "graph <file.csv>",
	Short: "Draws a bar chart of the prices in a saved file.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		records, _, err := loadRecords(args[0])
		if err != nil {
			return err
		}
		return graphRecords(records)
	},
}
