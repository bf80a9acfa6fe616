package commands

import (
	"context"
	"fmt"
	"fuelscraper/internal/export"
	"fuelscraper/internal/history"
	"fuelscraper/internal/report"
	"fuelscraper/internal/stations"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
)

type queryFlags struct {
	search *string
	fuel   *string
	method *string
	pages  *int
	format *string
	db     *string
}

func addQueryFlags(cmd *cobra.Command) queryFlags {
	flags := queryFlags{
		search: cmd.Flags().String("search", "", "The city or postal code to search for."),
		fuel:   cmd.Flags().String("fuel", "regular", "The fuel type, 1-6 or one of regular, midgrade, premium, diesel, e85, unl88."),
		method: cmd.Flags().String("method", "all", "The payment method, all or credit."),
		pages:  cmd.Flags().Int("pages", 1, "The amount of result pages to fetch."),
		format: cmd.Flags().String("format", "csv", "The output file format, csv or txt."),
		db:     cmd.Flags().String("db", "", "The history database to record the acquisition in, defaults to the db of the config."),
	}
	cmd.MarkFlagRequired("search")
	return flags
}

func (f queryFlags) query() (stations.Query, export.Format, error) {
	fuel, err := stations.ParseFuelType(*f.fuel)
	if err != nil {
		return stations.Query{}, "", err
	}
	method, err := stations.ParsePaymentMethod(*f.method)
	if err != nil {
		return stations.Query{}, "", err
	}
	format, err := export.ParseFormat(*f.format)
	if err != nil {
		return stations.Query{}, "", err
	}
	if *f.pages < 1 {
		return stations.Query{}, "", fmt.Errorf("--pages must be at least 1, got %d", *f.pages)
	}
	return stations.Query{
		Search: *f.search,
		Fuel:   fuel,
		Method: method,
		Pages:  *f.pages,
	}, format, nil
}

// acquire runs an acquisition and records it in the history database if
// one is configured.
func acquire(ctx context.Context, query stations.Query, dbPath string) ([]stations.StationRecord, error) {
	scraper, err := newScraper()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	result, err := scraper.Acquire(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("acquire: %w", err)
	}
	if result.PaginationErr != nil {
		slog.Warn(
			"pagination stopped early, keeping the pages fetched so far",
			"pages", result.Pages,
			"err", result.PaginationErr,
		)
	}
	slog.Info(
		"acquired stations",
		"search", query.Search,
		"stations", len(result.Records),
		"pages", result.Pages,
		"seconds", time.Since(start).Seconds(),
	)

	database, err := openHistory(dbPath)
	if err != nil {
		return nil, err
	}
	if database != nil {
		defer database.Close()
		id, err := history.NewStore(database).SaveRun(ctx, history.RunParams{
			Query:     query,
			FetchedAt: clock.Now(),
		}, result.Records)
		if err != nil {
			return nil, fmt.Errorf("record run: %w", err)
		}
		slog.Info("recorded run", "id", id)
	}

	return result.Records, nil
}

var (
	scrapeQuery  queryFlags
	scrapePrefix *string
)

func init() {
	scrapeQuery = addQueryFlags(scrapeCmd)
	scrapePrefix = scrapeCmd.Flags().String("out", "scraped_gas_prices", "The prefix of the output file name.")
	rootCmd.AddCommand(scrapeCmd)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape --search <city or postal code> [--fuel <type>] [--method <all|credit>] [--pages <n>] [--format <csv|txt>]",
	Short: "Scrapes station prices and saves them to a file.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		query, format, err := scrapeQuery.query()
		if err != nil {
			return err
		}

		records, err := acquire(cmd.Context(), query, *scrapeQuery.db)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			slog.Warn("no stations found", "search", query.Search)
			return nil
		}

		path, err := saveRecords(*scrapePrefix, format, records)
		if err != nil {
			return err
		}
		report.Records(os.Stdout, records)
		slog.Info("saved stations", "path", path)
		return nil
	},
}
