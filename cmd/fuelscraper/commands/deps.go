package commands

import (
	"database/sql"
	"fuelscraper/internal/components/chrono"
	"fuelscraper/internal/components/telemetry"
	"fuelscraper/internal/history"
	"fuelscraper/internal/scrapers/gasbuddy"
	"fuelscraper/internal/stations"
)

var (
	clock = chrono.NewStandardTime()
	tel   = telemetry.SlogAPI{}
)

func newScraper() (gasbuddy.Scraper, error) {
	opts, err := cfg.scraperOptions()
	if err != nil {
		return gasbuddy.Scraper{}, err
	}
	return gasbuddy.NewScraper(opts, tel, clock), nil
}

func newSorter() stations.Sorter {
	return stations.NewSorter(tel, clock)
}

// openHistory returns a nil database when no history database is configured.
func openHistory(path string) (*sql.DB, error) {
	if path == "" {
		path = cfg.Db
	}
	if path == "" {
		return nil, nil
	}
	return history.OpenDB(path)
}
