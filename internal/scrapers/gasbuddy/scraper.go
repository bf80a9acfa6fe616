// scraper.go combines the results page and the structured endpoint into a
// single acquisition.

package gasbuddy

import (
	"context"
	"fuelscraper/internal/components/chrono"
	"fuelscraper/internal/components/telemetry"
	"fuelscraper/internal/stations"
)

const (
	report_scraper_acquire = "scraper.acquire"
)

// Result is the outcome of an acquisition.
type Result struct {
	// Records are normalized and in arrival order, records of the results page
	// come first.
	Records []stations.StationRecord
	// Pages is the amount of pages that were fetched successfully.
	Pages int
	// PaginationErr is the failure that cut pagination short, nil when
	// pagination ended because the page budget was spent or the provider ran
	// out of pages.
	PaginationErr error
}

// Scraper acquires station listings from gasbuddy.
type Scraper struct {
	client        *client
	tel           telemetry.API
	initialCursor string
}

func NewScraper(opts Options, tel telemetry.API, time chrono.TimeAPI) Scraper {
	tel = telemetry.NewScopedAPI("gasbuddy_scraper", tel)
	opts = opts.withDefaults()

	return Scraper{
		client:        newClient(opts, tel, time),
		tel:           tel,
		initialCursor: opts.InitialCursor,
	}
}

// Acquire fetches the results page, then keeps following the structured
// endpoint's cursor until query.Pages pages were fetched, a request fails or
// the provider has no further pages.
//
// An error is only returned when the results page itself could not be
// fetched. Failures past the first page end pagination and are reported in
// Result.PaginationErr, the pages fetched up to that point are kept.
func (s Scraper) Acquire(ctx context.Context, query stations.Query) (Result, error) {
	s.tel.ReportDebug(report_scraper_acquire, query)

	records, err := s.client.FetchPage(ctx, query)
	if err != nil {
		return Result{}, err
	}

	result := Result{
		Records: records,
		Pages:   1,
	}

	if query.Pages > 1 {
		pager := s.client.newStationPager(query.Search, query.Fuel, s.initialCursor)
		for result.Pages < query.Pages {
			page, ok := pager.Next(ctx)
			if !ok {
				break
			}
			result.Records = append(result.Records, page...)
			result.Pages++
		}
		result.PaginationErr = pager.Err()
	}

	result.Records = stations.NormalizeAll(result.Records)

	s.client.metrics.pages.Add(ctx, int64(result.Pages))
	s.client.metrics.records.Add(ctx, int64(len(result.Records)))
	s.tel.ReportCount(report_scraper_acquire, int64(len(result.Records)))
	return result, nil
}
