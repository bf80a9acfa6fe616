package gasbuddy

import (
	"context"
	"fuelscraper/internal/stations"
)

const report_pager_next = "pager.next"

// stationPager walks the structured endpoint page by page. Each request
// depends on the cursor returned by the previous one, so pages are only ever
// fetched one after another.
type stationPager struct {
	client *client
	search string
	fuel   stations.FuelType

	cursor    string
	exhausted bool
	err       error
}

func (c *client) newStationPager(search string, fuel stations.FuelType, cursor string) *stationPager {
	return &stationPager{
		client:    c,
		search:    search,
		fuel:      fuel,
		cursor:    cursor,
		exhausted: cursor == "",
	}
}

// Next fetches the page at the current cursor. It returns false once the
// pager is exhausted, either because the provider has no further pages or
// because a request failed (see Err). A page that reports no next cursor is
// still returned, the pager is exhausted right after it.
func (p *stationPager) Next(ctx context.Context) ([]stations.StationRecord, bool) {
	if p.exhausted {
		return nil, false
	}

	page, err := p.client.QueryStations(ctx, p.search, p.fuel, p.cursor)
	if err != nil {
		p.client.tel.ReportWarning(report_pager_next, err, p.search, p.cursor)
		p.client.metrics.paginationFailures.Add(ctx, 1)
		p.err = err
		p.exhausted = true
		return nil, false
	}

	p.client.tel.ReportDebug(report_pager_next, p.cursor, page.Next, len(page.Records))
	p.cursor = page.Next
	p.exhausted = page.Next == ""
	return page.Records, true
}

// Exhausted reports whether Next will fetch anything further.
func (p *stationPager) Exhausted() bool {
	return p.exhausted
}

// Err returns the error that ended pagination, if any.
func (p *stationPager) Err() error {
	return p.err
}
