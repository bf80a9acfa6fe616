package gasbuddy

import (
	"bytes"
	"context"
	"fmt"
	"fuelscraper/internal/stations"
	"fuelscraper/pkg/htmlutil"
	"net/http"
	"strconv"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	report_page_fetch = "page.fetch"
	report_page_parse = "page.parse"
)

// css module class names of the server rendered results page
const (
	// any station list wrapper, the module hash suffix changes between deploys
	selectorStationList = "[class*='StationList'], [class*='stationList']"
	selectorStationItem = ".GenericStationListItem-module__stationListItem___3Jmn4"
	selectorName        = ".header__header3___1b1oq"
	selectorAddress     = ".StationDisplay-module__address___2_c7v"
	selectorPrice       = ".StationDisplayPrice-module__price___3rARL"
	selectorPostedTime  = ".ReportedBy-module__postedTime___J5H9Z"
)

// FetchPage requests the server rendered results page, which holds the
// first page of results.
func (c *client) FetchPage(ctx context.Context, query stations.Query) ([]stations.StationRecord, error) {
	ctx, span := tracer.Start(ctx, "page:fetch")
	defer span.End()

	span.SetAttributes(
		attribute.String("search", query.Search),
		attribute.Int("fuel", int(query.Fuel)),
		attribute.String("method", string(query.Method)),
	)

	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"search": query.Search,
			"fuel":   strconv.Itoa(int(query.Fuel)),
			"method": string(query.Method),
		}).
		Get("/home")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		c.tel.ReportBroken(report_page_fetch, fmt.Errorf("fetch: %w", err), query.Search)
		return nil, err
	}
	if res.StatusCode() != http.StatusOK {
		err := &StatusError{Operation: "page", Status: res.StatusCode(), Search: query.Search}
		span.RecordError(err)
		span.SetStatus(codes.Error, "unexpected status")
		c.tel.ReportBroken(report_page_fetch, err, query.Search, res.StatusCode())
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse html")
		c.tel.ReportBroken(report_page_parse, fmt.Errorf("parse: %w", err), query.Search)
		return nil, err
	}

	records, err := c.parsePage(doc)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "missing station list")
		c.tel.ReportBroken(report_page_parse, err, query.Search)
		return nil, err
	}

	span.SetAttributes(attribute.Int("records", len(records)))
	return records, nil
}

func (c *client) parsePage(doc *goquery.Document) ([]stations.StationRecord, error) {
	items := doc.Find(selectorStationItem)
	if items.Length() == 0 {
		if doc.Find(selectorStationList).Length() == 0 {
			return nil, ErrNoListings
		}
		// the list is there but the search matched no stations
		return []stations.StationRecord{}, nil
	}

	records := make([]stations.StationRecord, 0, items.Length())
	items.Each(func(i int, item *goquery.Selection) {
		name := htmlutil.Text(item.Find(selectorName))
		if name == "" {
			c.tel.ReportWarning(report_page_parse, fmt.Errorf("station %d: missing name", i))
		}
		price := htmlutil.Text(item.Find(selectorPrice))
		if price == "" {
			c.tel.ReportWarning(report_page_parse, fmt.Errorf("station %d: missing price", i), name)
		}

		records = append(records, stations.StationRecord{
			Name:         name,
			Address:      htmlutil.JoinLines(item.Find(selectorAddress), ", "),
			DisplayPrice: price,
			LastUpdated:  htmlutil.Text(item.Find(selectorPostedTime)),
		})
	})

	return records, nil
}
