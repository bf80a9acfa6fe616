package gasbuddy

import (
	"fmt"
	"fuelscraper/internal/components/telemetry"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

var meter = otel.Meter("fuelscraper/scrapers/gasbuddy")

const report_metrics_init = "metrics.init"

type scraperMetrics struct {
	pages              metric.Int64Counter
	records            metric.Int64Counter
	paginationFailures metric.Int64Counter
}

func newScraperMetrics(m metric.Meter, tel telemetry.API) scraperMetrics {
	counter := func(name, description string) metric.Int64Counter {
		c, err := m.Int64Counter(name, metric.WithDescription(description))
		if err != nil {
			tel.ReportBroken(report_metrics_init, fmt.Errorf("counter %s: %w", name, err))
			return noop.Int64Counter{}
		}
		return c
	}

	return scraperMetrics{
		pages: counter(
			"gasbuddy_pages_total",
			"The total amount of result pages fetched successfully.",
		),
		records: counter(
			"gasbuddy_records_total",
			"The total amount of station records acquired.",
		),
		paginationFailures: counter(
			"gasbuddy_pagination_failures_total",
			"The total amount of times pagination was cut short by a failed request.",
		),
	}
}
