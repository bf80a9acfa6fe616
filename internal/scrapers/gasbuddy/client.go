package gasbuddy

import (
	"errors"
	"fmt"
	"fuelscraper/internal/components/assert"
	"fuelscraper/internal/components/chrono"
	"fuelscraper/internal/components/telemetry"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

var tracer = otel.Tracer("fuelscraper/scrapers/gasbuddy")

const (
	DefaultBaseUrl       = "https://www.gasbuddy.com"
	DefaultUserAgent     = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/58.0.3029.110 Safari/537.3"
	DefaultTimeout       = 30 * time.Second
	DefaultInitialCursor = "40"
)

// ErrNoListings is returned when the results page does not contain the
// station list at all, which usually means the page layout changed.
var ErrNoListings = errors.New("gasbuddy: no station listings on results page")

// StatusError is returned when the provider answers with anything but 200.
type StatusError struct {
	// Operation is either "page" or the graphql operation name.
	Operation string
	Status    int
	Search    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("gasbuddy: %s request for %q: unexpected status %d", e.Operation, e.Search, e.Status)
}

type Options struct {
	BaseUrl   string
	UserAgent string
	Timeout   time.Duration
	// InitialCursor is the cursor used to request the second page of results.
	InitialCursor string
	// Dump receives every http exchange when set.
	Dump telemetry.HttpDump
	// Meter records page and record counters, defaults to the global meter
	// provider.
	Meter metric.Meter
}

func (o Options) withDefaults() Options {
	if o.BaseUrl == "" {
		o.BaseUrl = DefaultBaseUrl
	}
	if o.UserAgent == "" {
		o.UserAgent = DefaultUserAgent
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.InitialCursor == "" {
		o.InitialCursor = DefaultInitialCursor
	}
	if o.Meter == nil {
		o.Meter = meter
	}
	return o
}

type client struct {
	http    *resty.Client
	tel     telemetry.API
	time    chrono.TimeAPI
	metrics scraperMetrics
}

func newClient(opts Options, tel telemetry.API, time chrono.TimeAPI) *client {
	assert.NotNil(tel)
	assert.NotNil(time)
	assert.NotEmptyStr(opts.BaseUrl)

	httpClient := resty.New()
	httpClient.SetBaseURL(opts.BaseUrl)
	httpClient.SetTimeout(opts.Timeout)
	httpClient.SetHeader("user-agent", opts.UserAgent)

	telemetry.InstrumentResty(httpClient, tel, opts.Dump)

	return &client{
		http:    httpClient,
		tel:     tel,
		time:    time,
		metrics: newScraperMetrics(opts.Meter, tel),
	}
}
