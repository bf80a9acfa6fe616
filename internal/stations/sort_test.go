package stations

import (
	"fuelscraper/internal/components/chrono"
	"fuelscraper/internal/components/telemetry"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

var sortNow = time.Date(2024, time.May, 10, 18, 0, 0, 0, time.UTC)

func newTestSorter() (Sorter, *telemetry.TestAPI) {
	tel := &telemetry.TestAPI{}
	return NewSorter(tel, chrono.FixedTime{At: sortNow}), tel
}

func names(records []StationRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Name
	}
	return out
}

func priced(name, price string) StationRecord {
	return Normalize(StationRecord{Name: name, DisplayPrice: price})
}

func TestSortPriceDropsMissing(t *testing.T) {
	sorter, _ := newTestSorter()
	records := []StationRecord{
		priced("none", ""),
		priced("two", "20"),
		priced("one", "10"),
	}

	sorted, err := sorter.Sort(records, SORT_PRICE, true)
	require.NoError(t, err)
	require.Equal(t, []string{"one", "two"}, names(sorted))

	sorted, err = sorter.Sort(records, SORT_PRICE, false)
	require.NoError(t, err)
	require.Equal(t, []string{"two", "one"}, names(sorted))

	// the input is untouched
	require.Equal(t, []string{"none", "two", "one"}, names(records))
}

func TestSortNameKeepsMissingPrice(t *testing.T) {
	sorter, _ := newTestSorter()
	records := []StationRecord{
		priced("Costco", "20"),
		priced("Arco", ""),
		priced("Shell", "10"),
	}

	sorted, err := sorter.Sort(records, SORT_NAME, true)
	require.NoError(t, err)
	require.Equal(t, []string{"Arco", "Costco", "Shell"}, names(sorted))

	sorted, err = sorter.Sort(records, SORT_NAME, false)
	require.NoError(t, err)
	require.Equal(t, []string{"Shell", "Costco", "Arco"}, names(sorted))
}

func TestSortIsStable(t *testing.T) {
	sorter, _ := newTestSorter()
	records := []StationRecord{
		{Name: "a", DisplayPrice: "399", Address: "1"},
		{Name: "b", DisplayPrice: "389", Address: "2"},
		{Name: "a", DisplayPrice: "379", Address: "3"},
		{Name: "a", DisplayPrice: "369", Address: "4"},
	}
	records = NormalizeAll(records)

	addresses := func(records []StationRecord) []string {
		out := make([]string, len(records))
		for i, r := range records {
			out[i] = r.Address
		}
		return out
	}

	sorted, err := sorter.Sort(records, SORT_NAME, true)
	require.NoError(t, err)
	require.Equal(t, []string{"1", "3", "4", "2"}, addresses(sorted))

	sorted, err = sorter.Sort(records, SORT_NAME, false)
	require.NoError(t, err)
	require.Equal(t, []string{"2", "1", "3", "4"}, addresses(sorted))
}

func TestSortLastUpdated(t *testing.T) {
	sorter, tel := newTestSorter()
	records := []StationRecord{
		{Name: "recent", LastUpdated: "2 hours ago"},
		{Name: "old", LastUpdated: "2024-05-01"},
		{Name: "garbage", LastUpdated: "sometime"},
		{Name: "now", LastUpdated: "Less than an hour ago"},
		{Name: "missing"},
		{Name: "yesterday", LastUpdated: "2024-05-09"},
	}

	sorted, err := sorter.Sort(records, SORT_LAST_UPDATED, true)
	require.NoError(t, err)
	if diff := cmp.Diff(
		[]string{"garbage", "missing", "old", "yesterday", "recent", "now"},
		names(sorted),
	); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}

	require.Len(t, tel.Reports("warning", report_sorter_last_updated), 1)

	sorted, err = sorter.Sort(records, SORT_LAST_UPDATED, false)
	require.NoError(t, err)
	require.Equal(
		t,
		[]string{"now", "recent", "yesterday", "old", "garbage", "missing"},
		names(sorted),
	)
}

func TestParseSortKey(t *testing.T) {
	key, err := ParseSortKey(" Price ")
	require.NoError(t, err)
	require.Equal(t, SORT_PRICE, key)

	_, err = ParseSortKey("distance")
	require.ErrorIs(t, err, ErrUnknownSortKey)

	sorter, _ := newTestSorter()
	_, err = sorter.Sort(nil, SortKey("distance"), true)
	require.ErrorIs(t, err, ErrUnknownSortKey)
}

func TestParseSelectors(t *testing.T) {
	fuel, err := ParseFuelType("Diesel")
	require.NoError(t, err)
	require.Equal(t, FUEL_DIESEL, fuel)

	fuel, err = ParseFuelType("6")
	require.NoError(t, err)
	require.Equal(t, FUEL_UNL88, fuel)

	_, err = ParseFuelType("7")
	require.Error(t, err)

	method, err := ParsePaymentMethod("CREDIT")
	require.NoError(t, err)
	require.Equal(t, PAYMENT_CREDIT, method)

	_, err = ParsePaymentMethod("cash")
	require.Error(t, err)
}

func TestFromText(t *testing.T) {
	record := FromText("Shell", "1 Main St", NotAvailable, NotAvailable)
	require.Equal(t, "", record.DisplayPrice)
	require.False(t, record.Price.Valid)
	require.Equal(t, NotAvailable, record.PriceText())
	require.Equal(t, NotAvailable, record.LastUpdatedText())

	record = FromText("Shell", "1 Main St", "399¢", "3 hours ago")
	require.True(t, record.Price.Valid)
	require.Equal(t, "399¢", record.PriceText())
	require.Equal(t, "3 hours ago", record.LastUpdatedText())
}
