package stations

import (
	"errors"
	"fmt"
	"fuelscraper/internal/components/assert"
	"fuelscraper/internal/components/chrono"
	"fuelscraper/internal/components/telemetry"
	"slices"
	"strings"
	"time"
)

const report_sorter_last_updated = "sorter.last-updated"

// SortKey is the field records are ordered by.
type SortKey string

const (
	SORT_NAME         SortKey = "name"
	SORT_PRICE        SortKey = "price"
	SORT_LAST_UPDATED SortKey = "last_updated"
)

var ErrUnknownSortKey = errors.New("unknown sort key")

func ParseSortKey(text string) (SortKey, error) {
	key := SortKey(strings.ToLower(strings.TrimSpace(text)))
	switch key {
	case SORT_NAME, SORT_PRICE, SORT_LAST_UPDATED:
		return key, nil
	}
	return "", fmt.Errorf("%w: %q (expected name, price or last_updated)", ErrUnknownSortKey, text)
}

// Sorter orders records by one of their fields.
type Sorter struct {
	tel  telemetry.API
	time chrono.TimeAPI
}

func NewSorter(tel telemetry.API, time chrono.TimeAPI) Sorter {
	assert.NotNil(tel)
	assert.NotNil(time)
	return Sorter{
		tel:  telemetry.NewScopedAPI("stations", tel),
		time: time,
	}
}

// Sort returns a new slice ordered by the given key, the input is left as is.
// The sort is stable in both directions.
//
// Sorting by price drops every record without a normalized price. Sorting by
// last updated resolves relative times against the current time of the call,
// unparsable times count as the oldest possible instant.
func (s Sorter) Sort(records []StationRecord, key SortKey, ascending bool) ([]StationRecord, error) {
	var compare func(a, b StationRecord) int

	out := make([]StationRecord, 0, len(records))
	switch key {
	case SORT_NAME:
		out = append(out, records...)
		compare = func(a, b StationRecord) int {
			return strings.Compare(a.Name, b.Name)
		}
	case SORT_PRICE:
		for _, r := range records {
			if r.Price.Valid {
				out = append(out, r)
			}
		}
		compare = comparePrice
	case SORT_LAST_UPDATED:
		out = append(out, records...)
		now := s.time.Now()
		resolved := make(map[string]time.Time, len(out))
		for _, r := range out {
			if _, ok := resolved[r.LastUpdated]; ok {
				continue
			}
			resolved[r.LastUpdated] = s.updatedSortKey(r.LastUpdated, now)
		}
		compare = func(a, b StationRecord) int {
			return resolved[a.LastUpdated].Compare(resolved[b.LastUpdated])
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSortKey, key)
	}

	if ascending {
		slices.SortStableFunc(out, compare)
	} else {
		slices.SortStableFunc(out, func(a, b StationRecord) int {
			return compare(b, a)
		})
	}
	return out, nil
}

// missing prices compare as positive infinity
func comparePrice(a, b StationRecord) int {
	switch {
	case !a.Price.Valid && !b.Price.Valid:
		return 0
	case !a.Price.Valid:
		return 1
	case !b.Price.Valid:
		return -1
	}
	return a.Price.Decimal.Cmp(b.Price.Decimal)
}

func (s Sorter) updatedSortKey(text string, now time.Time) time.Time {
	if text == "" || text == NotAvailable {
		return time.Time{}
	}
	t, err := ParseUpdated(text, now)
	if err != nil {
		s.tel.ReportWarning(report_sorter_last_updated, err)
		return time.Time{}
	}
	return t
}
