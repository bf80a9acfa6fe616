package stations

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// the provider encodes prices in tenths of its display unit, so "3999" is 399.9
const priceScaleExponent = -1

// NormalizePrice strips every non-digit character from a display price and
// interprets the remaining digits as tenths of the display unit.
// "3999" -> 399.9, "$3.99" -> 39.9, "N/A" -> invalid.
func NormalizePrice(display string) decimal.NullDecimal {
	var digits strings.Builder
	for _, c := range display {
		if c >= '0' && c <= '9' {
			digits.WriteRune(c)
		}
	}
	if digits.Len() == 0 {
		return decimal.NullDecimal{}
	}

	value, err := decimal.NewFromString(digits.String())
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(value.Shift(priceScaleExponent))
}

// Normalize returns a copy of the record with its price normalized from its
// display price. It is idempotent.
func Normalize(record StationRecord) StationRecord {
	record.Price = NormalizePrice(record.DisplayPrice)
	return record
}

// NormalizeAll normalizes every record, preserving order.
func NormalizeAll(records []StationRecord) []StationRecord {
	out := make([]StationRecord, len(records))
	for i, r := range records {
		out[i] = Normalize(r)
	}
	return out
}

const (
	dateLayout         = "2006-01-02"
	lessThanAnHourText = "Less than an hour ago"
)

// ParsePostedTime parses the ISO-8601 timestamps the provider posts prices
// with. Timestamps without an offset are taken to be UTC.
func ParsePostedTime(text string) (time.Time, error) {
	text = strings.TrimSpace(text)
	t, err := time.Parse(time.RFC3339Nano, text)
	if err == nil {
		return t.UTC(), nil
	}
	t, naiveErr := time.ParseInLocation("2006-01-02T15:04:05.999999999", text, time.UTC)
	if naiveErr == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("parse posted time %q: %w", text, err)
}

// FormatUpdated renders a posted time relative to now: "<N> hours ago" when
// less than a day has passed ("Less than an hour ago" under an hour) and the
// UTC date otherwise.
func FormatUpdated(posted, now time.Time) string {
	elapsed := now.Sub(posted)
	if elapsed < 24*time.Hour {
		hours := int(elapsed / time.Hour)
		if hours > 0 {
			return fmt.Sprintf("%d hours ago", hours)
		}
		return lessThanAnHourText
	}
	return posted.UTC().Format(dateLayout)
}

var hoursAgoRegex = regexp.MustCompile(`(?i)^(\d+) hours? ago$`)

// ParseUpdated reconstructs an approximate instant out of a rendered last
// updated value. Relative values resolve against now, so the result drifts
// with the time it is called at.
func ParseUpdated(text string, now time.Time) (time.Time, error) {
	text = strings.TrimSpace(text)

	if strings.EqualFold(text, lessThanAnHourText) {
		return now, nil
	}

	match := hoursAgoRegex.FindStringSubmatch(text)
	if len(match) == 2 {
		hours, err := strconv.Atoi(match[1])
		if err != nil {
			return time.Time{}, fmt.Errorf("parse hours in %q: %w", text, err)
		}
		return now.Add(-time.Duration(hours) * time.Hour), nil
	}

	date, err := time.ParseInLocation(dateLayout, text, time.UTC)
	if err == nil {
		return date, nil
	}

	posted, err := ParsePostedTime(text)
	if err == nil {
		return posted, nil
	}

	return time.Time{}, fmt.Errorf("unrecognized last updated value %q", text)
}
