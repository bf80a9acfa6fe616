package fillcost

import (
	"fuelscraper/internal/stations"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func records(prices ...string) []stations.StationRecord {
	out := make([]stations.StationRecord, len(prices))
	for i, p := range prices {
		out[i] = stations.FromText("station", "addr", p, "1 hours ago")
	}
	return out
}

func totals(lines []Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.TotalText()
	}
	return out
}

func TestComputeCents(t *testing.T) {
	table := []struct {
		name     string
		fill     Fill
		expected []string
	}{
		{
			name:     "litres without tax",
			fill:     Fill{Quantity: dec("40"), Unit: UNIT_LITRE, TaxPercent: dec("0")},
			expected: []string{"$55.96", "N/A", "$60.00"},
		},
		{
			name:     "litres with tax",
			fill:     Fill{Quantity: dec("40"), Unit: UNIT_LITRE, TaxPercent: dec("13")},
			expected: []string{"$63.23", "N/A", "$67.80"},
		},
		{
			name: "us gallons",
			fill: Fill{Quantity: dec("10"), Unit: UNIT_US_GALLON, TaxPercent: dec("0")},
			// 37.8541 l
			expected: []string{"$52.96", "N/A", "$56.78"},
		},
		{
			name: "uk gallons",
			fill: Fill{Quantity: dec("10"), Unit: UNIT_UK_GALLON, TaxPercent: dec("0")},
			// 45.4609 l
			expected: []string{"$63.60", "N/A", "$68.19"},
		},
	}

	for _, row := range table {
		t.Run(row.name, func(t *testing.T) {
			lines, err := Compute(records("139.9¢", "---", "150.0¢"), row.fill)
			require.NoError(t, err)
			require.Equal(t, row.expected, totals(lines))
		})
	}
}

func TestComputeDollars(t *testing.T) {
	table := []struct {
		name     string
		fill     Fill
		expected []string
	}{
		{
			name:     "us gallons",
			fill:     Fill{Quantity: dec("10"), Unit: UNIT_US_GALLON, TaxPercent: dec("0")},
			expected: []string{"$31.90", "$40.00"},
		},
		{
			name:     "us gallons with tax",
			fill:     Fill{Quantity: dec("10"), Unit: UNIT_US_GALLON, TaxPercent: dec("10")},
			expected: []string{"$35.09", "$44.00"},
		},
		{
			name: "litres",
			fill: Fill{Quantity: dec("37.8541"), Unit: UNIT_LITRE, TaxPercent: dec("0")},
			// exactly 10 us gallons
			expected: []string{"$31.90", "$40.00"},
		},
	}

	for _, row := range table {
		t.Run(row.name, func(t *testing.T) {
			lines, err := Compute(records("$3.19", "$4.00"), row.fill)
			require.NoError(t, err)
			require.Equal(t, row.expected, totals(lines))
		})
	}
}

func TestComputeRejectsInvalidFill(t *testing.T) {
	_, err := Compute(nil, Fill{Quantity: dec("-1"), Unit: UNIT_LITRE})
	require.ErrorIs(t, err, ErrNegativeQuantity)

	_, err = Compute(nil, Fill{Quantity: dec("1"), Unit: "barrel"})
	require.ErrorIs(t, err, ErrUnknownUnit)

	_, err = Compute(nil, Fill{Quantity: dec("1"), Unit: UNIT_LITRE, TaxPercent: dec("-5")})
	require.ErrorIs(t, err, ErrNegativeTax)
}

func TestComputeZeroQuantity(t *testing.T) {
	lines, err := Compute(records("139.9¢"), Fill{Quantity: dec("0"), Unit: UNIT_LITRE, TaxPercent: dec("5")})
	require.NoError(t, err)
	require.Equal(t, []string{"$0.00"}, totals(lines))
}

func TestParseUnit(t *testing.T) {
	table := []struct {
		input    string
		expected Unit
	}{
		{input: "l", expected: UNIT_LITRE},
		{input: "Litres", expected: UNIT_LITRE},
		{input: "gal", expected: UNIT_US_GALLON},
		{input: "a", expected: UNIT_US_GALLON},
		{input: "ukgal", expected: UNIT_UK_GALLON},
		{input: "b", expected: UNIT_UK_GALLON},
	}
	for _, row := range table {
		unit, err := ParseUnit(row.input)
		require.NoError(t, err)
		require.Equal(t, row.expected, unit)
	}

	_, err := ParseUnit("barrel")
	require.ErrorIs(t, err, ErrUnknownUnit)
}

func TestFillText(t *testing.T) {
	fill := Fill{Quantity: dec("12.5"), Unit: UNIT_UK_GALLON, TaxPercent: dec("13")}
	require.Equal(t, "13%", fill.TaxText())
	require.Equal(t, "12.5 ukgal", fill.FilledText())
}
