// Package fillcost computes what filling up a given quantity of fuel costs at
// each station of a listing.
package fillcost

import (
	"errors"
	"fmt"
	"fuelscraper/internal/stations"
	"strings"

	"github.com/shopspring/decimal"
)

type Unit string

const (
	UNIT_LITRE     Unit = "l"
	UNIT_US_GALLON Unit = "gal"
	UNIT_UK_GALLON Unit = "ukgal"
)

var (
	ErrUnknownUnit      = errors.New("fillcost: unknown unit")
	ErrNegativeQuantity = errors.New("fillcost: quantity must not be negative")
	ErrNegativeTax      = errors.New("fillcost: tax must not be negative")
)

var (
	litresPerUsGallon = decimal.RequireFromString("3.78541")
	litresPerUkGallon = decimal.RequireFromString("4.54609")
	hundred           = decimal.NewFromInt(100)
	ten               = decimal.NewFromInt(10)
)

func ParseUnit(text string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "l", "litre", "liter", "litres", "liters":
		return UNIT_LITRE, nil
	case "gal", "g", "a", "gallon", "gallons":
		return UNIT_US_GALLON, nil
	case "ukgal", "b", "imperial":
		return UNIT_UK_GALLON, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownUnit, text)
}

// Fill is the amount of fuel being bought along with the local sales tax.
type Fill struct {
	Quantity decimal.Decimal
	Unit     Unit
	// TaxPercent is a percentage, 13 means 13%.
	TaxPercent decimal.Decimal
}

func (f Fill) validate() error {
	switch f.Unit {
	case UNIT_LITRE, UNIT_US_GALLON, UNIT_UK_GALLON:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownUnit, f.Unit)
	}
	if f.Quantity.IsNegative() {
		return ErrNegativeQuantity
	}
	if f.TaxPercent.IsNegative() {
		return ErrNegativeTax
	}
	return nil
}

func (f Fill) litres() decimal.Decimal {
	switch f.Unit {
	case UNIT_US_GALLON:
		return f.Quantity.Mul(litresPerUsGallon)
	case UNIT_UK_GALLON:
		return f.Quantity.Mul(litresPerUkGallon)
	}
	return f.Quantity
}

func (f Fill) usGallons() decimal.Decimal {
	switch f.Unit {
	case UNIT_LITRE:
		return f.Quantity.Div(litresPerUsGallon)
	case UNIT_UK_GALLON:
		return f.Quantity.Mul(litresPerUkGallon).Div(litresPerUsGallon)
	}
	return f.Quantity
}

// TaxText renders the tax the way it is written next to every total.
func (f Fill) TaxText() string {
	return f.TaxPercent.String() + "%"
}

// FilledText renders the quantity along with its unit.
func (f Fill) FilledText() string {
	return fmt.Sprintf("%s %s", f.Quantity.String(), f.Unit)
}

// Line is a station record along with the cost of the fill at that station.
type Line struct {
	Record stations.StationRecord
	// Total is in dollars rounded to cents, invalid when the station has no
	// price.
	Total decimal.NullDecimal
}

func (l Line) TotalText() string {
	if !l.Total.Valid {
		return stations.NotAvailable
	}
	return "$" + l.Total.Decimal.StringFixed(2)
}

// QuotedInDollars reports whether a listing is quoted in dollars per US
// gallon rather than in cents per litre, which is decided by the first record
// alone.
func QuotedInDollars(records []stations.StationRecord) bool {
	if len(records) == 0 {
		return false
	}
	return strings.Contains(records[0].DisplayPrice, "$")
}

// Compute prices the fill at every station, keeping the order of records.
func Compute(records []stations.StationRecord, fill Fill) ([]Line, error) {
	err := fill.validate()
	if err != nil {
		return nil, err
	}

	dollars := QuotedInDollars(records)
	taxFactor := decimal.NewFromInt(1).Add(fill.TaxPercent.Div(hundred))

	lines := make([]Line, len(records))
	for i, record := range records {
		record = stations.Normalize(record)
		lines[i] = Line{Record: record}
		if !record.Price.Valid {
			continue
		}

		var cost decimal.Decimal
		if dollars {
			perGallon := record.Price.Decimal.Div(ten)
			cost = fill.usGallons().Mul(perGallon)
		} else {
			cost = fill.litres().Mul(record.Price.Decimal).Div(hundred)
		}

		lines[i].Total = decimal.NewNullDecimal(cost.Mul(taxFactor).Round(2))
	}
	return lines, nil
}
