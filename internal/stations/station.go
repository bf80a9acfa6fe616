// Package stations holds the canonical fuel station record shared by the
// scrapers, the exporters and the reporting code, along with the pure
// normalization and sorting logic that operates on it.
package stations

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// NotAvailable is what a missing price or update time is rendered as.
const NotAvailable = "N/A"

// StationRecord is a single fuel station observation. Records carry no
// identity across runs and no memory of which source produced them.
type StationRecord struct {
	Name    string
	Address string
	// DisplayPrice is the price as the provider displays it (ex. "399¢", "$3.99"),
	// empty when the provider gave none.
	DisplayPrice string
	// Price is the normalized price, see NormalizePrice.
	Price decimal.NullDecimal
	// LastUpdated is either "<N> hours ago", "Less than an hour ago", a
	// YYYY-MM-DD date or an ISO timestamp, empty when the provider gave none.
	LastUpdated string
}

// PriceText renders the price column the way the persistence formats expect it.
func (r StationRecord) PriceText() string {
	if r.DisplayPrice == "" {
		return NotAvailable
	}
	return r.DisplayPrice
}

// LastUpdatedText renders the last updated column the way the persistence
// formats expect it.
func (r StationRecord) LastUpdatedText() string {
	if r.LastUpdated == "" {
		return NotAvailable
	}
	return r.LastUpdated
}

// FromText is the inverse of PriceText/LastUpdatedText, it builds a record
// out of the four canonical columns and normalizes its price.
func FromText(name, address, price, lastUpdated string) StationRecord {
	if price == NotAvailable {
		price = ""
	}
	if lastUpdated == NotAvailable {
		lastUpdated = ""
	}
	return Normalize(StationRecord{
		Name:         name,
		Address:      address,
		DisplayPrice: price,
		LastUpdated:  lastUpdated,
	})
}

// FuelType selects the fuel grade prices are listed for.
type FuelType int

const (
	FUEL_REGULAR FuelType = iota + 1
	FUEL_MIDGRADE
	FUEL_PREMIUM
	FUEL_DIESEL
	FUEL_E85
	FUEL_UNL88
)

var fuelNames = map[string]FuelType{
	"regular":  FUEL_REGULAR,
	"midgrade": FUEL_MIDGRADE,
	"premium":  FUEL_PREMIUM,
	"diesel":   FUEL_DIESEL,
	"e85":      FUEL_E85,
	"unl88":    FUEL_UNL88,
}

// ParseFuelType accepts either the numeric code (1-6) or the fuel name.
func ParseFuelType(text string) (FuelType, error) {
	text = strings.ToLower(strings.TrimSpace(text))
	if fuel, ok := fuelNames[text]; ok {
		return fuel, nil
	}
	code, err := strconv.Atoi(text)
	if err == nil && code >= int(FUEL_REGULAR) && code <= int(FUEL_UNL88) {
		return FuelType(code), nil
	}
	return 0, fmt.Errorf("invalid fuel type %q: expected 1-6 or one of regular, midgrade, premium, diesel, e85, unl88", text)
}

func (f FuelType) String() string {
	for name, fuel := range fuelNames {
		if fuel == f {
			return name
		}
	}
	return strconv.Itoa(int(f))
}

// PaymentMethod selects which tender the results page lists prices for.
type PaymentMethod string

const (
	PAYMENT_ALL    PaymentMethod = "all"
	PAYMENT_CREDIT PaymentMethod = "credit"
)

func ParsePaymentMethod(text string) (PaymentMethod, error) {
	method := PaymentMethod(strings.ToLower(strings.TrimSpace(text)))
	switch method {
	case PAYMENT_ALL, PAYMENT_CREDIT:
		return method, nil
	}
	return "", fmt.Errorf("invalid payment method %q: expected all or credit", text)
}

// Query describes a single acquisition.
type Query struct {
	// Search is a city name or postal code.
	Search string
	Fuel   FuelType
	Method PaymentMethod
	// Pages is the total amount of result pages to fetch, values below 2
	// only fetch the first page.
	Pages int
}
