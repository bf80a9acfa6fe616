package gasbuddy

import (
	"context"
	"errors"
	"fmt"
	"fuelscraper/internal/stations"
	"strings"
)

const report_query_stations = "graphql.location-by-search-term"

const stationsQueryName = "LocationBySearchTerm"

const stationsQuery = `query LocationBySearchTerm($cursor: String, $fuel: Int, $search: String) {
  locationBySearchTerm(search: $search) {
    countryCode
    displayName
    regionCode
    stations(cursor: $cursor, fuel: $fuel) {
      count
      cursor {
        next
        __typename
      }
      results {
        id
        name
        address {
          country
          line1
          line2
          locality
          postalCode
          region
          __typename
        }
        prices {
          cash {
            nickname
            postedTime
            price
            formattedPrice
            __typename
          }
          credit {
            nickname
            postedTime
            price
            formattedPrice
            __typename
          }
          fuelProduct
          __typename
        }
        priceUnit
        __typename
      }
      __typename
    }
    __typename
  }
}`

type requestStations struct {
	Fuel   int    `json:"fuel"`
	Search string `json:"search"`
	Cursor string `json:"cursor"`
}

type tenderPrice struct {
	Nickname       string  `json:"nickname"`
	PostedTime     string  `json:"postedTime"`
	Price          float64 `json:"price"`
	FormattedPrice string  `json:"formattedPrice"`
}

type stationPrice struct {
	Cash        *tenderPrice `json:"cash"`
	Credit      *tenderPrice `json:"credit"`
	FuelProduct string       `json:"fuelProduct"`
}

type stationAddress struct {
	Country    string `json:"country"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2"`
	Locality   string `json:"locality"`
	PostalCode string `json:"postalCode"`
	Region     string `json:"region"`
}

type stationResult struct {
	Name    string         `json:"name"`
	Address stationAddress `json:"address"`
	Prices  []stationPrice `json:"prices"`
}

type stationsCursor struct {
	Next *string `json:"next"`
}

type stationsConnection struct {
	Count   int             `json:"count"`
	Cursor  stationsCursor  `json:"cursor"`
	Results []stationResult `json:"results"`
}

type locationData struct {
	DisplayName string             `json:"displayName"`
	Stations    stationsConnection `json:"stations"`
}

type responseStations struct {
	Location *locationData `json:"locationBySearchTerm"`
}

// stationsPage is a single decoded page of the structured endpoint.
type stationsPage struct {
	Records []stations.StationRecord
	// Next is the cursor of the following page, empty when there is none.
	Next string
}

// QueryStations requests a single page of results starting at the given cursor.
func (c *client) QueryStations(ctx context.Context, search string, fuel stations.FuelType, cursor string) (stationsPage, error) {
	req := requestStations{
		Fuel:   int(fuel),
		Search: search,
		Cursor: cursor,
	}

	var res responseStations
	err := graphqlQuery(ctx, c, stationsQueryName, stationsQuery, req, &res)
	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) {
			statusErr.Search = search
		}
		return stationsPage{}, err
	}

	if res.Location == nil {
		c.tel.ReportWarning(
			report_query_stations,
			fmt.Errorf("response has no location"),
			search,
			cursor,
		)
		return stationsPage{}, nil
	}

	conn := res.Location.Stations
	c.tel.ReportCount(report_query_stations, int64(conn.Count))

	page := stationsPage{
		Records: make([]stations.StationRecord, len(conn.Results)),
	}
	for i, result := range conn.Results {
		page.Records[i] = c.toRecord(result)
	}
	if conn.Cursor.Next != nil {
		page.Next = strings.TrimSpace(*conn.Cursor.Next)
	}
	return page, nil
}

func (c *client) toRecord(result stationResult) stations.StationRecord {
	record := stations.StationRecord{
		Name:    strings.TrimSpace(result.Name),
		Address: joinAddress(result.Address),
	}

	credit := firstCreditPrice(result.Prices)
	if credit == nil {
		return record
	}

	record.DisplayPrice = formatCreditPrice(credit.FormattedPrice)
	if credit.PostedTime != "" {
		posted, err := stations.ParsePostedTime(credit.PostedTime)
		if err != nil {
			c.tel.ReportWarning(report_query_stations, err, result.Name)
		} else {
			record.LastUpdated = stations.FormatUpdated(posted, c.time.Now())
		}
	}
	return record
}

func joinAddress(addr stationAddress) string {
	var parts []string
	for _, part := range []string{addr.Line1, addr.Locality, addr.Region, addr.PostalCode} {
		part = strings.TrimSpace(part)
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, ", ")
}

// only the first price entry quoting a credit price counts
func firstCreditPrice(prices []stationPrice) *tenderPrice {
	for _, p := range prices {
		if p.Credit != nil && p.Credit.FormattedPrice != "" {
			return p.Credit
		}
	}
	return nil
}

// bare integer prices are quoted in cents, so they get a cents marker
func formatCreditPrice(price string) string {
	price = strings.TrimSpace(price)
	if price == "" || strings.HasSuffix(price, "¢") || strings.HasSuffix(price, "$") {
		return price
	}
	for _, c := range price {
		if c < '0' || c > '9' {
			return price
		}
	}
	return price + "¢"
}
