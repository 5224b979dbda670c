package flight

import (
	"fmt"
	"strings"
)

// Supplier identifies the upstream provider a search result came from.
type Supplier string

const (
	SupplierAirIQ    Supplier = "airiq"
	SupplierTBO      Supplier = "tbo"
	SupplierTripJack Supplier = "tripjack"
)

var knownSuppliers = []Supplier{SupplierAirIQ, SupplierTBO, SupplierTripJack}

func ParseSupplier(name string) (Supplier, error) {
	for _, s := range knownSuppliers {
		if strings.EqualFold(string(s), strings.TrimSpace(name)) {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown supplier %q", name)
}

// FlightSegment is one physical leg. Timestamps are minute precision,
// formatted as TimestampLayout, and empty when the supplier sent nothing usable.
type FlightSegment struct {
	AirlineCode     string `json:"airlineCode"`
	AirlineName     string `json:"airlineName"`
	FlightNumber    string `json:"flightNumber"`
	Origin          string `json:"origin"`
	OriginCity      string `json:"originCity"`
	Destination     string `json:"destination"`
	DestinationCity string `json:"destinationCity"`
	Terminal        string `json:"terminal,omitempty"`
	DepartureTime   string `json:"departureTime"`
	ArrivalTime     string `json:"arrivalTime"`
	Duration        int    `json:"duration"`
	Stops           int    `json:"stops"`
}

type Fare struct {
	FareID         string `json:"fareId"`
	Brand          string `json:"brand"`
	TotalFare      int64  `json:"totalFare"`
	BaseFare       int64  `json:"baseFare"`
	Tax            int64  `json:"tax"`
	CabinClass     string `json:"cabinClass"`
	CheckedBaggage string `json:"checkedBaggage"`
	CabinBaggage   string `json:"cabinBaggage"`
	Meal           bool   `json:"meal"`
	RefundType     string `json:"refundType"`
	PriceID        string `json:"priceID"`
	SeatsAvailable int    `json:"seatsAvailable"`
}

type FlightSearchItem struct {
	Supplier Supplier        `json:"supplier"`
	Segments []FlightSegment `json:"segments"`
	Fares    []Fare          `json:"fares"`
}

// FirstSegment returns the headline segment, or the zero value.
func (i FlightSearchItem) FirstSegment() FlightSegment {
	if len(i.Segments) == 0 {
		return FlightSegment{}
	}
	return i.Segments[0]
}

// FirstFare returns the headline fare, or the zero value.
func (i FlightSearchItem) FirstFare() Fare {
	if len(i.Fares) == 0 {
		return Fare{}
	}
	return i.Fares[0]
}

type SearchRequest struct {
	Origin        string `json:"origin" binding:"required"`
	Destination   string `json:"destination" binding:"required"`
	DepartureDate string `json:"departure_date" binding:"required"`
	ReturnDate    string `json:"return_date"`
	Passengers    uint32 `json:"passengers"`
	CabinClass    string `json:"cabin_class"`
}

type SearchCriteria struct {
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"departure_date"`
	ReturnDate    string `json:"return_date,omitempty"`
	Passengers    uint32 `json:"passengers"`
	CabinClass    string `json:"cabin_class"`
}

type SupplierError struct {
	Supplier Supplier  `json:"supplier"`
	Code     ErrorCode `json:"code"`
	Message  string    `json:"message"`
}

type Metadata struct {
	SearchID           string          `json:"search_id"`
	TotalResults       uint32          `json:"total_results"`
	SuppliersQueried   uint32          `json:"suppliers_queried"`
	SuppliersSucceeded uint32          `json:"suppliers_succeeded"`
	SuppliersFailed    uint32          `json:"suppliers_failed"`
	SupplierErrors     []SupplierError `json:"supplier_errors,omitempty"`
	MissingPriceIDs    uint32          `json:"missing_price_ids"`
	SearchTimeMs       uint32          `json:"search_time_ms"`
	CacheHit           bool            `json:"cache_hit"`
	CacheKey           string          `json:"cache_key,omitempty"`
}

type FlightSearchResponse struct {
	SearchCriteria SearchCriteria     `json:"search_criteria"`
	Metadata       Metadata           `json:"metadata"`
	Items          []FlightSearchItem `json:"items"`
}

// FilterKeys are derived once from an item's headline segment and fare.
type FilterKeys struct {
	TimeCategory     string `json:"timeCategory"`
	StopCategory     string `json:"stopCategory"`
	FareType         string `json:"fareType"`
	DurationCategory string `json:"durationCategory"`
	Airline          string `json:"airline"`
	AirlineName      string `json:"airlineName"`
	Route            string `json:"route"`
	CabinClass       string `json:"cabinClass"`
	SeatsAvailable   bool   `json:"seatsAvailable"`
	HasBaggage       bool   `json:"hasBaggage"`
	HasMeal          bool   `json:"hasMeal"`
}

// Listing is a search item with its filter keys attached.
type Listing struct {
	FlightSearchItem
	FilterKeys FilterKeys `json:"filterKeys"`
}

type PriceRange struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// ActiveFilters is the current filter selection. An empty slice or a nil
// pointer leaves that dimension unconstrained.
type ActiveFilters struct {
	TimeCategories     []string    `json:"timeCategories,omitempty"`
	StopCategories     []string    `json:"stopCategories,omitempty"`
	FareTypes          []string    `json:"fareTypes,omitempty"`
	Airlines           []string    `json:"airlines,omitempty"`
	DurationCategories []string    `json:"durationCategories,omitempty"`
	CabinClasses       []string    `json:"cabinClasses,omitempty"`
	PriceRange         *PriceRange `json:"priceRange,omitempty"`
	SeatsAvailable     *bool       `json:"seatsAvailable,omitempty"`
	Baggage            *bool       `json:"baggage,omitempty"`
	Meal               *bool       `json:"meal,omitempty"`
}

type SortKey string

const (
	SortByPrice     SortKey = "price"
	SortByDuration  SortKey = "duration"
	SortByDeparture SortKey = "departure"
	SortByArrival   SortKey = "arrival"
	SortByBestValue SortKey = "best_value"
)

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

type SortState struct {
	Key       SortKey       `json:"key"`
	Direction SortDirection `json:"direction"`
}

// ViewState is everything a rendered list depends on besides the items.
type ViewState struct {
	Filters ActiveFilters `json:"filters"`
	Sort    *SortState    `json:"sort,omitempty"`
	Visible int           `json:"visible"`
}

type Facets struct {
	Airlines []string `json:"airlines"`
	MinPrice int64    `json:"minPrice"`
	MaxPrice int64    `json:"maxPrice"`
}

type View struct {
	Listings []Listing `json:"listings"`
	Total    int       `json:"total"`
	Visible  int       `json:"visible"`
	HasMore  bool      `json:"hasMore"`
	Facets   Facets    `json:"facets"`
}

type FilterRequest struct {
	SearchRequest
	ViewState
}

type FilterResponse struct {
	SearchCriteria SearchCriteria `json:"search_criteria"`
	Metadata       Metadata       `json:"metadata"`
	View
}
