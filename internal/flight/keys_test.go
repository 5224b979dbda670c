package flight

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimeCategory_CoversEveryHour(t *testing.T) {
	for hour := 0; hour < 24; hour++ {
		got := TimeCategory(hour)
		switch {
		case hour < 6:
			assert.Equal(t, TimeEarlyMorning, got, "hour %d", hour)
		case hour < 12:
			assert.Equal(t, TimeMorning, got, "hour %d", hour)
		case hour < 18:
			assert.Equal(t, TimeMidDay, got, "hour %d", hour)
		default:
			assert.Equal(t, TimeNight, got, "hour %d", hour)
		}
	}
}

func TestTimeCategory_Boundaries(t *testing.T) {
	assert.Equal(t, TimeEarlyMorning, TimeCategory(5))
	assert.Equal(t, TimeMorning, TimeCategory(6))
	assert.Equal(t, TimeMorning, TimeCategory(11))
	assert.Equal(t, TimeMidDay, TimeCategory(12))
	assert.Equal(t, TimeMidDay, TimeCategory(17))
	assert.Equal(t, TimeNight, TimeCategory(18))
}

func TestStopCategory(t *testing.T) {
	assert.Equal(t, StopsNonStop, StopCategory(0))
	assert.Equal(t, StopsOneStop, StopCategory(1))
	assert.Equal(t, StopsMultiple, StopCategory(2))
	assert.Equal(t, StopsMultiple, StopCategory(5))
}

func TestFareType(t *testing.T) {
	tests := map[string]string{
		"Refundable":           FareRefundable,
		"refundable":           FareRefundable,
		"Partially Refundable": FareRefundable,
		"Non-Refundable":       FareNonRefundable,
		"NON REFUNDABLE":       FareNonRefundable,
		"nonrefundable":        FareNonRefundable,
		"":                     FareNonRefundable,
		"Unknown":              FareNonRefundable,
	}

	for in, want := range tests {
		assert.Equal(t, want, FareType(in), "refund type %q", in)
	}
}

func TestDurationCategory(t *testing.T) {
	assert.Equal(t, DurationShort, DurationCategory(0))
	assert.Equal(t, DurationShort, DurationCategory(119))
	assert.Equal(t, DurationMedium, DurationCategory(120))
	assert.Equal(t, DurationMedium, DurationCategory(299))
	assert.Equal(t, DurationLong, DurationCategory(300))
}

func TestNewFilterKeys(t *testing.T) {
	item := FlightSearchItem{
		Supplier: SupplierTBO,
		Segments: []FlightSegment{
			{AirlineCode: "6E", AirlineName: "IndiGo", Origin: "DEL", Destination: "BOM", DepartureTime: "2025-12-15T19:30", Duration: 135, Stops: 1},
			{AirlineCode: "AI", DepartureTime: "2025-12-15T23:00", Stops: 3},
		},
		Fares: []Fare{
			{TotalFare: 4200, CabinClass: "ECONOMY", RefundType: "Non-Refundable", CabinBaggage: "7 Kg", SeatsAvailable: 2},
			{TotalFare: 100, RefundType: "Refundable", Meal: true},
		},
	}

	keys := NewFilterKeys(item)

	assert.Equal(t, FilterKeys{
		TimeCategory:     TimeNight,
		StopCategory:     StopsOneStop,
		FareType:         FareNonRefundable,
		DurationCategory: DurationMedium,
		Airline:          "6E",
		AirlineName:      "IndiGo",
		Route:            "DEL-BOM",
		CabinClass:       "ECONOMY",
		SeatsAvailable:   true,
		HasBaggage:       true,
		HasMeal:          false,
	}, keys)
}

func TestNewFilterKeys_EmptyItem(t *testing.T) {
	keys := NewFilterKeys(FlightSearchItem{})

	assert.Empty(t, keys.TimeCategory, "no departure time means no time bucket")
	assert.Empty(t, keys.Route)
	assert.Equal(t, StopsNonStop, keys.StopCategory)
	assert.Equal(t, FareNonRefundable, keys.FareType)
	assert.False(t, keys.SeatsAvailable)
}

func TestDeriveFilterKeys_KeepsOrderAndItems(t *testing.T) {
	items := []FlightSearchItem{
		testItem("A", "2025-12-15T07:00", 5000, 0, "Refundable"),
		testItem("B", "2025-12-15T19:00", 3000, 1, "Non-Refundable"),
	}

	listings := DeriveFilterKeys(items)

	assert.Len(t, listings, 2)
	assert.Equal(t, items[0], listings[0].FlightSearchItem)
	assert.Equal(t, items[1], listings[1].FlightSearchItem)
	assert.Equal(t, TimeMorning, listings[0].FilterKeys.TimeCategory)
	assert.Equal(t, TimeNight, listings[1].FilterKeys.TimeCategory)
}

func TestDeriveFilterKeys_Empty(t *testing.T) {
	assert.Empty(t, DeriveFilterKeys(nil))
}

// testItem builds a single-segment, single-fare item. The flight number
// doubles as a readable identity in assertions.
func testItem(flightNumber, departure string, price int64, stops int, refundType string) FlightSearchItem {
	return FlightSearchItem{
		Supplier: SupplierAirIQ,
		Segments: []FlightSegment{{
			AirlineCode:   "6E",
			AirlineName:   "IndiGo",
			FlightNumber:  flightNumber,
			Origin:        "DEL",
			Destination:   "BOM",
			DepartureTime: departure,
			Duration:      120,
			Stops:         stops,
		}},
		Fares: []Fare{{
			TotalFare:      price,
			RefundType:     refundType,
			PriceID:        "P-" + flightNumber,
			SeatsAvailable: 5,
		}},
	}
}

func flightNumbers(listings []Listing) []string {
	out := make([]string, len(listings))
	for i, l := range listings {
		out[i] = l.FirstSegment().FlightNumber
	}
	return out
}
