package flight

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func filterFixture() []Listing {
	morning := testItem("6E101", "2025-12-15T07:00", 5000, 0, "Refundable")

	night := testItem("AI202", "2025-12-15T19:00", 3000, 1, "Non-Refundable")
	night.Segments[0].AirlineCode = "AI"
	night.Segments[0].AirlineName = "Air India"
	night.Fares[0].CheckedBaggage = "15 Kg"
	night.Fares[0].CabinClass = "BUSINESS"

	early := testItem("UK303", "2025-12-15T04:30", 8000, 2, "Partially Refundable")
	early.Segments[0].AirlineCode = "UK"
	early.Segments[0].AirlineName = "Vistara"
	early.Segments[0].Duration = 420
	early.Fares[0].Meal = true
	early.Fares[0].SeatsAvailable = 0

	return DeriveFilterKeys([]FlightSearchItem{morning, night, early})
}

func boolPtr(b bool) *bool { return &b }

func TestApplyMultipleFilters(t *testing.T) {
	listings := filterFixture()

	tests := []struct {
		name    string
		filters ActiveFilters
		want    []string
	}{
		{"no filters", ActiveFilters{}, []string{"6E101", "AI202", "UK303"}},
		{"time", ActiveFilters{TimeCategories: []string{TimeMorning}}, []string{"6E101"}},
		{"time or within dimension", ActiveFilters{TimeCategories: []string{TimeMorning, TimeNight}}, []string{"6E101", "AI202"}},
		{"stops", ActiveFilters{StopCategories: []string{StopsMultiple}}, []string{"UK303"}},
		{"fare type", ActiveFilters{FareTypes: []string{FareRefundable}}, []string{"6E101", "UK303"}},
		{"duration", ActiveFilters{DurationCategories: []string{DurationLong}}, []string{"UK303"}},
		{"cabin class", ActiveFilters{CabinClasses: []string{"BUSINESS"}}, []string{"AI202"}},
		{"airline code", ActiveFilters{Airlines: []string{"uk"}}, []string{"UK303"}},
		{"airline name", ActiveFilters{Airlines: []string{"air india", "Nope"}}, []string{"AI202"}},
		{"price inclusive", ActiveFilters{PriceRange: &PriceRange{Min: 3000, Max: 5000}}, []string{"6E101", "AI202"}},
		{"price empty range", ActiveFilters{PriceRange: &PriceRange{Min: 6000, Max: 5000}}, []string{}},
		{"seats required", ActiveFilters{SeatsAvailable: boolPtr(true)}, []string{"6E101", "AI202"}},
		{"sold out only", ActiveFilters{SeatsAvailable: boolPtr(false)}, []string{"UK303"}},
		{"baggage", ActiveFilters{Baggage: boolPtr(true)}, []string{"AI202"}},
		{"meal", ActiveFilters{Meal: boolPtr(true)}, []string{"UK303"}},
		{"and across dimensions", ActiveFilters{
			TimeCategories: []string{TimeMorning, TimeNight},
			FareTypes:      []string{FareNonRefundable},
		}, []string{"AI202"}},
		{"no match", ActiveFilters{TimeCategories: []string{TimeMidDay}}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyMultipleFilters(listings, tt.filters)
			assert.Equal(t, tt.want, flightNumbers(got))
		})
	}
}

func TestApplyMultipleFilters_EmptyTimeCategoryMatchesNoTimeFilter(t *testing.T) {
	item := testItem("X1", "", 1000, 0, "Refundable")
	listings := DeriveFilterKeys([]FlightSearchItem{item})

	all := []string{TimeEarlyMorning, TimeMorning, TimeMidDay, TimeNight}
	assert.Empty(t, ApplyMultipleFilters(listings, ActiveFilters{TimeCategories: all}))
	assert.Len(t, ApplyMultipleFilters(listings, ActiveFilters{}), 1)
}

func TestApplyMultipleFilters_Properties(t *testing.T) {
	listings := filterFixture()
	narrow := ActiveFilters{FareTypes: []string{FareRefundable}}
	narrower := ActiveFilters{FareTypes: []string{FareRefundable}, StopCategories: []string{StopsNonStop}}

	t.Run("neutral filter is identity", func(t *testing.T) {
		assert.Equal(t, listings, ApplyMultipleFilters(listings, ActiveFilters{}))
	})

	t.Run("idempotent", func(t *testing.T) {
		once := ApplyMultipleFilters(listings, narrow)
		assert.Equal(t, once, ApplyMultipleFilters(once, narrow))
	})

	t.Run("adding a constraint never grows the result", func(t *testing.T) {
		wide := ApplyMultipleFilters(listings, narrow)
		tight := ApplyMultipleFilters(listings, narrower)
		assert.LessOrEqual(t, len(tight), len(wide))
		for _, l := range tight {
			assert.Contains(t, wide, l)
		}
	})

	t.Run("input untouched", func(t *testing.T) {
		before := flightNumbers(listings)
		_ = ApplyMultipleFilters(listings, narrower)
		assert.Equal(t, before, flightNumbers(listings))
	})
}
