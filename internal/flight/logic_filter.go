package flight

import (
	"strings"

	"github.com/thoas/go-funk"
)

// ApplyMultipleFilters keeps the listings that satisfy every constrained
// dimension. Within a dimension any selected value matches. The result is
// a subsequence of the input in the same order.
func ApplyMultipleFilters(listings []Listing, filters ActiveFilters) []Listing {
	filtered := make([]Listing, 0, len(listings))
	for _, l := range listings {
		if matches(l, filters) {
			filtered = append(filtered, l)
		}
	}
	return filtered
}

// matches returns true only if ALL active filters pass
func matches(l Listing, f ActiveFilters) bool {
	keys := l.FilterKeys

	if !inSet(f.TimeCategories, keys.TimeCategory) {
		return false
	}
	if !inSet(f.StopCategories, keys.StopCategory) {
		return false
	}
	if !inSet(f.FareTypes, keys.FareType) {
		return false
	}
	if !inSet(f.DurationCategories, keys.DurationCategory) {
		return false
	}
	if !inSet(f.CabinClasses, keys.CabinClass) {
		return false
	}

	if f.PriceRange != nil {
		price := l.FirstFare().TotalFare
		if price < f.PriceRange.Min || price > f.PriceRange.Max {
			return false
		}
	}

	if !matchFlag(f.SeatsAvailable, keys.SeatsAvailable) {
		return false
	}
	if !matchFlag(f.Baggage, keys.HasBaggage) {
		return false
	}
	if !matchFlag(f.Meal, keys.HasMeal) {
		return false
	}

	// Airlines (string folding is heaviest, do last)
	if len(f.Airlines) > 0 {
		matched := false
		for _, airline := range f.Airlines {
			if strings.EqualFold(keys.Airline, airline) || strings.EqualFold(keys.AirlineName, airline) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	return true
}

func inSet(selected []string, value string) bool {
	if len(selected) == 0 {
		return true
	}
	return funk.ContainsString(selected, value)
}

func matchFlag(want *bool, got bool) bool {
	return want == nil || *want == got
}
