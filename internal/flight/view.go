package flight

import (
	"github.com/thoas/go-funk"
)

// DefaultPageSize is how many listings a "load more" step reveals.
const DefaultPageSize = 10

// Toggle applies a sort-header click: the same key flips direction, a new
// key starts ascending.
func (s SortState) Toggle(key SortKey) SortState {
	if s.Key == key {
		if s.Direction == SortDesc {
			return SortState{Key: key, Direction: SortAsc}
		}
		return SortState{Key: key, Direction: SortDesc}
	}
	return SortState{Key: key, Direction: SortAsc}
}

// LoadMore widens the visible window by one page.
func (v ViewState) LoadMore() ViewState {
	v.Visible = visibleOrDefault(v.Visible) + DefaultPageSize
	return v
}

// BuildView runs filter, sort and the page window over the listings. It is
// a pure function of its inputs.
func BuildView(listings []Listing, state ViewState) View {
	filtered := ApplyMultipleFilters(listings, state.Filters)
	if state.Sort != nil {
		filtered = SortListings(filtered, state.Sort.Key, state.Sort.Direction)
	}

	visible := visibleOrDefault(state.Visible)
	window := filtered
	if len(window) > visible {
		window = window[:visible]
	}

	return View{
		Listings: window,
		Total:    len(filtered),
		Visible:  visible,
		HasMore:  len(filtered) > visible,
		Facets:   buildFacets(listings),
	}
}

func buildFacets(listings []Listing) Facets {
	facets := Facets{Airlines: []string{}}
	if len(listings) == 0 {
		return facets
	}

	codes := make([]string, 0, len(listings))
	facets.MinPrice = listings[0].FirstFare().TotalFare
	facets.MaxPrice = facets.MinPrice
	for _, l := range listings {
		if l.FilterKeys.Airline != "" {
			codes = append(codes, l.FilterKeys.Airline)
		}
		price := l.FirstFare().TotalFare
		if price < facets.MinPrice {
			facets.MinPrice = price
		}
		if price > facets.MaxPrice {
			facets.MaxPrice = price
		}
	}
	if len(codes) > 0 {
		facets.Airlines = funk.UniqString(codes)
	}
	return facets
}

func visibleOrDefault(visible int) int {
	if visible <= 0 {
		return DefaultPageSize
	}
	return visible
}
