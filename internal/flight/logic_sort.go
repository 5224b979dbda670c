package flight

import (
	"math"
	"sort"
)

const (
	priceWeight    = 0.45
	durationWeight = 0.35
	stopsWeight    = 0.20
)

// SortListings returns a sorted copy. Equal keys keep their input order.
// Any direction other than desc sorts ascending; an unknown key returns the
// copy unsorted.
func SortListings(listings []Listing, key SortKey, dir SortDirection) []Listing {
	sorted := make([]Listing, len(listings))
	copy(sorted, listings)
	if len(sorted) <= 1 {
		return sorted
	}

	desc := dir == SortDesc

	switch key {
	case SortByPrice:
		sortByValue(sorted, desc, func(l Listing) float64 { return float64(l.FirstFare().TotalFare) })
	case SortByDuration:
		sortByValue(sorted, desc, func(l Listing) float64 { return float64(l.FirstSegment().Duration) })
	case SortByDeparture:
		sortByValue(sorted, desc, func(l Listing) float64 { return float64(epoch(l.FirstSegment().DepartureTime)) })
	case SortByArrival:
		sortByValue(sorted, desc, func(l Listing) float64 { return float64(epoch(l.FirstSegment().ArrivalTime)) })
	case SortByBestValue:
		sortByBestValue(sorted, desc)
	}

	return sorted
}

// IsSortKey reports whether key is one the engine knows.
func IsSortKey(key SortKey) bool {
	switch key {
	case SortByPrice, SortByDuration, SortByDeparture, SortByArrival, SortByBestValue:
		return true
	}
	return false
}

func sortByValue(listings []Listing, desc bool, value func(Listing) float64) {
	sort.SliceStable(listings, func(i, j int) bool {
		if desc {
			return value(listings[i]) > value(listings[j])
		}
		return value(listings[i]) < value(listings[j])
	})
}

// sortByBestValue scores into a side table so the listings themselves stay
// untouched. A higher score is a better deal.
func sortByBestValue(listings []Listing, desc bool) {
	scores := bestValueScores(listings)

	idx := make([]int, len(listings))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		if desc {
			return scores[idx[a]] > scores[idx[b]]
		}
		return scores[idx[a]] < scores[idx[b]]
	})

	reordered := make([]Listing, len(listings))
	for pos, i := range idx {
		reordered[pos] = listings[i]
	}
	copy(listings, reordered)
}

func bestValueScores(listings []Listing) []float64 {
	minPrice, maxPrice := math.MaxFloat64, -math.MaxFloat64
	minDuration, maxDuration := math.MaxFloat64, -math.MaxFloat64
	minStops, maxStops := math.MaxFloat64, -math.MaxFloat64

	for _, l := range listings {
		price := float64(l.FirstFare().TotalFare)
		duration := float64(l.FirstSegment().Duration)
		stops := float64(l.FirstSegment().Stops)

		minPrice, maxPrice = math.Min(minPrice, price), math.Max(maxPrice, price)
		minDuration, maxDuration = math.Min(minDuration, duration), math.Max(maxDuration, duration)
		minStops, maxStops = math.Min(minStops, stops), math.Max(maxStops, stops)
	}

	scores := make([]float64, len(listings))
	for i, l := range listings {
		normPrice := normalize(float64(l.FirstFare().TotalFare), minPrice, maxPrice)
		normDuration := normalize(float64(l.FirstSegment().Duration), minDuration, maxDuration)
		normStops := normalize(float64(l.FirstSegment().Stops), minStops, maxStops)

		scores[i] = (priceWeight * normPrice) + (durationWeight * normDuration) + (stopsWeight * normStops)
	}
	return scores
}

func normalize(val, min, max float64) float64 {
	if max > min {
		// Invert so that lower price/duration/stops scores closer to 1.0
		return 1.0 - (val-min)/(max-min)
	}
	return 1.0
}
