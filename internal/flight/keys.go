package flight

import (
	"strings"
	"time"
)

const (
	TimeEarlyMorning = "early_morning"
	TimeMorning      = "morning"
	TimeMidDay       = "mid_day"
	TimeNight        = "night"

	StopsNonStop  = "non_stop"
	StopsOneStop  = "one_stop"
	StopsMultiple = "multiple_stops"

	FareRefundable    = "Refundable"
	FareNonRefundable = "Non-refundable"

	DurationShort  = "short"
	DurationMedium = "medium"
	DurationLong   = "long"
)

// TimestampLayout is the minute-precision format every normalized
// timestamp uses.
const TimestampLayout = "2006-01-02T15:04"

// DeriveFilterKeys attaches filter keys to every item, keeping order.
func DeriveFilterKeys(items []FlightSearchItem) []Listing {
	listings := make([]Listing, len(items))
	for i, item := range items {
		listings[i] = Listing{
			FlightSearchItem: item,
			FilterKeys:       NewFilterKeys(item),
		}
	}
	return listings
}

// NewFilterKeys summarizes an item by its first segment and first fare.
func NewFilterKeys(item FlightSearchItem) FilterKeys {
	seg := item.FirstSegment()
	fare := item.FirstFare()

	keys := FilterKeys{
		StopCategory:     StopCategory(seg.Stops),
		FareType:         FareType(fare.RefundType),
		DurationCategory: DurationCategory(seg.Duration),
		Airline:          seg.AirlineCode,
		AirlineName:      seg.AirlineName,
		CabinClass:       fare.CabinClass,
		SeatsAvailable:   fare.SeatsAvailable > 0,
		HasBaggage:       fare.CheckedBaggage != "" || fare.CabinBaggage != "",
		HasMeal:          fare.Meal,
	}

	if hour, ok := departureHour(seg.DepartureTime); ok {
		keys.TimeCategory = TimeCategory(hour)
	}
	if seg.Origin != "" || seg.Destination != "" {
		keys.Route = seg.Origin + "-" + seg.Destination
	}
	return keys
}

// TimeCategory buckets a departure hour into half-open ranges
// [0,6) [6,12) [12,18) [18,24).
func TimeCategory(hour int) string {
	switch {
	case hour < 6:
		return TimeEarlyMorning
	case hour < 12:
		return TimeMorning
	case hour < 18:
		return TimeMidDay
	default:
		return TimeNight
	}
}

func StopCategory(stops int) string {
	switch {
	case stops <= 0:
		return StopsNonStop
	case stops == 1:
		return StopsOneStop
	default:
		return StopsMultiple
	}
}

// FareType collapses a free-text refund policy into two buckets. "non" is
// checked first so "Non-Refundable" never lands in Refundable. Policies
// that mention neither are treated as non-refundable.
func FareType(refundType string) string {
	policy := strings.ToLower(refundType)
	switch {
	case strings.Contains(policy, "non"):
		return FareNonRefundable
	case strings.Contains(policy, "refundable"):
		return FareRefundable
	default:
		return FareNonRefundable
	}
}

func DurationCategory(minutes int) string {
	switch {
	case minutes < 120:
		return DurationShort
	case minutes < 300:
		return DurationMedium
	default:
		return DurationLong
	}
}

func departureHour(ts string) (int, bool) {
	t, err := time.Parse(TimestampLayout, ts)
	if err != nil {
		return 0, false
	}
	return t.Hour(), true
}

// epoch returns the unix seconds of a normalized timestamp, 0 when empty.
func epoch(ts string) int64 {
	t, err := time.Parse(TimestampLayout, ts)
	if err != nil {
		return 0
	}
	return t.Unix()
}
