package supplier

import (
	"strings"
	"unicode/utf8"

	"faresearch/internal/flight"

	"github.com/tidwall/gjson"
)

// field is one row of an extraction table: candidate JSON paths in
// priority order, the parser applied to each, and the value used when no
// path yields a usable value.
type field[T any] struct {
	Name    string
	Paths   []string
	Parse   func(gjson.Result) (T, bool)
	Default T
}

func (f field[T]) extract(obj gjson.Result) T {
	for _, path := range f.Paths {
		r := obj.Get(path)
		if !r.Exists() {
			continue
		}
		if v, ok := f.Parse(r); ok {
			return v
		}
	}
	return f.Default
}

var (
	segmentPaths = []string{"segments", "sI", "flights"}
	farePaths    = []string{"fares", "totalPriceList", "priceList"}
)

var segmentFields = struct {
	FlightNumber    field[string]
	AirlineCode     field[string]
	AirlineName     field[string]
	Origin          field[string]
	OriginCity      field[string]
	Destination     field[string]
	DestinationCity field[string]
	Terminal        field[string]
	DepartureTime   field[string]
	ArrivalTime     field[string]
	Duration        field[int]
	Stops           field[int]
}{
	FlightNumber:    field[string]{Name: "flightNumber", Paths: []string{"flightCode", "flightNumber", "fD.fN"}, Parse: parseString},
	AirlineCode:     field[string]{Name: "airlineCode", Paths: []string{"airlineCode", "fD.aI.code", "carrier.code"}, Parse: parseUpper},
	AirlineName:     field[string]{Name: "airlineName", Paths: []string{"airlineName", "fD.aI.name", "carrier.name"}, Parse: parseString},
	Origin:          field[string]{Name: "origin", Paths: []string{"origin", "from", "da.code"}, Parse: parseUpper},
	OriginCity:      field[string]{Name: "originCity", Paths: []string{"originCity", "da.cityCode", "da.city"}, Parse: parseString},
	Destination:     field[string]{Name: "destination", Paths: []string{"destination", "to", "aa.code"}, Parse: parseUpper},
	DestinationCity: field[string]{Name: "destinationCity", Paths: []string{"destinationCity", "aa.cityCode", "aa.city"}, Parse: parseString},
	Terminal:        field[string]{Name: "terminal", Paths: []string{"terminal", "da.terminal"}, Parse: parseString},
	DepartureTime:   field[string]{Name: "departureTime", Paths: []string{"departureTime", "dt", "departure"}, Parse: parseTimestamp},
	ArrivalTime:     field[string]{Name: "arrivalTime", Paths: []string{"arrivalTime", "at", "arrival"}, Parse: parseTimestamp},
	Duration:        field[int]{Name: "duration", Paths: []string{"duration", "durationMinutes", "duration_minutes"}, Parse: parseDuration},
	Stops:           field[int]{Name: "stops", Paths: []string{"stops", "stopCount", "stop_count"}, Parse: parseCount},
}

var fareFields = struct {
	FareID         field[string]
	Brand          field[string]
	TotalFare      field[int64]
	BaseFare       field[int64]
	Tax            field[int64]
	CabinClass     field[string]
	CheckedBaggage field[string]
	CabinBaggage   field[string]
	Meal           field[bool]
	RefundType     field[string]
	PriceID        field[string]
	SeatsAvailable field[int]
}{
	FareID:         field[string]{Name: "fareId", Paths: []string{"fareId", "fareIdentifier", "id"}, Parse: parseString},
	Brand:          field[string]{Name: "brand", Paths: []string{"brand", "fareBrand", "fareType"}, Parse: parseString},
	TotalFare:      field[int64]{Name: "totalFare", Paths: []string{"totalFare", "fd.ADULT.fC.TF", "price.total", "price"}, Parse: parseInt},
	BaseFare:       field[int64]{Name: "baseFare", Paths: []string{"baseFare", "fd.ADULT.fC.BF", "price.base"}, Parse: parseInt},
	Tax:            field[int64]{Name: "tax", Paths: []string{"tax", "taxes", "fd.ADULT.fC.TAF"}, Parse: parseInt},
	CabinClass:     field[string]{Name: "cabinClass", Paths: []string{"cabinClass", "fd.ADULT.cc", "class"}, Parse: parseUpper},
	CheckedBaggage: field[string]{Name: "checkedBaggage", Paths: []string{"checkedBaggage", "baggage.checked", "fd.ADULT.bI.iB"}, Parse: parseString},
	CabinBaggage:   field[string]{Name: "cabinBaggage", Paths: []string{"cabinBaggage", "baggage.cabin", "fd.ADULT.bI.cB"}, Parse: parseString},
	Meal:           field[bool]{Name: "meal", Paths: []string{"meal", "isMealIncluded", "fd.ADULT.mI"}, Parse: parseBool},
	RefundType:     field[string]{Name: "refundType", Paths: []string{"refundType", "refundPolicy", "fd.ADULT.rT"}, Parse: parseRefund},
	PriceID:        field[string]{Name: "priceID", Paths: []string{"priceID", "priceId", "price_id"}, Parse: parseString},
	SeatsAvailable: field[int]{Name: "seatsAvailable", Paths: []string{"seatsAvailable", "availableSeats", "fd.ADULT.sR"}, Parse: parseCount},
}

func extractSegment(obj gjson.Result) flight.FlightSegment {
	f := segmentFields
	seg := flight.FlightSegment{
		FlightNumber:    f.FlightNumber.extract(obj),
		AirlineCode:     f.AirlineCode.extract(obj),
		AirlineName:     f.AirlineName.extract(obj),
		Origin:          f.Origin.extract(obj),
		OriginCity:      f.OriginCity.extract(obj),
		Destination:     f.Destination.extract(obj),
		DestinationCity: f.DestinationCity.extract(obj),
		Terminal:        f.Terminal.extract(obj),
		DepartureTime:   f.DepartureTime.extract(obj),
		ArrivalTime:     f.ArrivalTime.extract(obj),
		Duration:        f.Duration.extract(obj),
		Stops:           f.Stops.extract(obj),
	}
	// flight numbers carry the carrier designator as their first two characters
	if seg.AirlineCode == "" && len(seg.FlightNumber) >= 2 &&
		seg.FlightNumber[0] < utf8.RuneSelf && seg.FlightNumber[1] < utf8.RuneSelf {
		seg.AirlineCode = strings.ToUpper(seg.FlightNumber[:2])
	}
	return seg
}

func extractFare(obj gjson.Result) flight.Fare {
	f := fareFields
	return flight.Fare{
		FareID:         f.FareID.extract(obj),
		Brand:          f.Brand.extract(obj),
		TotalFare:      f.TotalFare.extract(obj),
		BaseFare:       f.BaseFare.extract(obj),
		Tax:            f.Tax.extract(obj),
		CabinClass:     f.CabinClass.extract(obj),
		CheckedBaggage: f.CheckedBaggage.extract(obj),
		CabinBaggage:   f.CabinBaggage.extract(obj),
		Meal:           f.Meal.extract(obj),
		RefundType:     f.RefundType.extract(obj),
		PriceID:        f.PriceID.extract(obj),
		SeatsAvailable: f.SeatsAvailable.extract(obj),
	}
}

// firstArray returns the elements of the first path holding an array.
func firstArray(obj gjson.Result, paths []string) ([]gjson.Result, bool) {
	for _, path := range paths {
		r := obj.Get(path)
		if r.IsArray() {
			return r.Array(), true
		}
	}
	return nil, false
}
