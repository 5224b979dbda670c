// Package supplier turns raw supplier search responses into canonical
// flight.FlightSearchItem values.
package supplier

import (
	"fmt"

	"faresearch/internal/flight"
	"faresearch/pkg/logger"

	"github.com/tidwall/gjson"
)

// resultPaths are the known locations of the result array, probed in order.
var resultPaths = []string{
	"data",
	"data.results",
	"data.searchResult.tripInfos",
	"data.searchResult.tripInfos.ONWARD",
}

type Result struct {
	Items []flight.FlightSearchItem
	// Shape is the result path that matched, empty when none did.
	Shape string
	// MissingPriceIDs counts fares without a price id. They are kept, but
	// cannot be reviewed or booked.
	MissingPriceIDs int
}

type Normalizer struct {
	logger logger.Client
}

func NewNormalizer(logger logger.Client) *Normalizer {
	return &Normalizer{logger: logger}
}

// Normalize never fails: unknown shapes and malformed payloads produce an
// empty Result and a logged diagnostic.
func (n *Normalizer) Normalize(s flight.Supplier, raw []byte) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			n.logger.Error("supplier normalization panicked",
				logger.Field{Key: "supplier", Value: string(s)},
				logger.Field{Key: "panic", Value: fmt.Sprint(r)},
			)
			res = Result{Items: []flight.FlightSearchItem{}}
		}
	}()

	res.Items = []flight.FlightSearchItem{}

	if !gjson.ValidBytes(raw) {
		n.logger.Warn("supplier response is not valid json",
			logger.Field{Key: "supplier", Value: string(s)},
			logger.Field{Key: "bytes", Value: len(raw)},
		)
		return res
	}

	doc := gjson.ParseBytes(raw)
	entries, shape := probeResults(doc)
	if shape == "" {
		n.logger.Warn("unrecognized supplier response shape",
			logger.Field{Key: "supplier", Value: string(s)},
			logger.Field{Key: "probed", Value: resultPaths},
		)
		return res
	}
	res.Shape = shape

	for idx, entry := range entries {
		if !entry.IsObject() {
			n.logger.Debug("skipping non-object result entry",
				logger.Field{Key: "supplier", Value: string(s)},
				logger.Field{Key: "index", Value: idx},
			)
			continue
		}

		item := normalizeItem(s, entry)
		for fareIdx, fare := range item.Fares {
			if fare.PriceID != "" {
				continue
			}
			res.MissingPriceIDs++
			n.logger.Warn("fare has no price id",
				logger.Field{Key: "supplier", Value: string(s)},
				logger.Field{Key: "flight_number", Value: item.FirstSegment().FlightNumber},
				logger.Field{Key: "fare_index", Value: fareIdx},
			)
		}
		res.Items = append(res.Items, item)
	}

	return res
}

// ParseFare reads a single fare from a fare-review style payload, looking
// under "data" first and then at the document root.
func ParseFare(raw []byte) (flight.Fare, bool) {
	if !gjson.ValidBytes(raw) {
		return flight.Fare{}, false
	}
	doc := gjson.ParseBytes(raw)
	if data := doc.Get("data"); data.IsObject() {
		return extractFare(data), true
	}
	if doc.IsObject() {
		return extractFare(doc), true
	}
	return flight.Fare{}, false
}

func probeResults(doc gjson.Result) ([]gjson.Result, string) {
	for _, path := range resultPaths {
		r := doc.Get(path)
		if r.IsArray() {
			return r.Array(), path
		}
	}
	return nil, ""
}

// normalizeItem reads segments and fares from their arrays, or treats the
// entry itself as a single flat segment / fare when a supplier sends no
// nested lists.
func normalizeItem(s flight.Supplier, entry gjson.Result) flight.FlightSearchItem {
	item := flight.FlightSearchItem{Supplier: s}

	if segments, ok := firstArray(entry, segmentPaths); ok {
		item.Segments = make([]flight.FlightSegment, 0, len(segments))
		for _, seg := range segments {
			item.Segments = append(item.Segments, extractSegment(seg))
		}
	} else {
		item.Segments = []flight.FlightSegment{extractSegment(entry)}
	}

	if fares, ok := firstArray(entry, farePaths); ok {
		item.Fares = make([]flight.Fare, 0, len(fares))
		for _, fare := range fares {
			item.Fares = append(item.Fares, extractFare(fare))
		}
	} else {
		item.Fares = []flight.Fare{extractFare(entry)}
	}

	return item
}
