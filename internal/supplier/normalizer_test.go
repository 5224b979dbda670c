package supplier

import (
	"bytes"
	"testing"

	"faresearch/internal/flight"
	"faresearch/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const airIQPayload = `{
  "status": "ok",
  "data": [
    {
      "flightCode": "6E203",
      "airlineName": "IndiGo",
      "origin": "del",
      "originCity": "DEL",
      "destination": "bom",
      "destinationCity": "BOM",
      "terminal": "T1",
      "departureTime": "2025-12-15T07:05:42",
      "arrivalTime": "2025-12-15T09:15:00",
      "duration": "130",
      "stops": 0,
      "fares": [
        {
          "fareId": "SAVER",
          "brand": "Saver",
          "totalFare": "INR 5,400",
          "baseFare": 4800,
          "tax": 600.75,
          "cabinClass": "economy",
          "checkedBaggage": "15 Kg",
          "cabinBaggage": "7 Kg",
          "meal": false,
          "refundType": "Partially Refundable",
          "priceId": "AIQ-1",
          "seatsAvailable": "9"
        }
      ]
    }
  ]
}`

const tboPayload = `{
  "data": {
    "results": [
      {
        "segments": [
          {
            "flightNumber": "AI 865",
            "airlineCode": "AI",
            "airlineName": "Air India",
            "from": "DEL",
            "to": "BLR",
            "departure": "2025-12-15 19:00:00",
            "arrival": "2025-12-15 21:50:00",
            "duration": "2h 50m",
            "stopCount": 1
          }
        ],
        "fares": [
          {
            "fareIdentifier": "PUB",
            "price": {"total": 7100, "base": 6200},
            "taxes": "900",
            "class": "Business",
            "baggage": {"checked": "25 Kg", "cabin": "7 Kg"},
            "isMealIncluded": true,
            "refundPolicy": "Non-Refundable",
            "price_id": "TBO-9",
            "availableSeats": 4
          }
        ]
      }
    ]
  }
}`

const tripJackPayload = `{
  "data": {
    "searchResult": {
      "tripInfos": {
        "ONWARD": [
          {
            "sI": [
              {
                "fD": {"aI": {"code": "UK", "name": "Vistara"}, "fN": "955"},
                "da": {"code": "BOM", "cityCode": "BOM", "terminal": "Terminal 2"},
                "aa": {"code": "DEL", "cityCode": "DEL"},
                "dt": "2025-12-16T05:45",
                "at": "2025-12-16T07:55",
                "duration": 130,
                "stops": 0
              }
            ],
            "totalPriceList": [
              {
                "id": "TJ-FARE-1",
                "fareIdentifier": "PUBLISHED",
                "fd": {"ADULT": {"fC": {"TF": 6120, "BF": 5300, "TAF": 820}, "cc": "ECONOMY", "bI": {"iB": "15 Kg", "cB": "7 Kg"}, "mI": true, "rT": 1, "sR": 3}},
                "priceID": "TJ-P-1"
              }
            ]
          }
        ]
      }
    }
  }
}`

func newTestNormalizer(buf *bytes.Buffer) *Normalizer {
	return NewNormalizer(logger.NewWithWriter("development", buf))
}

func TestNormalize_FlatDataShape(t *testing.T) {
	n := newTestNormalizer(&bytes.Buffer{})

	res := n.Normalize(flight.SupplierAirIQ, []byte(airIQPayload))

	require.Len(t, res.Items, 1)
	assert.Equal(t, "data", res.Shape)
	assert.Zero(t, res.MissingPriceIDs)

	item := res.Items[0]
	assert.Equal(t, flight.SupplierAirIQ, item.Supplier)
	require.Len(t, item.Segments, 1)
	seg := item.Segments[0]
	assert.Equal(t, "6E203", seg.FlightNumber)
	assert.Equal(t, "6E", seg.AirlineCode, "airline code derived from the flight number")
	assert.Equal(t, "DEL", seg.Origin)
	assert.Equal(t, "BOM", seg.Destination)
	assert.Equal(t, "T1", seg.Terminal)
	assert.Equal(t, "2025-12-15T07:05", seg.DepartureTime, "seconds truncated")
	assert.Equal(t, "2025-12-15T09:15", seg.ArrivalTime)
	assert.Equal(t, 130, seg.Duration)

	require.Len(t, item.Fares, 1)
	fare := item.Fares[0]
	assert.Equal(t, int64(5400), fare.TotalFare)
	assert.Equal(t, int64(4800), fare.BaseFare)
	assert.Equal(t, int64(600), fare.Tax)
	assert.Equal(t, "ECONOMY", fare.CabinClass)
	assert.Equal(t, "AIQ-1", fare.PriceID)
	assert.Equal(t, 9, fare.SeatsAvailable)
	assert.Equal(t, "Partially Refundable", fare.RefundType)
}

func TestNormalize_ResultsShape(t *testing.T) {
	n := newTestNormalizer(&bytes.Buffer{})

	res := n.Normalize(flight.SupplierTBO, []byte(tboPayload))

	require.Len(t, res.Items, 1)
	assert.Equal(t, "data.results", res.Shape)

	seg := res.Items[0].Segments[0]
	assert.Equal(t, "AI 865", seg.FlightNumber)
	assert.Equal(t, "AI", seg.AirlineCode)
	assert.Equal(t, "2025-12-15T19:00", seg.DepartureTime)
	assert.Equal(t, 170, seg.Duration, "2h 50m parsed as a duration")
	assert.Equal(t, 1, seg.Stops)

	fare := res.Items[0].Fares[0]
	assert.Equal(t, int64(7100), fare.TotalFare)
	assert.Equal(t, int64(6200), fare.BaseFare)
	assert.Equal(t, int64(900), fare.Tax)
	assert.Equal(t, "BUSINESS", fare.CabinClass)
	assert.Equal(t, "25 Kg", fare.CheckedBaggage)
	assert.True(t, fare.Meal)
	assert.Equal(t, "Non-Refundable", fare.RefundType)
	assert.Equal(t, "TBO-9", fare.PriceID)
}

func TestNormalize_TripInfosShape(t *testing.T) {
	n := newTestNormalizer(&bytes.Buffer{})

	res := n.Normalize(flight.SupplierTripJack, []byte(tripJackPayload))

	require.Len(t, res.Items, 1)
	assert.Equal(t, "data.searchResult.tripInfos.ONWARD", res.Shape)

	seg := res.Items[0].Segments[0]
	assert.Equal(t, "955", seg.FlightNumber)
	assert.Equal(t, "UK", seg.AirlineCode)
	assert.Equal(t, "Vistara", seg.AirlineName)
	assert.Equal(t, "Terminal 2", seg.Terminal)

	fare := res.Items[0].Fares[0]
	assert.Equal(t, "PUBLISHED", fare.FareID, "fareIdentifier outranks id")
	assert.Equal(t, int64(6120), fare.TotalFare)
	assert.Equal(t, "Refundable", fare.RefundType)
	assert.Equal(t, 3, fare.SeatsAvailable)
	assert.Equal(t, "TJ-P-1", fare.PriceID)
}

func TestNormalize_TripInfosArray(t *testing.T) {
	n := newTestNormalizer(&bytes.Buffer{})
	payload := `{"data":{"searchResult":{"tripInfos":[{"flightNumber":"SG101","totalFare":3000,"priceID":"p"}]}}}`

	res := n.Normalize(flight.SupplierTripJack, []byte(payload))

	require.Len(t, res.Items, 1)
	assert.Equal(t, "data.searchResult.tripInfos", res.Shape)
	assert.Equal(t, "SG", res.Items[0].Segments[0].AirlineCode)
	assert.Equal(t, int64(3000), res.Items[0].Fares[0].TotalFare)
}

func TestNormalize_UnknownShapeFailsSoft(t *testing.T) {
	buf := &bytes.Buffer{}
	n := newTestNormalizer(buf)

	res := n.Normalize(flight.SupplierTBO, []byte(`{"data":{"flights":[{"flightCode":"X1"}]}}`))

	assert.NotNil(t, res.Items)
	assert.Empty(t, res.Items)
	assert.Empty(t, res.Shape)
	assert.Contains(t, buf.String(), "unrecognized supplier response shape")
}

func TestNormalize_InvalidJSONFailsSoft(t *testing.T) {
	buf := &bytes.Buffer{}
	n := newTestNormalizer(buf)

	var res Result
	assert.NotPanics(t, func() {
		res = n.Normalize(flight.SupplierAirIQ, []byte(`{"data": [`))
	})
	assert.Empty(t, res.Items)
	assert.Contains(t, buf.String(), "not valid json")
}

func TestNormalize_MissingPriceID(t *testing.T) {
	buf := &bytes.Buffer{}
	n := newTestNormalizer(buf)
	payload := `{"data":[
		{"flightCode":"6E1","fares":[{"totalFare":100}]},
		{"flightCode":"6E2","fares":[{"totalFare":200,"priceID":"ok"}]}
	]}`

	res := n.Normalize(flight.SupplierAirIQ, []byte(payload))

	require.Len(t, res.Items, 2, "the fare without a price id must not drop other items")
	assert.Equal(t, "", res.Items[0].Fares[0].PriceID)
	assert.Equal(t, "ok", res.Items[1].Fares[0].PriceID)
	assert.Equal(t, 1, res.MissingPriceIDs)
	assert.Contains(t, buf.String(), "fare has no price id")
	assert.Contains(t, buf.String(), `"flight_number":"6E1"`)
}

func TestNormalize_PriceIDAliasOrder(t *testing.T) {
	n := newTestNormalizer(&bytes.Buffer{})
	payload := `{"data":[{"fares":[{"price_id":"c","priceId":"b","priceID":"a"}]}]}`

	res := n.Normalize(flight.SupplierAirIQ, []byte(payload))

	assert.Equal(t, "a", res.Items[0].Fares[0].PriceID)
}

func TestNormalize_MalformedFieldsDegrade(t *testing.T) {
	n := newTestNormalizer(&bytes.Buffer{})
	payload := `{"data":[{"flightCode":"6E9","departureTime":"soon","duration":"unknown","fares":[{"totalFare":"free","priceID":"x"}]}]}`

	res := n.Normalize(flight.SupplierAirIQ, []byte(payload))

	require.Len(t, res.Items, 1)
	seg := res.Items[0].Segments[0]
	assert.Equal(t, "", seg.DepartureTime)
	assert.Equal(t, 0, seg.Duration)
	assert.Equal(t, int64(0), res.Items[0].Fares[0].TotalFare)
}

func TestNormalize_SkipsNonObjectEntries(t *testing.T) {
	n := newTestNormalizer(&bytes.Buffer{})

	res := n.Normalize(flight.SupplierAirIQ, []byte(`{"data":[null, 3, {"flightCode":"6E5","priceID":"p"}]}`))

	require.Len(t, res.Items, 1)
	assert.Equal(t, "6E5", res.Items[0].Segments[0].FlightNumber)
}

func TestNormalize_Idempotent(t *testing.T) {
	n := newTestNormalizer(&bytes.Buffer{})

	for _, payload := range []string{airIQPayload, tboPayload, tripJackPayload} {
		first := n.Normalize(flight.SupplierTBO, []byte(payload))
		second := n.Normalize(flight.SupplierTBO, []byte(payload))
		assert.Equal(t, first, second)
	}
}

func TestParseFare(t *testing.T) {
	fare, ok := ParseFare([]byte(`{"data":{"totalFare":5100,"priceId":"R-1","refundType":"Refundable"}}`))
	require.True(t, ok)
	assert.Equal(t, int64(5100), fare.TotalFare)
	assert.Equal(t, "R-1", fare.PriceID)

	_, ok = ParseFare([]byte(`[1,2]`))
	assert.False(t, ok)

	_, ok = ParseFare([]byte(`nope`))
	assert.False(t, ok)
}
