package main

import (
	"fmt"
	"net/http"
)

// TBO nests results under data.results with a "2h 30m" duration and space
// separated timestamps.
func TBOSearchHandler(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeSearch(w, r)
	if !ok {
		return
	}

	results := make([]map[string]any, 0)
	for _, f := range schedule("tbo", req) {
		fare := map[string]any{
			"fareIdentifier": "PUBLISHED",
			"price":          map[string]any{"total": f.Base + f.Tax, "base": f.Base},
			"taxes":          fmt.Sprint(f.Tax),
			"class":          f.Cabin,
			"baggage":        map[string]any{"checked": f.Checked, "cabin": "7 Kg"},
			"isMealIncluded": f.Meal,
			"refundPolicy":   f.Refundable == 1,
			"availableSeats": f.Seats,
		}
		if f.PriceID != "" {
			fare["price_id"] = f.PriceID
		}

		results = append(results, map[string]any{
			"segments": []map[string]any{{
				"flightNumber": f.Number,
				"airlineCode":  f.Carrier.Code,
				"airlineName":  f.Carrier.Name,
				"from":         f.Origin,
				"to":           f.Dest,
				"departure":    f.Departure.Format("2006-01-02 15:04:05"),
				"arrival":      f.Departure.Add(minutes(f.Duration)).Format("2006-01-02 15:04:05"),
				"duration":     fmt.Sprintf("%dh %dm", f.Duration/60, f.Duration%60),
				"stopCount":    f.Stops,
			}},
			"fares": []map[string]any{fare},
		})
	}

	simulateLatency()
	writeJSON(w, http.StatusOK, map[string]any{"data": map[string]any{"results": results}})
}
