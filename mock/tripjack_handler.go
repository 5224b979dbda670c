package main

import (
	"net/http"
	"strings"
)

// TripJack keys everything by short codes under
// data.searchResult.tripInfos.ONWARD.
func TripJackSearchHandler(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeSearch(w, r)
	if !ok {
		return
	}

	onward := make([]map[string]any, 0)
	for _, f := range schedule("tripjack", req) {
		price := map[string]any{
			"id":             strings.ToLower(f.Number),
			"fareIdentifier": "PUBLISHED",
			"fd": map[string]any{
				"ADULT": map[string]any{
					"fC": map[string]any{"TF": f.Base + f.Tax, "BF": f.Base, "TAF": f.Tax},
					"cc": f.Cabin,
					"bI": map[string]any{"iB": f.Checked, "cB": "7 Kg"},
					"mI": f.Meal,
					"rT": f.Refundable,
					"sR": f.Seats,
				},
			},
		}
		if f.PriceID != "" {
			price["priceID"] = f.PriceID
		}

		onward = append(onward, map[string]any{
			"sI": []map[string]any{{
				"fD": map[string]any{
					"aI": map[string]any{"code": f.Carrier.Code, "name": f.Carrier.Name},
					"fN": strings.TrimPrefix(f.Number, f.Carrier.Code),
				},
				"da":       map[string]any{"code": f.Origin, "cityCode": f.Origin, "terminal": "T1"},
				"aa":       map[string]any{"code": f.Dest, "cityCode": f.Dest},
				"dt":       f.Departure.Format("2006-01-02T15:04"),
				"at":       f.Departure.Add(minutes(f.Duration)).Format("2006-01-02T15:04"),
				"duration": f.Duration,
				"stops":    f.Stops,
			}},
			"totalPriceList": []map[string]any{price},
		})
	}

	simulateLatency()
	writeJSON(w, http.StatusOK, map[string]any{
		"status": map[string]any{"success": true},
		"data": map[string]any{
			"searchResult": map[string]any{
				"tripInfos": map[string]any{"ONWARD": onward},
			},
		},
	})
}
