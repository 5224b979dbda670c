package main

import "net/http"

// AirIQ returns a flat "data" array. Amounts are strings with a currency
// prefix and timestamps carry seconds.
func AirIQSearchHandler(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeSearch(w, r)
	if !ok {
		return
	}

	refund := []string{"Non-Refundable", "Refundable", "Partially Refundable"}
	data := make([]map[string]any, 0)
	for _, f := range schedule("airiq", req) {
		fare := map[string]any{
			"fareId":         "SAVER",
			"brand":          "Saver",
			"totalFare":      formatINR(f.Base + f.Tax),
			"baseFare":       f.Base,
			"tax":            f.Tax,
			"cabinClass":     f.Cabin,
			"checkedBaggage": f.Checked,
			"cabinBaggage":   "7 Kg",
			"meal":           f.Meal,
			"refundType":     refund[f.Refundable],
			"seatsAvailable": f.Seats,
		}
		if f.PriceID != "" {
			fare["priceId"] = f.PriceID
		}

		data = append(data, map[string]any{
			"flightCode":      f.Number,
			"airlineName":     f.Carrier.Name,
			"origin":          f.Origin,
			"originCity":      f.Origin,
			"destination":     f.Dest,
			"destinationCity": f.Dest,
			"departureTime":   f.Departure.Format("2006-01-02T15:04:05"),
			"arrivalTime":     f.Departure.Add(minutes(f.Duration)).Format("2006-01-02T15:04:05"),
			"duration":        f.Duration,
			"stops":           f.Stops,
			"fares":           []map[string]any{fare},
		})
	}

	simulateLatency()
	writeJSON(w, http.StatusOK, map[string]any{"status": "success", "data": data})
}
