package main

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"net/http"
	"strings"
	"time"
)

type reviewRequest struct {
	PriceID string `json:"priceID"`
}

type bookingRequest struct {
	PriceID    string            `json:"priceID"`
	Passengers []json.RawMessage `json:"passengers"`
}

// ReviewHandler re-prices a fare; about one review in five comes back
// with a small fare change.
func ReviewHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.PriceID) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "priceID is required"})
		return
	}

	h := hashOf(req.PriceID)
	total := 3000 + int(h%6000)
	if h%5 == 0 {
		total += 250
	}

	simulateLatency()
	writeJSON(w, http.StatusOK, map[string]any{
		"data": map[string]any{
			"priceID":    req.PriceID,
			"totalFare":  total,
			"baseFare":   total * 8 / 9,
			"tax":        total / 9,
			"refundType": "Refundable",
		},
	})
}

func BookingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req bookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PriceID == "" || len(req.Passengers) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "priceID and passengers are required"})
		return
	}

	h := hashOf(req.PriceID + time.Now().String())

	simulateLatency()
	writeJSON(w, http.StatusCreated, map[string]any{
		"data": map[string]any{
			"pnr":       fmt.Sprintf("%06X", h%0xFFFFFF),
			"status":    "CONFIRMED",
			"totalFare": 3000 + int(hashOf(req.PriceID)%6000),
		},
	})
}

func hashOf(s string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(s))
	return h.Sum32()
}

func minutes(n int) time.Duration {
	return time.Duration(n) * time.Minute
}

func formatINR(amount int) string {
	s := fmt.Sprint(amount)
	if len(s) > 3 {
		s = s[:len(s)-3] + "," + s[len(s)-3:]
	}
	return "INR " + s
}
