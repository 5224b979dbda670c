package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"time"
)

type carrier struct {
	Code string
	Name string
}

var carriers = []carrier{
	{"6E", "IndiGo"},
	{"AI", "Air India"},
	{"UK", "Vistara"},
	{"SG", "SpiceJet"},
	{"QP", "Akasa Air"},
}

// mockFlight is the supplier-neutral shape every handler renders its own
// way.
type mockFlight struct {
	Carrier    carrier
	Number     string
	Origin     string
	Dest       string
	Departure  time.Time
	Duration   int
	Stops      int
	Base       int
	Tax        int
	Cabin      string
	Seats      int
	Refundable int // 0 non, 1 full, 2 partial
	Checked    string
	Meal       bool
	PriceID    string
}

// schedule builds a deterministic day of flights for a route, seeded by
// supplier so each returns a different but stable mix.
func schedule(supplier string, req SearchRequest) []mockFlight {
	origin := strings.ToUpper(req.Origin)
	dest := strings.ToUpper(req.Destination)
	if origin == "" || dest == "" {
		return nil
	}

	day, err := time.Parse("2006-01-02", req.DepartureDate)
	if err != nil {
		day = time.Now().Truncate(24 * time.Hour)
	}

	seed := int64(len(supplier))
	for _, r := range supplier + origin + dest + req.DepartureDate {
		seed = seed*31 + int64(r)
	}
	rng := rand.New(rand.NewSource(seed))

	cabin := strings.ToUpper(req.CabinClass)
	if cabin == "" {
		cabin = "ECONOMY"
	}

	count := 4 + rng.Intn(5)
	flights := make([]mockFlight, 0, count)
	for i := 0; i < count; i++ {
		c := carriers[rng.Intn(len(carriers))]
		stops := rng.Intn(3)
		duration := 70 + rng.Intn(120) + stops*95
		base := 2500 + rng.Intn(6500)
		if cabin == "BUSINESS" {
			base *= 3
		}

		f := mockFlight{
			Carrier:    c,
			Number:     fmt.Sprintf("%s%d", c.Code, 100+rng.Intn(900)),
			Origin:     origin,
			Dest:       dest,
			Departure:  day.Add(time.Duration(rng.Intn(24*12)) * 5 * time.Minute),
			Duration:   duration,
			Stops:      stops,
			Base:       base,
			Tax:        base / 8,
			Cabin:      cabin,
			Seats:      rng.Intn(10),
			Refundable: rng.Intn(3),
			Meal:       rng.Intn(2) == 0,
			PriceID:    fmt.Sprintf("%s-%d-%d", strings.ToUpper(supplier), seed%100000, i),
		}
		if rng.Intn(3) > 0 {
			f.Checked = fmt.Sprintf("%d Kg", 15+5*rng.Intn(3))
		}
		// roughly one in ten fares arrives without a price id
		if rng.Intn(10) == 0 {
			f.PriceID = ""
		}
		flights = append(flights, f)
	}
	return flights
}

func decodeSearch(w http.ResponseWriter, r *http.Request) (SearchRequest, bool) {
	var req SearchRequest
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return req, false
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request: "+err.Error(), http.StatusBadRequest)
		return req, false
	}
	return req, true
}

func simulateLatency() {
	delay := 50 + rand.Intn(151) // 50 to 200ms
	time.Sleep(time.Duration(delay) * time.Millisecond)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
