package booking

import (
	"time"

	"faresearch/internal/flight"
)

type PassengerType string

const (
	PassengerAdult  PassengerType = "ADULT"
	PassengerChild  PassengerType = "CHILD"
	PassengerInfant PassengerType = "INFANT"
)

const StatusConfirmed = "CONFIRMED"

type ReviewRequest struct {
	Supplier string `json:"supplier" binding:"required"`
	PriceID  string `json:"priceID"`
	// QuotedTotal is the total the customer saw in search results.
	QuotedTotal int64 `json:"quotedTotal"`
}

type Review struct {
	Supplier     flight.Supplier `json:"supplier"`
	PriceID      string          `json:"priceID"`
	Fare         flight.Fare     `json:"fare"`
	QuotedTotal  int64           `json:"quotedTotal"`
	PriceChanged bool            `json:"priceChanged"`
	Difference   int64           `json:"difference"`
}

type Passenger struct {
	Title       string        `json:"title"`
	FirstName   string        `json:"firstName" binding:"required"`
	LastName    string        `json:"lastName" binding:"required"`
	Type        PassengerType `json:"type"`
	DateOfBirth string        `json:"dateOfBirth,omitempty"`
}

type BookingRequest struct {
	Supplier     string      `json:"supplier" binding:"required"`
	PriceID      string      `json:"priceID"`
	ContactEmail string      `json:"contactEmail" binding:"required"`
	ContactPhone string      `json:"contactPhone"`
	Passengers   []Passenger `json:"passengers" binding:"dive"`
}

type Booking struct {
	ID           int64           `json:"id,string"`
	Reference    string          `json:"reference"`
	Supplier     flight.Supplier `json:"supplier"`
	PriceID      string          `json:"priceID"`
	SupplierRef  string          `json:"supplierRef"`
	Status       string          `json:"status"`
	TotalFare    int64           `json:"totalFare"`
	ContactEmail string          `json:"contactEmail"`
	ContactPhone string          `json:"contactPhone,omitempty"`
	Passengers   []Passenger     `json:"passengers"`
	CreatedAt    time.Time       `json:"createdAt"`
}
