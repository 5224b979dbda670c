package flightclient

import (
	"context"
	"errors"
	"fmt"

	"faresearch/internal/flight"
	"faresearch/internal/supplier"

	"github.com/tidwall/gjson"
)

// BookingConfirmation is what a supplier returns for a successful booking.
type BookingConfirmation struct {
	SupplierRef string
	Status      string
	TotalFare   int64
}

// BookingClient routes fare review and booking calls to the supplier that
// issued the price id.
type BookingClient struct {
	clients map[flight.Supplier]*SupplierClient
}

func NewBookingClient(clients []*SupplierClient) *BookingClient {
	byName := make(map[flight.Supplier]*SupplierClient, len(clients))
	for _, c := range clients {
		byName[c.Supplier()] = c
	}
	return &BookingClient{clients: byName}
}

func (b *BookingClient) client(s flight.Supplier) (*SupplierClient, error) {
	c, ok := b.clients[s]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSupplier, s)
	}
	return c, nil
}

// ReviewFare re-prices a fare. The reviewed fare is read with the same
// field fallbacks as search results.
func (b *BookingClient) ReviewFare(ctx context.Context, s flight.Supplier, priceID string) (flight.Fare, error) {
	c, err := b.client(s)
	if err != nil {
		return flight.Fare{}, err
	}

	raw, err := c.ReviewFare(ctx, priceID)
	if err != nil {
		return flight.Fare{}, err
	}

	fare, ok := supplier.ParseFare(raw)
	if !ok {
		return flight.Fare{}, &ProviderError{Supplier: s, Op: "review", Err: errors.New("unreadable fare review response")}
	}
	if fare.PriceID == "" {
		fare.PriceID = priceID
	}
	return fare, nil
}

// CreateBooking books payload against the supplier and returns its
// confirmation.
func (b *BookingClient) CreateBooking(ctx context.Context, s flight.Supplier, payload any) (BookingConfirmation, error) {
	c, err := b.client(s)
	if err != nil {
		return BookingConfirmation{}, err
	}

	raw, err := c.CreateBooking(ctx, payload)
	if err != nil {
		return BookingConfirmation{}, err
	}

	if !gjson.ValidBytes(raw) {
		return BookingConfirmation{}, &ProviderError{Supplier: s, Op: "book", Err: errors.New("invalid json in booking response")}
	}
	doc := gjson.ParseBytes(raw)
	if data := doc.Get("data"); data.IsObject() {
		doc = data
	}

	conf := BookingConfirmation{
		SupplierRef: firstString(doc, "bookingId", "bookingRef", "pnr", "id"),
		Status:      firstString(doc, "status", "bookingStatus"),
		TotalFare:   doc.Get("totalFare").Int(),
	}
	if conf.SupplierRef == "" {
		return BookingConfirmation{}, &ProviderError{Supplier: s, Op: "book", Err: errors.New("booking response has no reference")}
	}
	if conf.Status == "" {
		conf.Status = "CONFIRMED"
	}
	return conf, nil
}

func firstString(doc gjson.Result, paths ...string) string {
	for _, p := range paths {
		if v := doc.Get(p); v.Exists() && v.String() != "" {
			return v.String()
		}
	}
	return ""
}
