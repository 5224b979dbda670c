package booking

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"faresearch/internal/flight"
	"faresearch/pkg/flightclient"
	"faresearch/pkg/idgen"
	"faresearch/pkg/logger"
)

// SupplierGateway is the part of the supplier clients booking needs.
type SupplierGateway interface {
	ReviewFare(ctx context.Context, s flight.Supplier, priceID string) (flight.Fare, error)
	CreateBooking(ctx context.Context, s flight.Supplier, payload any) (flightclient.BookingConfirmation, error)
}

type Service struct {
	suppliers SupplierGateway
	repo      Repository
	ids       idgen.Generator
	logger    logger.Client
	now       func() time.Time
}

func NewService(suppliers SupplierGateway, repo Repository, ids idgen.Generator, logger logger.Client) *Service {
	return &Service{
		suppliers: suppliers,
		repo:      repo,
		ids:       ids,
		logger:    logger,
		now:       time.Now,
	}
}

type supplierBookingPayload struct {
	PriceID      string      `json:"priceID"`
	ContactEmail string      `json:"contactEmail"`
	ContactPhone string      `json:"contactPhone,omitempty"`
	Passengers   []Passenger `json:"passengers"`
}

// ReviewFare re-prices a fare with its supplier before booking.
func (s *Service) ReviewFare(ctx context.Context, req ReviewRequest) (*Review, error) {
	sup, priceID, err := parseTarget(req.Supplier, req.PriceID)
	if err != nil {
		return nil, err
	}

	fare, err := s.suppliers.ReviewFare(ctx, sup, priceID)
	if err != nil {
		s.logger.Error("fare review failed",
			logger.Field{Key: "supplier", Value: string(sup)},
			logger.Field{Key: "price_id", Value: priceID},
			logger.Field{Key: "err", Value: err},
		)
		return nil, mapSupplierError("fare review failed", err)
	}

	review := &Review{
		Supplier:    sup,
		PriceID:     priceID,
		Fare:        fare,
		QuotedTotal: req.QuotedTotal,
	}
	if req.QuotedTotal > 0 && fare.TotalFare != req.QuotedTotal {
		review.PriceChanged = true
		review.Difference = fare.TotalFare - req.QuotedTotal
		s.logger.Info("fare changed on review",
			logger.Field{Key: "price_id", Value: priceID},
			logger.Field{Key: "quoted", Value: req.QuotedTotal},
			logger.Field{Key: "reviewed", Value: fare.TotalFare},
		)
	}
	return review, nil
}

// Book confirms the fare with the supplier, then records the booking.
func (s *Service) Book(ctx context.Context, req BookingRequest) (*Booking, error) {
	sup, priceID, err := parseTarget(req.Supplier, req.PriceID)
	if err != nil {
		return nil, err
	}
	if len(req.Passengers) == 0 {
		return nil, ErrNoPassengers
	}

	passengers := make([]Passenger, len(req.Passengers))
	for i, p := range req.Passengers {
		if p.Type == "" {
			p.Type = PassengerAdult
		}
		passengers[i] = p
	}

	conf, err := s.suppliers.CreateBooking(ctx, sup, supplierBookingPayload{
		PriceID:      priceID,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Passengers:   passengers,
	})
	if err != nil {
		s.logger.Error("supplier booking failed",
			logger.Field{Key: "supplier", Value: string(sup)},
			logger.Field{Key: "price_id", Value: priceID},
			logger.Field{Key: "err", Value: err},
		)
		return nil, mapSupplierError("booking failed", err)
	}

	b := &Booking{
		ID:           s.ids.GenerateID(),
		Reference:    s.ids.GenerateRef(),
		Supplier:     sup,
		PriceID:      priceID,
		SupplierRef:  conf.SupplierRef,
		Status:       conf.Status,
		TotalFare:    conf.TotalFare,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Passengers:   passengers,
		CreatedAt:    s.now().UTC(),
	}

	if err := s.repo.Create(ctx, b); err != nil {
		// the supplier already holds the seat; keep its reference in the log
		s.logger.Error("failed to persist confirmed booking",
			logger.Field{Key: "supplier", Value: string(sup)},
			logger.Field{Key: "supplier_ref", Value: conf.SupplierRef},
			logger.Field{Key: "err", Value: err},
		)
		return nil, err
	}

	s.logger.Info("booking confirmed",
		logger.Field{Key: "reference", Value: b.Reference},
		logger.Field{Key: "supplier", Value: string(sup)},
		logger.Field{Key: "supplier_ref", Value: b.SupplierRef},
	)
	return b, nil
}

func (s *Service) GetBooking(ctx context.Context, id int64) (*Booking, error) {
	return s.repo.Get(ctx, id)
}

func parseTarget(supplierName, priceID string) (flight.Supplier, string, error) {
	priceID = strings.TrimSpace(priceID)
	if priceID == "" {
		return "", "", ErrMissingPriceID
	}
	sup, err := flight.ParseSupplier(supplierName)
	if err != nil {
		return "", "", flight.NewValidationError(err.Error())
	}
	return sup, priceID, nil
}

func mapSupplierError(msg string, err error) error {
	if errors.Is(err, flightclient.ErrUnknownSupplier) {
		return flight.NewValidationError(err.Error())
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &flight.AppError{Status: http.StatusGatewayTimeout, Code: flight.ErrorCodeTimeout, Message: msg, Err: err}
	}
	return flight.NewUpstreamError(msg, err)
}
