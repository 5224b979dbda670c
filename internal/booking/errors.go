package booking

import (
	"net/http"

	"faresearch/internal/flight"
)

var (
	ErrMissingPriceID = &flight.AppError{
		Status:  http.StatusBadRequest,
		Code:    flight.ErrorCodeValidation,
		Message: "fare has no price id and cannot be reviewed or booked",
	}
	ErrNoPassengers = &flight.AppError{
		Status:  http.StatusBadRequest,
		Code:    flight.ErrorCodeValidation,
		Message: "at least one passenger is required",
	}
	ErrBookingNotFound = &flight.AppError{
		Status:  http.StatusNotFound,
		Code:    flight.ErrorCodeNotFound,
		Message: "booking not found",
	}
)
