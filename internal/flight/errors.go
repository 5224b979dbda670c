package flight

import (
	"errors"
	"net/http"
)

type ErrorCode string

const (
	ErrorCodeValidation      ErrorCode = "VALIDATION_ERROR"
	ErrorCodeTimeout         ErrorCode = "TIMEOUT"
	ErrorCodeUpstream        ErrorCode = "UPSTREAM_FAILURE"
	ErrorCodeNotFound        ErrorCode = "NOT_FOUND"
	ErrorCodeInternalFailure ErrorCode = "INTERNAL_FAILURE"
)

// ErrAllSuppliersFailed is returned when not a single supplier answered.
var ErrAllSuppliersFailed = errors.New("all suppliers failed")

type AppError struct {
	Status  int
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewValidationError(msg string) *AppError {
	return &AppError{Status: http.StatusBadRequest, Code: ErrorCodeValidation, Message: msg}
}

func NewUpstreamError(msg string, err error) *AppError {
	return &AppError{Status: http.StatusBadGateway, Code: ErrorCodeUpstream, Message: msg, Err: err}
}
