package flightclient

import (
	"context"
	"errors"
	"fmt"

	"faresearch/internal/flight"
)

// ErrUnknownSupplier is returned when a call names a supplier that has no
// configured client.
var ErrUnknownSupplier = errors.New("unknown supplier")

// ProviderError describes a failed call to one supplier.
type ProviderError struct {
	Supplier   flight.Supplier
	Op         string
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s: unexpected status %d", e.Supplier, e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s: %v", e.Supplier, e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Code classifies the failure for search metadata.
func (e *ProviderError) Code() flight.ErrorCode {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return flight.ErrorCodeTimeout
	}
	return flight.ErrorCodeUpstream
}
