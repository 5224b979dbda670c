package flightclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"faresearch/internal/flight"
	"faresearch/pkg/logger"
)

const (
	searchPath  = "/v1/flights/search"
	reviewPath  = "/v1/fares/review"
	bookingPath = "/v1/bookings"
)

// maxResponseBytes caps how much of a supplier body is read.
const maxResponseBytes = 8 << 20

// SupplierClient talks to one supplier's HTTP API and hands back raw
// response bodies; mapping them is the normalizer's job.
type SupplierClient struct {
	supplier   flight.Supplier
	httpClient *http.Client
	baseURL    string
	limiter    *ProviderLimiter
	logger     logger.Client
}

func NewSupplierClient(supplier flight.Supplier, httpClient *http.Client, baseURL string, limiter *ProviderLimiter, logger logger.Client) *SupplierClient {
	return &SupplierClient{
		supplier:   supplier,
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		limiter:    limiter,
		logger:     logger,
	}
}

func (c *SupplierClient) Supplier() flight.Supplier {
	return c.supplier
}

func (c *SupplierClient) SearchFlights(ctx context.Context, req flight.SearchRequest) ([]byte, error) {
	return c.post(ctx, "search", searchPath, req)
}

func (c *SupplierClient) ReviewFare(ctx context.Context, priceID string) ([]byte, error) {
	return c.post(ctx, "review", reviewPath, map[string]string{"priceID": priceID})
}

func (c *SupplierClient) CreateBooking(ctx context.Context, payload any) ([]byte, error) {
	return c.post(ctx, "book", bookingPath, payload)
}

func (c *SupplierClient) post(ctx context.Context, op, path string, payload any) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx, string(c.supplier)); err != nil {
			return nil, &ProviderError{Supplier: c.supplier, Op: op, Err: fmt.Errorf("rate limit wait: %w", err)}
		}
	}

	reqBody, err := json.Marshal(payload)
	if err != nil {
		return nil, &ProviderError{Supplier: c.supplier, Op: op, Err: fmt.Errorf("failed to marshal request: %w", err)}
	}

	r, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(reqBody))
	if err != nil {
		return nil, &ProviderError{Supplier: c.supplier, Op: op, Err: fmt.Errorf("failed to build request: %w", err)}
	}
	r.Header.Set("Content-Type", "application/json")
	r.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(r)
	if err != nil {
		return nil, &ProviderError{Supplier: c.supplier, Op: op, Err: fmt.Errorf("external api call failed: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &ProviderError{Supplier: c.supplier, Op: op, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		c.logger.Warn("supplier returned non-success status",
			logger.Field{Key: "supplier", Value: string(c.supplier)},
			logger.Field{Key: "op", Value: op},
			logger.Field{Key: "status", Value: resp.StatusCode},
		)
		return nil, &ProviderError{Supplier: c.supplier, Op: op, StatusCode: resp.StatusCode}
	}

	return body, nil
}
