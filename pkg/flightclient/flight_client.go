package flightclient

import (
	"context"
	"errors"
	"fmt"
	"time"

	"faresearch/internal/flight"
	"faresearch/internal/supplier"
	"faresearch/pkg/logger"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// FlightManager fans a search out to every configured supplier and merges
// the normalized results.
type FlightManager struct {
	clients    []*SupplierClient
	normalizer *supplier.Normalizer
	logger     logger.Client

	missingPriceIDs metric.Int64Counter
	supplierCalls   metric.Int64Counter
}

type supplierResult struct {
	index    int
	supplier flight.Supplier
	items    []flight.FlightSearchItem
	missing  int
	elapsed  time.Duration
	err      error
}

func NewFlightClient(clients []*SupplierClient, normalizer *supplier.Normalizer, log logger.Client) *FlightManager {
	meter := otel.Meter("faresearch/pkg/flightclient")

	missing, err := meter.Int64Counter("supplier.fares.missing_price_id",
		metric.WithDescription("Fares returned without a price id"),
	)
	if err != nil {
		log.Warn("failed to create missing price id counter", logger.Field{Key: "err", Value: err})
	}
	calls, err := meter.Int64Counter("supplier.search.calls",
		metric.WithDescription("Supplier search calls by outcome"),
	)
	if err != nil {
		log.Warn("failed to create supplier call counter", logger.Field{Key: "err", Value: err})
	}

	return &FlightManager{
		clients:         clients,
		normalizer:      normalizer,
		logger:          log,
		missingPriceIDs: missing,
		supplierCalls:   calls,
	}
}

// SearchFlights queries all suppliers concurrently. Items keep the
// configured supplier order regardless of which answered first. A supplier
// failure is recorded in the metadata; only a failure of every supplier is
// an error.
func (f *FlightManager) SearchFlights(ctx context.Context, req flight.SearchRequest) (*flight.FlightSearchResponse, error) {
	resultCh := make(chan supplierResult, len(f.clients))

	for i, c := range f.clients {
		go func(index int, client *SupplierClient) {
			start := time.Now()
			raw, err := client.SearchFlights(ctx, req)
			res := supplierResult{index: index, supplier: client.Supplier(), err: err}
			if err == nil {
				normalized := f.normalizer.Normalize(client.Supplier(), raw)
				res.items = normalized.Items
				res.missing = normalized.MissingPriceIDs
			}
			res.elapsed = time.Since(start)
			resultCh <- res
		}(i, c)
	}

	results := make([]supplierResult, len(f.clients))
	for range f.clients {
		res := <-resultCh
		results[res.index] = res
	}

	metadata := flight.Metadata{SuppliersQueried: uint32(len(f.clients))}
	items := make([]flight.FlightSearchItem, 0)

	for _, res := range results {
		if res.err != nil {
			f.logger.Error("supplier search failed",
				logger.Field{Key: "supplier", Value: string(res.supplier)},
				logger.Field{Key: "err", Value: res.err},
				logger.Field{Key: "elapsed", Value: res.elapsed},
			)
			metadata.SuppliersFailed++
			metadata.SupplierErrors = append(metadata.SupplierErrors, supplierError(res.supplier, res.err))
			f.count(ctx, f.supplierCalls, 1, res.supplier, "failed")
			continue
		}

		f.logger.Debug("supplier search succeeded",
			logger.Field{Key: "supplier", Value: string(res.supplier)},
			logger.Field{Key: "items", Value: len(res.items)},
			logger.Field{Key: "elapsed", Value: res.elapsed},
		)
		metadata.SuppliersSucceeded++
		metadata.MissingPriceIDs += uint32(res.missing)
		items = append(items, res.items...)
		f.count(ctx, f.supplierCalls, 1, res.supplier, "succeeded")
		if res.missing > 0 {
			f.count(ctx, f.missingPriceIDs, int64(res.missing), res.supplier, "")
		}
	}

	if len(f.clients) > 0 && metadata.SuppliersSucceeded == 0 {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%w: %w", flight.ErrAllSuppliersFailed, ctxErr)
		}
		return nil, fmt.Errorf("%w: %d queried", flight.ErrAllSuppliersFailed, len(f.clients))
	}

	metadata.TotalResults = uint32(len(items))
	return &flight.FlightSearchResponse{
		Metadata: metadata,
		Items:    items,
	}, nil
}

func (f *FlightManager) count(ctx context.Context, counter metric.Int64Counter, n int64, s flight.Supplier, outcome string) {
	if counter == nil {
		return
	}
	attrs := []attribute.KeyValue{attribute.String("supplier", string(s))}
	if outcome != "" {
		attrs = append(attrs, attribute.String("outcome", outcome))
	}
	counter.Add(ctx, n, metric.WithAttributes(attrs...))
}

func supplierError(s flight.Supplier, err error) flight.SupplierError {
	var pErr *ProviderError
	if errors.As(err, &pErr) {
		return flight.SupplierError{Supplier: s, Code: pErr.Code(), Message: pErr.Error()}
	}
	return flight.SupplierError{Supplier: s, Code: flight.ErrorCodeUpstream, Message: err.Error()}
}
