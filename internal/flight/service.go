package flight

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"faresearch/pkg/cache"
	"faresearch/pkg/idgen"
	"faresearch/pkg/logger"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// resultsCacheVersion must be bumped whenever FlightSearchItem changes shape;
// entries written under another version are treated as misses.
const resultsCacheVersion = 1

type FlightClient interface {
	SearchFlights(ctx context.Context, req SearchRequest) (*FlightSearchResponse, error)
}

type Service struct {
	flightClient FlightClient
	cache        cache.Cache
	ttl          time.Duration
	ids          idgen.Generator
	logger       logger.Client
	tracer       trace.Tracer
}

func NewService(flightClient FlightClient, cache cache.Cache, ttlMinutes int, ids idgen.Generator, logger logger.Client) *Service {
	return &Service{
		flightClient: flightClient,
		cache:        cache,
		ttl:          time.Duration(ttlMinutes) * time.Minute,
		ids:          ids,
		logger:       logger,
		tracer:       otel.Tracer("faresearch/internal/flight"),
	}
}

type cachedResults struct {
	Version        int                `json:"version"`
	SearchCriteria SearchCriteria     `json:"search_criteria"`
	Metadata       Metadata           `json:"metadata"`
	Items          []FlightSearchItem `json:"items"`
}

// generateCacheKey creates a deterministic key from search parameters
func (s *Service) generateCacheKey(req SearchRequest) string {
	key := fmt.Sprintf("flight:%s:%s:%s:%s:%d:%s",
		strings.ToUpper(req.Origin),
		strings.ToUpper(req.Destination),
		req.DepartureDate,
		req.ReturnDate,
		req.Passengers,
		strings.ToUpper(req.CabinClass),
	)

	hash := sha256.Sum256([]byte(key))
	return fmt.Sprintf("flight:search:%x", hash[:16])
}

func (s *Service) SearchFlights(ctx context.Context, req SearchRequest) (*FlightSearchResponse, error) {
	ctx, span := s.tracer.Start(ctx, "flight.SearchFlights", trace.WithAttributes(
		attribute.String("route", req.Origin+"-"+req.Destination),
	))
	defer span.End()

	if err := validateSearch(req); err != nil {
		return nil, err
	}

	cacheKey := s.generateCacheKey(req)
	if cached, ok := s.loadResults(ctx, cacheKey); ok {
		s.logger.Info("Cache hit for search", logger.Field{Key: "cache_key", Value: cacheKey})
		span.SetAttributes(attribute.Bool("cache_hit", true))
		return cached, nil
	}

	s.logger.Info("Cache miss for search", logger.Field{Key: "cache_key", Value: cacheKey})
	span.SetAttributes(attribute.Bool("cache_hit", false))

	response, err := s.refresh(ctx, req, cacheKey)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	s.storeResults(ctx, cacheKey, response)
	return response, nil
}

// FilterFlights builds a view over stored results, searching again when
// the results are gone from the cache.
func (s *Service) FilterFlights(ctx context.Context, req FilterRequest) (*FilterResponse, error) {
	ctx, span := s.tracer.Start(ctx, "flight.FilterFlights", trace.WithAttributes(
		attribute.String("route", req.Origin+"-"+req.Destination),
	))
	defer span.End()

	if err := validateSearch(req.SearchRequest); err != nil {
		return nil, err
	}

	cacheKey := s.generateCacheKey(req.SearchRequest)
	response, ok := s.loadResults(ctx, cacheKey)
	if !ok {
		s.logger.Info("Cache miss for filter - auto-refreshing",
			logger.Field{Key: "cache_key", Value: cacheKey},
			logger.Field{Key: "route", Value: fmt.Sprintf("%s->%s", req.Origin, req.Destination)},
		)

		var err error
		response, err = s.refresh(ctx, req.SearchRequest, cacheKey)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}

		// the caller only waits for the view, not for the cache write
		go s.storeResults(context.WithoutCancel(ctx), cacheKey, response)
	}

	state := req.ViewState
	if state.Sort != nil && !IsSortKey(state.Sort.Key) {
		s.logger.Warn("invalid_sort_criteria", logger.Field{Key: "sort_by", Value: string(state.Sort.Key)})
		state.Sort = nil
	}

	view := BuildView(DeriveFilterKeys(response.Items), state)

	metadata := response.Metadata
	metadata.TotalResults = uint32(view.Total)
	span.SetAttributes(attribute.Int("listings.total", view.Total))

	return &FilterResponse{
		SearchCriteria: response.SearchCriteria,
		Metadata:       metadata,
		View:           view,
	}, nil
}

// InvalidateCache manually invalidates cache for a specific route
func (s *Service) InvalidateCache(ctx context.Context, req SearchRequest) error {
	cacheKey := s.generateCacheKey(req)
	s.logger.Info("Invalidating cache", logger.Field{Key: "cache_key", Value: cacheKey})
	return s.cache.Del(ctx, cacheKey)
}

func (s *Service) refresh(ctx context.Context, req SearchRequest, cacheKey string) (*FlightSearchResponse, error) {
	startTime := time.Now()

	response, err := s.flightClient.SearchFlights(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, context.DeadlineExceeded):
			return nil, &AppError{Status: http.StatusGatewayTimeout, Code: ErrorCodeTimeout, Message: "flight search timed out", Err: err}
		case errors.Is(err, ErrAllSuppliersFailed):
			return nil, NewUpstreamError("flight search failed", err)
		}
		return nil, fmt.Errorf("failed to refresh search results: %w", err)
	}

	response.SearchCriteria = SearchCriteria{
		Origin:        req.Origin,
		Destination:   req.Destination,
		DepartureDate: req.DepartureDate,
		ReturnDate:    req.ReturnDate,
		Passengers:    req.Passengers,
		CabinClass:    req.CabinClass,
	}
	response.Metadata.SearchID = s.ids.GenerateRef()
	response.Metadata.TotalResults = uint32(len(response.Items))
	response.Metadata.SearchTimeMs = uint32(time.Since(startTime).Milliseconds())
	response.Metadata.CacheHit = false
	response.Metadata.CacheKey = cacheKey

	return response, nil
}

func (s *Service) loadResults(ctx context.Context, cacheKey string) (*FlightSearchResponse, bool) {
	cached, err := s.cache.Get(ctx, cacheKey)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			s.logger.Error("Failed to read cached results",
				logger.Field{Key: "err", Value: err},
				logger.Field{Key: "cache_key", Value: cacheKey},
			)
		}
		return nil, false
	}

	var entry cachedResults
	if err := json.Unmarshal([]byte(cached), &entry); err != nil {
		s.logger.Error("Failed to unmarshal cached data", logger.Field{Key: "err", Value: err})
		return nil, false
	}
	if entry.Version != resultsCacheVersion {
		s.logger.Warn("Discarding cached results with stale version",
			logger.Field{Key: "cache_key", Value: cacheKey},
			logger.Field{Key: "version", Value: entry.Version},
		)
		return nil, false
	}

	entry.Metadata.CacheHit = true
	entry.Metadata.CacheKey = cacheKey
	return &FlightSearchResponse{
		SearchCriteria: entry.SearchCriteria,
		Metadata:       entry.Metadata,
		Items:          entry.Items,
	}, true
}

func (s *Service) storeResults(ctx context.Context, cacheKey string, response *FlightSearchResponse) {
	payload, err := json.Marshal(cachedResults{
		Version:        resultsCacheVersion,
		SearchCriteria: response.SearchCriteria,
		Metadata:       response.Metadata,
		Items:          response.Items,
	})
	if err != nil {
		s.logger.Error("Failed to marshal response", logger.Field{Key: "err", Value: err})
		return
	}

	if err := s.cache.Set(ctx, cacheKey, string(payload), s.ttl); err != nil {
		s.logger.Error("Failed to cache response",
			logger.Field{Key: "err", Value: err},
			logger.Field{Key: "cache_key", Value: cacheKey},
		)
	}
}

func validateSearch(req SearchRequest) error {
	switch {
	case strings.TrimSpace(req.Origin) == "":
		return NewValidationError("origin is required")
	case strings.TrimSpace(req.Destination) == "":
		return NewValidationError("destination is required")
	case strings.TrimSpace(req.DepartureDate) == "":
		return NewValidationError("departure_date is required")
	}
	return nil
}
