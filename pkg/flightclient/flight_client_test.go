package flightclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"faresearch/internal/flight"
	"faresearch/internal/supplier"
	"faresearch/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func supplierServer(t *testing.T, status int, body string, delay time.Duration) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-r.Context().Done():
				return
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newManager(clients ...*SupplierClient) *FlightManager {
	return NewFlightClient(clients, supplier.NewNormalizer(logger.Nop()), logger.Nop())
}

func newClient(s flight.Supplier, baseURL string) *SupplierClient {
	return NewSupplierClient(s, &http.Client{Timeout: 2 * time.Second}, baseURL, NewProviderLimiter(RateLimitConfig{RequestsPerSecond: 100, BurstSize: 100}), logger.Nop())
}

var searchReq = flight.SearchRequest{Origin: "DEL", Destination: "BOM", DepartureDate: "2025-12-15", Passengers: 1}

func TestSupplierClient_SearchFlights(t *testing.T) {
	t.Run("posts the request and returns the raw body", func(t *testing.T) {
		var got flight.SearchRequest
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/v1/flights/search", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			_, _ = io.WriteString(w, `{"data":[]}`)
		}))
		defer srv.Close()

		raw, err := newClient(flight.SupplierTBO, srv.URL+"/").SearchFlights(context.Background(), searchReq)

		require.NoError(t, err)
		assert.JSONEq(t, `{"data":[]}`, string(raw))
		assert.Equal(t, searchReq, got)
	})

	t.Run("non-200 is a provider error", func(t *testing.T) {
		srv := supplierServer(t, http.StatusServiceUnavailable, `{}`, 0)

		_, err := newClient(flight.SupplierTBO, srv.URL).SearchFlights(context.Background(), searchReq)

		var pErr *ProviderError
		require.ErrorAs(t, err, &pErr)
		assert.Equal(t, flight.SupplierTBO, pErr.Supplier)
		assert.Equal(t, http.StatusServiceUnavailable, pErr.StatusCode)
		assert.Equal(t, flight.ErrorCodeUpstream, pErr.Code())
	})

	t.Run("deadline is reported as timeout", func(t *testing.T) {
		srv := supplierServer(t, http.StatusOK, `{"data":[]}`, time.Second)
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		_, err := newClient(flight.SupplierTBO, srv.URL).SearchFlights(ctx, searchReq)

		var pErr *ProviderError
		require.ErrorAs(t, err, &pErr)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Equal(t, flight.ErrorCodeTimeout, pErr.Code())
	})
}

func TestFlightManager_SearchFlights(t *testing.T) {
	t.Run("merges in configured order", func(t *testing.T) {
		// the first supplier answers last
		slow := supplierServer(t, http.StatusOK, `{"data":[{"flightCode":"6E1","totalFare":5000,"priceID":"a"}]}`, 100*time.Millisecond)
		fast := supplierServer(t, http.StatusOK, `{"data":{"results":[{"flightNumber":"AI2","totalFare":3000,"priceID":"b"}]}}`, 0)

		m := newManager(newClient(flight.SupplierAirIQ, slow.URL), newClient(flight.SupplierTBO, fast.URL))

		resp, err := m.SearchFlights(context.Background(), searchReq)

		require.NoError(t, err)
		require.Len(t, resp.Items, 2)
		assert.Equal(t, flight.SupplierAirIQ, resp.Items[0].Supplier)
		assert.Equal(t, flight.SupplierTBO, resp.Items[1].Supplier)
		assert.Equal(t, uint32(2), resp.Metadata.SuppliersQueried)
		assert.Equal(t, uint32(2), resp.Metadata.SuppliersSucceeded)
		assert.Zero(t, resp.Metadata.SuppliersFailed)
		assert.Equal(t, uint32(2), resp.Metadata.TotalResults)
	})

	t.Run("partial failure is recorded", func(t *testing.T) {
		ok := supplierServer(t, http.StatusOK, `{"data":[{"flightCode":"6E1","fares":[{"totalFare":5000}]}]}`, 0)
		broken := supplierServer(t, http.StatusInternalServerError, `oops`, 0)

		m := newManager(newClient(flight.SupplierAirIQ, ok.URL), newClient(flight.SupplierTripJack, broken.URL))

		resp, err := m.SearchFlights(context.Background(), searchReq)

		require.NoError(t, err)
		assert.Len(t, resp.Items, 1)
		assert.Equal(t, uint32(1), resp.Metadata.SuppliersFailed)
		assert.Equal(t, uint32(1), resp.Metadata.MissingPriceIDs)
		require.Len(t, resp.Metadata.SupplierErrors, 1)
		assert.Equal(t, flight.SupplierTripJack, resp.Metadata.SupplierErrors[0].Supplier)
		assert.Equal(t, flight.ErrorCodeUpstream, resp.Metadata.SupplierErrors[0].Code)
	})

	t.Run("unknown shape contributes nothing", func(t *testing.T) {
		odd := supplierServer(t, http.StatusOK, `{"flights":[]}`, 0)

		resp, err := newManager(newClient(flight.SupplierTBO, odd.URL)).SearchFlights(context.Background(), searchReq)

		require.NoError(t, err)
		assert.NotNil(t, resp.Items)
		assert.Empty(t, resp.Items)
		assert.Equal(t, uint32(1), resp.Metadata.SuppliersSucceeded)
	})

	t.Run("all suppliers failing is an error", func(t *testing.T) {
		a := supplierServer(t, http.StatusBadGateway, ``, 0)
		b := supplierServer(t, http.StatusBadGateway, ``, 0)

		_, err := newManager(newClient(flight.SupplierAirIQ, a.URL), newClient(flight.SupplierTBO, b.URL)).
			SearchFlights(context.Background(), searchReq)

		assert.ErrorIs(t, err, flight.ErrAllSuppliersFailed)
	})

	t.Run("all suppliers timing out keeps the deadline", func(t *testing.T) {
		slow := supplierServer(t, http.StatusOK, `{"data":[]}`, time.Second)
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		_, err := newManager(newClient(flight.SupplierAirIQ, slow.URL)).SearchFlights(ctx, searchReq)

		assert.ErrorIs(t, err, flight.ErrAllSuppliersFailed)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestProviderLimiter(t *testing.T) {
	p := NewProviderLimiter(RateLimitConfig{RequestsPerSecond: 1, BurstSize: 1})

	assert.Same(t, p.GetLimiter("tbo"), p.GetLimiter("tbo"))
	assert.NotSame(t, p.GetLimiter("tbo"), p.GetLimiter("airiq"))

	require.NoError(t, p.Wait(context.Background(), "tbo"))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.Error(t, p.Wait(ctx, "tbo"), "bucket is empty for a full second")

	p.SetProviderLimit("tbo", 1000, 5)
	assert.NoError(t, p.Wait(context.Background(), "tbo"))
}

func TestProviderLimiter_ZeroConfigUsesDefaults(t *testing.T) {
	p := NewProviderLimiter(RateLimitConfig{})
	assert.Equal(t, DefaultRateLimit().BurstSize, p.GetLimiter("x").Burst())
}

func TestSupplierError(t *testing.T) {
	se := supplierError(flight.SupplierTBO, errors.New("dial tcp: refused"))
	assert.Equal(t, flight.ErrorCodeUpstream, se.Code)
	assert.Equal(t, "dial tcp: refused", se.Message)
}
