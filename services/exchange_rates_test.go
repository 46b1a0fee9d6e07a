package services

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStubService(t *testing.T, handler http.HandlerFunc) *ExchangeRateService {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return &ExchangeRateService{
		endpoint: server.URL,
		ttl:      time.Hour,
		client:   server.Client(),
		logger:   zerolog.Nop(),
	}
}

func stubRates(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"base":"EUR","rates":{"USD":1.1,"GBP":0.85,"CHF":0.95}}`))
}

func TestExchangeRateServiceRate(t *testing.T) {
	service := newStubService(t, stubRates)

	t.Run("identical currencies convert at one", func(t *testing.T) {
		rate, err := service.Rate("EUR", "EUR")
		require.NoError(t, err)
		assert.Equal(t, 1.0, rate)
	})

	t.Run("base to quote uses the published rate", func(t *testing.T) {
		rate, err := service.Rate("EUR", "USD")
		require.NoError(t, err)
		assert.InDelta(t, 1.1, rate, 1e-9)
	})

	t.Run("quote to base inverts the rate", func(t *testing.T) {
		rate, err := service.Rate("USD", "EUR")
		require.NoError(t, err)
		assert.InDelta(t, 1/1.1, rate, 1e-9)
	})

	t.Run("cross rates go through the base", func(t *testing.T) {
		rate, err := service.Rate("USD", "GBP")
		require.NoError(t, err)
		assert.InDelta(t, 0.85/1.1, rate, 1e-9)
	})

	t.Run("codes are case insensitive", func(t *testing.T) {
		rate, err := service.Rate("eur", "usd")
		require.NoError(t, err)
		assert.InDelta(t, 1.1, rate, 1e-9)
	})

	t.Run("unknown currency errors", func(t *testing.T) {
		_, err := service.Rate("EUR", "JPY")
		assert.Error(t, err)
	})
}

func TestExchangeRateServiceCachesSnapshot(t *testing.T) {
	var requests int
	service := newStubService(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		stubRates(w, r)
	})

	_, err := service.Rate("EUR", "USD")
	require.NoError(t, err)
	_, err = service.Rate("EUR", "GBP")
	require.NoError(t, err)
	_, err = service.Rate("USD", "CHF")
	require.NoError(t, err)

	assert.Equal(t, 1, requests)
}

func TestExchangeRateServiceServesStaleOnFailure(t *testing.T) {
	var fail bool
	service := newStubService(t, func(w http.ResponseWriter, r *http.Request) {
		if fail {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		stubRates(w, r)
	})
	service.ttl = 0 // every call refreshes

	rate, err := service.Rate("EUR", "USD")
	require.NoError(t, err)
	assert.InDelta(t, 1.1, rate, 1e-9)

	fail = true
	rate, err = service.Rate("EUR", "USD")
	require.NoError(t, err)
	assert.InDelta(t, 1.1, rate, 1e-9)
}

func TestExchangeRateServiceFailsWithoutSnapshot(t *testing.T) {
	service := newStubService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := service.Rate("EUR", "USD")
	assert.Error(t, err)
}
