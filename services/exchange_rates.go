package services

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/offerdeck/offerdeck-backend/config"
)

// ratesResponse matches the frankfurter.app response shape
type ratesResponse struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

// ExchangeRateService serves currency conversion rates for price cells.
// Rates are fetched from an EUR-based HTTP API and cached in-process with a
// TTL; a failed refresh keeps serving the previous snapshot.
//
// Environment variables:
//   - EXCHANGE_RATE_API: rates endpoint (default frankfurter.app, EUR base)
//   - EXCHANGE_RATE_TTL_MINUTES: cache lifetime (default 720)
type ExchangeRateService struct {
	endpoint string
	ttl      time.Duration
	client   *http.Client
	logger   zerolog.Logger

	mu      sync.RWMutex
	rates   map[string]float64
	fetched time.Time
}

func NewExchangeRateService() *ExchangeRateService {
	cfg := config.New()

	return &ExchangeRateService{
		endpoint: config.GetString(cfg, "EXCHANGE_RATE_API", "https://api.frankfurter.app/latest?from=EUR"),
		ttl:      time.Duration(config.GetInt(cfg, "EXCHANGE_RATE_TTL_MINUTES", 720)) * time.Minute,
		client:   &http.Client{Timeout: 10 * time.Second},
		logger:   log.With().Str("serviceName", "exchangeRates").Logger(),
	}
}

// Rate returns the multiplier converting an amount in `from` to `to`.
// Both arguments are ISO codes. Returns an error when a rate is unknown or
// the upstream API cannot be reached and no cached snapshot exists.
func (s *ExchangeRateService) Rate(from, to string) (float64, error) {
	from = strings.ToUpper(from)
	to = strings.ToUpper(to)
	if from == to {
		return 1, nil
	}

	rates, err := s.snapshot()
	if err != nil {
		return 0, err
	}

	fromRate, err := eurRate(rates, from)
	if err != nil {
		return 0, err
	}
	toRate, err := eurRate(rates, to)
	if err != nil {
		return 0, err
	}

	return toRate / fromRate, nil
}

// eurRate resolves the EUR->code rate; the base currency itself is 1.
func eurRate(rates map[string]float64, code string) (float64, error) {
	if code == "EUR" {
		return 1, nil
	}
	rate, ok := rates[code]
	if !ok || rate <= 0 {
		return 0, fmt.Errorf("no exchange rate for %s", code)
	}
	return rate, nil
}

// snapshot returns the cached rate table, refreshing it when stale.
func (s *ExchangeRateService) snapshot() (map[string]float64, error) {
	s.mu.RLock()
	fresh := s.rates != nil && time.Since(s.fetched) < s.ttl
	rates := s.rates
	s.mu.RUnlock()

	if fresh {
		return rates, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another caller may have refreshed while we waited for the lock
	if s.rates != nil && time.Since(s.fetched) < s.ttl {
		return s.rates, nil
	}

	refreshed, err := s.fetch()
	if err != nil {
		if s.rates != nil {
			s.logger.Warn().Err(err).Msg("Exchange rate refresh failed, serving stale snapshot")
			return s.rates, nil
		}
		return nil, err
	}

	s.rates = refreshed
	s.fetched = time.Now()
	return s.rates, nil
}

func (s *ExchangeRateService) fetch() (map[string]float64, error) {
	resp, err := s.client.Get(s.endpoint)
	if err != nil {
		return nil, fmt.Errorf("fetching exchange rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("exchange rate API returned status %d", resp.StatusCode)
	}

	var parsed ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decoding exchange rate response: %w", err)
	}

	if len(parsed.Rates) == 0 {
		return nil, fmt.Errorf("exchange rate API returned no rates")
	}

	s.logger.Debug().Int("count", len(parsed.Rates)).Msg("Refreshed exchange rates")
	return parsed.Rates, nil
}
