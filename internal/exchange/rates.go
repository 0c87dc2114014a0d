// Package exchange fetches currency exchange rates and converts amounts between currencies.
package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is the public rates endpoint; the base currency is appended as a path segment.
const DefaultBaseURL = "https://api.exchangerate-api.com/v4/latest"

var fallbackRates = map[string]float64{
	"USD": 1,
	"EUR": 0.92,
	"GBP": 0.79,
	"JPY": 151.0,
	"AUD": 1.52,
	"CAD": 1.35,
	"INR": 83.0,
	"MMK": 2100,
}

// FallbackRates returns a copy of the static USD-based table used when fetching fails.
func FallbackRates() map[string]float64 {
	return maps.Clone(fallbackRates)
}

// Fetcher retrieves rates over HTTP.
type Fetcher struct {
	httpClient *http.Client
	logger     *slog.Logger
	baseURL    string
}

// NewFetcher creates a Fetcher. An empty baseURL uses DefaultBaseURL.
func NewFetcher(baseURL string, httpClient *http.Client, logger *slog.Logger) *Fetcher {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

type ratesResponse struct {
	Rates map[string]float64 `json:"rates"`
	Base  string             `json:"base"`
}

// Fetch returns rates relative to base. Any failure is logged and the fallback
// table is returned instead.
func (f *Fetcher) Fetch(ctx context.Context, base string) map[string]float64 {
	rates, err := f.fetch(ctx, base)
	if err != nil {
		f.logger.Warn("Failed to fetch exchange rates, using fallback", "base", base, "error", err)
		return FallbackRates()
	}
	return rates
}

func (f *Fetcher) fetch(ctx context.Context, base string) (map[string]float64, error) {
	base = strings.ToUpper(strings.TrimSpace(base))
	if base == "" {
		return nil, fmt.Errorf("base currency is required")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+"/"+base, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rates API returned status %d", resp.StatusCode)
	}

	var parsed ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if len(parsed.Rates) == 0 {
		return nil, fmt.Errorf("response contained no rates")
	}
	return parsed.Rates, nil
}
