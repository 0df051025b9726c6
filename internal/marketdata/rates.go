package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"svodka/internal/log"
)

// RateSource converts one unit of a currency into the base currency for a
// given calendar date.
type RateSource interface {
	FetchRate(ctx context.Context, currency string, day time.Time) (float64, error)
}

// RateClient is the HTTP implementation of RateSource. Rates are daily
// values, so responses are cached for a day to spare the quota.
type RateClient struct {
	baseURL      string
	apiKey       string
	baseCurrency string
	httpClient   *http.Client
	cache        *gocache.Cache
	logger       *log.Logger
}

var _ RateSource = (*RateClient)(nil)

func NewRateClient(baseURL, apiKey, baseCurrency string, timeout time.Duration, logger *log.Logger) *RateClient {
	return &RateClient{
		baseURL:      baseURL,
		apiKey:       apiKey,
		baseCurrency: baseCurrency,
		httpClient:   &http.Client{Timeout: timeout},
		cache:        gocache.New(24*time.Hour, 48*time.Hour),
		logger:       logger.WithComponent(log.ComponentMarket),
	}
}

type convertResponse struct {
	Success bool    `json:"success"`
	Result  float64 `json:"result"`
}

// FetchRate returns the conversion rate for one unit of currency on the
// given date. Any non-success answer is ErrRateUnavailable; a failed
// response is never parsed as if it had succeeded.
func (c *RateClient) FetchRate(ctx context.Context, currency string, day time.Time) (float64, error) {
	if currency == c.baseCurrency {
		return 1.0, nil
	}

	cacheKey := fmt.Sprintf("rate-%s-%s", currency, day.Format("2006-01-02"))
	if rate, found := c.cache.Get(cacheKey); found {
		return rate.(float64), nil
	}

	q := url.Values{}
	q.Set("from", currency)
	q.Set("to", c.baseCurrency)
	q.Set("amount", "1")
	q.Set("date", day.Format("2006-01-02"))
	addr := fmt.Sprintf("%s/convert?%s", c.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return 0, fmt.Errorf("build rate request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrRateUnavailable, currency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("Rate service returned non-OK status",
			log.FieldCurrency, currency, log.FieldStatus, resp.Status)
		return 0, fmt.Errorf("%w: %s: %s", ErrRateUnavailable, currency, resp.Status)
	}

	var body convertResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrRateUnavailable, currency, err)
	}
	if !body.Success {
		return 0, fmt.Errorf("%w: %s: service reported failure", ErrRateUnavailable, currency)
	}

	c.cache.Set(cacheKey, body.Result, gocache.DefaultExpiration)
	return body.Result, nil
}
