package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"svodka/internal/cache"
	"svodka/internal/log"
)

// Layouts of the intraday series: pages are keyed by exact minute
// timestamps in the exchange's local time, one page per calendar month.
const (
	MinuteLayout = "2006-01-02 15:04:05"
	MonthLayout  = "2006-01"
)

// Page maps minute timestamps to closing prices for one calendar month.
type Page map[string]float64

// IntradaySource fetches one month of 1-minute samples for a symbol.
// month is formatted as MonthLayout.
type IntradaySource interface {
	FetchMonth(ctx context.Context, symbol, month string) (Page, error)
}

// Page cache bounds. A completed month's page never changes, so a long
// TTL is safe; the size bound keeps a deep lookback from pinning memory.
const (
	pageCacheSize = 16
	pageCacheTTL  = 24 * time.Hour
)

// IntradayClient is the HTTP implementation of IntradaySource. Fetched
// month pages are cached so repeated resolutions for the same symbol do
// not spend request quota again.
type IntradayClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	pages      *cache.LRU[Page]
	logger     *log.Logger
}

var _ IntradaySource = (*IntradayClient)(nil)

func NewIntradayClient(baseURL, apiKey string, timeout time.Duration, logger *log.Logger) *IntradayClient {
	return &IntradayClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		pages:      cache.NewLRU[Page](pageCacheSize, pageCacheTTL),
		logger:     logger.WithComponent(log.ComponentMarket),
	}
}

type intradaySample struct {
	Close string `json:"4. close"`
}

type intradayResponse struct {
	MetaData map[string]string         `json:"Meta Data"`
	Series   map[string]intradaySample `json:"Time Series (1min)"`
	// Set instead of the series when the request quota is exhausted.
	Note        string `json:"Note"`
	Information string `json:"Information"`
}

// FetchMonth requests the full-resolution page for one calendar month.
// A quota message instead of a series yields ErrQuotaExceeded.
func (c *IntradayClient) FetchMonth(ctx context.Context, symbol, month string) (Page, error) {
	cacheKey := symbol + "/" + month
	if page, ok := c.pages.Get(cacheKey); ok {
		return page, nil
	}

	q := url.Values{}
	q.Set("function", "TIME_SERIES_INTRADAY")
	q.Set("symbol", symbol)
	q.Set("interval", "1min")
	q.Set("month", month)
	q.Set("outputsize", "full")
	q.Set("apikey", c.apiKey)
	addr := fmt.Sprintf("%s/query?%s", c.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, fmt.Errorf("build intraday request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch intraday page %s %s: %w", symbol, month, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch intraday page %s %s: %s", symbol, month, resp.Status)
	}

	var body intradayResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode intraday page %s %s: %w", symbol, month, err)
	}

	if len(body.Series) == 0 {
		if msg := firstNonEmpty(body.Note, body.Information); msg != "" {
			c.logger.Error("Price source refused the request", log.FieldSymbol, symbol, "message", msg)
			return nil, fmt.Errorf("%w: %s", ErrQuotaExceeded, msg)
		}
		return nil, fmt.Errorf("intraday page %s %s: empty series", symbol, month)
	}

	page := make(Page, len(body.Series))
	for ts, sample := range body.Series {
		price, err := strconv.ParseFloat(sample.Close, 64)
		if err != nil {
			return nil, fmt.Errorf("intraday page %s %s: bad close %q at %s: %w", symbol, month, sample.Close, ts, err)
		}
		page[ts] = price
	}
	c.pages.Set(cacheKey, page)
	c.logger.Debug("Fetched intraday page", log.FieldSymbol, symbol, "month", month, "samples", len(page))
	return page, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
