package marketdata

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const intradayBody = `{
  "Meta Data": {
    "2. Symbol": "IBM",
    "4. Interval": "1min",
    "6. Time Zone": "US/Eastern"
  },
  "Time Series (1min)": {
    "2025-01-31 19:59:00": {"1. open": "255.2000", "4. close": "255.1000", "5. volume": "112"},
    "2025-01-31 19:58:00": {"1. open": "255.4430", "4. close": "255.3000", "5. volume": "175"},
    "2025-01-31 19:55:00": {"1. open": "254.0370", "4. close": "254.0370", "5. volume": "10"}
  }
}`

func TestIntradayClient_FetchMonth(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery = map[string]string{
			"function":   q.Get("function"),
			"symbol":     q.Get("symbol"),
			"interval":   q.Get("interval"),
			"month":      q.Get("month"),
			"outputsize": q.Get("outputsize"),
		}
		w.Write([]byte(intradayBody))
	}))
	defer srv.Close()

	c := NewIntradayClient(srv.URL, "test-key", 5*time.Second, testLogger())
	page, err := c.FetchMonth(context.Background(), "IBM", "2025-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page) != 3 {
		t.Fatalf("got %d samples, want 3", len(page))
	}
	if page["2025-01-31 19:59:00"] != 255.10 {
		t.Errorf("close = %v, want 255.10", page["2025-01-31 19:59:00"])
	}

	want := map[string]string{
		"function":   "TIME_SERIES_INTRADAY",
		"symbol":     "IBM",
		"interval":   "1min",
		"month":      "2025-01",
		"outputsize": "full",
	}
	for k, v := range want {
		if gotQuery[k] != v {
			t.Errorf("query %s = %q, want %q", k, gotQuery[k], v)
		}
	}
}

func TestIntradayClient_FetchMonth_CachesPages(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte(intradayBody))
	}))
	defer srv.Close()

	c := NewIntradayClient(srv.URL, "test-key", 5*time.Second, testLogger())
	for i := 0; i < 3; i++ {
		if _, err := c.FetchMonth(context.Background(), "IBM", "2025-01"); err != nil {
			t.Fatalf("fetch %d: %v", i, err)
		}
	}
	if requests != 1 {
		t.Errorf("server saw %d requests, want 1", requests)
	}

	// A different symbol for the same month is a distinct page.
	if _, err := c.FetchMonth(context.Background(), "AAPL", "2025-01"); err != nil {
		t.Fatalf("second symbol: %v", err)
	}
	if requests != 2 {
		t.Errorf("server saw %d requests, want 2", requests)
	}
}

func TestIntradayClient_FetchMonth_Quota(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Information": "Thank you for using Alpha Vantage! Our standard API rate limit is 25 requests per day."}`))
	}))
	defer srv.Close()

	c := NewIntradayClient(srv.URL, "test-key", 5*time.Second, testLogger())
	_, err := c.FetchMonth(context.Background(), "IBM", "2025-01")
	if !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("err = %v, want ErrQuotaExceeded", err)
	}
}

func TestIntradayClient_FetchMonth_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewIntradayClient(srv.URL, "test-key", 5*time.Second, testLogger())
	_, err := c.FetchMonth(context.Background(), "IBM", "2025-01")
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
	if errors.Is(err, ErrQuotaExceeded) {
		t.Fatal("transport failure must not be reported as quota exhaustion")
	}
}
