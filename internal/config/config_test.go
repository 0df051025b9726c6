package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		DataBackend:    "csv",
		OperationsPath: "./data/operations.csv",
		MarketBaseURL:  "https://www.alphavantage.co",
		RatesBaseURL:   "https://api.apilayer.com/currency_data",
		BaseCurrency:   "RUB",
		HTTPTimeout:    30 * time.Second,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		wantErr     bool
		errorString string
	}{
		{
			name:    "valid csv backend config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name: "invalid backend",
			mutate: func(c *Config) {
				c.DataBackend = "postgres"
			},
			wantErr:     true,
			errorString: "invalid data backend 'postgres'",
		},
		{
			name: "csv backend without path",
			mutate: func(c *Config) {
				c.OperationsPath = ""
			},
			wantErr:     true,
			errorString: "operations path cannot be empty",
		},
		{
			name: "sheets backend without spreadsheet id",
			mutate: func(c *Config) {
				c.DataBackend = "sheets"
			},
			wantErr:     true,
			errorString: "Google Spreadsheet ID is required",
		},
		{
			name: "bad market URL",
			mutate: func(c *Config) {
				c.MarketBaseURL = "not a url"
			},
			wantErr:     true,
			errorString: "invalid market base URL",
		},
		{
			name: "missing base currency",
			mutate: func(c *Config) {
				c.BaseCurrency = ""
			},
			wantErr:     true,
			errorString: "base currency cannot be empty",
		},
		{
			name: "non-positive timeout",
			mutate: func(c *Config) {
				c.HTTPTimeout = 0
			},
			wantErr:     true,
			errorString: "invalid HTTP timeout",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errorString) {
					t.Errorf("error %q does not contain %q", err, tt.errorString)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestLoadUserSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user_settings.json")
	payload := `{"user_currencies": ["USD", "EUR"], "user_stocks": ["AAPL", "IBM"]}`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := LoadUserSettings(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Currencies) != 2 || got.Currencies[0] != "USD" {
		t.Errorf("currencies = %v", got.Currencies)
	}
	if len(got.Stocks) != 2 || got.Stocks[1] != "IBM" {
		t.Errorf("stocks = %v", got.Stocks)
	}
}

func TestLoadUserSettings_Missing(t *testing.T) {
	_, err := LoadUserSettings(filepath.Join(t.TempDir(), "missing.json"))
	if err == nil {
		t.Fatal("expected error for missing settings file")
	}
}
