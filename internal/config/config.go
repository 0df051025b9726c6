// Package config loads application settings from environment variables
// (optionally a .env file) and the user's watchlist from a JSON file.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Ledger source
	DataBackend         string // csv | sheets | memory
	OperationsPath      string
	GoogleSpreadsheetID string
	GoogleSheetName     string

	// User watchlist and report output
	UserSettingsPath string
	OutputsDir       string

	// Market data
	MarketBaseURL string
	MarketAPIKey  string
	RatesBaseURL  string
	RatesAPIKey   string
	BaseCurrency  string
	HTTPTimeout   time.Duration

	// Logging
	LogLevel string
}

// UserSettings is the watchlist the dashboard resolves market data for.
type UserSettings struct {
	Currencies []string `json:"user_currencies"`
	Stocks     []string `json:"user_stocks"`
}

// Load reads configuration from the environment. A .env file in the
// working directory is honored when present.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "warning: could not read .env file: %v\n", err)
	}

	return &Config{
		DataBackend:         getEnv("DATA_BACKEND", "csv"),
		OperationsPath:      getEnv("OPERATIONS_PATH", "./data/operations.csv"),
		GoogleSpreadsheetID: getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetName:     getEnv("GOOGLE_SHEET_NAME", "Operations"),

		UserSettingsPath: getEnv("USER_SETTINGS_PATH", "./data/user_settings.json"),
		OutputsDir:       getEnv("OUTPUTS_DIR", "./outputs"),

		MarketBaseURL: getEnv("MARKET_BASE_URL", "https://www.alphavantage.co"),
		MarketAPIKey:  getEnv("MARKET_API_KEY", ""),
		RatesBaseURL:  getEnv("RATES_BASE_URL", "https://api.apilayer.com/currency_data"),
		RatesAPIKey:   getEnv("RATES_API_KEY", ""),
		BaseCurrency:  getEnv("BASE_CURRENCY", "RUB"),
		HTTPTimeout:   getEnvDuration("HTTP_TIMEOUT", 30*time.Second),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errs []string

	validBackends := []string{"csv", "sheets", "memory"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.DataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errs = append(errs, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	if c.DataBackend == "csv" && c.OperationsPath == "" {
		errs = append(errs, "operations path cannot be empty when using csv backend")
	}
	if c.DataBackend == "sheets" && c.GoogleSpreadsheetID == "" {
		errs = append(errs, "Google Spreadsheet ID is required when using sheets backend")
	}

	for _, u := range []struct{ name, value string }{
		{"market base URL", c.MarketBaseURL},
		{"rates base URL", c.RatesBaseURL},
	} {
		parsed, err := url.Parse(u.value)
		if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
			errs = append(errs, fmt.Sprintf("invalid %s '%s'", u.name, u.value))
		}
	}

	if c.BaseCurrency == "" {
		errs = append(errs, "base currency cannot be empty")
	}
	if c.HTTPTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("invalid HTTP timeout %v: must be positive", c.HTTPTimeout))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}
	return nil
}

// LoadUserSettings reads the watchlist file. An empty watchlist is valid:
// the dashboard simply has empty market sections.
func LoadUserSettings(path string) (UserSettings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return UserSettings{}, fmt.Errorf("read user settings: %w", err)
	}
	var s UserSettings
	if err := json.Unmarshal(data, &s); err != nil {
		return UserSettings{}, fmt.Errorf("parse user settings: %w", err)
	}
	return s, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
