// Package marketdata talks to the currency-rate and intraday-price
// services and resolves arbitrary timestamps to real trade prices.
package marketdata

import "errors"

var (
	// ErrQuotaExceeded means the price source answered with a rate-limit
	// message instead of data. Fatal: retrying inside the same run would
	// only burn more quota.
	ErrQuotaExceeded = errors.New("market data quota exceeded")

	// ErrRateUnavailable means the rate service could not produce a
	// conversion for the requested currency and date.
	ErrRateUnavailable = errors.New("currency rate unavailable")

	// ErrPriceUnresolved means no trade sample was found within the
	// resolver's lookback bound.
	ErrPriceUnresolved = errors.New("no price sample within lookback bound")
)
