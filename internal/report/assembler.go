package report

import (
	"context"
	"errors"
	"regexp"
	"time"

	"svodka/internal/config"
	"svodka/internal/ledger"
	"svodka/internal/log"
	"svodka/internal/marketdata"
)

const topTransactionCount = 5

// trailingReportMonths is the category report's lookback window.
const trailingReportMonths = 3

// phonePattern matches Russian mobile numbers inside a description:
// literal +7, a space, a digit run, then two digit runs each after any
// single separator ("+7 911 000-09-09", "+7 921 11-22-33").
var phonePattern = regexp.MustCompile(`\+7\s\d+\s\d+.\d+.\d+`)

// PriceResolver is what the assembler needs from the stock side of
// market data; *marketdata.Resolver satisfies it.
type PriceResolver interface {
	Resolve(ctx context.Context, symbol string, ts time.Time) (float64, error)
}

// Assembler builds the report shapes out of a loaded ledger and the
// market-data collaborators.
type Assembler struct {
	rates    marketdata.RateSource
	prices   PriceResolver
	settings config.UserSettings
	logger   *log.Logger
}

func NewAssembler(rates marketdata.RateSource, prices PriceResolver, settings config.UserSettings, logger *log.Logger) *Assembler {
	return &Assembler{
		rates:    rates,
		prices:   prices,
		settings: settings,
		logger:   logger.WithComponent(log.ComponentReport),
	}
}

// BuildDashboard assembles the main-page report for the given reference
// time. Market-data failures for one currency or symbol are logged and
// skipped so the rest of the dashboard survives; a quota error stops
// further price lookups since every one of them would fail the same way.
func (a *Assembler) BuildDashboard(ctx context.Context, records ledger.RecordSet, ref time.Time) Dashboard {
	monthScoped := records.
		FilterByMonthToDate(ref).
		FilterByStatusAndSign(ledger.StatusOK, true)

	d := Dashboard{
		Greeting:        greeting(ref),
		Cards:           ledger.AggregateByCard(monthScoped.FilterByCardPresence(true)),
		TopTransactions: ledger.TopBySpend(monthScoped, topTransactionCount),
		CurrencyRates:   make([]CurrencyRate, 0, len(a.settings.Currencies)),
		StockPrices:     make([]StockPrice, 0, len(a.settings.Stocks)),
	}

	for _, currency := range a.settings.Currencies {
		rate, err := a.rates.FetchRate(ctx, currency, ref)
		if err != nil {
			a.logger.Warn("Skipping currency without a rate",
				log.FieldCurrency, currency, log.FieldError, err)
			continue
		}
		d.CurrencyRates = append(d.CurrencyRates, CurrencyRate{Currency: currency, Rate: rate})
	}

	for _, symbol := range a.settings.Stocks {
		price, err := a.prices.Resolve(ctx, symbol, ref)
		if err != nil {
			if errors.Is(err, marketdata.ErrQuotaExceeded) {
				a.logger.Error("Price source quota exhausted, skipping remaining symbols",
					log.FieldSymbol, symbol, log.FieldError, err)
				break
			}
			a.logger.Warn("Skipping symbol without a price",
				log.FieldSymbol, symbol, log.FieldError, err)
			continue
		}
		d.StockPrices = append(d.StockPrices, StockPrice{Stock: symbol, Price: price})
	}

	return d
}

// BuildCategoryReport returns the expenses of one category over the
// trailing three months from ref. An empty result is a valid report.
func (a *Assembler) BuildCategoryReport(records ledger.RecordSet, category string, ref time.Time) []TransactionView {
	matched := records.
		FilterByTrailingMonths(ref, trailingReportMonths).
		FilterByCategory(category).
		FilterExpenses()
	if len(matched) == 0 {
		a.logger.Warn("No operations matched the category report",
			log.FieldCategory, category)
	}
	return toViews(matched)
}

// BuildPhoneExtract returns the records whose description mentions a
// mobile phone number.
func (a *Assembler) BuildPhoneExtract(records ledger.RecordSet) []TransactionView {
	matched := make(ledger.RecordSet, 0, len(records))
	for _, r := range records {
		if phonePattern.MatchString(r.Description) {
			matched = append(matched, r)
		}
	}
	if len(matched) == 0 {
		a.logger.Warn("No operations with phone numbers found")
	}
	return toViews(matched)
}

// greeting picks the salutation for the hour of day. The four buckets
// partition the clock: [0,6) night, [6,12) morning, [12,18) day,
// [18,24) evening.
func greeting(t time.Time) string {
	switch {
	case t.Hour() < 6:
		return "Доброй ночи"
	case t.Hour() < 12:
		return "Доброе утро"
	case t.Hour() < 18:
		return "Добрый день"
	default:
		return "Добрый вечер"
	}
}
