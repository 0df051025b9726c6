package ledger

import (
	"sort"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

type (
	// CardSummary is the per-card aggregate shown on the dashboard.
	CardSummary struct {
		LastDigits string  `json:"last_digits"`
		TotalSpent float64 `json:"total_spent"`
		Cashback   float64 `json:"cashback"`
	}

	// TopTransaction is a single entry of the top-spend list.
	TopTransaction struct {
		Date        string  `json:"date"`
		Amount      float64 `json:"amount"`
		Category    string  `json:"category"`
		Description string  `json:"description"`
	}
)

var oneHundred = decimal.NewFromInt(100)

// AggregateByCard groups records by card identifier and sums their payment
// amounts. Cashback is one percent of the total, rounded to two decimals.
// Groups are returned in ascending order of the raw card identifier; equal
// inputs in any order produce the same output. The masking prefix of the
// identifier is stripped for display ("*7197" becomes "7197").
func AggregateByCard(rs RecordSet) []CardSummary {
	totals := make(map[string]decimal.Decimal)
	for _, r := range rs {
		totals[r.Card] = totals[r.Card].Add(decimal.NewFromFloat(r.PaymentAmount))
	}

	keys := make([]string, 0, len(totals))
	for k := range totals {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]CardSummary, 0, len(keys))
	for _, k := range keys {
		total := totals[k]
		out = append(out, CardSummary{
			LastDigits: stripCardPrefix(k),
			TotalSpent: total.InexactFloat64(),
			Cashback:   total.Div(oneHundred).Round(2).InexactFloat64(),
		})
	}
	return out
}

// TopBySpend returns at most n records with the most negative payment
// amounts, largest expense first. Ties keep the input order. The list is
// projected to day-precision dates for display.
func TopBySpend(rs RecordSet, n int) []TopTransaction {
	sorted := make(RecordSet, len(rs))
	copy(sorted, rs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PaymentAmount < sorted[j].PaymentAmount
	})
	if n > len(sorted) {
		n = len(sorted)
	}

	out := make([]TopTransaction, 0, n)
	for _, r := range sorted[:n] {
		out = append(out, TopTransaction{
			Date:        r.OperationTime.Format(DayLayout),
			Amount:      r.PaymentAmount,
			Category:    r.Category,
			Description: r.Description,
		})
	}
	return out
}

func stripCardPrefix(card string) string {
	return strings.TrimLeftFunc(card, func(r rune) bool {
		return !unicode.IsDigit(r)
	})
}
