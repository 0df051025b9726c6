// Package report composes filtered ledger data and market prices into the
// user-facing report shapes. It only returns structured values; writing
// them anywhere is the sink's job.
package report

import (
	"svodka/internal/ledger"
)

type (
	// Dashboard is the main-page report.
	Dashboard struct {
		Greeting        string                  `json:"greeting"`
		Cards           []ledger.CardSummary    `json:"cards"`
		TopTransactions []ledger.TopTransaction `json:"top_transactions"`
		CurrencyRates   []CurrencyRate          `json:"currency_rates"`
		StockPrices     []StockPrice            `json:"stock_prices"`
	}

	CurrencyRate struct {
		Currency string  `json:"currency"`
		Rate     float64 `json:"rate"`
	}

	StockPrice struct {
		Stock string  `json:"stock"`
		Price float64 `json:"price"`
	}

	// TransactionView is a record shaped for report output, with the
	// operation timestamp back in display format.
	TransactionView struct {
		OperationDate     string  `json:"operation_date"`
		PaymentDate       string  `json:"payment_date"`
		Card              string  `json:"card_number"`
		Status            string  `json:"status"`
		OperationAmount   float64 `json:"operation_amount"`
		OperationCurrency string  `json:"operation_currency"`
		PaymentAmount     float64 `json:"payment_amount"`
		PaymentCurrency   string  `json:"payment_currency"`
		Cashback          float64 `json:"cashback"`
		Category          string  `json:"category"`
		MCC               int     `json:"mcc"`
		Description       string  `json:"description"`
		Bonuses           float64 `json:"bonuses"`
		InvestRounding    float64 `json:"investment_rounding"`
		RoundedAmount     float64 `json:"rounded_operation_amount"`
	}
)

func newTransactionView(r ledger.Record) TransactionView {
	return TransactionView{
		OperationDate:     r.OperationTime.Format(ledger.OperationLayout),
		PaymentDate:       r.PaymentDate,
		Card:              r.Card,
		Status:            string(r.Status),
		OperationAmount:   r.OperationAmount,
		OperationCurrency: r.OperationCurrency,
		PaymentAmount:     r.PaymentAmount,
		PaymentCurrency:   r.PaymentCurrency,
		Cashback:          r.Cashback,
		Category:          r.Category,
		MCC:               r.MCC,
		Description:       r.Description,
		Bonuses:           r.Bonuses,
		InvestRounding:    r.InvestRounding,
		RoundedAmount:     r.RoundedAmount,
	}
}

func toViews(rs ledger.RecordSet) []TransactionView {
	// Empty results stay empty lists in JSON, never null.
	out := make([]TransactionView, 0, len(rs))
	for _, r := range rs {
		out = append(out, newTransactionView(r))
	}
	return out
}
