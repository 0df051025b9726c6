// Package ledger holds the in-memory transaction model and the pure
// filtering and aggregation operations the reports are built from.
package ledger

import (
	"errors"
	"time"
)

// Statuses as they appear in the bank export.
const (
	StatusOK     Status = "OK"
	StatusFailed Status = "FAILED"
)

type (
	Status string

	// Record is a single ledger operation. Amounts are signed: a negative
	// payment amount is an expense, a positive one is income.
	Record struct {
		OperationTime     time.Time
		PaymentDate       string // day precision, as exported (DD.MM.YYYY)
		Card              string // empty for cash and transfers
		Status            Status
		OperationAmount   float64
		OperationCurrency string
		PaymentAmount     float64
		PaymentCurrency   string
		Cashback          float64
		Category          string
		MCC               int
		Description       string
		Bonuses           float64
		InvestRounding    float64
		RoundedAmount     float64
	}

	// RecordSet is an ordered collection of records. Insertion order is
	// preserved from the source; filters return narrowed copies and never
	// mutate the receiver.
	RecordSet []Record
)

var (
	// ErrInvalidTimestamp rejects reference timestamps that are malformed
	// or later than the current time.
	ErrInvalidTimestamp = errors.New("invalid timestamp")
)

// HasCard reports whether the record was paid with a card, as opposed to
// cash or an account transfer.
func (r Record) HasCard() bool {
	return r.Card != ""
}

// IsExpense reports whether the record is an expense.
func (r Record) IsExpense() bool {
	return r.PaymentAmount < 0
}
