package source

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"svodka/internal/ledger"
)

// Column headers of the bank export. Both the CSV and the spreadsheet
// backends carry the same header row.
const (
	colOperationDate     = "Дата операции"
	colPaymentDate       = "Дата платежа"
	colCard              = "Номер карты"
	colStatus            = "Статус"
	colOperationAmount   = "Сумма операции"
	colOperationCurrency = "Валюта операции"
	colPaymentAmount     = "Сумма платежа"
	colPaymentCurrency   = "Валюта платежа"
	colCashback          = "Кэшбэк"
	colCategory          = "Категория"
	colMCC               = "MCC"
	colDescription       = "Описание"
	colBonuses           = "Бонусы (включая кэшбэк)"
	colInvestRounding    = "Округление на инвесткопилку"
	colRoundedAmount     = "Сумма операции с округлением"
)

// ParseTable converts a header row plus data rows into a RecordSet,
// preserving row order. Blank numeric cells read as zero and a blank or
// zero card number becomes the cash sentinel, mirroring how the export
// leaves those cells empty.
func ParseTable(rows [][]string) (ledger.RecordSet, error) {
	if len(rows) == 0 {
		return ledger.RecordSet{}, nil
	}
	cols, err := headerIndex(rows[0])
	if err != nil {
		return nil, err
	}

	out := make(ledger.RecordSet, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rec, err := parseRow(cols, row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

type columnIndex map[string]int

func headerIndex(header []string) (columnIndex, error) {
	cols := make(columnIndex, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{colOperationDate, colPaymentAmount, colStatus, colCategory, colDescription} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrMalformed, required)
		}
	}
	return cols, nil
}

func parseRow(cols columnIndex, row []string) (ledger.Record, error) {
	cell := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	opTime, err := time.Parse(ledger.OperationLayout, cell(colOperationDate))
	if err != nil {
		return ledger.Record{}, fmt.Errorf("%w: %q: %v", ErrMalformed, colOperationDate, err)
	}
	paymentAmount, err := parseAmount(cell(colPaymentAmount))
	if err != nil {
		return ledger.Record{}, fmt.Errorf("%w: %q: %v", ErrMalformed, colPaymentAmount, err)
	}

	rec := ledger.Record{
		OperationTime:     opTime,
		PaymentDate:       cell(colPaymentDate),
		Card:              cardID(cell(colCard)),
		Status:            ledger.Status(cell(colStatus)),
		OperationCurrency: cell(colOperationCurrency),
		PaymentAmount:     paymentAmount,
		PaymentCurrency:   cell(colPaymentCurrency),
		Category:          cell(colCategory),
		Description:       cell(colDescription),
	}

	// Optional numeric cells: blank reads as zero, garbage is an error.
	optional := []struct {
		name string
		dst  *float64
	}{
		{colOperationAmount, &rec.OperationAmount},
		{colCashback, &rec.Cashback},
		{colBonuses, &rec.Bonuses},
		{colInvestRounding, &rec.InvestRounding},
		{colRoundedAmount, &rec.RoundedAmount},
	}
	for _, f := range optional {
		v := cell(f.name)
		if v == "" {
			continue
		}
		n, err := parseAmount(v)
		if err != nil {
			return ledger.Record{}, fmt.Errorf("%w: %q: %v", ErrMalformed, f.name, err)
		}
		*f.dst = n
	}

	if v := cell(colMCC); v != "" {
		// Exported as a float-looking cell ("5499.0").
		n, err := parseAmount(v)
		if err != nil {
			return ledger.Record{}, fmt.Errorf("%w: %q: %v", ErrMalformed, colMCC, err)
		}
		rec.MCC = int(n)
	}

	return rec, nil
}

// parseAmount reads a signed decimal, accepting both comma and dot
// separators as bank exports mix them.
func parseAmount(s string) (float64, error) {
	s = strings.ReplaceAll(strings.ReplaceAll(s, " ", ""), ",", ".")
	return strconv.ParseFloat(s, 64)
}

// cardID normalizes the card cell; blank and literal zero both mean a
// cash or transfer operation.
func cardID(s string) string {
	if s == "" || s == "0" || s == "0.0" {
		return ""
	}
	return s
}
