package source

import (
	"errors"
	"testing"

	"svodka/internal/ledger"
)

var header = []string{
	"Дата операции", "Дата платежа", "Номер карты", "Статус",
	"Сумма операции", "Валюта операции", "Сумма платежа", "Валюта платежа",
	"Кэшбэк", "Категория", "MCC", "Описание",
	"Бонусы (включая кэшбэк)", "Округление на инвесткопилку", "Сумма операции с округлением",
}

func TestParseTable(t *testing.T) {
	rows := [][]string{
		header,
		{"03.01.2018 15:03:35", "04.01.2018", "*7197", "OK", "-73.06", "RUB", "-73.06", "RUB", "0.0", "Супермаркеты", "5499.0", "Magazin 25", "1", "0", "73.06"},
		{"18.11.2018 14:46:44", "18.11.2018", "0", "OK", "-200,0", "RUB", "-200,0", "RUB", "", "Мобильная связь", "", "МТС +7 911 000-09-09", "2", "0", "200.0"},
	}

	got, err := ParseTable(rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d records, want 2", len(got))
	}

	first := got[0]
	if first.Card != "*7197" {
		t.Errorf("card %q, want *7197", first.Card)
	}
	if first.Status != ledger.StatusOK {
		t.Errorf("status %q, want OK", first.Status)
	}
	if first.PaymentAmount != -73.06 {
		t.Errorf("payment amount %v, want -73.06", first.PaymentAmount)
	}
	if first.MCC != 5499 {
		t.Errorf("mcc %d, want 5499", first.MCC)
	}
	if first.OperationTime.Format(ledger.OperationLayout) != "03.01.2018 15:03:35" {
		t.Errorf("operation time %v", first.OperationTime)
	}

	second := got[1]
	if second.HasCard() {
		t.Error("zero card number should read as the cash sentinel")
	}
	if second.PaymentAmount != -200.0 {
		t.Errorf("comma-separated amount %v, want -200.0", second.PaymentAmount)
	}
	if second.Cashback != 0 {
		t.Errorf("blank cashback %v, want 0", second.Cashback)
	}
}

func TestParseTable_Empty(t *testing.T) {
	got, err := ParseTable(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("got %d records, want 0", len(got))
	}
}

func TestParseTable_MissingColumn(t *testing.T) {
	rows := [][]string{{"Дата операции", "Статус"}}
	_, err := ParseTable(rows)
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("err = %v, want ErrMalformed", err)
	}
}

func TestParseTable_BadRow(t *testing.T) {
	tests := []struct {
		name string
		row  []string
	}{
		{"bad date", []string{"2018-01-03 15:03:35", "04.01.2018", "*7197", "OK", "-73.06", "RUB", "-73.06", "RUB", "0", "Супермаркеты", "5499", "Magazin 25", "1", "0", "73.06"}},
		{"bad amount", []string{"03.01.2018 15:03:35", "04.01.2018", "*7197", "OK", "-73.06", "RUB", "not-a-number", "RUB", "0", "Супермаркеты", "5499", "Magazin 25", "1", "0", "73.06"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTable([][]string{header, tt.row})
			if !errors.Is(err, ErrMalformed) {
				t.Fatalf("err = %v, want ErrMalformed", err)
			}
		})
	}
}
