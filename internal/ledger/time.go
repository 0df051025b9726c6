package ledger

import (
	"fmt"
	"time"
)

// Timestamp layouts used across the ledger and its reports.
const (
	// ReferenceLayout is the layout of reference timestamps supplied by the
	// caller (YYYY-MM-DD HH:MM:SS).
	ReferenceLayout = "2006-01-02 15:04:05"
	// OperationLayout is the layout of operation timestamps in the bank
	// export (DD.MM.YYYY HH:MM:SS). It is also the display layout for
	// report output.
	OperationLayout = "02.01.2006 15:04:05"
	// DayLayout is the day-precision display layout.
	DayLayout = "02.01.2006"
)

// ParseReference parses a reference timestamp and rejects anything later
// than now. A future reference would make the month-to-date and trailing
// windows meaningless, so it is an error rather than something to clamp.
func ParseReference(s string, now time.Time) (time.Time, error) {
	t, err := time.ParseInLocation(ReferenceLayout, s, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %v", ErrInvalidTimestamp, s, err)
	}
	if t.After(now) {
		return time.Time{}, fmt.Errorf("%w: %q is in the future", ErrInvalidTimestamp, s)
	}
	return t, nil
}

// shiftMonths moves t by the given number of calendar months, clamping to
// the last day of the target month when the source day does not exist
// there (May 31 minus 3 months is Feb 28, not Mar 3).
func shiftMonths(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(months), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	if last := daysIn(first.Year(), first.Month()); d > last {
		d = last
	}
	return first.AddDate(0, 0, d-1)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// midnight truncates t to the start of its day.
func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
