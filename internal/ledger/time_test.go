package ledger

import (
	"errors"
	"testing"
	"time"
)

func TestParseReference(t *testing.T) {
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		in      string
		want    time.Time
		wantErr bool
	}{
		{"past timestamp", "2021-12-12 09:30:12", time.Date(2021, 12, 12, 9, 30, 12, 0, time.UTC), false},
		{"present", "2025-05-01 12:00:00", time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC), false},
		{"three months ahead", "2025-08-01 12:00:00", time.Time{}, true},
		{"malformed", "12.12.2021 09:30", time.Time{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseReference(tt.in, now)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidTimestamp) {
					t.Fatalf("err = %v, want ErrInvalidTimestamp", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShiftMonths(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		months int
		want   string
	}{
		{"plain three back", "2018-02-04 09:30:12", -3, "2017-11-04 09:30:12"},
		{"clamps to february end", "2018-05-31 10:00:00", -3, "2018-02-28 10:00:00"},
		{"clamps to leap february", "2020-05-31 10:00:00", -3, "2020-02-29 10:00:00"},
		{"year boundary", "2018-01-15 00:00:00", -3, "2017-10-15 00:00:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := time.Parse(ReferenceLayout, tt.in)
			if err != nil {
				t.Fatal(err)
			}
			want, err := time.Parse(ReferenceLayout, tt.want)
			if err != nil {
				t.Fatal(err)
			}
			if got := shiftMonths(in, tt.months); !got.Equal(want) {
				t.Errorf("shiftMonths(%v, %d) = %v, want %v", in, tt.months, got, want)
			}
		})
	}
}
