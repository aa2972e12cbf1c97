package core

import (
	"errors"
	"testing"
)

func TestParsePriceCents(t *testing.T) {
	cases := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"10", 1000, true},
		{"12.34", 1234, true},
		{"12,34", 1234, true},
		{"12.345", 1234, true}, // rounds down
		{"12.346", 1235, true}, // rounds up
		{"0", 0, true},         // free of charge is allowed
		{"0.00", 0, true},
		{".50", 50, true},
		{"-5", 0, false},
		{"+5", 0, false},
		{"", 0, false},
		{".", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"1e3", 0, false},
	}
	for i, tc := range cases {
		got, err := ParsePriceCents(tc.in)
		if tc.ok {
			if err != nil {
				t.Fatalf("case %d (%q): unexpected error %v", i, tc.in, err)
			}
			if got != tc.want {
				t.Fatalf("case %d (%q): got %d cents, want %d", i, tc.in, got, tc.want)
			}
			continue
		}
		if !errors.Is(err, ErrInvalidPrice) {
			t.Fatalf("case %d (%q): error = %v, want ErrInvalidPrice", i, tc.in, err)
		}
	}
}

func TestMoneyDollars(t *testing.T) {
	if got := (Money{Cents: 1234}).Dollars(); got != 12.34 {
		t.Fatalf("Dollars() = %v, want 12.34", got)
	}
}
