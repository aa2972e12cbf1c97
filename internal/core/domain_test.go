package core

import (
	"errors"
	"testing"
)

func TestParseStatus(t *testing.T) {
	cases := []struct {
		in   string
		want Status
		ok   bool
	}{
		{"Not Started", StatusNotStarted, true},
		{"Not Ready", StatusNotReady, true},
		{"Cleaning", StatusCleaning, true},
		{"Ready", StatusReady, true},
		{"  Ready  ", StatusReady, true},
		{"Done", "", false},
		{"ready", "", false}, // the enum is case-sensitive
		{"", "", false},
	}
	for i, tc := range cases {
		got, err := ParseStatus(tc.in)
		if tc.ok {
			if err != nil {
				t.Fatalf("case %d (%q): unexpected error %v", i, tc.in, err)
			}
			if got != tc.want {
				t.Fatalf("case %d (%q): got %q, want %q", i, tc.in, got, tc.want)
			}
			continue
		}
		if !errors.Is(err, ErrInvalidStatus) {
			t.Fatalf("case %d (%q): error = %v, want ErrInvalidStatus", i, tc.in, err)
		}
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-01-02")
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if d.String() != "2024-01-02" {
		t.Fatalf("round trip = %q, want 2024-01-02", d.String())
	}

	bads := []string{"", "not-a-date", "2024-13-01", "2024-01-32", "01/02/2024", "2024-1-2"}
	for i, s := range bads {
		if _, err := ParseDate(s); !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("case %d (%q): error = %v, want ErrInvalidDate", i, s, err)
		}
	}
}

func TestDateBefore(t *testing.T) {
	a := NewDate(2024, 1, 1)
	b := NewDate(2024, 1, 2)
	if !a.Before(b) {
		t.Fatal("2024-01-01 should sort before 2024-01-02")
	}
	if b.Before(a) {
		t.Fatal("2024-01-02 should not sort before 2024-01-01")
	}
}

func TestIsValidation(t *testing.T) {
	for _, err := range []error{ErrEmptyCustomerName, ErrInvalidPrice, ErrInvalidDate, ErrInvalidStatus} {
		if !IsValidation(err) {
			t.Fatalf("IsValidation(%v) = false, want true", err)
		}
	}
	if IsValidation(errors.New("disk on fire")) {
		t.Fatal("IsValidation should not match arbitrary errors")
	}
}
