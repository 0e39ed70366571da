package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestPaiseFromRupees(t *testing.T) {
	cases := []struct {
		in   string
		want Paise
	}{
		{"0", 0},
		{"1", 100},
		{"99.99", 9999},
		{"1499.00", 149900},
		{"0.005", 0},
		{"10.999", 1099},
	}
	for _, tc := range cases {
		if got := PaiseFromRupees(decimal.RequireFromString(tc.in)); got != tc.want {
			t.Fatalf("PaiseFromRupees(%s) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestPaiseRupeesRoundTrip(t *testing.T) {
	p := Paise(149900)
	if !p.Rupees().Equal(decimal.RequireFromString("1499")) {
		t.Fatalf("expected 1499 rupees, got %s", p.Rupees().String())
	}
}

func TestPaiseString(t *testing.T) {
	cases := []struct {
		in   Paise
		want string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{100, "1.00"},
		{9999, "99.99"},
	}
	for _, tc := range cases {
		if got := tc.in.String(); got != tc.want {
			t.Fatalf("Paise(%d).String() = %s, want %s", tc.in, got, tc.want)
		}
	}
}
