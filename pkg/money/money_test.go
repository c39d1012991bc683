package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestEqualish(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"identical", "100.00", "100.00", true},
		{"sub-cent drift", "100.001", "100.00", true},
		{"one cent apart", "100.01", "100.00", false},
		{"five dollars apart", "100.00", "95.00", false},
		{"negative direction", "95.00", "100.00", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := decimal.RequireFromString(tc.a)
			b := decimal.RequireFromString(tc.b)
			if got := Equalish(a, b); got != tc.want {
				t.Fatalf("Equalish(%s, %s) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestFromCents(t *testing.T) {
	if got := FromCents(425000); got.String() != "4250" {
		t.Fatalf("FromCents(425000) = %s", got)
	}
	if got := Format(FromCents(95)); got != "0.95" {
		t.Fatalf("Format(FromCents(95)) = %s", got)
	}
}

func TestFormatFixedTwoDecimals(t *testing.T) {
	if got := Format(decimal.RequireFromString("600")); got != "600.00" {
		t.Fatalf("Format(600) = %s", got)
	}
	if got := Format(decimal.RequireFromString("-400.5")); got != "-400.50" {
		t.Fatalf("Format(-400.5) = %s", got)
	}
}
