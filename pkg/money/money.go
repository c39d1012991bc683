package money

import "github.com/shopspring/decimal"

// Epsilon is the smallest currency unit. Two amounts closer than one cent
// are considered equal during reconciliation.
var Epsilon = decimal.New(1, -2)

// Equalish reports whether a and b differ by less than Epsilon.
func Equalish(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThan(Epsilon)
}

// FromCents converts processor minor units into a 2-decimal amount.
func FromCents(cents int64) decimal.Decimal {
	return decimal.NewFromInt(cents).Shift(-2)
}

// Format renders an amount as a fixed 2-decimal string.
func Format(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}
