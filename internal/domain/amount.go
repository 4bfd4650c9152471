package domain

import "github.com/shopspring/decimal"

// Amount bounds for every money value accepted from a client
const (
	MaxAmountDigits = 15 // |amount| <= 1e15
	MaxAmountScale  = 8  // at most 8 significant decimal places

	// maxAmountExponentSpan rejects absurd exponents before any rescaling work
	maxAmountExponentSpan = 64
)

var maxAmount = decimal.New(1, MaxAmountDigits)

// CheckAmount returns why d is out of bounds, or "" when it is acceptable.
// Exponents are checked before any comparison, which would otherwise rescale
// the coefficient to the exponent's size.
func CheckAmount(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	exp := d.Exponent()
	if exp > MaxAmountDigits {
		return "Amount must be between -1e15 and 1e15"
	}
	if exp < -MaxAmountScale {
		if exp < -maxAmountExponentSpan || !d.Equal(d.Truncate(MaxAmountScale)) {
			return "Amount must have at most 8 decimal places"
		}
	}
	if d.Abs().GreaterThan(maxAmount) {
		return "Amount must be between -1e15 and 1e15"
	}
	return ""
}
