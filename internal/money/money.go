package money

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrTooManyDecimals = errors.New("amount has too many decimal places")
)

// Validate accepts a currency amount with at most two fractional
// digits. Signed amounts are allowed: lines use positive for debit
// and negative for credit.
func Validate(amount decimal.Decimal) error {
	if amount.Exponent() < -2 {
		return ErrTooManyDecimals
	}
	return nil
}

// ValidatePositive is Validate restricted to amounts greater than
// zero (budget allocations).
func ValidatePositive(amount decimal.Decimal) error {
	if err := Validate(amount); err != nil {
		return err
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	return nil
}

// Format renders an amount with exactly two fractional digits.
func Format(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}
