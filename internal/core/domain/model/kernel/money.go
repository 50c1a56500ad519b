package kernel

import (
	"fmt"

	"pos/internal/pkg/errs"
)

// Money is a value object representing a monetary amount in minor currency
// units (the system operates in a single implicit currency). Amounts are
// never negative; subtraction below zero is a validation error rather than
// a silent clamp.
//
// The zero value of Money is a valid zero amount, which makes it suitable
// for representing an empty cart's total.
//
// Example usage:
//
//	price, _ := kernel.NewMoney(35000)
//	subtotal, _ := price.MulInt(2) // 70000
//	total, _ := subtotal.Add(price)
type Money struct {
	amount int64
}

// NewMoney creates a Money value from an amount in minor currency units.
// Returns an error if the amount is negative.
func NewMoney(amount int64) (Money, error) {
	if amount < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount is invalid",
			fmt.Errorf("%d is negative", amount))
	}
	return Money{amount: amount}, nil
}

// ZeroMoney returns a Money value of zero.
func ZeroMoney() Money {
	return Money{}
}

// Amount returns the amount in minor currency units.
func (m Money) Amount() int64 {
	return m.amount
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.amount == 0
}

// IsEqual compares two Money values for equality.
func (m Money) IsEqual(other Money) bool {
	return m.amount == other.amount
}

// GreaterThan reports whether m is strictly greater than other.
func (m Money) GreaterThan(other Money) bool {
	return m.amount > other.amount
}

// Add returns the sum of two Money values.
func (m Money) Add(other Money) (Money, error) {
	return NewMoney(m.amount + other.amount)
}

// Sub returns the difference of two Money values.
// Returns an error if the result would be negative.
func (m Money) Sub(other Money) (Money, error) {
	if other.amount > m.amount {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount is invalid",
			fmt.Errorf("%d - %d is negative", m.amount, other.amount))
	}
	return NewMoney(m.amount - other.amount)
}

// MulInt returns the amount multiplied by a non-negative integer factor.
func (m Money) MulInt(factor int) (Money, error) {
	if factor < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("factor is invalid",
			fmt.Errorf("%d is negative", factor))
	}
	return NewMoney(m.amount * int64(factor))
}

// Validate checks that the amount is not negative. A Money value restored
// from persistence must pass this check before use.
func (m Money) Validate() error {
	if m.amount < 0 {
		return errs.NewValueIsInvalidErrorWithCause("amount is invalid",
			fmt.Errorf("%d is negative", m.amount))
	}
	return nil
}

// String returns the amount formatted as a plain integer string.
func (m Money) String() string {
	return fmt.Sprintf("%d", m.amount)
}
