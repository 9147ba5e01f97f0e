package shared

import "math"

// Money is a value object representing a monetary amount with currency.
// The amount is stored in the smallest currency unit (e.g. cents) and the
// currency is an ISO 4217 code. Money is immutable; every operation returns
// a new value. A Money with a negative amount cannot exist.
type Money struct {
	amount   int64
	currency string
}

// NewMoney creates a Money value object. The amount must not be negative.
func NewMoney(amount int64, currency string) (Money, error) {
	if amount < 0 {
		return Money{}, NewValidationError("money", "amount", "amount cannot be negative")
	}
	return Money{amount: amount, currency: currency}, nil
}

// Zero returns the additive identity for the given currency.
func Zero(currency string) Money {
	return Money{amount: 0, currency: currency}
}

// Amount returns the amount in the smallest currency unit.
func (m Money) Amount() int64 {
	return m.amount
}

// Currency returns the ISO 4217 currency code.
func (m Money) Currency() string {
	return m.currency
}

// Add returns the sum of two Money values of the same currency.
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, NewCurrencyMismatchError(m.currency, other.currency)
	}
	if other.amount > 0 && m.amount > math.MaxInt64-other.amount {
		return Money{}, NewValidationError("money", "amount", "amount overflow on add")
	}
	return Money{amount: m.amount + other.amount, currency: m.currency}, nil
}

// Multiply scales the amount by a non-negative integer factor.
func (m Money) Multiply(factor int) (Money, error) {
	if factor < 0 {
		return Money{}, NewValidationError("money", "factor", "factor cannot be negative")
	}
	if factor != 0 && m.amount > math.MaxInt64/int64(factor) {
		return Money{}, NewValidationError("money", "amount", "amount overflow on multiply")
	}
	return Money{amount: m.amount * int64(factor), currency: m.currency}, nil
}

// Equals compares by value: amount and currency.
func (m Money) Equals(other Money) bool {
	return m.amount == other.amount && m.currency == other.currency
}
