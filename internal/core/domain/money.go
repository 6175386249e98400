package domain

import (
	"errors"
	"fmt"
)

// ErrCurrencyMismatch is returned by any binary Money operation whose
// operands carry different currencies. No implicit conversion is ever
// performed.
var ErrCurrencyMismatch = errors.New("currency mismatch")

// Money is an immutable amount in integer minor units (cents) tagged with an
// ISO 4217 currency code. Integer representation guarantees exact
// round-tripping; floating point never appears in ledger arithmetic.
type Money struct {
	AmountMinor int64  `json:"amountMinorUnits"`
	Currency    string `json:"currency"`
}

// FromMinorUnits constructs a Money value from a minor-unit amount.
func FromMinorUnits(amount int64, currency string) (Money, error) {
	if err := validateCurrencyCode(currency); err != nil {
		return Money{}, err
	}
	return Money{AmountMinor: amount, Currency: currency}, nil
}

// Zero returns the zero amount in the given currency.
func Zero(currency string) (Money, error) {
	return FromMinorUnits(0, currency)
}

func validateCurrencyCode(code string) error {
	if len(code) != 3 {
		return fmt.Errorf("currency code must be 3 letters, got %q", code)
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return fmt.Errorf("currency code must be uppercase letters, got %q", code)
		}
	}
	return nil
}

func (m Money) sameCurrency(other Money) error {
	if m.Currency != other.Currency {
		return fmt.Errorf("%w: %s vs %s", ErrCurrencyMismatch, m.Currency, other.Currency)
	}
	return nil
}

// Add returns m + other. Fails with ErrCurrencyMismatch across currencies.
func (m Money) Add(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{AmountMinor: m.AmountMinor + other.AmountMinor, Currency: m.Currency}, nil
}

// Subtract returns m - other. Fails with ErrCurrencyMismatch across currencies.
func (m Money) Subtract(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{AmountMinor: m.AmountMinor - other.AmountMinor, Currency: m.Currency}, nil
}

// IsGreaterThan reports whether m > other within the same currency.
func (m Money) IsGreaterThan(other Money) (bool, error) {
	if err := m.sameCurrency(other); err != nil {
		return false, err
	}
	return m.AmountMinor > other.AmountMinor, nil
}

// Equals reports value equality: same currency and same amount.
func (m Money) Equals(other Money) bool {
	return m.Currency == other.Currency && m.AmountMinor == other.AmountMinor
}

// Neg returns the arithmetic negation of m.
func (m Money) Neg() Money {
	return Money{AmountMinor: -m.AmountMinor, Currency: m.Currency}
}

func (m Money) IsZero() bool {
	return m.AmountMinor == 0
}

func (m Money) IsNegative() bool {
	return m.AmountMinor < 0
}

func (m Money) IsPositive() bool {
	return m.AmountMinor > 0
}

func (m Money) String() string {
	return fmt.Sprintf("%d %s", m.AmountMinor, m.Currency)
}
