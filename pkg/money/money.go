// Package money provides the fixed-point monetary value object used for all
// ledger quantities.
//
// Invariants:
//   - Amount is always stored in the smallest currency unit (e.g., cents for USD).
//   - Currency code must be valid ISO 4217 (3 uppercase letters).
//   - All arithmetic operations require matching currencies.
//   - Amounts are never represented as binary floats; parsing and formatting
//     use integer math only.
package money

import (
	"fmt"
	"math"
	"strings"

	"github.com/cashfold/checking/pkg/currency"
)

// Amount represents a monetary amount as an integer in the smallest currency
// unit (e.g., cents for USD).
type Amount = int64

// Money represents a monetary value in a specific currency.
type Money struct {
	amount   Amount
	currency currency.Code
}

// New parses a decimal string (e.g. "100.00") into a Money value.
// Invariants enforced:
//   - Currency code must be valid ISO 4217 and registered.
//   - The string must not carry more decimal places than the currency allows.
//   - The scaled value must fit in int64.
func New(amount string, code currency.Code) (Money, error) {
	if code == "" {
		code = currency.DefaultCurrency
	}
	if !code.IsValidFormat() {
		return Money{}, ErrInvalidCurrency
	}
	meta, err := currency.Get(code)
	if err != nil {
		return Money{}, err
	}
	minor, err := parseMinorUnits(amount, meta.Decimals)
	if err != nil {
		return Money{}, err
	}
	return Money{amount: minor, currency: code}, nil
}

// NewFromSmallestUnit creates a Money value directly from the smallest
// currency unit. Used by store adapters to rehydrate persisted amounts.
func NewFromSmallestUnit(amount int64, code currency.Code) (Money, error) {
	if code == "" {
		code = currency.DefaultCurrency
	}
	if !code.IsValidFormat() {
		return Money{}, ErrInvalidCurrency
	}
	return Money{amount: amount, currency: code}, nil
}

// Zero returns the zero value for the given currency.
func Zero(code currency.Code) Money {
	return Money{amount: 0, currency: code}
}

// Amount returns the amount in the smallest currency unit.
func (m Money) Amount() Amount {
	return m.amount
}

// Currency returns the currency of the Money object.
func (m Money) Currency() currency.Code {
	return m.currency
}

// Add adds another Money value.
// Returns ErrCurrencyMismatch if currencies differ and
// ErrAmountExceedsMaxSafeInt on overflow.
func (m Money) Add(other Money) (Money, error) {
	if !m.IsSameCurrency(other) {
		return Money{}, ErrCurrencyMismatch
	}
	sum := m.amount + other.amount
	if (other.amount > 0 && sum < m.amount) || (other.amount < 0 && sum > m.amount) {
		return Money{}, ErrAmountExceedsMaxSafeInt
	}
	return Money{amount: sum, currency: m.currency}, nil
}

// Subtract subtracts another Money value.
// Returns ErrCurrencyMismatch if currencies differ.
func (m Money) Subtract(other Money) (Money, error) {
	if !m.IsSameCurrency(other) {
		return Money{}, ErrCurrencyMismatch
	}
	diff := m.amount - other.amount
	if (other.amount < 0 && diff < m.amount) || (other.amount > 0 && diff > m.amount) {
		return Money{}, ErrAmountExceedsMaxSafeInt
	}
	return Money{amount: diff, currency: m.currency}, nil
}

// GreaterThan reports whether m > other.
// Returns ErrCurrencyMismatch if currencies differ.
func (m Money) GreaterThan(other Money) (bool, error) {
	if !m.IsSameCurrency(other) {
		return false, ErrCurrencyMismatch
	}
	return m.amount > other.amount, nil
}

// LessThan reports whether m < other.
// Returns ErrCurrencyMismatch if currencies differ.
func (m Money) LessThan(other Money) (bool, error) {
	if !m.IsSameCurrency(other) {
		return false, ErrCurrencyMismatch
	}
	return m.amount < other.amount, nil
}

// Equals reports whether both currency and amount match.
func (m Money) Equals(other Money) bool {
	return m.IsSameCurrency(other) && m.amount == other.amount
}

// IsSameCurrency reports whether both values share a currency.
func (m Money) IsSameCurrency(other Money) bool {
	return m.currency == other.currency
}

// IsPositive returns true if the amount is greater than zero.
func (m Money) IsPositive() bool {
	return m.amount > 0
}

// IsNegative returns true if the amount is less than zero.
func (m Money) IsNegative() bool {
	return m.amount < 0
}

// IsZero returns true if the amount is zero.
func (m Money) IsZero() bool {
	return m.amount == 0
}

// StringAmount formats the amount as a decimal string in the main currency
// unit, e.g. 12345 cents -> "123.45". Integer math only.
func (m Money) StringAmount() string {
	decimals := currency.DefaultDecimals
	if meta, err := currency.Get(m.currency); err == nil {
		decimals = meta.Decimals
	}
	sign := ""
	v := m.amount
	if v < 0 {
		sign = "-"
		v = -v
	}
	if decimals == 0 {
		return fmt.Sprintf("%s%d", sign, v)
	}
	scale := pow10(decimals)
	return fmt.Sprintf("%s%d.%0*d", sign, v/scale, decimals, v%scale)
}

// String returns a string representation including the currency code.
func (m Money) String() string {
	return m.StringAmount() + " " + m.currency.String()
}

// parseMinorUnits converts a decimal string to the smallest currency unit
// without passing through a float.
func parseMinorUnits(s string, decimals int) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	neg := false
	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}
	intPart, fracPart, hasFrac := strings.Cut(s, ".")
	if intPart == "" && fracPart == "" {
		return 0, ErrInvalidAmount
	}
	if intPart == "" {
		intPart = "0"
	}
	if hasFrac && fracPart == "" {
		return 0, ErrInvalidAmount
	}
	if len(fracPart) > decimals {
		// Trailing zeros beyond the currency precision are harmless.
		extra := strings.TrimRight(fracPart[decimals:], "0")
		if extra != "" {
			return 0, fmt.Errorf("%w: more than %d decimal places", ErrInvalidAmount, decimals)
		}
		fracPart = fracPart[:decimals]
	}
	var minor int64
	for _, r := range intPart {
		if r < '0' || r > '9' {
			return 0, ErrInvalidAmount
		}
		d := int64(r - '0')
		if minor > (math.MaxInt64-d)/10 {
			return 0, ErrAmountExceedsMaxSafeInt
		}
		minor = minor*10 + d
	}
	for i := 0; i < decimals; i++ {
		var d int64
		if i < len(fracPart) {
			r := fracPart[i]
			if r < '0' || r > '9' {
				return 0, ErrInvalidAmount
			}
			d = int64(r - '0')
		}
		if minor > (math.MaxInt64-d)/10 {
			return 0, ErrAmountExceedsMaxSafeInt
		}
		minor = minor*10 + d
	}
	if neg {
		minor = -minor
	}
	return minor, nil
}

func pow10(n int) int64 {
	v := int64(1)
	for i := 0; i < n; i++ {
		v *= 10
	}
	return v
}
