package money

import "errors"

var (
	// ErrInvalidAmount is returned when an amount string cannot be parsed or
	// carries more precision than the currency allows.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrAmountExceedsMaxSafeInt is returned when an amount exceeds the
	// maximum safe integer value in the smallest currency unit.
	ErrAmountExceedsMaxSafeInt = errors.New("amount exceeds maximum safe integer value")

	// ErrCurrencyMismatch is returned when performing operations on money
	// with different currencies.
	ErrCurrencyMismatch = errors.New("currency mismatch")

	// ErrInvalidCurrency is returned when a currency code is not valid ISO 4217.
	ErrInvalidCurrency = errors.New("invalid currency code")
)
