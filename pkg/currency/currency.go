// Package currency holds the ISO 4217 currency code type and a small
// metadata registry used to resolve the number of decimal places per currency.
package currency

import (
	"errors"
	"sync"
)

const (
	// DefaultCurrency is the fallback currency code (USD).
	DefaultCurrency = Code("USD")
	// DefaultDecimals is the default number of decimal places for currencies
	// missing from the registry.
	DefaultDecimals = 2
)

// ErrUnsupportedCurrency is returned when a currency code is not registered.
var ErrUnsupportedCurrency = errors.New("currency not supported")

// Code represents an ISO 4217 currency code (e.g., "USD", "EUR").
type Code string

// String returns the string representation of the currency code.
func (c Code) String() string {
	return string(c)
}

// IsValidFormat reports whether the code is three uppercase ASCII letters.
func (c Code) IsValidFormat() bool {
	if len(c) != 3 {
		return false
	}
	for i := 0; i < 3; i++ {
		if c[i] < 'A' || c[i] > 'Z' {
			return false
		}
	}
	return true
}

// Meta holds currency-specific metadata.
type Meta struct {
	Decimals int
	Symbol   string
}

// Registry maps currency codes to their metadata. Safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[Code]Meta
}

// NewRegistry creates a registry pre-loaded with the common currencies.
func NewRegistry() *Registry {
	r := &Registry{entries: make(map[Code]Meta)}
	defaults := map[Code]Meta{
		"USD": {Decimals: 2, Symbol: "$"},
		"EUR": {Decimals: 2, Symbol: "€"},
		"GBP": {Decimals: 2, Symbol: "£"},
		"JPY": {Decimals: 0, Symbol: "¥"},
		"KWD": {Decimals: 3, Symbol: "د.ك"},
		"EGP": {Decimals: 2, Symbol: "£"},
		"CAD": {Decimals: 2, Symbol: "C$"},
		"AUD": {Decimals: 2, Symbol: "A$"},
		"CHF": {Decimals: 2, Symbol: "CHF"},
		"CNY": {Decimals: 2, Symbol: "¥"},
		"INR": {Decimals: 2, Symbol: "₹"},
	}
	for code, meta := range defaults {
		r.Register(code, meta)
	}
	return r
}

// Register adds or updates a currency in the registry.
func (r *Registry) Register(code Code, meta Meta) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[code] = meta
}

// Get returns the metadata for code, or ErrUnsupportedCurrency.
func (r *Registry) Get(code Code) (Meta, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	meta, ok := r.entries[code]
	if !ok {
		return Meta{}, ErrUnsupportedCurrency
	}
	return meta, nil
}

// IsSupported reports whether the code is registered.
func (r *Registry) IsSupported(code Code) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[code]
	return ok
}

// ListSupported returns all registered currency codes.
func (r *Registry) ListSupported() []Code {
	r.mu.RLock()
	defer r.mu.RUnlock()
	codes := make([]Code, 0, len(r.entries))
	for code := range r.entries {
		codes = append(codes, code)
	}
	return codes
}

// Global registry instance used by the money package and API validation.
var global = NewRegistry()

// Register adds or updates a currency in the global registry.
func Register(code Code, meta Meta) {
	global.Register(code, meta)
}

// Get returns metadata for code from the global registry.
func Get(code Code) (Meta, error) {
	return global.Get(code)
}

// IsSupported reports whether code is registered in the global registry.
func IsSupported(code Code) bool {
	return global.IsSupported(code)
}

// ListSupported returns all codes registered in the global registry.
func ListSupported() []Code {
	return global.ListSupported()
}
