package currency_test

import (
	"testing"

	"github.com/cashfold/checking/pkg/currency"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCode_IsValidFormat(t *testing.T) {
	tests := []struct {
		code  currency.Code
		valid bool
	}{
		{"USD", true},
		{"EUR", true},
		{"usd", false},
		{"US", false},
		{"USDX", false},
		{"U$D", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.code.IsValidFormat())
		})
	}
}

func TestRegistry_Defaults(t *testing.T) {
	r := currency.NewRegistry()

	usd, err := r.Get("USD")
	require.NoError(t, err)
	assert.Equal(t, 2, usd.Decimals)

	jpy, err := r.Get("JPY")
	require.NoError(t, err)
	assert.Equal(t, 0, jpy.Decimals)

	kwd, err := r.Get("KWD")
	require.NoError(t, err)
	assert.Equal(t, 3, kwd.Decimals)

	_, err = r.Get("ZZZ")
	require.ErrorIs(t, err, currency.ErrUnsupportedCurrency)
	assert.False(t, r.IsSupported("ZZZ"))
}

func TestRegistry_Register(t *testing.T) {
	r := currency.NewRegistry()
	r.Register("BTC", currency.Meta{Decimals: 8, Symbol: "₿"})

	meta, err := r.Get("BTC")
	require.NoError(t, err)
	assert.Equal(t, 8, meta.Decimals)
	assert.True(t, r.IsSupported("BTC"))
	assert.Contains(t, r.ListSupported(), currency.Code("BTC"))
}

func TestGlobalRegistry(t *testing.T) {
	assert.True(t, currency.IsSupported("USD"))
	meta, err := currency.Get("EUR")
	require.NoError(t, err)
	assert.Equal(t, 2, meta.Decimals)
}
