package money_test

import (
	"testing"

	"github.com/cashfold/checking/pkg/money"
)

// FuzzNew checks that arbitrary input never panics the parser and that
// accepted values survive a format/parse round trip.
func FuzzNew(f *testing.F) {
	seeds := []string{"100.50", "-0.01", "0", "1000", ".", "1.", "abc", "+7.3", "92233720368547758.07"}
	for _, s := range seeds {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, s string) {
		m, err := money.New(s, "USD")
		if err != nil {
			return
		}
		again, err := money.New(m.StringAmount(), "USD")
		if err != nil {
			t.Fatalf("formatted amount %q failed to parse: %v", m.StringAmount(), err)
		}
		if !m.Equals(again) {
			t.Fatalf("round trip changed value: %v != %v", m, again)
		}
	})
}
