package importer

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMoney(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		// European-style separators, the format the supplier files use
		{"2.750,00", "2750.00", true},
		{"$ 1.234,56", "1234.56", true},
		{"1234", "1234", true},
		{"0", "0", true},
		{"$0,99", "0.99", true},

		// Legacy transformation quirk, pinned on purpose: US-style separators
		// lose their thousands grouping. See the ParseMoney doc comment.
		{"$ 2,750.00", "2.75", true},
		{"2750.00", "275000", true},

		{"", "", false},
		{"no disponible", "", false},
		{"abc", "", false},
	}
	for _, tc := range cases {
		got, ok := ParseMoney(tc.in)
		assert.Equal(t, tc.ok, ok, "input %q", tc.in)
		if tc.ok {
			require.True(t, decimal.RequireFromString(tc.want).Equal(got),
				"input %q: want %s got %s", tc.in, tc.want, got)
		}
	}
}

func TestParseStock(t *testing.T) {
	intp := func(n int) *int { return &n }
	cases := []struct {
		in   string
		want *int
	}{
		{"", nil},
		{"No disponible", nil},
		{"N/A", nil},
		{"10", intp(10)},
		{"12 unidades", intp(12)},
		{"Menos de 5pz", intp(5)},
		{"menos de pocas", intp(5)},
		{"agotado", nil},
	}
	for _, tc := range cases {
		got := ParseStock(tc.in)
		if tc.want == nil {
			assert.Nil(t, got, "input %q", tc.in)
		} else {
			require.NotNil(t, got, "input %q", tc.in)
			assert.Equal(t, *tc.want, *got, "input %q", tc.in)
		}
	}
}
