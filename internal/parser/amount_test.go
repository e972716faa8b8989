package parser

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractAmount(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain integer", "кофе 10", "10"},
		{"decimal", "кофе 4.50", "4.5"},
		{"negative returns abs", "такси -7", "7"},
		{"positive sign", "+200 фриланс", "200"},
		{"amount first", "7 такси", "7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, cur, ok := ExtractAmount(Normalize(tt.in))
			require.True(t, ok)
			assert.Equal(t, Currency, cur)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s", got)
		})
	}
}

func TestExtractAmountNoNumber(t *testing.T) {
	for _, in := range []string{"", "привет", "кофе с собой"} {
		_, _, ok := ExtractAmount(Normalize(in))
		assert.False(t, ok, "input %q", in)
	}
}

func TestDetectType(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"default expense", "кофе 10", TypeExpense},
		{"explicit minus", "такси -7", TypeExpense},
		{"explicit plus", "+200 фриланс", TypeIncome},
		{"income marker", "зарплата 1500", TypeIncome},
		{"marker cashback", "кешбек 12", TypeIncome},
		{"marker bonus", "премия 500", TypeIncome},
		{"marker bonus declined", "дали премию 300", TypeIncome},
		// «премиум» — не премия.
		{"premium is not bonus", "премиум подписка 10", TypeExpense},
		{"sign beats marker", "-5 зарплата", TypeExpense},
		{"plus beats nothing", "+50 кофе", TypeIncome},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectType(Normalize(tt.in)))
		})
	}
}
