package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercase", "Кофе 10", "кофе 10"},
		{"comma decimal", "кофе 10,50", "кофе 10.50"},
		{"thousand separator", "зарплата 1 500", "зарплата 1500"},
		{"million collapses fully", "1 000 000", "1000000"},
		{"em dash to minus", "такси — 7", "такси -7"},
		{"en dash to minus", "такси – 7", "такси -7"},
		{"sign glued to number", "+ 200 фриланс", "+200 фриланс"},
		{"whitespace collapsed", "кофе   с   собой  4", "кофе с собой 4"},
		{"empty", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}
