package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsReportRequest(t *testing.T) {
	now := time.Date(2025, time.September, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   string
		want bool
	}{
		// Ответ на подсказку «За какой период?» — отчёт, а не операция на 3 BYN.
		{"days phrase alone", "за 3 дня", true},
		{"days phrase with report word", "отчёт за 3 дня", true},
		{"period without digits", "за неделю", true},
		{"named month", "сколько потратил за август", true},
		{"yesterday alone", "вчера", true},
		{"transaction with period word", "вчера такси 10", false},
		{"plain transaction", "кофе 10", false},
		{"no period at all", "привет", false},
		{"days phrase plus amount", "за 3 дня потратил 50", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, got := isReportRequest(tt.in, now)
			assert.Equal(t, tt.want, got)
		})
	}
}
