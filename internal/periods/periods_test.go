package periods

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, time.September, 15, 14, 30, 0, 0, time.UTC)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseToday(t *testing.T) {
	p, ok := Parse("сегодня", now)
	require.True(t, ok)
	assert.Equal(t, day(2025, time.September, 15), p.Start)
	assert.Equal(t, day(2025, time.September, 15), p.End)
}

func TestParseYesterday(t *testing.T) {
	p, ok := Parse("отчёт за вчера", now)
	require.True(t, ok)
	assert.Equal(t, day(2025, time.September, 14), p.Start)
	assert.Equal(t, day(2025, time.September, 14), p.End)
}

func TestParseNDays(t *testing.T) {
	p, ok := Parse("сколько потратил за 3 дня", now)
	require.True(t, ok)
	assert.Equal(t, day(2025, time.September, 13), p.Start)
	assert.Equal(t, day(2025, time.September, 15), p.End)
}

func TestParseWeek(t *testing.T) {
	p, ok := Parse("за неделю", now)
	require.True(t, ok)
	assert.Equal(t, day(2025, time.September, 9), p.Start)
	assert.Equal(t, day(2025, time.September, 15), p.End)
}

func TestParseMonth(t *testing.T) {
	p, ok := Parse("отчёт за месяц", now)
	require.True(t, ok)
	assert.Equal(t, day(2025, time.September, 1), p.Start)
	assert.Equal(t, day(2025, time.September, 15), p.End)
}

func TestParseYear(t *testing.T) {
	p, ok := Parse("за год", now)
	require.True(t, ok)
	assert.Equal(t, day(2025, time.January, 1), p.Start)
	assert.Equal(t, day(2025, time.September, 15), p.End)
}

func TestParseNamedMonth(t *testing.T) {
	p, ok := Parse("сколько потратил за август", now)
	require.True(t, ok)
	assert.Equal(t, day(2025, time.August, 1), p.Start)
	assert.Equal(t, day(2025, time.August, 31), p.End)
}

func TestParseMay(t *testing.T) {
	p, ok := Parse("отчёт за май", now)
	require.True(t, ok)
	assert.Equal(t, day(2025, time.May, 1), p.Start)
	assert.Equal(t, day(2025, time.May, 31), p.End)
}

func TestParseNotAPeriod(t *testing.T) {
	for _, text := range []string{"", "кофе 10", "привет", "такси -7"} {
		_, ok := Parse(text, now)
		assert.False(t, ok, "input %q", text)
	}
}

func TestWithoutPhrase(t *testing.T) {
	assert.NotContains(t, WithoutPhrase("за 3 дня"), "3")
	assert.NotContains(t, WithoutPhrase("отчёт за 14 дней"), "14")
	// Цифры вне фразы периода остаются.
	assert.Contains(t, WithoutPhrase("за 3 дня потратил 50"), "50")
	assert.Contains(t, WithoutPhrase("вчера такси 10"), "10")
}

func TestPeriodString(t *testing.T) {
	p, _ := Parse("вчера", now)
	assert.Equal(t, "вчера", p.String())

	unlabeled := Period{Start: day(2025, time.May, 1), End: day(2025, time.May, 31)}
	assert.Equal(t, "2025-05-01 — 2025-05-31", unlabeled.String())
}
