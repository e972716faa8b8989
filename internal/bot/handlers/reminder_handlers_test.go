package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRemindArgs(t *testing.T) {
	now := time.Date(2025, time.September, 15, 12, 0, 0, 0, time.UTC)

	at, text, err := parseRemindArgs("2025-10-01 09:30 оплатить интернет", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.October, 1, 9, 30, 0, 0, time.UTC), at)
	assert.Equal(t, "оплатить интернет", text)

	at, text, err = parseRemindArgs("завтра 08:00 аптека", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.September, 16, 8, 0, 0, 0, time.UTC), at)
	assert.Equal(t, "аптека", text)

	at, text, err = parseRemindArgs("через 30 мин позвонить", now)
	require.NoError(t, err)
	assert.Equal(t, now.Add(30*time.Minute), at)
	assert.Equal(t, "позвонить", text)

	at, text, err = parseRemindArgs("через 2 часа отчёт", now)
	require.NoError(t, err)
	assert.Equal(t, now.Add(2*time.Hour), at)
	assert.Equal(t, "отчёт", text)
}

func TestParseRemindArgsRejectsBadInput(t *testing.T) {
	now := time.Now()
	for _, tail := range []string{
		"",
		"завтра",
		"завтра утром аптека",
		"через ноль мин текст",
		"через 5 лет текст",
		"01.10.2025 09:30 текст",
	} {
		_, _, err := parseRemindArgs(tail, now)
		assert.Error(t, err, "input %q", tail)
	}
}
