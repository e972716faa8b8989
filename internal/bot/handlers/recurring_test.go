package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecurringPeriod(t *testing.T) {
	assert.Equal(t, "daily", recurringPeriod("день"))
	assert.Equal(t, "daily", recurringPeriod("дня"))
	assert.Equal(t, "weekly", recurringPeriod("неделя"))
	assert.Equal(t, "monthly", recurringPeriod("месяц"))
	assert.Equal(t, "monthly", recurringPeriod("monthly"))
	assert.Equal(t, "", recurringPeriod("квартал"))
}

func TestParseClock(t *testing.T) {
	h, m, err := parseClock("09:30")
	require.NoError(t, err)
	assert.Equal(t, 9, h)
	assert.Equal(t, 30, m)

	_, _, err = parseClock("25:00")
	assert.Error(t, err)
	_, _, err = parseClock("утром")
	assert.Error(t, err)
}

func TestFirstRun(t *testing.T) {
	now := time.Date(2025, time.September, 15, 12, 0, 0, 0, time.UTC)

	// Время ещё впереди — сегодня.
	at := firstRun(now, 19, 0)
	assert.Equal(t, 15, at.Day())
	assert.Equal(t, 19, at.Hour())

	// Уже прошло — завтра.
	at = firstRun(now, 9, 0)
	assert.Equal(t, 16, at.Day())
	assert.Equal(t, 9, at.Hour())
}
