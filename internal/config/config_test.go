package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "token123")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "token123", cfg.TelegramToken)
	assert.Equal(t, "budget.db", cfg.DBPath)
	assert.Equal(t, "sqlite", cfg.LearningStore)
	assert.Equal(t, DefaultFuzzyUserThreshold, cfg.FuzzyUserThreshold)
	assert.Equal(t, DefaultFuzzyGlobalThreshold, cfg.FuzzyGlobalThreshold)
}

func TestLoadRequiresToken(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsUnknownStore(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "token123")
	t.Setenv("LEARNING_STORE", "redis")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "token123")
	t.Setenv("LEARNING_STORE", "file")
	t.Setenv("FUZZY_USER_THRESHOLD", "0.95")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "file", cfg.LearningStore)
	assert.Equal(t, 0.95, cfg.FuzzyUserThreshold)
}
