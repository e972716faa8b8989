package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config собирается из окружения (.env подхватывает godotenv в main).
type Config struct {
	TelegramToken string
	DBPath        string
	LogLevel      string
	LogToFile     bool

	// Бэкенд хранилища выученных терминов: "sqlite" или "file".
	LearningStore string
	LearningFile  string

	// Пороги нечёткого поиска терминов.
	FuzzyUserThreshold   float64
	FuzzyGlobalThreshold float64
}

const (
	DefaultFuzzyUserThreshold   = 0.88
	DefaultFuzzyGlobalThreshold = 0.90
)

func Load() (*Config, error) {
	cfg := &Config{
		TelegramToken:        os.Getenv("TELEGRAM_TOKEN"),
		DBPath:               getEnv("DB_PATH", "budget.db"),
		LogLevel:             getEnv("LOG_LEVEL", "INFO"),
		LogToFile:            getBool("LOG_TO_FILE", true),
		LearningStore:        getEnv("LEARNING_STORE", "sqlite"),
		LearningFile:         getEnv("LEARNING_FILE", "data/categories.json"),
		FuzzyUserThreshold:   getFloat("FUZZY_USER_THRESHOLD", DefaultFuzzyUserThreshold),
		FuzzyGlobalThreshold: getFloat("FUZZY_GLOBAL_THRESHOLD", DefaultFuzzyGlobalThreshold),
	}

	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is not set")
	}
	if cfg.LearningStore != "sqlite" && cfg.LearningStore != "file" {
		return nil, fmt.Errorf("LEARNING_STORE must be sqlite or file, got %q", cfg.LearningStore)
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}
