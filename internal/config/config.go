package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	WordLength     int
	MaxAttempts    int
	MaxHints       int
	WordsFile      string
	StrictWordList bool

	DatabaseType   string
	DatabasePath   string
	DatabaseURL    string
	MigrationsPath string

	DailyLeaderboardSize int
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is honoured when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		WordLength:     getEnvInt("WORD_LENGTH", 5),
		MaxAttempts:    getEnvInt("MAX_ATTEMPTS", 6),
		MaxHints:       getEnvInt("MAX_HINTS", 3),
		WordsFile:      getEnv("WORDS_FILE", "./words.txt"),
		StrictWordList: getEnvBool("STRICT_WORD_LIST", false),

		DatabaseType:   getEnv("DB_TYPE", "sqlite"),
		DatabasePath:   getEnv("DB_PATH", "./wordlearena.db"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),

		DailyLeaderboardSize: getEnvInt("DAILY_LEADERBOARD_SIZE", 10),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt reads an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return i
}

// getEnvBool reads a boolean environment variable or returns a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}
