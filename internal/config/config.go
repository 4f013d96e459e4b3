package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Store   StoreConfig
	Game    GameConfig
	Demo    DemoConfig
	Logging LoggingConfig
}

// StoreConfig holds persistence configuration
type StoreConfig struct {
	DSN string // SQLite file path; empty selects the in-memory store
}

// GameConfig holds game-related configuration
type GameConfig struct {
	WordListFile       string
	MinTrigramWords    int
	CountdownSeconds   int
	DefaultTurnTimeout time.Duration
}

// DemoConfig tunes the exhibition match the binary plays
type DemoConfig struct {
	Players     int
	Seed        int64
	FailureRate float64 // chance a bot lets its turn time out
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string
	Format string // "json" or "console"
}

// Load loads configuration from environment variables with defaults
func Load() *Config {
	return &Config{
		Store: StoreConfig{
			DSN: getEnv("STORE_DSN", ""),
		},
		Game: GameConfig{
			WordListFile:       getEnv("WORD_LIST_FILE", ""),
			MinTrigramWords:    getEnvInt("MIN_TRIGRAM_WORDS", 200),
			CountdownSeconds:   getEnvInt("COUNTDOWN_SECONDS", 5),
			DefaultTurnTimeout: time.Duration(getEnvInt("TURN_TIMEOUT_SECONDS", 5)) * time.Second,
		},
		Demo: DemoConfig{
			Players:     getEnvInt("DEMO_PLAYERS", 3),
			Seed:        int64(getEnvInt("DEMO_SEED", 0)),
			FailureRate: getEnvFloat("DEMO_FAILURE_RATE", 0.2),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
		},
	}
}

// getEnv returns an environment variable or a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt returns an environment variable as an integer or a default value
func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvFloat returns an environment variable as a float or a default value
func getEnvFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
