// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Port        string
	FrontendURL string

	StoreDriver   string // "memory", "sqlite" or "redis"
	DBPath        string
	RedisAddr     string
	RedisPassword string

	SessionTTL   time.Duration
	MaxUserTurns int

	GeminiAPIKey       string
	GeminiModel        string
	GeminiEmbedModel   string
	GenerationTimeout  time.Duration
	GenerationAttempts int

	QdrantURL        string
	QdrantAPIKey     string
	QdrantCollection string
	ExemplarTopK     int

	AssessmentLog AssessmentLogConfig
}

// AssessmentLogConfig controls JSON archiving of assessed conversations.
type AssessmentLogConfig struct {
	Enabled   bool
	Dir       string
	QueueSize int
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	queueSize := getEnvInt("ASSESSMENT_LOG_QUEUE_SIZE", 64)
	if queueSize <= 0 {
		queueSize = 64
	}

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		FrontendURL: getEnv("FRONTEND_URL", ""),

		StoreDriver:   strings.ToLower(getEnv("STORE_DRIVER", "sqlite")),
		DBPath:        getEnv("DB_PATH", "./data/chatmatch.db"),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		SessionTTL:   time.Duration(getEnvInt("SESSION_TTL_MINUTES", 60)) * time.Minute,
		MaxUserTurns: getEnvInt("MAX_USER_TURNS", 5),

		GeminiAPIKey:       getEnv("GEMINI_API_KEY", ""),
		GeminiModel:        getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		GeminiEmbedModel:   getEnv("GEMINI_EMBEDDING_MODEL", "gemini-embedding-001"),
		GenerationTimeout:  time.Duration(getEnvInt("GENERATION_TIMEOUT_SECONDS", 45)) * time.Second,
		GenerationAttempts: getEnvInt("GENERATION_MAX_ATTEMPTS", 3),

		QdrantURL:        getEnv("QDRANT_URL", ""),
		QdrantAPIKey:     getEnv("QDRANT_API_KEY", ""),
		QdrantCollection: getEnv("QDRANT_COLLECTION", "chatmatch_exemplars"),
		ExemplarTopK:     getEnvInt("EXEMPLAR_TOP_K", 5),

		AssessmentLog: AssessmentLogConfig{
			Enabled:   getEnvBool("ASSESSMENT_LOG_ENABLED", true),
			Dir:       getEnv("ASSESSMENT_LOG_DIR", "./data/assessments"),
			QueueSize: queueSize,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	switch c.StoreDriver {
	case "memory":
	case "sqlite":
		if c.DBPath == "" {
			return fmt.Errorf("DB_PATH cannot be empty with the sqlite driver")
		}
	case "redis":
		if c.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR cannot be empty with the redis driver")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q (want memory, sqlite or redis)", c.StoreDriver)
	}
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY cannot be empty")
	}
	if c.MaxUserTurns <= 0 {
		return fmt.Errorf("MAX_USER_TURNS must be > 0")
	}
	if c.ExemplarTopK <= 0 {
		return fmt.Errorf("EXEMPLAR_TOP_K must be > 0")
	}
	if c.GenerationAttempts <= 0 {
		return fmt.Errorf("GENERATION_MAX_ATTEMPTS must be > 0")
	}
	if c.AssessmentLog.Enabled && c.AssessmentLog.Dir == "" {
		return fmt.Errorf("ASSESSMENT_LOG_DIR cannot be empty")
	}
	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.FrontendURL == "" ||
		strings.Contains(c.FrontendURL, "localhost") ||
		strings.Contains(c.FrontendURL, "127.0.0.1")
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}
