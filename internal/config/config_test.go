package config

import (
	"strings"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("STORE_DRIVER", "memory")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Expected default port 8080, got %s", cfg.Port)
	}
	if cfg.MaxUserTurns != 5 {
		t.Errorf("Expected default 5 user turns, got %d", cfg.MaxUserTurns)
	}
	if cfg.GeminiModel != "gemini-2.0-flash" {
		t.Errorf("Expected default model, got %s", cfg.GeminiModel)
	}
	if cfg.GenerationTimeout != 45*time.Second {
		t.Errorf("Expected 45s generation timeout, got %v", cfg.GenerationTimeout)
	}
	if cfg.ExemplarTopK != 5 {
		t.Errorf("Expected default top-k 5, got %d", cfg.ExemplarTopK)
	}
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9999")
	t.Setenv("MAX_USER_TURNS", "7")
	t.Setenv("SESSION_TTL_MINUTES", "30")
	t.Setenv("ASSESSMENT_LOG_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "9999" {
		t.Errorf("Expected port 9999, got %s", cfg.Port)
	}
	if cfg.MaxUserTurns != 7 {
		t.Errorf("Expected 7 user turns, got %d", cfg.MaxUserTurns)
	}
	if cfg.SessionTTL != 30*time.Minute {
		t.Errorf("Expected 30m TTL, got %v", cfg.SessionTTL)
	}
	if cfg.AssessmentLog.Enabled {
		t.Error("Expected assessment log disabled")
	}
}

func TestLoad_MissingAPIKey(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("GEMINI_API_KEY", "")

	_, err := Load()
	if err == nil {
		t.Fatal("Expected error for missing GEMINI_API_KEY")
	}
	if !strings.Contains(err.Error(), "GEMINI_API_KEY") {
		t.Errorf("Expected GEMINI_API_KEY in error, got %v", err)
	}
}

func TestLoad_UnknownDriver(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("STORE_DRIVER", "cassandra")

	_, err := Load()
	if err == nil {
		t.Fatal("Expected error for unknown driver")
	}
	if !strings.Contains(err.Error(), "STORE_DRIVER") {
		t.Errorf("Expected STORE_DRIVER in error, got %v", err)
	}
}

func TestLoad_RedisRequiresAddr(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("STORE_DRIVER", "redis")
	t.Setenv("REDIS_ADDR", "")

	_, err := Load()
	if err == nil {
		t.Fatal("Expected error for redis driver without REDIS_ADDR")
	}
}

func TestIsDevelopment(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"", true},
		{"http://localhost:3000", true},
		{"http://127.0.0.1:3000", true},
		{"https://chatmatch.example.com", false},
	}
	for _, tt := range tests {
		c := &Config{FrontendURL: tt.url}
		if got := c.IsDevelopment(); got != tt.want {
			t.Errorf("IsDevelopment(%q): expected %v, got %v", tt.url, tt.want, got)
		}
	}
}
