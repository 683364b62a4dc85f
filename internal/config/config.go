// README: Config loader with env defaults for HTTP, model backends, Redis, and Postgres.
package config

import (
	"os"
	"strconv"
	"time"
)

type AIConfig struct {
	GeminiKey   string
	Model       string
	Timeout     time.Duration
	MaxAttempts int
}

type NarrationConfig struct {
	APIKey  string
	VoiceID string
	ModelID string
	BaseURL string
	Timeout time.Duration
}

type Config struct {
	HTTP struct {
		Addr string
	}
	Log struct {
		Level  string
		Format string
	}
	AI        AIConfig
	Narration NarrationConfig
	Maps      struct {
		// APIKey enables place enrichment; empty disables it.
		APIKey string
	}
	Redis struct {
		// Addr enables the place cache and the rate limiter; empty disables both.
		Addr string
	}
	DB struct {
		// DSN enables the generation quota ledger; empty disables it.
		DSN string
	}
	RateLimit struct {
		PlanPerMinute int
	}
}

func Load() (Config, error) {
	var cfg Config
	cfg.HTTP.Addr = envOrDefault("STORY_HTTP_ADDR", ":8080")
	cfg.Log.Level = envOrDefault("STORY_LOG_LEVEL", "info")
	cfg.Log.Format = envOrDefault("STORY_LOG_FORMAT", "json")

	cfg.AI.GeminiKey = envOrError("GEMINI_API_KEY")
	cfg.AI.Model = envOrDefault("STORY_GEMINI_MODEL", "gemini-2.5-flash")
	cfg.AI.Timeout = time.Duration(envOrDefaultInt("STORY_GEMINI_TIMEOUT_SECONDS", 30)) * time.Second
	cfg.AI.MaxAttempts = envOrDefaultInt("STORY_GEMINI_MAX_ATTEMPTS", 2)

	cfg.Narration.APIKey = envOrError("ELEVENLABS_API_KEY")
	cfg.Narration.VoiceID = envOrDefault("ELEVENLABS_VOICE_ID", "21m00Tcm4TlvDq8ikWAM")
	cfg.Narration.ModelID = envOrDefault("ELEVENLABS_MODEL_ID", "eleven_multilingual_v2")
	cfg.Narration.BaseURL = envOrDefault("ELEVENLABS_BASE_URL", "https://api.elevenlabs.io")
	cfg.Narration.Timeout = time.Duration(envOrDefaultInt("STORY_TTS_TIMEOUT_SECONDS", 60)) * time.Second

	cfg.Maps.APIKey = envOrDefault("GOOGLE_MAPS_API_KEY", "")
	cfg.Redis.Addr = envOrDefault("STORY_REDIS_ADDR", "")
	cfg.DB.DSN = envOrDefault("STORY_DB_DSN", "")
	cfg.RateLimit.PlanPerMinute = envOrDefaultInt("STORY_PLAN_RATE_PER_MINUTE", 10)
	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrError(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	panic("environment variable " + key + " is required")
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
