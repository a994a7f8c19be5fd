package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	"jobtracker-backend/internal/shared/telemetry"
)

// Config holds application configuration.
type Config struct {
	Port             string
	CORSAllowOrigin  []string
	DatabaseURL      string
	RedisURL         string
	Env              string
	JWTSecret        string
	LogLevel         string
	SnapshotCacheTTL time.Duration
	RateLimitRPS     float64
	RateLimitBurst   int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "dev")
	v.SetDefault("CORS_ALLOW_ORIGINS", "http://localhost:5173")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SNAPSHOT_CACHE_TTL", "5m")
	v.SetDefault("RATE_LIMIT_RPS", 2.0)
	v.SetDefault("RATE_LIMIT_BURST", 10)
	return v
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) Config {
	env := normalizeEnv(v.GetString("ENV"))
	dbURL := strings.TrimSpace(v.GetString("DATABASE_URL"))

	if env == "production" && dbURL == "" {
		telemetry.Warn("config.missing", map[string]any{"key": "DATABASE_URL", "env": env})
	}

	ttl := v.GetDuration("SNAPSHOT_CACHE_TTL")
	if ttl < 0 {
		ttl = 0
	}

	return Config{
		Port:             v.GetString("PORT"),
		CORSAllowOrigin:  splitAndTrim(v.GetString("CORS_ALLOW_ORIGINS")),
		DatabaseURL:      dbURL,
		RedisURL:         strings.TrimSpace(v.GetString("REDIS_URL")),
		Env:              env,
		JWTSecret:        strings.TrimSpace(v.GetString("JWT_SECRET")),
		LogLevel:         v.GetString("LOG_LEVEL"),
		SnapshotCacheTTL: ttl,
		RateLimitRPS:     v.GetFloat64("RATE_LIMIT_RPS"),
		RateLimitBurst:   v.GetInt("RATE_LIMIT_BURST"),
	}
}

// IsDevLike reports whether in-memory fallbacks are allowed.
func (c Config) IsDevLike() bool {
	return c.Env == "dev" || c.Env == "local"
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}
