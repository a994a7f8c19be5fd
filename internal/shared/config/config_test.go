package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENV", "DATABASE_URL", "REDIS_URL", "SNAPSHOT_CACHE_TTL", "CORS_ALLOW_ORIGINS"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg := FromViper(newViper())

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORSAllowOrigin)
	assert.Equal(t, 5*time.Minute, cfg.SnapshotCacheTTL)
	assert.Equal(t, 10, cfg.RateLimitBurst)
	assert.True(t, cfg.IsDevLike())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "prod")
	t.Setenv("DATABASE_URL", " postgres://db/jobs ")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("SNAPSHOT_CACHE_TTL", "90s")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example, ,https://b.example")

	cfg := FromViper(newViper())

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "postgres://db/jobs", cfg.DatabaseURL)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	assert.Equal(t, 90*time.Second, cfg.SnapshotCacheTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowOrigin)
	assert.False(t, cfg.IsDevLike())
}

func TestFromViperClampsNegativeTTL(t *testing.T) {
	v := viper.New()
	v.Set("SNAPSHOT_CACHE_TTL", "-1m")
	assert.Zero(t, FromViper(v).SnapshotCacheTTL)
}

func TestLoadEnvFilesKeepsExistingValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("PERF_TEST_A=from-file\nPERF_TEST_B=\"quoted\"\n"), 0o600))
	t.Setenv("PERF_TEST_A", "from-env")
	t.Setenv("PERF_TEST_B", "")
	require.NoError(t, os.Unsetenv("PERF_TEST_B"))

	loadEnvFiles(filepath.Join(dir, "missing.env"), path)

	assert.Equal(t, "from-env", os.Getenv("PERF_TEST_A"))
	assert.Equal(t, "quoted", os.Getenv("PERF_TEST_B"))
}

func TestNormalizeEnv(t *testing.T) {
	cases := map[string]string{
		"production":  "production",
		"PROD":        "production",
		"staging":     "staging",
		"local":       "local",
		"development": "dev",
		"":            "dev",
	}
	for in, want := range cases {
		assert.Equal(t, want, normalizeEnv(in), in)
	}
}
