package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"OFFICIAL_EMAIL", "GEMINI_API_KEY", "GEMINI_MODEL", "GEMINI_BASE_URL", "AI_TIMEOUT",
		"PORT", "LOG_LEVEL", "LOG_FORMAT", "METRICS_ENABLED", "CONCURRENCY_MAX",
		"CONCURRENCY_TIMEOUT", "STATS_BACKEND", "STATS_REDIS_ADDR", "STATS_REDIS_PASSWORD",
		"STATS_REDIS_DB", "STATS_REDIS_PREFIX", "STATS_REDIS_TTL", "STATS_REDIS_BUCKET",
	} {
		t.Setenv(k, "")
	}
}

func TestReadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := readConfig()
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, ":3000", cfg.ListenAddr())
	assert.Equal(t, "", cfg.Identity)
	assert.Equal(t, "gemini-2.5-flash", cfg.GeminiModel)
	assert.Equal(t, 10*time.Second, cfg.AITimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.True(t, cfg.MetricsEnabled)
	assert.Equal(t, 0, cfg.ConcurrencyMax)
	assert.Equal(t, "none", cfg.StatsBackend)
	assert.Equal(t, "bfhl:stats", cfg.StatsPrefix)
	assert.Equal(t, "minute", cfg.StatsBucket)
	assert.NoError(t, validateConfig(cfg))
}

func TestReadConfig_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("OFFICIAL_EMAIL", " someone@example.edu ")
	t.Setenv("GEMINI_API_KEY", "secret")
	t.Setenv("PORT", "8081")
	t.Setenv("AI_TIMEOUT", "3s")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("STATS_BACKEND", "Redis")
	t.Setenv("STATS_REDIS_ADDR", "localhost:6379")
	t.Setenv("STATS_REDIS_BUCKET", "None")

	cfg := readConfig()
	assert.Equal(t, "someone@example.edu", cfg.Identity)
	assert.Equal(t, "secret", cfg.GeminiAPIKey)
	assert.Equal(t, 8081, cfg.Port)
	assert.Equal(t, 3*time.Second, cfg.AITimeout)
	assert.False(t, cfg.MetricsEnabled)
	assert.Equal(t, "redis", cfg.StatsBackend)
	assert.Equal(t, "none", cfg.StatsBucket)
	assert.NoError(t, validateConfig(cfg))
}

func TestReadConfig_InvalidNumbersFallBackToDefault(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "abc")
	t.Setenv("AI_TIMEOUT", "soon")

	cfg := readConfig()
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, 10*time.Second, cfg.AITimeout)
}

func TestValidateConfig_Rejects(t *testing.T) {
	clearEnv(t)
	base := readConfig()

	cases := map[string]func(*Config){
		"port zero":          func(c *Config) { c.Port = 0 },
		"port too high":      func(c *Config) { c.Port = 70000 },
		"log level":          func(c *Config) { c.LogLevel = "loud" },
		"stats backend":      func(c *Config) { c.StatsBackend = "postgres" },
		"redis without addr": func(c *Config) { c.StatsBackend = "redis" },
		"negative slots":     func(c *Config) { c.ConcurrencyMax = -1 },
		"zero ai timeout":    func(c *Config) { c.AITimeout = 0 },
		"bad base url":       func(c *Config) { c.GeminiBaseURL = "not a url" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := base
			mutate(&cfg)
			assert.Error(t, validateConfig(cfg))
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	require.NoError(t, loadEnvFile(filepath.Join(t.TempDir(), "missing.env")))
	require.NoError(t, loadEnvFile(""))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("OFFICIAL_EMAIL=from-file@example.edu\nPORT=4000\n"), 0o600))

	// variável vazia definida pelo clearEnv conta como "já definida" para o godotenv
	require.NoError(t, os.Unsetenv("OFFICIAL_EMAIL"))
	require.NoError(t, os.Unsetenv("PORT"))
	t.Cleanup(func() {
		_ = os.Unsetenv("OFFICIAL_EMAIL")
		_ = os.Unsetenv("PORT")
	})

	require.NoError(t, loadEnvFile(path))
	cfg := readConfig()
	assert.Equal(t, "from-file@example.edu", cfg.Identity)
	assert.Equal(t, 4000, cfg.Port)
}

func TestNewLogger(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		l, err := newLogger("debug", format)
		require.NoError(t, err)
		require.NotNil(t, l)
	}
	_, err := newLogger("loud", "json")
	assert.Error(t, err)
}
