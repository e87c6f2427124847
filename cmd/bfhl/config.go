package main

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
)

// Config é construída uma vez no startup e repassada aos componentes;
// nenhum pacote abaixo de cmd lê variáveis de ambiente.
type Config struct {
	Identity string

	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string        `validate:"omitempty,url"`
	AITimeout     time.Duration `validate:"gt=0"`

	Port      int    `validate:"min=1,max=65535"`
	LogLevel  string `validate:"oneof=debug info warn error"`
	LogFormat string `validate:"oneof=json console"`

	MetricsEnabled     bool
	ConcurrencyMax     int           `validate:"min=0"`
	ConcurrencyTimeout time.Duration `validate:"min=0"`

	StatsBackend       string `validate:"oneof=none memory redis"`
	StatsRedisAddr     string `validate:"required_if=StatsBackend redis"`
	StatsRedisPassword string
	StatsRedisDB       int `validate:"min=0"`
	StatsPrefix        string
	StatsTTL           time.Duration `validate:"min=0"`
	StatsBucket        string        `validate:"oneof=minute none"`
}

func (c Config) ListenAddr() string { return ":" + strconv.Itoa(c.Port) }

func readConfig() Config {
	cfg := Config{}
	cfg.Identity = strings.TrimSpace(os.Getenv("OFFICIAL_EMAIL"))

	cfg.GeminiAPIKey = strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	cfg.GeminiModel = getenvDefault("GEMINI_MODEL", "gemini-2.5-flash")
	cfg.GeminiBaseURL = os.Getenv("GEMINI_BASE_URL")
	cfg.AITimeout = getenvDurationDefault("AI_TIMEOUT", 10*time.Second)

	cfg.Port = getenvIntDefault("PORT", 3000)
	cfg.LogLevel = strings.ToLower(getenvDefault("LOG_LEVEL", "info"))
	cfg.LogFormat = strings.ToLower(getenvDefault("LOG_FORMAT", "json"))

	cfg.MetricsEnabled = getenvBoolDefault("METRICS_ENABLED", true)
	cfg.ConcurrencyMax = getenvIntDefault("CONCURRENCY_MAX", 0)
	cfg.ConcurrencyTimeout = getenvDurationDefault("CONCURRENCY_TIMEOUT", 0)

	cfg.StatsBackend = strings.ToLower(getenvDefault("STATS_BACKEND", "none"))
	cfg.StatsRedisAddr = os.Getenv("STATS_REDIS_ADDR")
	cfg.StatsRedisPassword = os.Getenv("STATS_REDIS_PASSWORD")
	cfg.StatsRedisDB = getenvIntDefault("STATS_REDIS_DB", 0)
	cfg.StatsPrefix = getenvDefault("STATS_REDIS_PREFIX", "bfhl:stats")
	cfg.StatsTTL = getenvDurationDefault("STATS_REDIS_TTL", 24*time.Hour)
	cfg.StatsBucket = strings.ToLower(getenvDefault("STATS_REDIS_BUCKET", "minute"))
	return cfg
}

func validateConfig(cfg Config) error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return errors.Newf("invalid config: %s fails %q (value %v)", fe.Field(), fe.Tag(), fe.Value())
		}
		return errors.Wrap(err, "invalid config")
	}
	return nil
}

func getenvDefault(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getenvIntDefault(k string, def int) int {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getenvBoolDefault(k string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getenvDurationDefault(k string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
