package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bfhl-service/bfhl"
	"bfhl-service/bfhl/application"
	"bfhl-service/bfhl/domain"
	"bfhl-service/bfhl/infra"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		envFile  string
		port     int
		logLevel string
	)

	cmd := &cobra.Command{
		Use:          "bfhl",
		Short:        "HTTP API for fibonacci/prime/lcm/hcf and one-word AI answers",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadEnvFile(envFile); err != nil {
				return err
			}

			cfg := readConfig()
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if err := validateConfig(cfg); err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()
			return run(ctx, cfg)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment (missing file is ignored)")
	cmd.Flags().IntVar(&port, "port", 3000, "listening port (overrides PORT)")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "debug, info, warn or error (overrides LOG_LEVEL)")
	return cmd
}

// loadEnvFile não sobrescreve variáveis já definidas no ambiente.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "load env file %s", path)
	}
	return nil
}

func run(ctx context.Context, cfg Config) error {
	logger, err := newLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)
	log := logger.Sugar().With("module", "bfhl.main")

	answerer, err := infra.NewGeminiAnswerer(ctx, infra.GeminiOptions{
		APIKey:  cfg.GeminiAPIKey,
		Model:   cfg.GeminiModel,
		BaseURL: cfg.GeminiBaseURL,
		Timeout: cfg.AITimeout,
	})
	if err != nil {
		return err
	}

	stats, closeStats, err := newStatsStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStats()

	var metrics *bfhl.Metrics
	if cfg.MetricsEnabled {
		metrics = bfhl.NewMetrics()
	}

	h := bfhl.NewRouter(bfhl.Options{
		Identity: cfg.Identity,
		Service: application.Service{
			Answerer: answerer,
			Log:      logger.Sugar().With("module", "bfhl.application"),
		},
		Stats:        stats,
		Metrics:      metrics,
		Log:          logger.Sugar(),
		MaxBodyBytes: bfhl.DefaultMaxBodyBytes,
		Concurrency: bfhl.ConcurrencyOptions{
			Max:            cfg.ConcurrencyMax,
			AcquireTimeout: cfg.ConcurrencyTimeout,
		},
	})

	srv := &http.Server{
		Addr:              cfg.ListenAddr(),
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if cfg.Identity == "" {
		log.Warn("OFFICIAL_EMAIL is not set: /health and /bfhl will answer 500")
	}
	log.Infow("server listening",
		"addr", srv.Addr,
		"ai_configured", answerer.Configured(),
		"ai_model", cfg.GeminiModel,
		"ai_timeout", cfg.AITimeout,
		"metrics", cfg.MetricsEnabled,
		"stats_backend", cfg.StatsBackend,
		"stats_bucket", cfg.StatsBucket,
		"concurrency_max", cfg.ConcurrencyMax,
	)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "server error")
	}
	log.Info("server stopped")
	return nil
}

func newStatsStore(ctx context.Context, cfg Config) (domain.StatsStore, func(), error) {
	switch cfg.StatsBackend {
	case "memory":
		return infra.NewMemoryStatsStore(), func() {}, nil
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.StatsRedisAddr,
			Password: cfg.StatsRedisPassword,
			DB:       cfg.StatsRedisDB,
		})

		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		_, err := rdb.Ping(pingCtx).Result()
		cancel()
		if err != nil {
			_ = rdb.Close()
			return nil, nil, errors.Wrapf(err, "redis stats ping %s", cfg.StatsRedisAddr)
		}

		store := infra.NewRedisStatsStore(rdb,
			infra.WithStatsPrefix(cfg.StatsPrefix),
			infra.WithStatsTTL(cfg.StatsTTL),
			infra.WithStatsBucket(cfg.StatsBucket),
		)
		return store, func() { _ = rdb.Close() }, nil
	default:
		return nil, func() {}, nil
	}
}
