// Package main provides the CLI entrypoint for the loan approval checker.
// It wires subcommands (serve, migrate, jwt, predict, score), loads configuration, and initializes logging.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"loanchecker/internal/config"
	"loanchecker/pkg/cache"
	"loanchecker/pkg/inference"
	"loanchecker/pkg/logger"
	"loanchecker/pkg/metrics"
	"loanchecker/pkg/storage"
	"loanchecker/pkg/storage/memory"
	"loanchecker/pkg/storage/postgres"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// getPostgres creates a PostgreSQL client using configuration values and returns it
// along with a cleanup function to close the connection pool.
func getPostgres(ctx context.Context, cfg *config.Config) (*postgres.PgSQL, func()) {
	pgsql, err := postgres.New(ctx, postgres.Options{
		Username:           cfg.Database.Username,
		Password:           cfg.Database.Password,
		Host:               cfg.Database.Host,
		Port:               cfg.Database.Port,
		Database:           cfg.Database.DatabaseName,
		ConnMaxLifetime:    cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime:    cfg.Database.ConnMaxIdleTime,
		MaxOpenConnections: cfg.Database.MaxOpenConnections,
		MaxIdleConnections: cfg.Database.MaxIdleConnections,
		SslMode:            cfg.Database.SslMode,
	})
	if err != nil {
		logger.Fatal(ctx, "could not create postgres storage", zap.Error(err))
	}

	return pgsql, func() {
		logger.Info(ctx, "closing postgres client...")
		if err = pgsql.Close(); err != nil {
			logger.Warn(ctx, "could not close postgres connection", zap.Error(err))
		}
	}
}

// getStorage returns the postgres storage when the database is enabled, and
// an in-memory store otherwise.
func getStorage(ctx context.Context, cfg *config.Config) (storage.Storage, func()) {
	if !cfg.Database.Enabled {
		logger.Warn(ctx, "database is disabled, feedback is kept in memory")

		return memory.New(), func() {}
	}

	pgsql, closePgsql := getPostgres(ctx, cfg)
	if err := pgsql.Ping(ctx); err != nil {
		logger.Fatal(ctx, "could not reach postgres", zap.Error(err))
	}

	return pgsql, closePgsql
}

func getCache(ctx context.Context, cfg *config.Config) (cache.Cache, func()) {
	if !cfg.Cache.Enabled {
		return cache.Noop{}, func() {}
	}

	redis, err := cache.NewRedis(ctx, cache.RedisOptions{
		Addr:     cfg.Cache.Addr,
		Password: cfg.Cache.Password,
		DB:       cfg.Cache.DB,
	})
	if err != nil {
		logger.Fatal(ctx, "could not create prediction cache", zap.Error(err))
	}

	return redis, func() {
		logger.Info(ctx, "closing redis client...")
		if err := redis.Close(); err != nil {
			logger.Warn(ctx, "could not close redis connection", zap.Error(err))
		}
	}
}

// getPredictor loads the artifacts and builds the inference pipeline. Its
// metrics are exported through the default prometheus registry.
func getPredictor(ctx context.Context, cfg *config.Config) (*inference.Pipeline, func()) {
	paths := inference.DirPaths(cfg.Artifacts.Dir)
	if cfg.Artifacts.Model != "" {
		paths.Model = cfg.Artifacts.Model
	}
	if cfg.Artifacts.Encoders != "" {
		paths.Encoders = cfg.Artifacts.Encoders
	}
	if cfg.Artifacts.Scaler != "" {
		paths.Scaler = cfg.Artifacts.Scaler
	}

	artifacts, err := inference.LoadArtifacts(paths)
	if err != nil {
		logger.Fatal(ctx, "could not load model artifacts", zap.Error(err))
	}

	meterProvider, err := metrics.NewMeterProvider(prometheus.DefaultRegisterer)
	if err != nil {
		logger.Fatal(ctx, "could not create meter provider", zap.Error(err))
	}

	pipeline, err := inference.New(artifacts, inference.Options{MeterProvider: meterProvider})
	if err != nil {
		logger.Fatal(ctx, "could not create inference pipeline", zap.Error(err))
	}
	logger.Info(ctx, "model artifacts loaded", zap.String("version", pipeline.Version()))

	return pipeline, func() {
		if err := meterProvider.Shutdown(context.Background()); err != nil {
			logger.Warn(ctx, "could not shutdown meter provider", zap.Error(err))
		}
	}
}

// main sets up the root Cobra command, loads configuration and logging, and
// registers subcommands before executing the CLI.
func main() {
	// .env is optional, real environment variables take precedence.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "could not load .env file:", err)
	}

	ctx := context.Background()
	cfg := new(config.Config)

	rootCmd := &cobra.Command{
		Use:           "loanchecker",
		Short:         "Smart loan approval checker",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			loaded, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("could not load config file: %w", err)
			}
			*cfg = *loaded

			logger.Setup(cfg.Environment, cfg.LogLevel)

			return nil
		},
	}
	rootCmd.PersistentFlags().StringP("config", "c", "config.yml", "Config File Path")

	defer func() {
		if p := recover(); p != nil {
			logger.Error(ctx, "captured panic, exiting...", zap.Any("panic", p))
			_ = logger.Get(ctx).Sync()

			panic(p)
		}
	}()

	rootCmd.AddCommand(
		serveCommand(cfg),
		migrateCommand(cfg),
		JWTCommand(cfg),
		predictCommand(cfg),
		scoreCommand(),
	)

	err := rootCmd.ExecuteContext(ctx)
	_ = logger.Get(ctx).Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1) //nolint: gocritic
	}
}
