package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"retrier/internal/pkg/config"
	"retrier/internal/pkg/retrylog"
	"retrier/pkg/logger"
	"retrier/pkg/retrier/backoff_adapter"
)

const (
	maxConns        = 10
	minConns        = 2
	maxConnLifetime = time.Hour
)

func NewConnPool(ctx context.Context, log logger.Logger, cfg *config.Database) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(newDsn(cfg))
	if err != nil {
		return nil, err
	}
	poolCfg.MaxConns = maxConns
	poolCfg.MaxConnLifetime = maxConnLifetime
	poolCfg.MinConns = minConns

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connection pool: %w", err)
	}

	dbLog := log.With(
		logger.NewField("host", cfg.Host),
		logger.NewField("port", cfg.Port),
		logger.NewField("db", cfg.DBName),
	)

	err = pingDatabase(ctx, dbLog, pool)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("database connection: %w", err)
	}

	return pool, nil
}

func newDsn(cfg *config.Database) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.SSLMode,
	)
}

func pingDatabase(ctx context.Context, log logger.Logger, pool *pgxpool.Pool) error {
	ping, err := backoff_adapter.Wrap(
		func(ctx context.Context, _ struct{}) (struct{}, error) {
			return struct{}{}, pool.Ping(ctx)
		},
		retrylog.StartupParams(),
		backoff_adapter.WithNotify(retrylog.Notify(log, "Database ping failed, retrying")),
	)
	if err != nil {
		return err
	}

	log.Info("attempting Database connection")
	if _, err := ping(ctx, struct{}{}); err != nil {
		log.Error("Database connection failed after retries",
			logger.NewField("error", err),
		)
		return fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info("Database connection established")
	return nil
}
