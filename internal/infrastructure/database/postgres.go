package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/marcos-nsantos/imgpipe/internal/infrastructure/config"
)

const (
	applicationName = "imgpipe"
	pingAttempts    = 5
	pingBackoff     = 500 * time.Millisecond
)

// NewPostgresPool opens the pool used by the image catalog. The first ping is
// retried so the api can start alongside its database.
func NewPostgresPool(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parsing database config: %w", err)
	}

	poolCfg.MaxConns = int32(cfg.MaxOpenConns)
	poolCfg.MinConns = int32(min(cfg.MaxIdleConns, cfg.MaxOpenConns))
	poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime
	poolCfg.MaxConnIdleTime = 5 * time.Minute
	poolCfg.HealthCheckPeriod = time.Minute
	poolCfg.ConnConfig.RuntimeParams["application_name"] = applicationName

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pingWithRetry(ctx, pool, logger); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database %s:%d: %w", cfg.Host, cfg.Port, err)
	}

	logger.Info("catalog database connected",
		zap.String("host", cfg.Host),
		zap.String("database", cfg.Name),
		zap.Int32("max_conns", poolCfg.MaxConns),
	)
	return pool, nil
}

func pingWithRetry(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	var err error
	for attempt := 1; attempt <= pingAttempts; attempt++ {
		if err = pool.Ping(ctx); err == nil {
			return nil
		}
		if attempt == pingAttempts {
			break
		}
		logger.Warn("database not ready", zap.Int("attempt", attempt), zap.Error(err))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * pingBackoff):
		}
	}
	return err
}

// LogPoolStats reports catalog connection usage, typically once at shutdown.
func LogPoolStats(logger *zap.Logger, pool *pgxpool.Pool) {
	stat := pool.Stat()
	logger.Info("catalog pool stats",
		zap.Int32("total_conns", stat.TotalConns()),
		zap.Int32("idle_conns", stat.IdleConns()),
		zap.Int64("acquire_count", stat.AcquireCount()),
		zap.Duration("acquire_duration", stat.AcquireDuration()),
		zap.Int64("canceled_acquires", stat.CanceledAcquireCount()),
	)
}
