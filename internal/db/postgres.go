// Package db opens the Postgres pool behind the postgres document backend.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/edupulse/edupulse/internal/config"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const (
	connectTimeout      = 10 * time.Second
	healthCheckInterval = 30 * time.Second
)

// PostgresDB wraps the pool shared by the document backend and the migrator
type PostgresDB struct {
	Pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPostgresDB connects using the database section of cfg and verifies the
// connection before returning.
func NewPostgresDB(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*PostgresDB, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.GetPostgresConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse pgxpool config: %w", err)
	}

	maxLifetime, err := time.ParseDuration(cfg.Database.ConnMaxLifetime)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection max lifetime: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.Database.MaxOpenConns)
	poolConfig.MinConns = int32(min(cfg.Database.MaxIdleConns, cfg.Database.MaxOpenConns))
	poolConfig.MaxConnLifetime = maxLifetime
	poolConfig.HealthCheckPeriod = healthCheckInterval

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connectCtx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection pool: %w", err)
	}

	if err := pool.Ping(connectCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to establish database connection: %w", err)
	}

	lgr = lgr.With().Str("component", "postgres").Str("database", cfg.Database.DBName).Logger()
	lgr.Info().
		Str("host", cfg.Database.Host).
		Int32("maxConns", poolConfig.MaxConns).
		Msg("Document database connected")

	return &PostgresDB{Pool: pool, logger: lgr}, nil
}

// Ping reports whether a pooled connection can reach the server
func (db *PostgresDB) Ping(ctx context.Context) error {
	if err := db.Pool.Ping(ctx); err != nil {
		db.logger.Warn().Err(err).Msg("Database ping failed")
		return err
	}
	return nil
}

func (db *PostgresDB) Close() {
	if db.Pool != nil {
		db.Pool.Close()
		db.logger.Info().Msg("Document database closed")
	}
}
