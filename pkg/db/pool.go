package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PoolConfig contains database pool configuration parameters
type PoolConfig struct {
	URL      string
	MaxConns int32
	MinConns int32
}

// NewPool creates a new PostgreSQL connection pool.
//
// Pool settings:
//   - MaxConns / MinConns come from config
//   - HealthCheckPeriod: 30s
//   - MaxConnLifetime: 1h
//   - MaxConnIdleTime: 30m
//
// The pool is pinged before it is returned, so an unreachable database
// fails startup instead of the first request.
func NewPool(ctx context.Context, poolCfg PoolConfig) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(poolCfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	config.MaxConns = poolCfg.MaxConns
	config.MinConns = poolCfg.MinConns
	config.HealthCheckPeriod = 30 * time.Second
	config.MaxConnLifetime = 1 * time.Hour
	config.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

// Close gracefully closes the connection pool
func Close(pool *pgxpool.Pool) {
	if pool != nil {
		pool.Close()
	}
}
