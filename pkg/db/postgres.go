package db

import (
	"context"
	"fmt"
	"time"

	"github.com/exaring/otelpgx"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	connectTimeout = 5 * time.Second

	defaultMaxConns        = 10
	defaultMinConns        = 2
	defaultMaxConnLifetime = time.Hour
)

// PoolConfig sizes the products pool. Zero fields fall back to the defaults
// above.
type PoolConfig struct {
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
}

func NewPostgresDB(ctx context.Context, url string, pc PoolConfig) (*pgxpool.Pool, error) {
	config, err := newPoolConfig(url, pc)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to create new pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	return pool, nil
}

func newPoolConfig(url string, pc PoolConfig) (*pgxpool.Config, error) {
	config, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database config: %w", err)
	}

	config.MaxConns = orDefault(pc.MaxConns, defaultMaxConns)
	config.MinConns = orDefault(pc.MinConns, defaultMinConns)
	config.MaxConnLifetime = orDefault(pc.MaxConnLifetime, defaultMaxConnLifetime)

	if config.MinConns > config.MaxConns {
		return nil, fmt.Errorf("min conns %d exceeds max conns %d", config.MinConns, config.MaxConns)
	}

	config.ConnConfig.Tracer = otelpgx.NewTracer()

	return config, nil
}

func orDefault[T int32 | time.Duration](v, def T) T {
	if v == 0 {
		return def
	}
	return v
}
