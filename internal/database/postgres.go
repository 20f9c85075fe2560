package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/HammerMeetNail/microstartup/internal/config"
)

// Seams for tests; production code always uses the pgxpool implementations.
var (
	parsePGConfig = pgxpool.ParseConfig
	newPGPool     = pgxpool.NewWithConfig
	pingPGPool    = func(ctx context.Context, pool *pgxpool.Pool) error { return pool.Ping(ctx) }
	closePGPool   = func(pool *pgxpool.Pool) { pool.Close() }
)

// PostgresDB owns the pool behind idea persistence and usage logging.
type PostgresDB struct {
	Pool *pgxpool.Pool
}

// NewPostgresDB opens a pool sized by cfg and pings it once. The provider call
// happens before any query, so a request holds a connection only for its insert
// or select and a small pool goes a long way.
func NewPostgresDB(ctx context.Context, cfg config.DatabaseConfig) (*PostgresDB, error) {
	poolConfig, err := parsePGConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parsing database config: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxConns)
	poolConfig.MinConns = int32(cfg.MinConns)
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 15 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := newPGPool(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pingPGPool(ctx, pool); err != nil {
		closePGPool(pool)
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &PostgresDB{Pool: pool}, nil
}

func (db *PostgresDB) Close() {
	if db.Pool != nil {
		closePGPool(db.Pool)
	}
}

func (db *PostgresDB) Health(ctx context.Context) error {
	if db.Pool == nil {
		return fmt.Errorf("postgres pool not initialised")
	}
	return pingPGPool(ctx, db.Pool)
}
