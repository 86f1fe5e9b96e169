package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/ridoystarlord/crudforge/apperr"
)

// DB is a database handle scoped to one invocation. Close releases both the
// database/sql handle and the underlying pool.
type DB struct {
	*sql.DB
	pool *pgxpool.Pool
}

// Close closes the handle and its pool
func (d *DB) Close() error {
	err := d.DB.Close()
	d.pool.Close()
	return err
}

// Open connects to url and verifies the connection with a ping. Failures are
// reported as connection errors.
func Open(ctx context.Context, url string) (*DB, error) {
	if url == "" {
		return nil, apperr.Connection(fmt.Errorf("DATABASE_URL not set in environment"))
	}

	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, apperr.Connection(fmt.Errorf("parsing connection string: %w", err))
	}
	cfg.MaxConns = 2
	cfg.MaxConnIdleTime = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, apperr.Connection(fmt.Errorf("unable to create connection pool: %w", err))
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, apperr.Connection(fmt.Errorf("unable to ping database: %w", err))
	}

	return &DB{DB: stdlib.OpenDBFromPool(pool), pool: pool}, nil
}
