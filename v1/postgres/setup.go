package postgres

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrQuery wraps failures of the query itself (syntax, permissions, missing
// table), as opposed to connection failures.
var ErrQuery = errors.New("postgres query failed")

// ErrUnavailable wraps failures to reach the server.
var ErrUnavailable = errors.New("postgres unavailable")

// Postgres is a wrapper around a pgx connection pool.
type Postgres struct {
	cfg  Config
	pool *pgxpool.Pool

	closeOnce sync.Once
}

// NewPostgres opens a pool and pings it. A failed ping closes the pool.
//
// Returns *Postgres concrete type; applications depend on Client.
func NewPostgres(ctx context.Context, cfg Config) (*Postgres, error) {
	dsn, err := cfg.ConnString()
	if err != nil {
		return nil, err
	}

	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: parse dsn: %w", err)
	}

	// If config fields are not set (zero), apply package defaults.
	maxOpen := cfg.ConnectionDetails.MaxOpenConns
	if maxOpen == 0 {
		maxOpen = 4
	}
	maxLifetime := cfg.ConnectionDetails.ConnMaxLifetime
	if maxLifetime == 0 {
		maxLifetime = 5 * time.Minute
	}
	connectTimeout := cfg.ConnectionDetails.ConnectTimeout
	if connectTimeout == 0 {
		connectTimeout = 10 * time.Second
	}
	poolCfg.MaxConns = int32(maxOpen)
	poolCfg.MaxConnLifetime = maxLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("%w: create pool: %w", ErrUnavailable, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: ping: %w", ErrUnavailable, err)
	}

	return &Postgres{cfg: cfg, pool: pool}, nil
}

// QueryRecords collects every row of query into a column-keyed map.
func (p *Postgres) QueryRecords(ctx context.Context, query string, args ...any) ([]map[string]any, error) {
	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, classify(err)
	}
	records, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, classify(err)
	}
	return records, nil
}

// Ping checks the pool can reach the server.
func (p *Postgres) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// Close closes every connection in the pool. Safe to call more than once.
func (p *Postgres) Close() {
	p.closeOnce.Do(p.pool.Close)
}

// classify marks server-side statement errors with ErrQuery and everything
// else with ErrUnavailable.
func classify(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fmt.Errorf("%w: %s (SQLSTATE %s)", ErrQuery, pgErr.Message, pgErr.Code)
	}
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}
