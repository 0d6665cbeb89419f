// Package postgres implements storage.Storage on PostgreSQL with goqu over a
// pgx connection pool.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"loanchecker/pkg/storage"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
)

const dialect = "postgres"

// Options configures the PostgreSQL connection.
type Options struct {
	Username string
	Password string
	Host     string
	// SslMode is a libpq sslmode, e.g. "disable" or "require".
	SslMode  string
	Port     int
	Database string

	ConnMaxLifetime    time.Duration
	ConnMaxIdleTime    time.Duration
	MaxOpenConnections int
	// MaxIdleConnections is kept open as the pool minimum.
	MaxIdleConnections int
}

// PgSQL is the PostgreSQL storage.
type PgSQL struct {
	// DB wraps Pool for goqu and goose.
	DB *sql.DB
	// Builder builds and runs queries bound to DB.
	Builder *goqu.Database
	// Pool is nil when PgSQL was created from an existing *sql.DB.
	Pool *pgxpool.Pool
}

var _ storage.Storage = (*PgSQL)(nil)

// New connects a pgx pool and wraps it in a *sql.DB.
func New(ctx context.Context, options Options) (*PgSQL, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s dbname=%s password=%s sslmode=%s",
		options.Host,
		options.Port,
		options.Username,
		options.Database,
		options.Password,
		options.SslMode)
	cfg, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("could not parse pgxpool config: %w", err)
	}
	if options.MaxOpenConnections > 0 {
		cfg.MaxConns = int32(options.MaxOpenConnections) //nolint: gosec
	}
	if options.MaxIdleConnections > 0 {
		cfg.MinConns = int32(options.MaxIdleConnections) //nolint: gosec
	}
	if options.ConnMaxLifetime > 0 {
		cfg.MaxConnLifetime = options.ConnMaxLifetime
	}
	if options.ConnMaxIdleTime > 0 {
		cfg.MaxConnIdleTime = options.ConnMaxIdleTime
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("could not create pgx Pool: %w", err)
	}

	p := NewFromDB(stdlib.OpenDBFromPool(pool))
	p.Pool = pool

	return p, nil
}

// NewFromDB uses an already opened database handle.
func NewFromDB(db *sql.DB) *PgSQL {
	return &PgSQL{
		DB:      db,
		Builder: goqu.New(dialect, db),
	}
}

func (p *PgSQL) Ping(ctx context.Context) error {
	if err := p.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("could not ping pg: %w", err)
	}

	return nil
}

// Close closes the *sql.DB wrapper and the pool beneath it.
func (p *PgSQL) Close() error {
	err := p.DB.Close()
	if p.Pool != nil {
		p.Pool.Close()
	}
	if err != nil {
		return fmt.Errorf("could not close pg: %w", err)
	}

	return nil
}
