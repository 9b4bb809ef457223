// Package database owns the PostgreSQL connection pool and the pgvector
// literal codec shared by the SQL stores.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// connectTimeout bounds the startup ping so a wrong URL fails fast instead
// of hanging boot.
const connectTimeout = 5 * time.Second

// Config controls the connection pool behind the SQL stores.
type Config struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DefaultConfig sizes the pool for this workload: short CRUD statements plus
// the occasional pgvector scan, all request-scoped. Recycling connections
// keeps long-lived pods friendly to pooled proxies in front of Postgres.
func DefaultConfig() Config {
	return Config{
		MaxOpenConns:    16,
		MaxIdleConns:    4,
		ConnMaxLifetime: 30 * time.Minute,
		ConnMaxIdleTime: 5 * time.Minute,
	}
}

// Pool wraps the *sql.DB handed to the stores.
type Pool struct {
	db *sql.DB
}

// New opens and pings the pool. An empty URL returns (nil, nil); callers
// treat a nil pool as "run on memory stores".
func New(cfg Config) (*Pool, error) {
	if cfg.URL == "" {
		return nil, nil
	}

	db, err := sql.Open("pgx", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Pool{db: db}, nil
}

// DB returns the underlying *sql.DB the stores query through.
func (p *Pool) DB() *sql.DB {
	return p.db
}

// Health reports whether the database answers a ping. Safe on a nil pool so
// the readiness probe can be registered unconditionally.
func (p *Pool) Health(ctx context.Context) error {
	if p == nil || p.db == nil {
		return fmt.Errorf("database not configured")
	}
	return p.db.PingContext(ctx)
}

// Close releases the pool. Safe on a nil pool.
func (p *Pool) Close() error {
	if p == nil || p.db == nil {
		return nil
	}
	return p.db.Close()
}
