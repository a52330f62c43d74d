// Package dbconn supplies pooled database connections to the entity stores.
//
// A Provider hands out one Conn per store call. Mutating calls open an
// explicit transaction on that connection; reads run directly on it. The
// caller must Close the Conn on every exit path so it returns to the pool.
package dbconn

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"
)

// Supported driver names.
const (
	DriverPostgres = "postgres" // lib/pq
	DriverPgx      = "pgx"      // jackc/pgx through database/sql
	DriverSQLite3  = "sqlite3"  // mattn/go-sqlite3, cgo
	DriverSQLite   = "sqlite"   // modernc.org/sqlite, pure Go
)

// Config describes the pool.
type Config struct {
	Driver          string
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	PingTimeout     time.Duration
}

// DefaultConfig returns an in-memory SQLite configuration.
func DefaultConfig() Config {
	return Config{
		Driver:       DriverSQLite3,
		DSN:          "file::memory:?cache=shared",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		PingTimeout:  3 * time.Second,
	}
}

// Validate checks the configuration values.
func (c Config) Validate() error {
	switch c.Driver {
	case DriverPostgres, DriverPgx, DriverSQLite3, DriverSQLite:
	default:
		return &ConfigError{Field: "Driver", Message: fmt.Sprintf("unsupported driver %q", c.Driver)}
	}
	if c.DSN == "" {
		return &ConfigError{Field: "DSN", Message: "cannot be empty"}
	}
	if c.MaxOpenConns < 0 {
		return &ConfigError{Field: "MaxOpenConns", Message: "must be non-negative"}
	}
	if c.MaxIdleConns < 0 {
		return &ConfigError{Field: "MaxIdleConns", Message: "must be non-negative"}
	}
	return nil
}

// ConfigError represents a pool configuration error.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "dbconn config error in field " + e.Field + ": " + e.Message
}

// Open creates a bun.DB for cfg, applies the pool limits and pings it.
func Open(cfg Config, hooks ...bun.QueryHook) (*bun.DB, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	sqldb, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}

	if cfg.MaxOpenConns > 0 {
		sqldb.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqldb.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqldb.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if cfg.ConnMaxIdleTime > 0 {
		sqldb.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}

	timeout := cfg.PingTimeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := sqldb.PingContext(ctx); err != nil {
		_ = sqldb.Close()
		return nil, fmt.Errorf("ping %s: %w", cfg.Driver, err)
	}

	var db *bun.DB
	switch cfg.Driver {
	case DriverPostgres, DriverPgx:
		db = bun.NewDB(sqldb, pgdialect.New())
	default:
		db = bun.NewDB(sqldb, sqlitedialect.New())
	}
	for _, hook := range hooks {
		db.AddQueryHook(hook)
	}
	return db, nil
}

// Provider hands out pooled connections.
type Provider interface {
	Acquire(ctx context.Context) (Conn, error)
}

// Conn is a single pooled connection.
type Conn interface {
	// BeginTx opens a transaction, the equivalent of disabling auto-commit.
	BeginTx(ctx context.Context) (Tx, error)
	// DB exposes the connection for read-only work outside a transaction.
	DB() bun.IDB
	// Close returns the connection to the pool.
	Close() error
}

// Tx is an open transaction on a Conn.
type Tx interface {
	bun.IDB
	Commit() error
	Rollback() error
}

// Pool is the bun backed Provider.
type Pool struct {
	db *bun.DB
}

var _ Provider = (*Pool)(nil)

// NewPool wraps db.
func NewPool(db *bun.DB) *Pool {
	return &Pool{db: db}
}

// Acquire takes a dedicated connection from the pool.
func (p *Pool) Acquire(ctx context.Context) (Conn, error) {
	conn, err := p.db.Conn(ctx)
	if err != nil {
		return nil, err
	}
	return &bunConn{conn: conn}, nil
}

// DB returns the underlying bun.DB.
func (p *Pool) DB() *bun.DB {
	return p.db
}

// Close closes the pool.
func (p *Pool) Close() error {
	return p.db.Close()
}

type bunConn struct {
	conn bun.Conn
}

func (c *bunConn) BeginTx(ctx context.Context) (Tx, error) {
	tx, err := c.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return tx, nil
}

func (c *bunConn) DB() bun.IDB {
	return c.conn
}

func (c *bunConn) Close() error {
	return c.conn.Close()
}
