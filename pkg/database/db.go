package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

type Config struct {
	DSN      string
	MaxConns int
	// Timeout bounds the startup connectivity check. When the ping does
	// not answer within it, the caller falls back to the static dataset.
	Timeout time.Duration
}

// NewConfig builds connection settings around a DSN with the defaults
// the service runs with.
func NewConfig(dsn string) Config {
	return Config{DSN: dsn, MaxConns: 5, Timeout: 5 * time.Second}
}

// Connect opens a *sql.DB and verifies connectivity with a bounded ping.
func Connect(cfg Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxConns)
	db.SetMaxIdleConns(cfg.MaxConns)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return db, nil
}
