// Package database opens the SQLite file that stores the city catalog.
package database

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/tursodatabase/go-libsql"
)

// Memory is the path of a private in-memory catalog, used by tests and the
// CLI when no file is wanted.
const Memory = ":memory:"

type options struct {
	maxOpenConns int
	pragmas      []string
}

// Option tunes how Open prepares the connection pool.
type Option func(*options)

// SingleConn caps the pool at one connection. An in-memory database exists
// per connection, so Open applies this itself for Memory.
func SingleConn() Option {
	return func(o *options) { o.maxOpenConns = 1 }
}

// WithPragmas runs extra PRAGMA statements after the defaults.
func WithPragmas(pragmas ...string) Option {
	return func(o *options) { o.pragmas = append(o.pragmas, pragmas...) }
}

func defaultOptions(path string) options {
	o := options{
		pragmas: []string{
			"PRAGMA journal_mode=WAL",
			"PRAGMA busy_timeout=5000",
			"PRAGMA foreign_keys=ON",
		},
	}
	if path == Memory {
		o.maxOpenConns = 1
	}
	return o
}

// Open connects to the catalog database at path through libSQL.
func Open(ctx context.Context, path string, opts ...Option) (*sql.DB, error) {
	o := defaultOptions(path)
	for _, opt := range opts {
		opt(&o)
	}

	db, err := sql.Open("libsql", "file:"+path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog database: %w", err)
	}
	if o.maxOpenConns > 0 {
		db.SetMaxOpenConns(o.maxOpenConns)
	}

	// Some PRAGMAs return a row and libSQL refuses those through Exec, so
	// every PRAGMA goes through Query.
	for _, p := range o.pragmas {
		if err := pragma(ctx, db, p); err != nil {
			db.Close()
			return nil, err
		}
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging catalog database: %w", err)
	}

	return db, nil
}

func pragma(ctx context.Context, db *sql.DB, stmt string) error {
	rows, err := db.QueryContext(ctx, stmt)
	if err != nil {
		return fmt.Errorf("executing %s: %w", stmt, err)
	}
	return rows.Close()
}
