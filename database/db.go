package database

import (
	"context"
	"database/sql"
)

type dbContextKey struct{}

// WithDB stores db in ctx. Stores pick it up through Conn, which is how a
// transaction started by WithTransaction reaches them.
func WithDB(ctx context.Context, db Database) context.Context {
	return context.WithValue(ctx, dbContextKey{}, db)
}

func FromContext(ctx context.Context) Database {
	db, ok := ctx.Value(dbContextKey{}).(Database)
	if !ok {
		return nil
	}
	return db
}

// Conn returns the database in ctx, or fallback when there is none.
func Conn(ctx context.Context, fallback Database) Database {
	if db := FromContext(ctx); db != nil {
		return db
	}
	return fallback
}

// Database represents a connection to a database
type Database interface {
	// QueryContext executes a query that returns rows
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	// QueryRowContext executes a query that returns a single row
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	// ExecContext executes a query that doesn't return rows
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	PingContext(ctx context.Context) error
	Close() error
}

type Scanner interface {
	Scan(dest ...any) error
}
