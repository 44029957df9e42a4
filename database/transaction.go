package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var ErrNoDatabase = errors.New("no database in context")

// TxFunc runs inside a transaction. The transaction is available through
// FromContext or Conn on the ctx it receives.
type TxFunc func(ctx context.Context) error

type txConn struct {
	*sql.Tx
}

// PingContext always succeeds, the transaction holds a live connection.
func (t *txConn) PingContext(context.Context) error {
	return nil
}

// Close is a no-op. Commit and Rollback end the transaction.
func (t *txConn) Close() error {
	return nil
}

var _ Database = (*txConn)(nil)

// WithTransaction runs fn in a transaction on the database in ctx. When ctx
// already carries a transaction, fn joins it and the outermost call decides
// whether to commit. The transaction is rolled back when fn fails or panics.
func WithTransaction(ctx context.Context, fn TxFunc) error {
	db := FromContext(ctx)
	if db == nil {
		return ErrNoDatabase
	}

	if _, ok := db.(*txConn); ok {
		return fn(ctx)
	}

	sqlDB, ok := db.(*sql.DB)
	if !ok {
		return fmt.Errorf("cannot start a transaction on %T", db)
	}

	tx, err := sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(WithDB(ctx, &txConn{Tx: tx})); err != nil {
		return errors.Join(err, rollback(tx))
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func rollback(tx *sql.Tx) error {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("failed to roll back transaction: %w", err)
	}
	return nil
}
