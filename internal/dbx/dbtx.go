// Package dbx holds the database/sql glue used by the local store:
// DBTX (satisfied by *sql.DB and *sql.Tx) and WithTx, which gives a
// read-modify-write its own transaction.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is the subset of database/sql the store queries need.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx begins a transaction, runs fn with a transactional handle, and then
// commits on success or rolls back on error/panic. Panics are rethrown.
//
//	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
//	    var v []byte
//	    if err := tx.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", k).Scan(&v); err != nil {
//	        return err
//	    }
//	    _, err := tx.ExecContext(ctx, "UPDATE kv SET value = ? WHERE key = ?", next(v), k)
//	    return err
//	})
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	err = fn(ctx, tx)
	return err
}
