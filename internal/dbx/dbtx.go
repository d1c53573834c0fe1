// Package dbx holds the small DB plumbing every repository builds on: the
// DBTX interface satisfied by both *sql.DB and *sql.Tx, and WithTx for the
// few multi-statement operations (refresh-token rotation, expense writes
// with their tags) that must commit or roll back as one.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is the subset of database/sql the repositories need. A service hands
// a repository either the pooled *sql.DB or an open *sql.Tx through it.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx begins a transaction, runs fn with the transactional handle, and
// commits on success or rolls back on error/panic. Panics are rethrown. The
// error fn returns comes back unchanged, so sentinel matching with errors.Is
// still works at the call site.
//
//	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
//	    if err := repos.Expenses(tx).Update(ctx, expense); err != nil {
//	        return err
//	    }
//	    return repos.Expenses(tx).CreateTag(ctx, tag)
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
