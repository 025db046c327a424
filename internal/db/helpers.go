package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Querier is satisfied by both *sqlx.DB and *sqlx.Tx so repositories can
// run inside or outside a transaction.
type Querier interface {
	sqlx.ExtContext
}

// IsPostgres reports whether q talks to the postgres driver.
func IsPostgres(q Querier) bool {
	return q.DriverName() == "postgres"
}

// InsertID runs an INSERT written with '?' placeholders and returns the new
// id. Postgres has no LastInsertId, so RETURNING is used there.
func InsertID(ctx context.Context, q Querier, query string, args ...any) (int64, error) {
	if IsPostgres(q) {
		var id int64
		if err := q.QueryRowxContext(ctx, q.Rebind(query+" RETURNING id"), args...).Scan(&id); err != nil {
			return 0, err
		}
		return id, nil
	}
	res, err := q.ExecContext(ctx, q.Rebind(query), args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// WithTx runs fn in a transaction, rolling back when fn returns an error.
func WithTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
