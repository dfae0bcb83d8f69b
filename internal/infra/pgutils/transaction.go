package pgutils

import (
	"context"
	"database/sql"
	"fmt"
)

// WithTx runs fn inside one transaction and commits only when fn returns
// nil. The checkout engine and the wallet top-up compose their tx-taking
// repo calls through this; read committed is enough because both paths
// take the wallet row lock first.
func WithTx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	err = fn(tx)
	if err != nil {
		rbErr := tx.Rollback()
		if rbErr != nil {
			return fmt.Errorf("rollback after fn error: %v (fn err: %w)", rbErr, err)
		}
		return fmt.Errorf("fn: %w", err)
	}

	err = tx.Commit()
	if err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}
