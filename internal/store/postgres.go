// Package store runs generated SQL against a PostgreSQL database.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	log "github.com/sirupsen/logrus"
)

const pingTimeout = 5 * time.Second

// Apply executes statement inside one transaction on the database at dsn.
// An empty statement is a no-op.
func Apply(ctx context.Context, dsn, statement string) error {
	if dsn == "" {
		return fmt.Errorf("postgres DSN is required")
	}
	if statement == "" {
		log.Info("no SQL to apply")
		return nil
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("failed to open postgres connection: %w", err)
	}
	defer db.Close()

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("failed to ping postgres: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	res, err := tx.ExecContext(ctx, statement)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to apply SQL: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil {
		log.Infof("applied SQL, %d rows affected", n)
	}
	return nil
}
