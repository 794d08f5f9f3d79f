// Package postgres persists audit reports in PostgreSQL.
package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS audit_reports (
	id             TEXT PRIMARY KEY,
	dataset_name   TEXT NOT NULL DEFAULT '',
	sensitive_attr TEXT NOT NULL,
	sample_size    INTEGER NOT NULL,
	payload        JSONB NOT NULL,
	created_at     TIMESTAMPTZ NOT NULL
)`

// Connect opens a database handle and ensures the report table exists
func Connect(ctx context.Context, databaseURL string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure audit_reports table: %w", err)
	}
	return db, nil
}
