package database

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"strings"
)

//go:embed schema.sql
var schemaSQL string

// Migrate creates any missing tables.  Statements are idempotent so it is
// safe to run on every deploy.
func Migrate(ctx context.Context, db *sql.DB) error {
	return execStatements(ctx, db, schemaSQL)
}

// execStatements runs a semicolon separated script one statement at a time,
// which avoids enabling multiStatements on the DSN.
func execStatements(ctx context.Context, db *sql.DB, script string) error {
	for i, stmt := range strings.Split(script, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i+1, err)
		}
	}
	return nil
}
