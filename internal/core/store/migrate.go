package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS resolution_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		resolution_id TEXT NOT NULL UNIQUE,
		query TEXT NOT NULL,
		outcome TEXT NOT NULL,
		name TEXT,
		cn_name TEXT,
		catalog_id TEXT,
		name_source TEXT,
		data_source TEXT,
		resolved_at INTEGER NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS idx_resolution_history_resolved ON resolution_history(resolved_at);`,
	`CREATE INDEX IF NOT EXISTS idx_resolution_history_query ON resolution_history(query);`,
}

// Migrate ensures the required database tables exist.
func (s *Store) Migrate(ctx context.Context) error {
	if s == nil || s.DB == nil {
		return errors.New("store is not initialized")
	}

	if ctx == nil {
		ctx = context.Background()
	}

	for _, stmt := range schemaStatements {
		if _, err := s.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("store migration failed: %w", err)
		}
	}

	return s.ensureColumn(ctx, "resolution_history", "cn_name", "TEXT")
}

// ensureColumn adds a column when an older database predates it.
func (s *Store) ensureColumn(ctx context.Context, table, column, columnType string) error {
	rows, err := s.DB.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return fmt.Errorf("inspect table %s: %w", table, err)
	}
	defer rows.Close()

	exists := false
	for rows.Next() {
		var (
			cid     int
			name    string
			ctype   string
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &name, &ctype, &notNull, &dflt, &pk); err != nil {
			return fmt.Errorf("scan table info: %w", err)
		}
		if name == column {
			exists = true
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("read table info: %w", err)
	}

	if exists {
		return nil
	}
	if _, err := s.DB.ExecContext(ctx,
		fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, columnType)); err != nil {
		return fmt.Errorf("add column %s.%s: %w", table, column, err)
	}
	return nil
}
