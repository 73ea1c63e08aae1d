package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// InitSchema creates the groundwater table. It is idempotent.
func InitSchema(ctx context.Context, db *sql.DB) error {
	return createGroundwaterTable(ctx, db)
}

func createGroundwaterTable(ctx context.Context, db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS groundwater (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		location TEXT NOT NULL UNIQUE COLLATE NOCASE,
		groundwater_level REAL NOT NULL,
		ph REAL NOT NULL,
		tds INTEGER NOT NULL,
		cod REAL NOT NULL,
		bod REAL NOT NULL,
		status TEXT NOT NULL,
		last_updated TEXT NOT NULL,
		loaded_at INTEGER NOT NULL
	);
	`

	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create groundwater table: %w", err)
	}
	return nil
}
