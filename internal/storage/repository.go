package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/garyellow/groundwater-bot-go/internal/config"
	domerrors "github.com/garyellow/groundwater-bot-go/internal/errors"
)

const recordColumns = `id, location, groundwater_level, ph, tds, cod, bod, status, last_updated, loaded_at`

// UpsertRecords inserts or replaces records by location in a single
// transaction and returns how many were written. A row that matches an
// existing location case-insensitively replaces it, keeping its id and the
// stored spelling of the location.
func (db *DB) UpsertRecords(ctx context.Context, records []Record) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	query := `
		INSERT INTO groundwater (location, groundwater_level, ph, tds, cod, bod, status, last_updated, loaded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(location) DO UPDATE SET
			groundwater_level = excluded.groundwater_level,
			ph = excluded.ph,
			tds = excluded.tds,
			cod = excluded.cod,
			bod = excluded.bod,
			status = excluded.status,
			last_updated = excluded.last_updated,
			loaded_at = excluded.loaded_at
	`

	start := time.Now()
	loadedAt := start.Unix()
	err := db.ExecBatchContext(ctx, query, func(stmt *sql.Stmt) error {
		for _, r := range records {
			if _, err := stmt.ExecContext(ctx, r.Location, r.GroundwaterLevel, r.PH, r.TDS, r.COD, r.BOD, r.Status, r.LastUpdated, loadedAt); err != nil {
				slog.ErrorContext(ctx, "failed to upsert record in batch",
					"location", r.Location,
					"error", err)
				return fmt.Errorf("failed to upsert record %q: %w", r.Location, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if duration := time.Since(start); duration > config.SlowQueryThreshold {
		slog.WarnContext(ctx, "slow database operation",
			"operation", "UpsertRecords",
			"duration_ms", duration.Milliseconds(),
			"count", len(records))
	}
	return len(records), nil
}

// GetRecordByLocation returns the record whose location matches
// case-insensitively, or domerrors.ErrNotFound.
func (db *DB) GetRecordByLocation(ctx context.Context, location string) (*Record, error) {
	query := `SELECT ` + recordColumns + ` FROM groundwater WHERE location = ?`

	r, err := scanRecord(db.conn.QueryRowContext(ctx, query, location))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("location %q: %w", location, domerrors.ErrNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to query record",
			"location", location,
			"error", err)
		return nil, fmt.Errorf("failed to query record: %w", err)
	}
	return r, nil
}

// ListRecords returns every record ordered by location.
func (db *DB) ListRecords(ctx context.Context) ([]Record, error) {
	query := `SELECT ` + recordColumns + ` FROM groundwater ORDER BY location`

	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list records", "error", err)
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate records: %w", err)
	}
	return records, nil
}

// CountRecords returns the number of stored records.
func (db *DB) CountRecords(ctx context.Context) (int, error) {
	var count int
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM groundwater`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*Record, error) {
	var r Record
	if err := row.Scan(&r.ID, &r.Location, &r.GroundwaterLevel, &r.PH, &r.TDS, &r.COD, &r.BOD, &r.Status, &r.LastUpdated, &r.LoadedAt); err != nil {
		return nil, err
	}
	return &r, nil
}
