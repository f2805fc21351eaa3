package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/younes-makhtoum/flash-track-money-sub000/internal/domain"
)

// overrideRepository implements domain.OverrideStore
type overrideRepository struct {
	db *DB
}

// NewOverrideRepository creates a new time-override repository
func NewOverrideRepository(db *DB) domain.OverrideStore {
	return &overrideRepository{db: db}
}

// Migrate creates the time_overrides table if it does not exist
func Migrate(ctx context.Context, db *DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS time_overrides (
			entry_id    BIGINT PRIMARY KEY,
			recorded_at TIMESTAMPTZ NOT NULL
		)
	`

	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create time_overrides table: %w", err)
	}
	return nil
}

// Load retrieves the full override map for a normalization run
func (r *overrideRepository) Load(ctx context.Context) (domain.TimeOverrides, error) {
	query := `
		SELECT entry_id, recorded_at
		FROM time_overrides
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query time overrides: %w", err)
	}
	defer rows.Close()

	overrides := make(domain.TimeOverrides)
	for rows.Next() {
		var entryID int64
		var recordedAt time.Time
		if err := rows.Scan(&entryID, &recordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan time override: %w", err)
		}
		overrides[entryID] = recordedAt
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate time overrides: %w", err)
	}

	return overrides, nil
}

// Put records or replaces the timestamp for an entry
func (r *overrideRepository) Put(ctx context.Context, entryID int64, recordedAt time.Time) error {
	query := `
		INSERT INTO time_overrides (entry_id, recorded_at)
		VALUES ($1, $2)
		ON CONFLICT (entry_id) DO UPDATE SET recorded_at = EXCLUDED.recorded_at
	`

	if _, err := r.db.ExecContext(ctx, query, entryID, recordedAt); err != nil {
		return fmt.Errorf("failed to upsert time override for entry %d: %w", entryID, err)
	}
	return nil
}

// Remove deletes the timestamp for an entry, if any
func (r *overrideRepository) Remove(ctx context.Context, entryID int64) error {
	query := `
		DELETE FROM time_overrides
		WHERE entry_id = $1
	`

	if _, err := r.db.ExecContext(ctx, query, entryID); err != nil {
		return fmt.Errorf("failed to delete time override for entry %d: %w", entryID, err)
	}
	return nil
}
