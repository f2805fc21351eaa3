package domain

import (
	"context"
	"time"
)

// TimeOverrides maps an entry id to the full timestamp recorded locally when
// the entry was created or edited on this device. It is loaded once per
// normalization run and passed in as an immutable input, so the engine stays
// pure and independently testable.
type TimeOverrides map[int64]time.Time

// OverrideStore defines the interface for persisting locally recorded
// entry timestamps
type OverrideStore interface {
	// Load retrieves the full override map for a normalization run
	Load(ctx context.Context) (TimeOverrides, error)

	// Put records or replaces the timestamp for an entry
	Put(ctx context.Context, entryID int64, recordedAt time.Time) error

	// Remove deletes the timestamp for an entry, if any
	Remove(ctx context.Context, entryID int64) error
}

// LedgerClient defines the interface for fetching raw data from the
// upstream ledger service
type LedgerClient interface {
	// Transactions fetches the current raw transaction batch
	Transactions(ctx context.Context) ([]RawEntry, error)

	// AccountDirectory fetches manual assets and aggregator-linked bank
	// accounts and returns them as one dual-keyed directory
	AccountDirectory(ctx context.Context) (*AccountDirectory, error)
}
