// Package feed fetches raw data from the ledger service, runs the
// normalization pipeline, and caches the latest result for serving.
package feed

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/younes-makhtoum/flash-track-money-sub000/internal/domain"
	"github.com/younes-makhtoum/flash-track-money-sub000/internal/usecase/normalize"
)

// Snapshot is one published normalization run
type Snapshot struct {
	RunID     uuid.UUID                `json:"runId"`
	FetchedAt time.Time                `json:"fetchedAt"`
	Entries   []domain.NormalizedEntry `json:"entries"`
}

// Service re-runs the full fetch and normalize cycle on demand and keeps
// only the latest snapshot. Normalized output is derived state: it is never
// persisted, every refresh recomputes it from scratch.
type Service struct {
	ledger domain.LedgerClient
	store  domain.OverrideStore
	log    *logrus.Logger

	mu          sync.RWMutex
	current     *Snapshot
	published   time.Time
	batch       []domain.RawEntry
	directory   *domain.AccountDirectory
	overrideMap domain.TimeOverrides
}

// NewService creates a new feed Service instance
func NewService(ledger domain.LedgerClient, store domain.OverrideStore, log *logrus.Logger) *Service {
	return &Service{
		ledger: ledger,
		store:  store,
		log:    log,
	}
}

// Refresh fetches the raw batch, directory, and override map, and publishes
// a freshly normalized snapshot. A run that started before the currently
// published one is discarded when it completes; the newer fetch wins.
// An override-store failure degrades to an empty override map rather than
// blocking the feed.
func (s *Service) Refresh(ctx context.Context) (*Snapshot, error) {
	started := time.Now()

	batch, err := s.ledger.Transactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transactions: %w", err)
	}

	directory, err := s.ledger.AccountDirectory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch account directory: %w", err)
	}

	overrideMap, err := s.store.Load(ctx)
	if err != nil {
		s.log.Warnf("Failed to load time overrides, continuing without: %v", err)
		overrideMap = nil
	}

	snapshot := &Snapshot{
		RunID:     uuid.New(),
		FetchedAt: started,
		Entries:   normalize.Run(batch, directory, overrideMap),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil && started.Before(s.published) {
		s.log.Debugf("Discarding stale run %s", snapshot.RunID)
		return s.current, nil
	}

	s.current = snapshot
	s.published = started
	s.batch = batch
	s.directory = directory
	s.overrideMap = overrideMap

	s.log.WithFields(logrus.Fields{
		"run_id":  snapshot.RunID,
		"entries": len(snapshot.Entries),
	}).Info("Published normalized feed")

	return snapshot, nil
}

// Current returns the last published snapshot, or nil before the first
// successful refresh
func (s *Service) Current() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// EditForm pre-populates the edit screen for the entry with the given id,
// searching both top-level entries and group legs of the last fetched batch
func (s *Service) EditForm(id int64) (normalize.EditForm, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := findEntry(s.batch, id)
	if !ok {
		return normalize.EditForm{}, false
	}
	return normalize.BuildEditForm(entry, s.directory, s.overrideMap), true
}

func findEntry(batch []domain.RawEntry, id int64) (domain.RawEntry, bool) {
	for _, entry := range batch {
		if entry.ID == id {
			return entry, true
		}
		for _, leg := range entry.Children {
			if leg.ID == id {
				return leg, true
			}
		}
	}
	return domain.RawEntry{}, false
}
