// Package history keeps the capped, newest-first log of completed attempts.
package history

import (
	"context"

	"github.com/Pottaprashanth/Interview-preparation-hub/internal/domain"
	"github.com/Pottaprashanth/Interview-preparation-hub/internal/storage"
)

// Key is the state-store key the ledger persists under.
const Key = "iph_history"

// MaxRecords caps the ledger; appends beyond it evict the oldest record.
const MaxRecords = 50

// Ledger is an append-only attempt log, write-through persisted.
type Ledger struct {
	store storage.Store
}

func NewLedger(store storage.Store) *Ledger {
	return &Ledger{store: store}
}

// Load returns all records newest-first. Absent or corrupt stored data yields
// an empty ledger, never an error.
func (l *Ledger) Load(ctx context.Context) []domain.HistoryRecord {
	return storage.Get(ctx, l.store, Key, []domain.HistoryRecord{})
}

// Append inserts a record at the front, truncates to MaxRecords, and persists
// the whole sequence before returning.
func (l *Ledger) Append(ctx context.Context, rec domain.HistoryRecord) error {
	records := append([]domain.HistoryRecord{rec}, l.Load(ctx)...)
	if len(records) > MaxRecords {
		records = records[:MaxRecords]
	}
	return storage.Set(ctx, l.store, Key, records)
}
