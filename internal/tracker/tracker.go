// Package tracker is the application-tracker CRUD list.
package tracker

import (
	"context"
	"time"

	"github.com/Pottaprashanth/Interview-preparation-hub/internal/domain"
	"github.com/Pottaprashanth/Interview-preparation-hub/internal/progress"
	"github.com/Pottaprashanth/Interview-preparation-hub/internal/storage"
	"github.com/google/uuid"
)

const key = "tracker"

type Service struct {
	store    storage.Store
	progress *progress.Service
	clock    func() time.Time
}

func NewService(store storage.Store, prog *progress.Service) *Service {
	return &Service{store: store, progress: prog, clock: time.Now}
}

// NewServiceWithClock is test-only for deterministic timestamps.
func NewServiceWithClock(store storage.Store, prog *progress.Service, now func() time.Time) *Service {
	return &Service{store: store, progress: prog, clock: now}
}

// List returns entries in insertion order.
func (s *Service) List(ctx context.Context) []domain.TrackerEntry {
	return storage.Get(ctx, s.store, key, []domain.TrackerEntry{})
}

// Add appends a new application entry and awards the logging badge.
func (s *Service) Add(ctx context.Context, company, result, notes string) (domain.TrackerEntry, error) {
	entry := domain.TrackerEntry{
		ID:      uuid.NewString(),
		Company: company,
		Result:  result,
		Notes:   notes,
		At:      s.clock(),
	}
	entries := append(s.List(ctx), entry)
	if err := storage.Set(ctx, s.store, key, entries); err != nil {
		return domain.TrackerEntry{}, err
	}
	if s.progress != nil {
		if _, err := s.progress.AwardBadge(ctx, progress.BadgeDiligentLogger); err != nil {
			return entry, err
		}
	}
	return entry, nil
}

// Remove deletes an entry by ID.
func (s *Service) Remove(ctx context.Context, id string) error {
	entries := s.List(ctx)
	for i, e := range entries {
		if e.ID == id {
			entries = append(entries[:i], entries[i+1:]...)
			return storage.Set(ctx, s.store, key, entries)
		}
	}
	return domain.ErrEntryNotFound
}
