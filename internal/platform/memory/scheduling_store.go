package memory

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/rotehq/rote-api/internal/domain"
	"github.com/rotehq/rote-api/internal/store"
)

// SchedulingStore implements store.SchedulingStore against the in-memory Store.
type SchedulingStore struct {
	store *Store
}

// Ensure SchedulingStore implements store.SchedulingStore interface
var _ store.SchedulingStore = (*SchedulingStore)(nil)

// Create implements store.SchedulingStore.Create
func (s *SchedulingStore) Create(_ context.Context, record *domain.SchedulingRecord) error {
	if err := record.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if _, exists := s.store.records[record.CardID]; exists {
		return store.ErrDuplicate
	}
	if _, exists := s.store.cards[record.CardID]; !exists {
		return fmt.Errorf("%w: no card for scheduling record", store.ErrInvalidEntity)
	}

	s.store.records[record.CardID] = record.Clone()
	return nil
}

// Get implements store.SchedulingStore.Get
func (s *SchedulingStore) Get(_ context.Context, cardID uuid.UUID) (*domain.SchedulingRecord, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	record, exists := s.store.records[cardID]
	if !exists {
		return nil, store.ErrRecordNotFound
	}

	return record.Clone(), nil
}

// Update implements store.SchedulingStore.Update
func (s *SchedulingStore) Update(_ context.Context, record *domain.SchedulingRecord) error {
	if err := record.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if _, exists := s.store.records[record.CardID]; !exists {
		return store.ErrRecordNotFound
	}

	s.store.records[record.CardID] = record.Clone()
	return nil
}

// Delete implements store.SchedulingStore.Delete
func (s *SchedulingStore) Delete(_ context.Context, cardID uuid.UUID) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if _, exists := s.store.records[cardID]; !exists {
		return store.ErrRecordNotFound
	}

	delete(s.store.records, cardID)
	return nil
}

// ListDue implements store.SchedulingStore.ListDue
func (s *SchedulingStore) ListDue(_ context.Context, asOf time.Time, limit int) ([]*domain.SchedulingRecord, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	var due []*domain.SchedulingRecord
	for _, record := range s.store.records {
		if !record.NextReviewAt.After(asOf) {
			due = append(due, record.Clone())
		}
	}

	sort.Slice(due, func(i, j int) bool {
		return due[i].NextReviewAt.Before(due[j].NextReviewAt)
	})

	if limit > 0 && len(due) > limit {
		due = due[:limit]
	}
	return due, nil
}

// WithTx implements store.SchedulingStore.WithTx
func (s *SchedulingStore) WithTx(_ *sql.Tx) store.SchedulingStore {
	return s
}
