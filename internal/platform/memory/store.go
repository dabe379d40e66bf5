// Package memory provides in-memory implementations of the store interfaces.
// They back the service and handler tests and are usable as a throwaway
// backend when no database is configured. All operations copy entities on the
// way in and out so callers can never alias the store's internal state.
package memory

import (
	"sync"

	"github.com/google/uuid"

	"github.com/rotehq/rote-api/internal/domain"
)

// Store holds all in-memory state behind a single lock. Cards and their
// scheduling records share the lock so cascade deletes stay atomic.
type Store struct {
	mu      sync.RWMutex
	cards   map[uuid.UUID]*domain.Card
	records map[uuid.UUID]*domain.SchedulingRecord
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		cards:   make(map[uuid.UUID]*domain.Card),
		records: make(map[uuid.UUID]*domain.SchedulingRecord),
	}
}

// Cards returns the card store view.
func (s *Store) Cards() *CardStore {
	return &CardStore{store: s}
}

// Records returns the scheduling store view.
func (s *Store) Records() *SchedulingStore {
	return &SchedulingStore{store: s}
}

// TxRunner returns the transaction runner view.
func (s *Store) TxRunner() *TxRunner {
	return &TxRunner{store: s}
}

func cloneCard(card *domain.Card) *domain.Card {
	clone := *card
	clone.Content = append([]byte(nil), card.Content...)
	return &clone
}
