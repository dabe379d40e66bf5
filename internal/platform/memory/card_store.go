package memory

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/rotehq/rote-api/internal/domain"
	"github.com/rotehq/rote-api/internal/store"
)

// CardStore implements store.CardStore against the in-memory Store.
type CardStore struct {
	store *Store
}

// Ensure CardStore implements store.CardStore interface
var _ store.CardStore = (*CardStore)(nil)

// Create implements store.CardStore.Create
func (c *CardStore) Create(_ context.Context, card *domain.Card) error {
	if err := card.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	if _, exists := c.store.cards[card.ID]; exists {
		return store.ErrDuplicate
	}

	c.store.cards[card.ID] = cloneCard(card)
	return nil
}

// GetByID implements store.CardStore.GetByID
func (c *CardStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Card, error) {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()

	card, exists := c.store.cards[id]
	if !exists {
		return nil, store.ErrCardNotFound
	}

	return cloneCard(card), nil
}

// Delete implements store.CardStore.Delete
// The card's scheduling record is removed alongside it, mirroring the SQL
// implementation's ON DELETE CASCADE.
func (c *CardStore) Delete(_ context.Context, id uuid.UUID) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	if _, exists := c.store.cards[id]; !exists {
		return store.ErrCardNotFound
	}

	delete(c.store.cards, id)
	delete(c.store.records, id)
	return nil
}

// WithTx implements store.CardStore.WithTx
// The in-memory store has no real transactions; the same instance is
// returned and operations remain individually atomic under the store lock.
func (c *CardStore) WithTx(_ *sql.Tx) store.CardStore {
	return c
}
