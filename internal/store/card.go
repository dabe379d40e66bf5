package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/rotehq/rote-api/internal/domain"
)

// CardStore defines the interface for card data persistence.
type CardStore interface {
	// Create saves a new card to the store.
	// Returns validation errors if the card data is invalid.
	// Returns ErrDuplicate if a card with the same ID already exists.
	Create(ctx context.Context, card *domain.Card) error

	// GetByID retrieves a card by its unique ID.
	// Returns ErrCardNotFound if the card does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error)

	// Delete removes a card from the store by its ID.
	// Returns ErrCardNotFound if the card does not exist.
	// Implementations are expected to remove the card's scheduling record
	// alongside it (the SQL implementation relies on ON DELETE CASCADE).
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new CardStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller,
	// typically through a TxRunner.
	WithTx(tx *sql.Tx) CardStore
}
