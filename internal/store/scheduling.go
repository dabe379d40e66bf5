package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rotehq/rote-api/internal/domain"
)

// SchedulingStore defines the interface for scheduling record persistence.
// Exactly one record exists per card; the engine reads one in and writes a
// complete replacement out, so there is no partial-update operation.
type SchedulingStore interface {
	// Create saves the first scheduling record for a card.
	// Returns validation errors from the domain SchedulingRecord if data is
	// invalid, and ErrDuplicate if the card already has a record.
	Create(ctx context.Context, record *domain.SchedulingRecord) error

	// Get retrieves a card's scheduling record.
	// Returns ErrRecordNotFound if the card has no record - the caller never
	// ran initial parameters for it, which is a contract violation surfaced
	// here rather than inside the engine.
	Get(ctx context.Context, cardID uuid.UUID) (*domain.SchedulingRecord, error)

	// Update replaces a card's scheduling record with a new one produced by
	// the engine. Returns ErrRecordNotFound if the card has no record.
	Update(ctx context.Context, record *domain.SchedulingRecord) error

	// Delete removes a card's scheduling record.
	// Returns ErrRecordNotFound if the card has no record.
	Delete(ctx context.Context, cardID uuid.UUID) error

	// ListDue returns all records whose next review date is at or before
	// asOf, in ascending next-review order. limit <= 0 means no limit.
	// Ranking for presentation is the engine's job, not the store's.
	ListDue(ctx context.Context, asOf time.Time, limit int) ([]*domain.SchedulingRecord, error)

	// WithTx returns a new SchedulingStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) SchedulingStore
}

// TxRunner executes a function against transactional views of the stores.
// If the function returns an error the transaction is rolled back, otherwise
// it is committed. Implementations without real transactions (the in-memory
// store) may run the function directly.
type TxRunner interface {
	RunInTransaction(
		ctx context.Context,
		fn func(ctx context.Context, cards CardStore, records SchedulingStore) error,
	) error
}
