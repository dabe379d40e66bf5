package postgres

import (
	"context"
	"database/sql"

	"github.com/rotehq/rote-api/internal/store"
)

// TxRunner implements store.TxRunner over a *sql.DB, handing the callback
// transactional views of both stores.
type TxRunner struct {
	db      *sql.DB
	cards   *CardStore
	records *SchedulingStore
}

// NewTxRunner creates a TxRunner for the given connection. The store
// arguments are the non-transactional instances; each run rebinds them to
// the transaction.
func NewTxRunner(db *sql.DB, cards *CardStore, records *SchedulingStore) *TxRunner {
	if db == nil {
		panic("db cannot be nil")
	}

	return &TxRunner{
		db:      db,
		cards:   cards,
		records: records,
	}
}

// Ensure TxRunner implements store.TxRunner interface
var _ store.TxRunner = (*TxRunner)(nil)

// RunInTransaction implements store.TxRunner.RunInTransaction
func (r *TxRunner) RunInTransaction(
	ctx context.Context,
	fn func(ctx context.Context, cards store.CardStore, records store.SchedulingStore) error,
) error {
	return store.RunInTransaction(ctx, r.db, func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, r.cards.WithTx(tx), r.records.WithTx(tx))
	})
}
