package memory

import (
	"context"

	"github.com/rotehq/rote-api/internal/store"
)

// TxRunner implements store.TxRunner for the in-memory store. There is no
// real transaction to manage; the callback simply runs against the live
// stores, so a mid-callback failure does not roll back earlier writes. Tests
// accept that trade-off.
type TxRunner struct {
	store *Store
}

// Ensure TxRunner implements store.TxRunner interface
var _ store.TxRunner = (*TxRunner)(nil)

// RunInTransaction implements store.TxRunner.RunInTransaction
func (r *TxRunner) RunInTransaction(
	ctx context.Context,
	fn func(ctx context.Context, cards store.CardStore, records store.SchedulingStore) error,
) error {
	return fn(ctx, r.store.Cards(), r.store.Records())
}
