package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/rotehq/rote-api/internal/store"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil error", nil, nil},
		{"no rows", sql.ErrNoRows, store.ErrNotFound},
		{"wrapped no rows", fmt.Errorf("query: %w", sql.ErrNoRows), store.ErrNotFound},
		{
			"unique violation",
			&pgconn.PgError{Code: "23505", ConstraintName: "scheduling_records_pkey"},
			store.ErrDuplicate,
		},
		{
			"foreign key violation",
			&pgconn.PgError{Code: "23503", ConstraintName: "scheduling_records_card_id_fkey"},
			store.ErrInvalidEntity,
		},
		{
			"check violation",
			&pgconn.PgError{Code: "23514", ConstraintName: "scheduling_records_interval_days_check"},
			store.ErrInvalidEntity,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := mapError(tc.err)
			if tc.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tc.want)
		})
	}
}

func TestMapErrorPassesThroughUnknown(t *testing.T) {
	t.Parallel()

	unknown := errors.New("connection reset by peer")
	assert.Equal(t, unknown, mapError(unknown))

	// Other pg error codes are not translated.
	deadlock := &pgconn.PgError{Code: "40P01"}
	assert.Equal(t, error(deadlock), mapError(deadlock))
}
