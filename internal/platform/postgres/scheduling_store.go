package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rotehq/rote-api/internal/domain"
	"github.com/rotehq/rote-api/internal/platform/logger"
	"github.com/rotehq/rote-api/internal/store"
)

// SchedulingStore implements the store.SchedulingStore interface using a
// PostgreSQL database as the storage backend. One row exists per card.
type SchedulingStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewSchedulingStore creates a new PostgreSQL implementation of the
// SchedulingStore interface. If logger is nil, a default logger will be used.
func NewSchedulingStore(db store.DBTX, logger *slog.Logger) *SchedulingStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &SchedulingStore{
		db:     db,
		logger: logger.With(slog.String("component", "scheduling_store")),
	}
}

// Ensure SchedulingStore implements store.SchedulingStore interface
var _ store.SchedulingStore = (*SchedulingStore)(nil)

const schedulingColumns = `
	card_id, interval_days, ease_factor, review_count, card_state,
	last_reviewed_at, next_review_at, created_at, updated_at
`

// scanRecord reads one scheduling row. last_reviewed_at is NULL until the
// card's first review and maps to the zero time.
func scanRecord(row interface{ Scan(dest ...any) error }) (*domain.SchedulingRecord, error) {
	var record domain.SchedulingRecord
	var lastReviewed sql.NullTime

	err := row.Scan(
		&record.CardID,
		&record.IntervalDays,
		&record.EaseFactor,
		&record.ReviewCount,
		&record.CardState,
		&lastReviewed,
		&record.NextReviewAt,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if lastReviewed.Valid {
		record.LastReviewedAt = lastReviewed.Time
	}
	return &record, nil
}

// nullableTime maps the zero time back to NULL for storage.
func nullableTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}

// Create implements store.SchedulingStore.Create
// Returns store.ErrDuplicate if the card already has a record.
func (s *SchedulingStore) Create(ctx context.Context, record *domain.SchedulingRecord) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := record.Validate(); err != nil {
		log.Warn("scheduling record validation failed during create",
			slog.String("error", err.Error()),
			slog.String("card_id", record.CardID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO scheduling_records (` + schedulingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(ctx, query,
		record.CardID,
		record.IntervalDays,
		record.EaseFactor,
		record.ReviewCount,
		record.CardState,
		nullableTime(record.LastReviewedAt),
		record.NextReviewAt,
		record.CreatedAt,
		record.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create scheduling record",
			slog.String("error", err.Error()),
			slog.String("card_id", record.CardID.String()))
		return mapError(err)
	}

	log.Debug("scheduling record created",
		slog.String("card_id", record.CardID.String()),
		slog.String("card_state", string(record.CardState)))
	return nil
}

// Get implements store.SchedulingStore.Get
// Returns store.ErrRecordNotFound if the card has no scheduling record.
func (s *SchedulingStore) Get(ctx context.Context, cardID uuid.UUID) (*domain.SchedulingRecord, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + schedulingColumns + `
		FROM scheduling_records
		WHERE card_id = $1
	`
	record, err := scanRecord(s.db.QueryRowContext(ctx, query, cardID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrRecordNotFound
		}
		log.Error("failed to get scheduling record",
			slog.String("error", err.Error()),
			slog.String("card_id", cardID.String()))
		return nil, mapError(err)
	}

	return record, nil
}

// Update implements store.SchedulingStore.Update
// It replaces the card's record wholesale; the engine always produces a
// complete new record, never a partial update.
func (s *SchedulingStore) Update(ctx context.Context, record *domain.SchedulingRecord) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := record.Validate(); err != nil {
		log.Warn("scheduling record validation failed during update",
			slog.String("error", err.Error()),
			slog.String("card_id", record.CardID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE scheduling_records
		SET interval_days = $2,
		    ease_factor = $3,
		    review_count = $4,
		    card_state = $5,
		    last_reviewed_at = $6,
		    next_review_at = $7,
		    updated_at = $8
		WHERE card_id = $1
	`
	result, err := s.db.ExecContext(ctx, query,
		record.CardID,
		record.IntervalDays,
		record.EaseFactor,
		record.ReviewCount,
		record.CardState,
		nullableTime(record.LastReviewedAt),
		record.NextReviewAt,
		record.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to update scheduling record",
			slog.String("error", err.Error()),
			slog.String("card_id", record.CardID.String()))
		return mapError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return mapError(err)
	}
	if rows == 0 {
		return store.ErrRecordNotFound
	}

	log.Debug("scheduling record updated",
		slog.String("card_id", record.CardID.String()),
		slog.Int("interval_days", record.IntervalDays),
		slog.String("card_state", string(record.CardState)))
	return nil
}

// Delete implements store.SchedulingStore.Delete
func (s *SchedulingStore) Delete(ctx context.Context, cardID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM scheduling_records WHERE card_id = $1`, cardID)
	if err != nil {
		log.Error("failed to delete scheduling record",
			slog.String("error", err.Error()),
			slog.String("card_id", cardID.String()))
		return mapError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return mapError(err)
	}
	if rows == 0 {
		return store.ErrRecordNotFound
	}

	return nil
}

// ListDue implements store.SchedulingStore.ListDue
// Records come back in ascending next-review order; presentation ranking is
// applied by the engine, not here.
func (s *SchedulingStore) ListDue(ctx context.Context, asOf time.Time, limit int) ([]*domain.SchedulingRecord, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + schedulingColumns + `
		FROM scheduling_records
		WHERE next_review_at <= $1
		ORDER BY next_review_at ASC
	`
	args := []any{asOf}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list due scheduling records",
			slog.String("error", err.Error()))
		return nil, mapError(err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	var records []*domain.SchedulingRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, mapError(err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}

	return records, nil
}

// WithTx implements store.SchedulingStore.WithTx
func (s *SchedulingStore) WithTx(tx *sql.Tx) store.SchedulingStore {
	return &SchedulingStore{
		db:     tx,
		logger: s.logger,
	}
}
