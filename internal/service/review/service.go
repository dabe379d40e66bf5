// Package review orchestrates the card store and the scheduling engine into
// the application's review workflow: creating cards with an initial schedule,
// serving the most urgent due card, recording review outcomes, and exposing
// per-card diagnostics.
package review

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/rotehq/rote-api/internal/domain"
)

// Service-level errors returned to callers. Handlers map these to HTTP
// status codes.
var (
	// ErrNoCardsDue is returned when no cards are due for review.
	ErrNoCardsDue = errors.New("no cards due for review")

	// ErrCardNotFound is returned when the requested card does not exist.
	ErrCardNotFound = errors.New("card not found")

	// ErrRecordNotFound is returned when a card exists but has no scheduling
	// record. Cards always get a record at creation, so this signals a
	// caller-contract violation rather than a normal empty state.
	ErrRecordNotFound = errors.New("scheduling record not found")

	// ErrInvalidContent is returned when the submitted card content fails
	// domain validation.
	ErrInvalidContent = errors.New("invalid card content")
)

// CardWithRecord pairs a card with its current scheduling record.
type CardWithRecord struct {
	Card   *domain.Card            `json:"card"`
	Record *domain.SchedulingRecord `json:"record"`
}

// CardStats is the diagnostic view of a card's schedule: the current record
// plus derived estimates that never feed back into scheduling.
type CardStats struct {
	Record    *domain.SchedulingRecord `json:"record"`
	Retention float64                  `json:"retention"`
	Priority  float64                  `json:"priority"`
	Overdue   bool                     `json:"overdue"`
}

// ReviewService defines the application-level review workflow.
type ReviewService interface {
	// CreateCard stores a new card together with its initial scheduling
	// record in one transaction. confidence is an optional prior familiarity
	// estimate in [0, 1]; nil means unknown.
	CreateCard(ctx context.Context, content json.RawMessage, confidence *float64) (*CardWithRecord, error)

	// GetNextCard returns the most urgent due card, skipping cards reviewed
	// moments ago in the current session. Returns ErrNoCardsDue when nothing
	// is due.
	GetNextCard(ctx context.Context) (*CardWithRecord, error)

	// SubmitReview records one review outcome for a card and replaces its
	// scheduling record with the engine's result. Returns ErrRecordNotFound
	// if the card has no record.
	SubmitReview(ctx context.Context, cardID uuid.UUID, outcome domain.ReviewOutcome) (*domain.SchedulingRecord, error)

	// CardStats returns the card's scheduling record with retention and
	// priority diagnostics as of now.
	CardStats(ctx context.Context, cardID uuid.UUID) (*CardStats, error)

	// DeleteCard removes a card and its scheduling record.
	DeleteCard(ctx context.Context, cardID uuid.UUID) error
}

// daysSince converts an elapsed duration to whole days, flooring at zero.
func daysSince(from, now time.Time) int {
	if from.IsZero() || now.Before(from) {
		return 0
	}
	return int(now.Sub(from).Hours() / 24)
}
