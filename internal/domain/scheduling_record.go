package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CardState represents where a card sits in its learning lifecycle.
type CardState string

// Possible card state values. A card moves NEW → LEARNING → REVIEW → MATURE
// through successful reviews; any failed review sends it back to LEARNING.
const (
	CardStateNew      CardState = "new"
	CardStateLearning CardState = "learning"
	CardStateReview   CardState = "review"
	CardStateMature   CardState = "mature"
)

// IsValid reports whether the state is one of the known lifecycle states.
func (s CardState) IsValid() bool {
	switch s {
	case CardStateNew, CardStateLearning, CardStateReview, CardStateMature:
		return true
	default:
		return false
	}
}

// Common validation errors for SchedulingRecord. All wrap ErrValidation.
var (
	ErrEmptyRecordCardID = fmt.Errorf("%w: scheduling record card ID cannot be empty", ErrValidation)
	ErrInvalidInterval   = fmt.Errorf("%w: interval must be at least 1 day", ErrValidation)
	ErrInvalidEaseFactor = fmt.Errorf("%w: ease factor must be greater than 1.0", ErrValidation)
	ErrInvalidCardState  = fmt.Errorf("%w: invalid card state", ErrValidation)
)

// SchedulingRecord tracks the spaced repetition schedule for a single card.
// One record exists per card; every review replaces the record with a new one
// rather than mutating it in place.
type SchedulingRecord struct {
	CardID         uuid.UUID `json:"card_id"`
	IntervalDays   int       `json:"interval_days"`    // Days until the next review, always >= 1
	EaseFactor     float64   `json:"difficulty_factor"` // Growth multiplier, bounded by srs.Params
	ReviewCount    int       `json:"review_count"`     // Consecutive successful reviews; resets on failure
	CardState      CardState `json:"card_state"`
	LastReviewedAt time.Time `json:"last_reviewed_at"` // Zero until the first review
	NextReviewAt   time.Time `json:"next_review_date"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ReviewOutcome is one observed review event for a card. Score follows the
// 0-5 recall-quality scale (0 = total failure, 5 = perfect instant recall).
// ResponseTime is advisory only and is not consumed by the scheduling
// formulas; it is carried for future weighting.
type ReviewOutcome struct {
	Score        int            `json:"success_score"`
	ResponseTime *time.Duration `json:"response_time,omitempty"`
}

// Validate checks if the SchedulingRecord has valid data.
// Returns an error if any field fails validation.
func (r *SchedulingRecord) Validate() error {
	if r.CardID == uuid.Nil {
		return ErrEmptyRecordCardID
	}

	if r.IntervalDays < 1 {
		return ErrInvalidInterval
	}

	if r.EaseFactor <= 1.0 {
		return ErrInvalidEaseFactor
	}

	if !r.CardState.IsValid() {
		return ErrInvalidCardState
	}

	return nil
}

// Clone returns a copy of the record. Engine operations never mutate their
// input; callers that need a modified record get a fresh value.
func (r *SchedulingRecord) Clone() *SchedulingRecord {
	clone := *r
	return &clone
}
