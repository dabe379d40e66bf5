// Package srs implements the spaced-repetition scheduling engine: an
// SM-2-derived state machine that decides when each card is next due and how
// its ease factor moves with observed recall performance.
//
// The engine is stateless and pure. Every operation takes immutable inputs
// and returns a new value; the only shared resource is the read-only Params
// configuration. Malformed numeric input is clamped, never rejected - a
// caller supplying bad data gets a conservative but well-formed schedule
// rather than an error.
package srs

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/rotehq/rote-api/internal/domain"
)

// Common errors
var (
	ErrNilRecord = errors.New("scheduling record cannot be nil")
)

// ReviewItem pairs a card's current scheduling record with one observed
// review outcome for batch processing.
type ReviewItem struct {
	Record  *domain.SchedulingRecord
	Outcome domain.ReviewOutcome
}

// Service defines the interface for scheduling engine operations.
type Service interface {
	// InitialParameters produces the first scheduling record for a brand-new
	// card. confidence is an optional 0.0-1.0 estimate; nil means 0.5 and
	// out-of-range values are clamped. The record starts in the NEW state
	// with a review count of zero.
	InitialParameters(cardID uuid.UUID, confidence *float64, now time.Time) *domain.SchedulingRecord

	// ProcessReview computes a complete new scheduling record from one
	// review outcome. The input record is never modified. Returns
	// ErrNilRecord only when record is nil; all numeric inputs are clamped.
	ProcessReview(
		record *domain.SchedulingRecord,
		outcome domain.ReviewOutcome,
		now time.Time,
	) (*domain.SchedulingRecord, error)

	// ProcessBatch applies ProcessReview independently to every item.
	// The result preserves input order and index correspondence. Items have
	// no dependency on each other, so processing is parallelized across
	// CPU cores.
	ProcessBatch(
		ctx context.Context,
		items []ReviewItem,
		now time.Time,
	) ([]*domain.SchedulingRecord, error)

	// PredictRetention estimates the recall probability for a card after
	// daysSinceReview days, given its ease factor. Diagnostic only; the
	// result never feeds back into scheduling.
	PredictRetention(daysSinceReview int, easeFactor float64) float64

	// IsOverdue reports whether now is at or past the record's next review
	// date plus urgencyDays. A negative urgencyDays selects the configured
	// default grace window (one day).
	IsOverdue(record *domain.SchedulingRecord, urgencyDays int, now time.Time) bool

	// Priority scores a due-or-overdue card for presentation order;
	// higher is more urgent.
	Priority(record *domain.SchedulingRecord, now time.Time) float64

	// RankDue orders a set of due cards deterministically by descending
	// priority, with ties broken by ascending next review date and then
	// stable input order.
	RankDue(records []*domain.SchedulingRecord, now time.Time) []*domain.SchedulingRecord
}

// defaultService is the standard implementation of the Service interface.
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new scheduling service with default parameters.
func NewDefaultService() Service {
	return &defaultService{
		params: NewDefaultParams(),
	}
}

// NewServiceWithParams creates a new scheduling service with custom parameters.
func NewServiceWithParams(params *Params) Service {
	return &defaultService{
		params: params,
	}
}

// InitialParameters implements Service.InitialParameters.
func (s *defaultService) InitialParameters(
	cardID uuid.UUID,
	confidence *float64,
	now time.Time,
) *domain.SchedulingRecord {
	c := 0.5
	if confidence != nil {
		c = clampConfidence(*confidence)
	}

	ease := s.params.DefaultEaseFactor + (c-0.5)*s.params.ConfidenceEaseSpan
	ease = clampEase(ease, s.params.MinEaseFactor, s.params.MaxEaseFactor)

	interval := s.params.initialIntervalDays(c)

	now = now.UTC()
	return &domain.SchedulingRecord{
		CardID:       cardID,
		IntervalDays: interval,
		EaseFactor:   ease,
		ReviewCount:  0,
		CardState:    domain.CardStateNew,
		NextReviewAt: nextReviewDate(now, interval),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// ProcessReview implements Service.ProcessReview.
func (s *defaultService) ProcessReview(
	record *domain.SchedulingRecord,
	outcome domain.ReviewOutcome,
	now time.Time,
) (*domain.SchedulingRecord, error) {
	if record == nil {
		return nil, ErrNilRecord
	}

	return calculateNextRecord(record, outcome, now, s.params), nil
}

// ProcessBatch implements Service.ProcessBatch. Each item is independent,
// so the batch is partitioned across one worker per CPU core with no
// coordination beyond the shared read-only params.
func (s *defaultService) ProcessBatch(
	ctx context.Context,
	items []ReviewItem,
	now time.Time,
) ([]*domain.SchedulingRecord, error) {
	results := make([]*domain.SchedulingRecord, len(items))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, item := range items {
		g.Go(func() error {
			if item.Record == nil {
				return fmt.Errorf("item %d: %w", i, ErrNilRecord)
			}
			results[i] = calculateNextRecord(item.Record, item.Outcome, now, s.params)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// PredictRetention implements Service.PredictRetention.
func (s *defaultService) PredictRetention(daysSinceReview int, easeFactor float64) float64 {
	return predictRetention(daysSinceReview, easeFactor, s.params)
}

// IsOverdue implements Service.IsOverdue.
func (s *defaultService) IsOverdue(
	record *domain.SchedulingRecord,
	urgencyDays int,
	now time.Time,
) bool {
	if record == nil {
		return false
	}
	if urgencyDays < 0 {
		urgencyDays = s.params.OverdueGraceDays
	}
	return !now.Before(record.NextReviewAt.AddDate(0, 0, urgencyDays))
}

// Priority implements Service.Priority.
func (s *defaultService) Priority(record *domain.SchedulingRecord, now time.Time) float64 {
	return priorityScore(record, now, s.params)
}

// RankDue implements Service.RankDue.
func (s *defaultService) RankDue(
	records []*domain.SchedulingRecord,
	now time.Time,
) []*domain.SchedulingRecord {
	return rankDue(records, now, s.params)
}
