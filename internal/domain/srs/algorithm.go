package srs

import (
	"time"

	"github.com/rotehq/rote-api/internal/domain"
)

// calculateNewEaseFactor determines the new ease factor from the current ease
// factor and a success score.
//
// The ease factor represents how fast a card's interval grows after a
// successful recall - higher values mean the card is easier. Failed reviews
// (score below params.FailThreshold) lower the ease by a fixed penalty.
// Successful reviews apply the SM-2 adjustment
//
//	0.1 - (5-q)*(0.08 + (5-q)*0.02)
//
// where q is the clamped score. A score of exactly 4 yields an adjustment of
// zero, leaving the ease unchanged; this is intended behavior, not a bug.
// The result is always clamped to [params.MinEaseFactor, params.MaxEaseFactor],
// and so is the input, which may come from a corrupted stored record.
func calculateNewEaseFactor(currentEF float64, score int, params *Params) float64 {
	ef := clampEase(currentEF, params.MinEaseFactor, params.MaxEaseFactor)
	score = clampScore(score, params.MaxScore)

	if score < params.FailThreshold {
		return clampEase(ef-params.FailEasePenalty, params.MinEaseFactor, params.MaxEaseFactor)
	}

	q := float64(score)
	missed := float64(params.MaxScore) - q
	adjustment := 0.1 - missed*(0.08+missed*0.02)

	return clampEase(ef+adjustment, params.MinEaseFactor, params.MaxEaseFactor)
}

// calculateNewInterval determines the next interval in days.
//
// priorSuccesses is the card's success streak *before* this review. The
// ladder follows SM-2:
//   - failed review: back to 1 day (the caller resets the streak to 0)
//   - first success: 1 day
//   - second success: params.SecondSuccessIntervalDays (6)
//   - third and later: ceil(currentInterval * easeFactor), with a floor of
//     currentInterval+1 so the schedule keeps growing even at minimum ease
//
// A non-positive currentInterval from a corrupted record is treated as 1.
func calculateNewInterval(
	currentInterval int,
	easeFactor float64,
	score int,
	priorSuccesses int,
	params *Params,
) int {
	currentInterval = normalizeInterval(currentInterval)
	score = clampScore(score, params.MaxScore)

	if score < params.FailThreshold {
		return params.FirstSuccessIntervalDays
	}

	switch successes := priorSuccesses + 1; {
	case successes == 1:
		return params.FirstSuccessIntervalDays
	case successes == 2:
		return params.SecondSuccessIntervalDays
	default:
		ef := clampEase(easeFactor, params.MinEaseFactor, params.MaxEaseFactor)
		next := ceilDays(float64(currentInterval) * ef)
		// Monotonic growth guarantee: prevents interval stagnation at low ease.
		if next <= currentInterval {
			next = currentInterval + 1
		}
		return next
	}
}

// classifyCardState re-derives the lifecycle state from the *result* of a
// review: the new interval, the (clamped) score, and the new success streak.
// Deriving state from the computed values on every call, rather than storing
// transitions, keeps state and interval from ever drifting apart.
//
// The NEW state only exists before the first review and is therefore never
// returned here; it is assigned by InitialParameters.
func classifyCardState(intervalDays, score, reviewCount int, params *Params) domain.CardState {
	score = clampScore(score, params.MaxScore)

	if score < params.FailThreshold {
		return domain.CardStateLearning
	}
	if intervalDays >= params.MatureIntervalDays {
		return domain.CardStateMature
	}
	if reviewCount >= 2 {
		return domain.CardStateReview
	}
	return domain.CardStateLearning
}

// nextReviewDate derives the next review time strictly as now plus the
// interval. It is never set independently of the interval.
func nextReviewDate(now time.Time, intervalDays int) time.Time {
	return now.UTC().AddDate(0, 0, intervalDays)
}

// calculateNextRecord creates a new SchedulingRecord from a review outcome,
// following immutability principles: the input record is never modified.
//
// The pipeline order matters: the ease is updated first, the streak is
// derived from the score, the interval uses the *new* ease but the *prior*
// streak, and the state is classified from the results.
func calculateNextRecord(
	record *domain.SchedulingRecord,
	outcome domain.ReviewOutcome,
	now time.Time,
	params *Params,
) *domain.SchedulingRecord {
	score := clampScore(outcome.Score, params.MaxScore)

	newEase := calculateNewEaseFactor(record.EaseFactor, score, params)

	newCount := 0
	if score >= params.FailThreshold {
		newCount = record.ReviewCount + 1
	}

	newInterval := calculateNewInterval(record.IntervalDays, newEase, score, record.ReviewCount, params)
	newState := classifyCardState(newInterval, score, newCount, params)

	now = now.UTC()
	return &domain.SchedulingRecord{
		CardID:         record.CardID,
		IntervalDays:   newInterval,
		EaseFactor:     newEase,
		ReviewCount:    newCount,
		CardState:      newState,
		LastReviewedAt: now,
		NextReviewAt:   nextReviewDate(now, newInterval),
		CreatedAt:      record.CreatedAt,
		UpdatedAt:      now,
	}
}
