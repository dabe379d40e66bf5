package srs

import "math"

// predictRetention estimates the probability that a card is still remembered
// after the given number of days. The model is exponential forgetting with a
// decay rate of 1/easeFactor: easier cards decay more slowly.
//
// The estimate is diagnostic only - it never feeds back into scheduling
// decisions, which keeps the scheduler deterministic and auditable.
func predictRetention(daysSinceReview int, easeFactor float64, params *Params) float64 {
	if daysSinceReview < 0 {
		daysSinceReview = 0
	}
	ef := clampEase(easeFactor, params.MinEaseFactor, params.MaxEaseFactor)

	decayRate := 1.0 / ef
	retention := math.Exp(-decayRate * float64(daysSinceReview))

	return clampUnit(retention)
}
