package srs

import "math"

// Bounded arithmetic helpers. Every numeric input that crosses the engine
// boundary goes through one of these before it is used, so malformed data
// from a caller or a corrupted stored record yields a conservative but
// well-formed schedule instead of an error (see clampScore and friends for
// the individual bounds).

// clampScore forces a success score into [0, maxScore].
func clampScore(score, maxScore int) int {
	if score < 0 {
		return 0
	}
	if score > maxScore {
		return maxScore
	}
	return score
}

// clampEase forces an ease factor into [min, max].
func clampEase(ef, min, max float64) float64 {
	if ef < min {
		return min
	}
	if ef > max {
		return max
	}
	return ef
}

// clampConfidence forces a confidence estimate into [0.0, 1.0].
func clampConfidence(c float64) float64 {
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}

// clampUnit forces a probability into [0.0, 1.0].
func clampUnit(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// normalizeInterval treats a non-positive interval from a corrupted record
// as one day.
func normalizeInterval(days int) int {
	if days < 1 {
		return 1
	}
	return days
}

// ceilDays rounds an interval up to whole days. Rounding is always ceiling,
// never floor or nearest, so schedules never regress.
func ceilDays(v float64) int {
	return int(math.Ceil(v))
}
