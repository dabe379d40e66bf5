package srs

import (
	"math"
	"testing"
	"time"

	"github.com/rotehq/rote-api/internal/domain"
)

func TestCalculateNewEaseFactor(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	testCases := []struct {
		name     string
		current  float64
		score    int
		expected float64
	}{
		{
			name:     "failed review applies fixed penalty",
			current:  2.6,
			score:    2,
			expected: 2.4, // 2.6 - 0.2
		},
		{
			name:     "failed review clamps at minimum ease",
			current:  1.35,
			score:    0,
			expected: 1.3, // 1.35 - 0.2 = 1.15, floor 1.3
		},
		{
			name:     "score 3 decreases ease",
			current:  2.5,
			score:    3,
			expected: 2.36, // 2.5 + (0.1 - 2*(0.08 + 2*0.02)) = 2.5 - 0.14
		},
		{
			name:     "score 4 leaves ease unchanged",
			current:  2.5,
			score:    4,
			expected: 2.5, // adjustment is exactly 0 at score 4, by design
		},
		{
			name:     "score 5 increases ease",
			current:  2.5,
			score:    5,
			expected: 2.6, // 2.5 + 0.1
		},
		{
			name:     "score 5 clamps at maximum ease",
			current:  2.95,
			score:    5,
			expected: 3.0,
		},
		{
			name:     "score above domain is clamped to 5",
			current:  2.5,
			score:    11,
			expected: 2.6,
		},
		{
			name:     "negative score is clamped to 0 and fails",
			current:  2.5,
			score:    -3,
			expected: 2.3,
		},
		{
			name:     "corrupted ease above max is clamped before use",
			current:  4.0,
			score:    4,
			expected: 3.0,
		},
		{
			name:     "corrupted ease below min is clamped before use",
			current:  0.5,
			score:    4,
			expected: 1.3,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			newEF := calculateNewEaseFactor(tc.current, tc.score, params)

			if math.Abs(newEF-tc.expected) > 1e-9 {
				t.Errorf("Expected ease factor %f, got %f", tc.expected, newEF)
			}
		})
	}
}

func TestCalculateNewInterval(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	testCases := []struct {
		name      string
		current   int
		ease      float64
		score     int
		successes int // streak before this review
		expected  int
	}{
		{
			name:      "failed review resets interval to one day",
			current:   15,
			ease:      2.6,
			score:     2,
			successes: 3,
			expected:  1,
		},
		{
			name:      "first success stays at one day",
			current:   1,
			ease:      2.5,
			score:     4,
			successes: 0,
			expected:  1,
		},
		{
			name:      "second success jumps to six days",
			current:   1,
			ease:      2.5,
			score:     5,
			successes: 1,
			expected:  6,
		},
		{
			name:      "third success multiplies by ease with ceiling",
			current:   6,
			ease:      2.6,
			score:     4,
			successes: 2,
			expected:  16, // ceil(6 * 2.6) = ceil(15.6)
		},
		{
			name:      "ceiling rounding never regresses the schedule",
			current:   10,
			ease:      2.05,
			score:     4,
			successes: 5,
			expected:  21, // ceil(20.5)
		},
		{
			name:      "minimum ease still grows the interval",
			current:   1,
			ease:      1.3,
			score:     3,
			successes: 2,
			expected:  2, // ceil(1.3) = 2 > 1
		},
		{
			name:      "corrupted non-positive interval treated as one day",
			current:   0,
			ease:      2.5,
			score:     4,
			successes: 4,
			expected:  3, // ceil(1 * 2.5)
		},
		{
			name:      "corrupted negative interval treated as one day",
			current:   -7,
			ease:      2.0,
			score:     5,
			successes: 9,
			expected:  2,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			newInterval := calculateNewInterval(tc.current, tc.ease, tc.score, tc.successes, params)

			if newInterval != tc.expected {
				t.Errorf("Expected interval %d, got %d", tc.expected, newInterval)
			}
		})
	}
}

func TestIntervalMonotonicGrowth(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	// For any success with an established streak, the new interval must be
	// strictly greater than the current one, even at minimum ease.
	for interval := 1; interval <= 400; interval++ {
		for score := params.FailThreshold; score <= params.MaxScore; score++ {
			next := calculateNewInterval(interval, params.MinEaseFactor, score, 3, params)
			if next <= interval {
				t.Fatalf("interval stagnated: %d -> %d at score %d", interval, next, score)
			}
		}
	}
}

func TestClassifyCardState(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	testCases := []struct {
		name     string
		interval int
		score    int
		count    int
		expected domain.CardState
	}{
		{
			name:     "failure always lands in learning",
			interval: 1,
			score:    2,
			count:    0,
			expected: domain.CardStateLearning,
		},
		{
			name:     "first success is still learning",
			interval: 1,
			score:    4,
			count:    1,
			expected: domain.CardStateLearning,
		},
		{
			name:     "second success enters review",
			interval: 6,
			score:    5,
			count:    2,
			expected: domain.CardStateReview,
		},
		{
			name:     "interval at twenty days stays in review",
			interval: 20,
			score:    4,
			count:    5,
			expected: domain.CardStateReview,
		},
		{
			name:     "interval at twenty-one days is mature",
			interval: 21,
			score:    4,
			count:    5,
			expected: domain.CardStateMature,
		},
		{
			name:     "interval far past threshold is mature",
			interval: 120,
			score:    5,
			count:    9,
			expected: domain.CardStateMature,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			state := classifyCardState(tc.interval, tc.score, tc.count, params)

			if state != tc.expected {
				t.Errorf("Expected state %q, got %q", tc.expected, state)
			}

			// The classifier is pure: a second call with the same inputs
			// must yield the same state.
			if again := classifyCardState(tc.interval, tc.score, tc.count, params); again != state {
				t.Errorf("Classifier not idempotent: %q then %q", state, again)
			}
		})
	}
}

func TestNextReviewDateDerivation(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.March, 10, 9, 30, 0, 0, time.UTC)
	got := nextReviewDate(now, 6)
	want := time.Date(2026, time.March, 16, 9, 30, 0, 0, time.UTC)

	if !got.Equal(want) {
		t.Errorf("Expected next review at %v, got %v", want, got)
	}
}
