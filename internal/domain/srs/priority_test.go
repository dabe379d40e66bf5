package srs

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/rotehq/rote-api/internal/domain"
)

func dueRecord(daysOverdue int, ease float64, count int) *domain.SchedulingRecord {
	return &domain.SchedulingRecord{
		CardID:       uuid.New(),
		IntervalDays: 6,
		EaseFactor:   ease,
		ReviewCount:  count,
		CardState:    domain.CardStateReview,
		NextReviewAt: testNow.AddDate(0, 0, -daysOverdue),
	}
}

func TestPriority(t *testing.T) {
	t.Parallel()
	svc := NewDefaultService()

	testCases := []struct {
		name     string
		record   *domain.SchedulingRecord
		expected float64
	}{
		{
			name:     "due today with max ease and many reviews",
			record:   dueRecord(0, 3.0, 12),
			expected: 0.0,
		},
		{
			name:   "three days overdue dominates",
			record: dueRecord(3, 3.0, 12),
			// 2.0 * 3
			expected: 6.0,
		},
		{
			name:   "hard card adds urgency",
			record: dueRecord(0, 1.3, 12),
			// 0.5 * (3.0 - 1.3)
			expected: 0.85,
		},
		{
			name:   "new card gets novelty boost",
			record: dueRecord(0, 3.0, 2),
			// 0.1 * (10 - 2)
			expected: 0.8,
		},
		{
			name:   "all three terms combine",
			record: dueRecord(2, 2.0, 4),
			// 2.0*2 + 0.5*(3.0-2.0) + 0.1*(10-4)
			expected: 5.1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := svc.Priority(tc.record, testNow)

			if math.Abs(got-tc.expected) > 1e-9 {
				t.Errorf("Expected priority %f, got %f", tc.expected, got)
			}
		})
	}
}

func TestPriorityNotDueIsNotNegative(t *testing.T) {
	t.Parallel()
	svc := NewDefaultService()

	record := dueRecord(-10, 3.0, 12) // due ten days from now
	if got := svc.Priority(record, testNow); got != 0 {
		t.Errorf("Expected zero overdue contribution for a future card, got %f", got)
	}
}

func TestRankDue(t *testing.T) {
	t.Parallel()
	svc := NewDefaultService()

	stale := dueRecord(10, 2.5, 8)
	hard := dueRecord(1, 1.3, 8)
	fresh := dueRecord(0, 2.5, 0)
	easy := dueRecord(0, 3.0, 12)

	input := []*domain.SchedulingRecord{easy, fresh, hard, stale}
	ranked := svc.RankDue(input, testNow)

	want := []*domain.SchedulingRecord{stale, hard, fresh, easy}
	for i := range want {
		if ranked[i] != want[i] {
			t.Fatalf("position %d: expected card %s, got %s",
				i, want[i].CardID, ranked[i].CardID)
		}
	}

	// Input order must be preserved.
	for i, r := range []*domain.SchedulingRecord{easy, fresh, hard, stale} {
		if input[i] != r {
			t.Fatal("RankDue modified its input slice")
		}
	}
}

func TestRankDueTieBreaking(t *testing.T) {
	t.Parallel()
	svc := NewDefaultService()

	// Same priority, different next review times: earlier date wins.
	a := dueRecord(0, 2.5, 8)
	b := dueRecord(0, 2.5, 8)
	a.NextReviewAt = testNow.Add(-2 * time.Hour)
	b.NextReviewAt = testNow.Add(-1 * time.Hour)

	// a is slightly more overdue, so equalize by fractional day weight.
	a.EaseFactor = 2.5
	b.EaseFactor = 2.5

	rankedOnce := svc.RankDue([]*domain.SchedulingRecord{b, a}, testNow)
	rankedTwice := svc.RankDue([]*domain.SchedulingRecord{b, a}, testNow)

	for i := range rankedOnce {
		if rankedOnce[i] != rankedTwice[i] {
			t.Fatal("RankDue is not deterministic for identical input")
		}
	}

	// Exact ties (same priority, same date) keep stable input order.
	c := dueRecord(0, 2.5, 8)
	d := dueRecord(0, 2.5, 8)
	d.NextReviewAt = c.NextReviewAt

	ranked := svc.RankDue([]*domain.SchedulingRecord{c, d}, testNow)
	if ranked[0] != c || ranked[1] != d {
		t.Error("exact ties must preserve input order")
	}
}
