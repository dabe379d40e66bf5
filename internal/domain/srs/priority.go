package srs

import (
	"sort"
	"time"

	"github.com/rotehq/rote-api/internal/domain"
)

// priorityScore computes the urgency of a due-or-overdue card. Higher means
// more urgent. Three weighted terms:
//
//   - overdue duration dominates (OverdueWeight per day overdue)
//   - lower ease (harder cards) adds urgency
//   - cards with few successful reviews get a small boost so fresh material
//     is not permanently crowded out by stale overdue cards
//
// Days overdue are fractional so two cards due on the same day still order
// by how long each has been waiting.
func priorityScore(record *domain.SchedulingRecord, now time.Time, params *Params) float64 {
	daysOverdue := now.Sub(record.NextReviewAt).Hours() / 24
	if daysOverdue < 0 {
		daysOverdue = 0
	}

	ef := clampEase(record.EaseFactor, params.MinEaseFactor, params.MaxEaseFactor)
	difficulty := params.MaxEaseFactor - ef

	novelty := float64(params.NoveltyReviewCap - record.ReviewCount)
	if novelty < 0 {
		novelty = 0
	}

	return params.OverdueWeight*daysOverdue +
		params.DifficultyWeight*difficulty +
		params.NoveltyWeight*novelty
}

// rankDue orders records for presentation: descending priority, ties broken
// by ascending next review date, then by stable input order. The ordering is
// fully deterministic so test fixtures are reproducible.
//
// The input slice is not modified; a new ordered slice is returned.
func rankDue(records []*domain.SchedulingRecord, now time.Time, params *Params) []*domain.SchedulingRecord {
	ranked := make([]*domain.SchedulingRecord, len(records))
	copy(ranked, records)

	scores := make(map[*domain.SchedulingRecord]float64, len(ranked))
	for _, r := range ranked {
		scores[r] = priorityScore(r, now, params)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		si, sj := scores[ranked[i]], scores[ranked[j]]
		if si != sj {
			return si > sj
		}
		return ranked[i].NextReviewAt.Before(ranked[j].NextReviewAt)
	})

	return ranked
}
