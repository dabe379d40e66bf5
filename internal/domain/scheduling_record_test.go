package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func validRecord() *SchedulingRecord {
	now := time.Now().UTC()
	return &SchedulingRecord{
		CardID:       uuid.New(),
		IntervalDays: 6,
		EaseFactor:   2.5,
		ReviewCount:  2,
		CardState:    CardStateReview,
		NextReviewAt: now.AddDate(0, 0, 6),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestSchedulingRecordValidate(t *testing.T) {
	t.Parallel()

	t.Run("valid record passes", func(t *testing.T) {
		assert.NoError(t, validRecord().Validate())
	})

	t.Run("nil card ID fails", func(t *testing.T) {
		r := validRecord()
		r.CardID = uuid.Nil
		assert.ErrorIs(t, r.Validate(), ErrEmptyRecordCardID)
	})

	t.Run("zero interval fails", func(t *testing.T) {
		r := validRecord()
		r.IntervalDays = 0
		assert.ErrorIs(t, r.Validate(), ErrInvalidInterval)
	})

	t.Run("ease factor at or below one fails", func(t *testing.T) {
		r := validRecord()
		r.EaseFactor = 1.0
		assert.ErrorIs(t, r.Validate(), ErrInvalidEaseFactor)
	})

	t.Run("unknown card state fails", func(t *testing.T) {
		r := validRecord()
		r.CardState = CardState("archived")
		assert.ErrorIs(t, r.Validate(), ErrInvalidCardState)
	})
}

func TestCardStateIsValid(t *testing.T) {
	t.Parallel()

	for _, s := range []CardState{CardStateNew, CardStateLearning, CardStateReview, CardStateMature} {
		assert.True(t, s.IsValid(), "state %q should be valid", s)
	}
	assert.False(t, CardState("").IsValid())
	assert.False(t, CardState("suspended").IsValid())
}

func TestSchedulingRecordClone(t *testing.T) {
	t.Parallel()

	r := validRecord()
	clone := r.Clone()

	assert.Equal(t, r, clone)

	clone.IntervalDays = 99
	assert.NotEqual(t, r.IntervalDays, clone.IntervalDays, "clone must not share state")
}
