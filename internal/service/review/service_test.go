package review

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rotehq/rote-api/internal/domain"
	"github.com/rotehq/rote-api/internal/domain/srs"
	"github.com/rotehq/rote-api/internal/platform/memory"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// newTestService wires a ReviewService over in-memory stores with a frozen
// clock. Tests advance time by reassigning clock.
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func newTestService(t *testing.T) (*reviewService, *memory.Store, *testClock) {
	t.Helper()

	s := memory.NewStore()
	clock := &testClock{now: testNow}

	svc, err := NewReviewService(Config{
		CardStore:       s.Cards(),
		SchedulingStore: s.Records(),
		TxRunner:        s.TxRunner(),
		Engine:          srs.NewDefaultService(),
		SessionTTL:      10 * time.Minute,
	})
	require.NoError(t, err)

	rs := svc.(*reviewService)
	rs.nowFn = clock.Now
	return rs, s, clock
}

func testContent(t *testing.T, front string) json.RawMessage {
	t.Helper()
	content, err := json.Marshal(domain.CardContent{Front: front, Back: "back"})
	require.NoError(t, err)
	return content
}

func TestNewReviewServiceValidation(t *testing.T) {
	t.Parallel()

	s := memory.NewStore()
	base := Config{
		CardStore:       s.Cards(),
		SchedulingStore: s.Records(),
		TxRunner:        s.TxRunner(),
		Engine:          srs.NewDefaultService(),
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"nil card store", func(c *Config) { c.CardStore = nil }},
		{"nil scheduling store", func(c *Config) { c.SchedulingStore = nil }},
		{"nil tx runner", func(c *Config) { c.TxRunner = nil }},
		{"nil engine", func(c *Config) { c.Engine = nil }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := base
			tc.mutate(&cfg)
			_, err := NewReviewService(cfg)
			assert.Error(t, err)
		})
	}
}

func TestCreateCard(t *testing.T) {
	t.Parallel()

	svc, s, _ := newTestService(t)
	ctx := context.Background()

	got, err := svc.CreateCard(ctx, testContent(t, "q1"), nil)
	require.NoError(t, err)
	require.NotNil(t, got.Card)
	require.NotNil(t, got.Record)

	assert.Equal(t, got.Card.ID, got.Record.CardID)
	assert.Equal(t, domain.CardStateNew, got.Record.CardState)
	assert.Equal(t, 0, got.Record.ReviewCount)
	assert.InDelta(t, 2.5, got.Record.EaseFactor, 1e-9)

	// Both halves persisted.
	_, err = s.Cards().GetByID(ctx, got.Card.ID)
	assert.NoError(t, err)
	_, err = s.Records().Get(ctx, got.Card.ID)
	assert.NoError(t, err)
}

func TestCreateCardWithConfidence(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)
	ctx := context.Background()

	high := 1.0
	got, err := svc.CreateCard(ctx, testContent(t, "easy"), &high)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, got.Record.EaseFactor, 1e-9)
	assert.Equal(t, 3, got.Record.IntervalDays)

	low := 0.0
	got, err = svc.CreateCard(ctx, testContent(t, "hard"), &low)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, got.Record.EaseFactor, 1e-9)
	assert.Equal(t, 1, got.Record.IntervalDays)
}

func TestCreateCardInvalidContent(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)

	_, err := svc.CreateCard(context.Background(), json.RawMessage(`{not json`), nil)
	assert.ErrorIs(t, err, ErrInvalidContent)

	_, err = svc.CreateCard(context.Background(), nil, nil)
	assert.ErrorIs(t, err, ErrInvalidContent)
}

func TestGetNextCardEmpty(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)
	_, err := svc.GetNextCard(context.Background())
	assert.ErrorIs(t, err, ErrNoCardsDue)
}

func TestGetNextCardPicksMostUrgent(t *testing.T) {
	t.Parallel()

	svc, _, clock := newTestService(t)
	ctx := context.Background()

	fresh, err := svc.CreateCard(ctx, testContent(t, "fresh"), nil)
	require.NoError(t, err)
	stale, err := svc.CreateCard(ctx, testContent(t, "stale"), nil)
	require.NoError(t, err)

	// Both become due after one day; push the stale one five days overdue
	// by backdating its next review.
	record, err := svc.records.Get(ctx, stale.Card.ID)
	require.NoError(t, err)
	record.NextReviewAt = testNow.AddDate(0, 0, -5)
	require.NoError(t, svc.records.Update(ctx, record))

	clock.now = testNow.AddDate(0, 0, 1)
	got, err := svc.GetNextCard(ctx)
	require.NoError(t, err)
	assert.Equal(t, stale.Card.ID, got.Card.ID)
	assert.NotEqual(t, fresh.Card.ID, got.Card.ID)
}

func TestGetNextCardSkipsRecentlyReviewed(t *testing.T) {
	t.Parallel()

	svc, _, clock := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateCard(ctx, testContent(t, "only"), nil)
	require.NoError(t, err)

	clock.now = testNow.AddDate(0, 0, 2)
	got, err := svc.GetNextCard(ctx)
	require.NoError(t, err)
	assert.Equal(t, created.Card.ID, got.Card.ID)

	_, err = svc.SubmitReview(ctx, created.Card.ID, domain.ReviewOutcome{Score: 5})
	require.NoError(t, err)

	// Force the card due again immediately; the session arena must still
	// hold it back within the TTL window.
	record, err := svc.records.Get(ctx, created.Card.ID)
	require.NoError(t, err)
	record.NextReviewAt = clock.now
	require.NoError(t, svc.records.Update(ctx, record))

	_, err = svc.GetNextCard(ctx)
	assert.ErrorIs(t, err, ErrNoCardsDue)

	// Past the TTL it is served again.
	clock.now = clock.now.Add(11 * time.Minute)
	got, err = svc.GetNextCard(ctx)
	require.NoError(t, err)
	assert.Equal(t, created.Card.ID, got.Card.ID)
}

func TestSubmitReviewSuccess(t *testing.T) {
	t.Parallel()

	svc, _, clock := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateCard(ctx, testContent(t, "q"), nil)
	require.NoError(t, err)

	clock.now = testNow.AddDate(0, 0, 1)
	updated, err := svc.SubmitReview(ctx, created.Card.ID, domain.ReviewOutcome{Score: 5})
	require.NoError(t, err)

	assert.Equal(t, 1, updated.ReviewCount)
	assert.Equal(t, 1, updated.IntervalDays)
	assert.InDelta(t, 2.6, updated.EaseFactor, 1e-9)
	assert.Equal(t, domain.CardStateLearning, updated.CardState)
	assert.Equal(t, clock.now, updated.LastReviewedAt)

	// Persisted, not just returned.
	stored, err := svc.records.Get(ctx, created.Card.ID)
	require.NoError(t, err)
	assert.Equal(t, updated.ReviewCount, stored.ReviewCount)
	assert.InDelta(t, updated.EaseFactor, stored.EaseFactor, 1e-9)
}

func TestSubmitReviewFailureResets(t *testing.T) {
	t.Parallel()

	svc, _, clock := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateCard(ctx, testContent(t, "q"), nil)
	require.NoError(t, err)

	clock.now = testNow.AddDate(0, 0, 1)
	_, err = svc.SubmitReview(ctx, created.Card.ID, domain.ReviewOutcome{Score: 5})
	require.NoError(t, err)

	clock.now = clock.now.AddDate(0, 0, 1)
	updated, err := svc.SubmitReview(ctx, created.Card.ID, domain.ReviewOutcome{Score: 1})
	require.NoError(t, err)

	assert.Equal(t, 0, updated.ReviewCount)
	assert.Equal(t, 1, updated.IntervalDays)
	assert.InDelta(t, 2.4, updated.EaseFactor, 1e-9)
	assert.Equal(t, domain.CardStateLearning, updated.CardState)
}

func TestSubmitReviewMissingRecord(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)
	_, err := svc.SubmitReview(context.Background(), uuid.New(), domain.ReviewOutcome{Score: 3})
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestCardStats(t *testing.T) {
	t.Parallel()

	svc, _, clock := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateCard(ctx, testContent(t, "q"), nil)
	require.NoError(t, err)

	clock.now = testNow.AddDate(0, 0, 1)
	_, err = svc.SubmitReview(ctx, created.Card.ID, domain.ReviewOutcome{Score: 4})
	require.NoError(t, err)

	// Three days after the review the card is overdue and retention has
	// decayed below certainty.
	clock.now = clock.now.AddDate(0, 0, 3)
	stats, err := svc.CardStats(ctx, created.Card.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Record.ReviewCount)
	assert.Greater(t, stats.Retention, 0.0)
	assert.Less(t, stats.Retention, 1.0)
	assert.Greater(t, stats.Priority, 0.0)
	assert.True(t, stats.Overdue)
}

func TestCardStatsMissingCard(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)
	_, err := svc.CardStats(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrCardNotFound)
}

func TestDeleteCard(t *testing.T) {
	t.Parallel()

	svc, s, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateCard(ctx, testContent(t, "q"), nil)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCard(ctx, created.Card.ID))

	_, err = s.Cards().GetByID(ctx, created.Card.ID)
	assert.Error(t, err)
	_, err = s.Records().Get(ctx, created.Card.ID)
	assert.Error(t, err)

	assert.ErrorIs(t, svc.DeleteCard(ctx, created.Card.ID), ErrCardNotFound)
}
