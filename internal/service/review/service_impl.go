package review

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rotehq/rote-api/internal/domain"
	"github.com/rotehq/rote-api/internal/domain/srs"
	"github.com/rotehq/rote-api/internal/platform/logger"
	"github.com/rotehq/rote-api/internal/store"
)

// reviewService is the standard implementation of ReviewService.
type reviewService struct {
	cards    store.CardStore
	records  store.SchedulingStore
	txRunner store.TxRunner
	engine   srs.Service
	recent   *sessionArena
	logger   *slog.Logger
	nowFn    func() time.Time
}

// Config holds the dependencies for creating a ReviewService.
type Config struct {
	CardStore       store.CardStore
	SchedulingStore store.SchedulingStore
	TxRunner        store.TxRunner
	Engine          srs.Service
	Logger          *slog.Logger

	// SessionTTL is how long a reviewed card is excluded from GetNextCard.
	// Zero selects the default.
	SessionTTL time.Duration
}

// NewReviewService creates a ReviewService from its dependencies.
// Store, engine, and transaction runner are required; a nil logger falls
// back to slog.Default.
func NewReviewService(cfg Config) (ReviewService, error) {
	if cfg.CardStore == nil {
		return nil, errors.New("card store cannot be nil")
	}
	if cfg.SchedulingStore == nil {
		return nil, errors.New("scheduling store cannot be nil")
	}
	if cfg.TxRunner == nil {
		return nil, errors.New("transaction runner cannot be nil")
	}
	if cfg.Engine == nil {
		return nil, errors.New("scheduling engine cannot be nil")
	}

	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	return &reviewService{
		cards:    cfg.CardStore,
		records:  cfg.SchedulingStore,
		txRunner: cfg.TxRunner,
		engine:   cfg.Engine,
		recent:   newSessionArena(cfg.SessionTTL),
		logger:   log.With(slog.String("component", "review_service")),
		nowFn:    func() time.Time { return time.Now().UTC() },
	}, nil
}

// CreateCard implements ReviewService.CreateCard.
func (s *reviewService) CreateCard(
	ctx context.Context,
	content json.RawMessage,
	confidence *float64,
) (*CardWithRecord, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	now := s.nowFn()

	card, err := domain.NewCard(content)
	if err != nil {
		log.Warn("card creation rejected", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %v", ErrInvalidContent, err)
	}

	record := s.engine.InitialParameters(card.ID, confidence, now)

	err = s.txRunner.RunInTransaction(ctx, func(
		ctx context.Context,
		cards store.CardStore,
		records store.SchedulingStore,
	) error {
		if err := cards.Create(ctx, card); err != nil {
			return fmt.Errorf("failed to create card: %w", err)
		}
		if err := records.Create(ctx, record); err != nil {
			return fmt.Errorf("failed to create scheduling record: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Error("failed to create card with schedule",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return nil, err
	}

	log.Info("card created",
		slog.String("card_id", card.ID.String()),
		slog.Float64("ease_factor", record.EaseFactor),
		slog.Int("interval_days", record.IntervalDays))

	return &CardWithRecord{Card: card, Record: record}, nil
}

// GetNextCard implements ReviewService.GetNextCard. Due records are ranked
// by the engine; cards reviewed within the session TTL are skipped so one
// answer does not bounce straight back.
func (s *reviewService) GetNextCard(ctx context.Context) (*CardWithRecord, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	now := s.nowFn()

	due, err := s.records.ListDue(ctx, now, 0)
	if err != nil {
		log.Error("failed to list due records", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list due records: %w", err)
	}

	eligible := due[:0:0]
	for _, record := range due {
		if s.recent.Contains(record.CardID, now) {
			continue
		}
		eligible = append(eligible, record)
	}
	if len(eligible) == 0 {
		return nil, ErrNoCardsDue
	}

	for _, record := range s.engine.RankDue(eligible, now) {
		card, err := s.cards.GetByID(ctx, record.CardID)
		if err != nil {
			if errors.Is(err, store.ErrCardNotFound) {
				// Orphaned record; skip rather than fail the whole queue.
				log.Warn("due record has no card",
					slog.String("card_id", record.CardID.String()))
				continue
			}
			return nil, fmt.Errorf("failed to load card: %w", err)
		}
		return &CardWithRecord{Card: card, Record: record}, nil
	}

	return nil, ErrNoCardsDue
}

// SubmitReview implements ReviewService.SubmitReview. The load-compute-save
// cycle runs in one transaction so concurrent reviews of the same card
// cannot interleave.
func (s *reviewService) SubmitReview(
	ctx context.Context,
	cardID uuid.UUID,
	outcome domain.ReviewOutcome,
) (*domain.SchedulingRecord, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	now := s.nowFn()

	var updated *domain.SchedulingRecord
	err := s.txRunner.RunInTransaction(ctx, func(
		ctx context.Context,
		_ store.CardStore,
		records store.SchedulingStore,
	) error {
		current, err := records.Get(ctx, cardID)
		if err != nil {
			if errors.Is(err, store.ErrRecordNotFound) {
				return ErrRecordNotFound
			}
			return fmt.Errorf("failed to load scheduling record: %w", err)
		}

		next, err := s.engine.ProcessReview(current, outcome, now)
		if err != nil {
			return fmt.Errorf("failed to process review: %w", err)
		}

		if err := records.Update(ctx, next); err != nil {
			return fmt.Errorf("failed to save scheduling record: %w", err)
		}

		updated = next
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrRecordNotFound) {
			log.Error("failed to submit review",
				slog.String("error", err.Error()),
				slog.String("card_id", cardID.String()))
		}
		return nil, err
	}

	s.recent.Remember(cardID, now)

	log.Info("review recorded",
		slog.String("card_id", cardID.String()),
		slog.Int("score", outcome.Score),
		slog.Int("interval_days", updated.IntervalDays),
		slog.String("card_state", string(updated.CardState)))

	return updated, nil
}

// CardStats implements ReviewService.CardStats.
func (s *reviewService) CardStats(ctx context.Context, cardID uuid.UUID) (*CardStats, error) {
	now := s.nowFn()

	if _, err := s.cards.GetByID(ctx, cardID); err != nil {
		if errors.Is(err, store.ErrCardNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to load card: %w", err)
	}

	record, err := s.records.Get(ctx, cardID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to load scheduling record: %w", err)
	}

	since := record.LastReviewedAt
	if since.IsZero() {
		since = record.CreatedAt
	}

	return &CardStats{
		Record:    record,
		Retention: s.engine.PredictRetention(daysSince(since, now), record.EaseFactor),
		Priority:  s.engine.Priority(record, now),
		Overdue:   s.engine.IsOverdue(record, -1, now),
	}, nil
}

// DeleteCard implements ReviewService.DeleteCard.
func (s *reviewService) DeleteCard(ctx context.Context, cardID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.cards.Delete(ctx, cardID); err != nil {
		if errors.Is(err, store.ErrCardNotFound) {
			return ErrCardNotFound
		}
		log.Error("failed to delete card",
			slog.String("error", err.Error()),
			slog.String("card_id", cardID.String()))
		return fmt.Errorf("failed to delete card: %w", err)
	}

	log.Info("card deleted", slog.String("card_id", cardID.String()))
	return nil
}
