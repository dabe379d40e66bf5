// Package api provides HTTP handlers for the API.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rotehq/rote-api/internal/api/shared"
	"github.com/rotehq/rote-api/internal/domain"
	"github.com/rotehq/rote-api/internal/platform/logger"
	"github.com/rotehq/rote-api/internal/service/review"
)

// CreateCardRequest represents the request body for creating a card.
// Confidence is an optional prior familiarity estimate; out-of-range values
// are clamped by the scheduling engine rather than rejected here.
type CreateCardRequest struct {
	Content    json.RawMessage `json:"content" validate:"required"`
	Confidence *float64        `json:"confidence,omitempty"`
}

// SubmitReviewRequest represents the request body for submitting a review.
// Score follows the 0-5 recall-quality scale; a pointer distinguishes a
// missing score from a legitimate zero. Out-of-range scores are clamped by
// the engine.
type SubmitReviewRequest struct {
	Score          *int   `json:"score" validate:"required"`
	ResponseTimeMs *int64 `json:"response_time_ms,omitempty"`
}

// CardResponse represents the response data for a card
type CardResponse struct {
	ID        string      `json:"id"`
	Content   interface{} `json:"content"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// ScheduleResponse represents the response data for a scheduling record
type ScheduleResponse struct {
	CardID         string     `json:"card_id"`
	IntervalDays   int        `json:"interval_days"`
	EaseFactor     float64    `json:"ease_factor"`
	ReviewCount    int        `json:"review_count"`
	CardState      string     `json:"card_state"`
	LastReviewedAt *time.Time `json:"last_reviewed_at,omitempty"`
	NextReviewAt   time.Time  `json:"next_review_at"`
}

// CardWithScheduleResponse pairs a card with its schedule
type CardWithScheduleResponse struct {
	Card     CardResponse     `json:"card"`
	Schedule ScheduleResponse `json:"schedule"`
}

// CardStatsResponse represents the diagnostic view of a card's schedule
type CardStatsResponse struct {
	Schedule  ScheduleResponse `json:"schedule"`
	Retention float64          `json:"retention"`
	Priority  float64          `json:"priority"`
	Overdue   bool             `json:"overdue"`
}

// CardHandler handles card-related HTTP requests
type CardHandler struct {
	reviewService review.ReviewService
	logger        *slog.Logger
}

// NewCardHandler creates a new CardHandler
func NewCardHandler(reviewService review.ReviewService, logger *slog.Logger) *CardHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for CardHandler")
	}

	return &CardHandler{
		reviewService: reviewService,
		logger:        logger.With(slog.String("component", "card_handler")),
	}
}

// CreateCard handles POST /cards requests
// It stores a new card and generates its initial review schedule.
func (h *CardHandler) CreateCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateCardRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("failed to decode create card request", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	result, err := h.reviewService.CreateCard(r.Context(), req.Content, req.Confidence)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("card created",
		slog.String("card_id", result.Card.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, cardWithScheduleToResponse(result))
}

// GetNextReviewCard handles GET /cards/next requests
// It retrieves the most urgent card currently due for review.
func (h *CardHandler) GetNextReviewCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	result, err := h.reviewService.GetNextCard(r.Context())

	// Special case: no cards due for review
	if errors.Is(err, review.ErrNoCardsDue) {
		log.Debug("no cards due for review")
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to get next review card"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("successfully retrieved next review card",
		slog.String("card_id", result.Card.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, cardWithScheduleToResponse(result))
}

// SubmitReview handles POST /cards/{id}/review requests
// It records a review outcome and returns the card's updated schedule.
func (h *CardHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	cardID, ok := parseCardID(w, r, log)
	if !ok {
		return
	}

	var req SubmitReviewRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("failed to decode review request",
			slog.String("error", err.Error()),
			slog.String("card_id", cardID.String()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	outcome := domain.ReviewOutcome{Score: *req.Score}
	if req.ResponseTimeMs != nil {
		d := time.Duration(*req.ResponseTimeMs) * time.Millisecond
		outcome.ResponseTime = &d
	}

	updated, err := h.reviewService.SubmitReview(r.Context(), cardID, outcome)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to submit review"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("review submitted",
		slog.String("card_id", cardID.String()),
		slog.Int("score", *req.Score))
	shared.RespondWithJSON(w, r, http.StatusOK, scheduleToResponse(updated))
}

// GetCardStats handles GET /cards/{id}/stats requests
// It returns the card's schedule with retention and priority diagnostics.
func (h *CardHandler) GetCardStats(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	cardID, ok := parseCardID(w, r, log)
	if !ok {
		return
	}

	stats, err := h.reviewService.CardStats(r.Context(), cardID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, CardStatsResponse{
		Schedule:  scheduleToResponse(stats.Record),
		Retention: stats.Retention,
		Priority:  stats.Priority,
		Overdue:   stats.Overdue,
	})
}

// DeleteCard handles DELETE /cards/{id} requests
func (h *CardHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	cardID, ok := parseCardID(w, r, log)
	if !ok {
		return
	}

	if err := h.reviewService.DeleteCard(r.Context(), cardID); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// parseCardID extracts and parses the card ID from the URL path, writing the
// error response itself when the ID is missing or malformed.
func parseCardID(w http.ResponseWriter, r *http.Request, log *slog.Logger) (uuid.UUID, bool) {
	pathCardID := chi.URLParam(r, "id")
	if pathCardID == "" {
		log.Warn("card ID not found in URL path")
		shared.RespondWithError(w, r, http.StatusBadRequest, "Card ID is required")
		return uuid.Nil, false
	}

	cardID, err := uuid.Parse(pathCardID)
	if err != nil {
		log.Warn("invalid card ID format", slog.String("card_id", pathCardID))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid card ID format")
		return uuid.Nil, false
	}

	return cardID, true
}

func cardToResponse(card *domain.Card) CardResponse {
	var content interface{}
	if err := json.Unmarshal(card.Content, &content); err != nil {
		// Stored content is validated JSON; fall back to the raw string.
		content = string(card.Content)
	}

	return CardResponse{
		ID:        card.ID.String(),
		Content:   content,
		CreatedAt: card.CreatedAt,
		UpdatedAt: card.UpdatedAt,
	}
}

func scheduleToResponse(record *domain.SchedulingRecord) ScheduleResponse {
	resp := ScheduleResponse{
		CardID:       record.CardID.String(),
		IntervalDays: record.IntervalDays,
		EaseFactor:   record.EaseFactor,
		ReviewCount:  record.ReviewCount,
		CardState:    string(record.CardState),
		NextReviewAt: record.NextReviewAt,
	}
	if !record.LastReviewedAt.IsZero() {
		t := record.LastReviewedAt
		resp.LastReviewedAt = &t
	}
	return resp
}

func cardWithScheduleToResponse(result *review.CardWithRecord) CardWithScheduleResponse {
	return CardWithScheduleResponse{
		Card:     cardToResponse(result.Card),
		Schedule: scheduleToResponse(result.Record),
	}
}
