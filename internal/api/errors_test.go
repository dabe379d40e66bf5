package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rotehq/rote-api/internal/service/review"
	"github.com/rotehq/rote-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"card not found", review.ErrCardNotFound, http.StatusNotFound},
		{"record not found", review.ErrRecordNotFound, http.StatusNotFound},
		{"store card not found", store.ErrCardNotFound, http.StatusNotFound},
		{"duplicate", store.ErrDuplicate, http.StatusConflict},
		{"invalid content", review.ErrInvalidContent, http.StatusBadRequest},
		{"invalid entity", store.ErrInvalidEntity, http.StatusBadRequest},
		{"no cards due", review.ErrNoCardsDue, http.StatusNoContent},
		{"wrapped error", fmt.Errorf("context: %w", review.ErrCardNotFound), http.StatusNotFound},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
		{"nil error", nil, http.StatusInternalServerError},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"card not found", review.ErrCardNotFound, "Card not found"},
		{"record not found", review.ErrRecordNotFound, "Scheduling record not found"},
		{"invalid content", review.ErrInvalidContent, "Invalid card content"},
		{"nil error", nil, "An unexpected error occurred"},
		{"unknown error", errors.New("pq: deadlock detected"), "An unexpected error occurred"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, GetSafeErrorMessage(tc.err))
		})
	}
}

func TestGetSafeErrorMessageNeverLeaksInternals(t *testing.T) {
	t.Parallel()

	internal := errors.New("connection to 10.0.0.5:5432 refused")
	msg := GetSafeErrorMessage(fmt.Errorf("failed to list due records: %w", internal))
	assert.NotContains(t, msg, "10.0.0.5")
	assert.Equal(t, "An unexpected error occurred", msg)
}

func TestSanitizeValidationError(t *testing.T) {
	t.Parallel()

	err := errors.New(
		"Key: 'SubmitReviewRequest.Score' Error:Field validation for 'Score' failed on the 'required' tag")
	assert.Equal(t, "Invalid Score: required field", SanitizeValidationError(err))

	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("boom")))
}
