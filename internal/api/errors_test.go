package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/recallapp/recall-api/internal/domain"
	"github.com/recallapp/recall-api/internal/service/auth"
	"github.com/recallapp/recall-api/internal/service/review"
	"github.com/recallapp/recall-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"card not found (service)", review.ErrCardNotFound, http.StatusNotFound},
		{"card not found (store)", store.ErrCardNotFound, http.StatusNotFound},
		{"empty answer", review.ErrEmptyAnswer, http.StatusBadRequest},
		{"invalid entity", store.ErrInvalidEntity, http.StatusBadRequest},
		{"scoring unavailable", review.ErrScoringUnavailable, http.StatusServiceUnavailable},
		{"concurrent review", review.ErrConcurrentReview, http.StatusConflict},
		{"store conflict", store.ErrConflict, http.StatusConflict},
		{"duplicate", store.ErrDuplicate, http.StatusConflict},
		{"domain validation", domain.ErrCardQuestionEmpty, http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
		{
			"wrapped not found",
			fmt.Errorf("context: %w", review.ErrCardNotFound),
			http.StatusNotFound,
		},
		{
			"store error wrapping not found",
			store.NewStoreError("card", "update", "lookup failed", store.ErrCardNotFound),
			http.StatusNotFound,
		},
		{
			"store error wrapping conflict",
			store.NewStoreError("card", "update", "lock timed out", store.ErrConflict),
			http.StatusConflict,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	assert.Equal(t, "Card not found", GetSafeErrorMessage(review.ErrCardNotFound))
	assert.Equal(t, "Answer cannot be empty", GetSafeErrorMessage(review.ErrEmptyAnswer))
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))

	// Internal details never leak through the safe message
	leaky := fmt.Errorf("pg: connection to host 10.0.0.5 failed: %w", errors.New("refused"))
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(leaky))

	// StoreError context stays internal; only the sanitized message escapes
	wrapped := store.NewStoreError("card", "get", "select failed on replica db-3", store.ErrCardNotFound)
	assert.Equal(t, "Card not found", GetSafeErrorMessage(wrapped))
	assert.Equal(t, "Invalid entity data", GetSafeErrorMessage(domain.ErrCardAnswerEmpty))
}
