package api

import (
	"errors"
	"net/http"

	"github.com/recallapp/recall-api/internal/domain"
	"github.com/recallapp/recall-api/internal/service/auth"
	"github.com/recallapp/recall-api/internal/service/review"
	"github.com/recallapp/recall-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized

	// Not found errors
	case store.IsNotFoundError(err),
		errors.Is(err, review.ErrCardNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, review.ErrConcurrentReview),
		store.IsConflictError(err),
		store.IsDuplicateError(err):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, review.ErrEmptyAnswer),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest

	// Scoring backend down: retryable by the client after backoff
	case errors.Is(err, review.ErrScoringUnavailable):
		return http.StatusServiceUnavailable

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"

	// Not found errors
	case errors.Is(err, store.ErrCardNotFound),
		errors.Is(err, review.ErrCardNotFound):
		return "Card not found"

	case errors.Is(err, store.ErrReviewNotFound):
		return "Review not found"

	// Conflict errors
	case errors.Is(err, review.ErrConcurrentReview),
		store.IsConflictError(err):
		return "The card is being reviewed concurrently, please retry"

	case store.IsDuplicateError(err):
		return "A duplicate entry already exists"

	// Bad request errors
	case errors.Is(err, review.ErrEmptyAnswer):
		return "Answer cannot be empty"

	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation):
		return "Invalid entity data"

	case errors.Is(err, review.ErrScoringUnavailable):
		return "Scoring is temporarily unavailable, please retry later"

	default:
		return "An unexpected error occurred"
	}
}
