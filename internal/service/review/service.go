// Package review provides the service that records flashcard review
// submissions. A submission scores the user's answer against the card's
// reference answer, advances the card through the spaced repetition
// schedule, and appends an immutable review event, all within a single
// transaction.
package review

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/recallapp/recall-api/internal/domain"
	"github.com/recallapp/recall-api/internal/domain/srs"
)

// Submission carries the user-provided fields of a review submission.
type Submission struct {
	// Answer is the user's attempted answer. Must be non-empty after trimming.
	Answer string
	// Note is an optional free-form note attached to the review.
	Note *string
}

// Result summarizes the outcome of a recorded review submission.
type Result struct {
	ReviewID        uuid.UUID
	CardID          uuid.UUID
	Score           float64
	Stage           srs.Stage
	ReviewCount     int
	IsFullyReviewed bool
	NextReviewAt    *time.Time
}

// ReviewService provides methods for submitting and inspecting flashcard
// reviews.
type ReviewService interface {
	// SubmitReview scores the submission against the card's reference
	// answer, advances the card's schedule, and records the review event.
	//
	// The card's scheduling state only advances while the card is not yet
	// fully reviewed. Submissions against a fully-reviewed card still score
	// the answer and record a review event, but leave the review count and
	// schedule untouched.
	//
	// Returns ErrCardNotFound if the card does not exist or is owned by
	// another user, ErrEmptyAnswer if the answer is blank, ErrScoringUnavailable
	// if the embedding backend cannot produce a score, and ErrConcurrentReview
	// if a competing submission could not be serialized after retrying.
	SubmitReview(
		ctx context.Context,
		userID, cardID uuid.UUID,
		submission Submission,
	) (*Result, error)

	// GetDueCards retrieves the user's cards currently due for review,
	// ordered ascending by next review time with never-scheduled cards first.
	GetDueCards(ctx context.Context, userID uuid.UUID) ([]*domain.Card, error)

	// GetReviewHistory retrieves the most recent reviews of a card submitted
	// by the user, newest first. A non-positive limit falls back to the
	// default page size; limits above the maximum are clamped.
	// Returns ErrCardNotFound if the card does not exist or is owned by
	// another user.
	GetReviewHistory(
		ctx context.Context,
		userID, cardID uuid.UUID,
		limit int,
	) ([]*domain.Review, error)
}

// History page size bounds.
const (
	DefaultHistoryLimit = 10
	MaxHistoryLimit     = 50
)

// Common error types for ReviewService
var (
	// ErrCardNotFound indicates that the card does not exist or is owned by
	// another user.
	ErrCardNotFound = errors.New("card not found")

	// ErrEmptyAnswer indicates that the submitted answer was blank.
	ErrEmptyAnswer = errors.New("answer cannot be empty")

	// ErrScoringUnavailable indicates that the answer could not be scored
	// because the embedding backend failed.
	ErrScoringUnavailable = errors.New("scoring is currently unavailable")

	// ErrConcurrentReview indicates that a competing submission against the
	// same card could not be serialized after retrying.
	ErrConcurrentReview = errors.New("card is being reviewed concurrently")
)

// ServiceError wraps errors from the review service with additional context.
// This allows consumers to differentiate between different types of service
// errors using errors.As instead of string matching.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "submit_review")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewSubmitReviewError returns a new ServiceError for the submit_review operation.
func NewSubmitReviewError(message string, err error) *ServiceError {
	return &ServiceError{
		Operation: "submit_review",
		Message:   message,
		Err:       err,
	}
}

// NewGetDueCardsError returns a new ServiceError for the get_due_cards operation.
func NewGetDueCardsError(message string, err error) *ServiceError {
	return &ServiceError{
		Operation: "get_due_cards",
		Message:   message,
		Err:       err,
	}
}

// NewGetReviewHistoryError returns a new ServiceError for the get_review_history operation.
func NewGetReviewHistoryError(message string, err error) *ServiceError {
	return &ServiceError{
		Operation: "get_review_history",
		Message:   message,
		Err:       err,
	}
}
