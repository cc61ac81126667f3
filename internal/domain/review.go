package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Review-specific validation errors. All wrap ErrValidation.
var (
	// ErrReviewIDEmpty is returned when a review ID is empty or nil.
	ErrReviewIDEmpty = fmt.Errorf("%w: review ID cannot be empty", ErrValidation)

	// ErrReviewCardIDEmpty is returned when a review's card ID is empty or nil.
	ErrReviewCardIDEmpty = fmt.Errorf("%w: review card ID cannot be empty", ErrValidation)

	// ErrReviewUserIDEmpty is returned when a review's user ID is empty or nil.
	ErrReviewUserIDEmpty = fmt.Errorf("%w: review user ID cannot be empty", ErrValidation)

	// ErrReviewAnswerEmpty is returned when a review's submitted answer is empty.
	ErrReviewAnswerEmpty = fmt.Errorf("%w: review answer cannot be empty", ErrValidation)

	// ErrReviewScoreOutOfRange is returned when a review score falls outside [0, 100].
	ErrReviewScoreOutOfRange = fmt.Errorf("%w: review score must be between 0 and 100", ErrValidation)
)

// Review is an immutable record of one review submission against a card.
// It weakly references the card it was generated for and the submitting user;
// it is created exactly once per submission and never mutated, surviving only
// as long as its card (cascade delete).
type Review struct {
	ID         uuid.UUID `json:"id"`
	CardID     uuid.UUID `json:"card_id"`
	UserID     uuid.UUID `json:"user_id"`
	UserAnswer string    `json:"user_answer"`
	Score      float64   `json:"score"`
	Note       *string   `json:"note,omitempty"`
	ReviewedAt time.Time `json:"reviewed_at"`
}

// NewReview creates a review event for the given card, user and scored answer.
// reviewedAt is passed in by the caller so the event timestamp matches the
// scheduling timestamp applied to the card in the same transaction.
func NewReview(
	cardID, userID uuid.UUID,
	userAnswer string,
	score float64,
	note *string,
	reviewedAt time.Time,
) (*Review, error) {
	review := &Review{
		ID:         uuid.New(),
		CardID:     cardID,
		UserID:     userID,
		UserAnswer: userAnswer,
		Score:      score,
		Note:       note,
		ReviewedAt: reviewedAt,
	}

	if err := review.Validate(); err != nil {
		return nil, err
	}

	return review, nil
}

// Validate checks if the Review has valid data.
// Returns an error if any field fails validation.
func (r *Review) Validate() error {
	if r.ID == uuid.Nil {
		return ErrReviewIDEmpty
	}

	if r.CardID == uuid.Nil {
		return ErrReviewCardIDEmpty
	}

	if r.UserID == uuid.Nil {
		return ErrReviewUserIDEmpty
	}

	if r.UserAnswer == "" {
		return ErrReviewAnswerEmpty
	}

	if r.Score < 0 || r.Score > 100 {
		return ErrReviewScoreOutOfRange
	}

	return nil
}
