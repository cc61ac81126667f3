package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Card-specific validation errors. All wrap ErrValidation.
var (
	// ErrCardIDEmpty is returned when a card ID is empty or nil.
	ErrCardIDEmpty = fmt.Errorf("%w: card ID cannot be empty", ErrValidation)

	// ErrCardDeckIDEmpty is returned when a card's deck ID is empty or nil.
	ErrCardDeckIDEmpty = fmt.Errorf("%w: card deck ID cannot be empty", ErrValidation)

	// ErrCardQuestionEmpty is returned when a card's question is empty.
	ErrCardQuestionEmpty = fmt.Errorf("%w: card question cannot be empty", ErrValidation)

	// ErrCardAnswerEmpty is returned when a card's answer is empty.
	ErrCardAnswerEmpty = fmt.Errorf("%w: card answer cannot be empty", ErrValidation)

	// ErrCardReviewCountNegative is returned when a card's review count is below zero.
	ErrCardReviewCountNegative = fmt.Errorf("%w: card review count cannot be negative", ErrValidation)
)

// Difficulty labels a card can carry. The set is fixed; anything else fails
// validation.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Card represents a question/answer flashcard belonging to a deck.
//
// ReviewCount, IsFullyReviewed, NextReviewAt and LastReviewedAt are owned by
// the review workflow: they start at their zero state and are only mutated by
// applying a scheduler advancement. NextReviewAt is nil exactly when the card
// is fully reviewed (or not yet scheduled). CreatedAt is immutable and anchors
// the first-interval calculation.
type Card struct {
	ID              uuid.UUID  `json:"id"`
	DeckID          uuid.UUID  `json:"deck_id"`
	Question        string     `json:"question"`
	Answer          string     `json:"answer"`
	DifficultyLevel string     `json:"difficulty_level"`
	ReviewCount     int        `json:"review_count"`
	IsFullyReviewed bool       `json:"is_fully_reviewed"`
	NextReviewAt    *time.Time `json:"next_review_at,omitempty"`
	LastReviewedAt  *time.Time `json:"last_reviewed_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// NewCard creates a new Card in its initial review state (never reviewed,
// not yet scheduled). It generates a new UUID for the card ID and sets the
// creation timestamp. The caller is responsible for assigning the first
// review schedule via the srs package before persisting.
// Returns an error if validation fails.
func NewCard(deckID uuid.UUID, question, answer, difficultyLevel string) (*Card, error) {
	card := &Card{
		ID:              uuid.New(),
		DeckID:          deckID,
		Question:        strings.TrimSpace(question),
		Answer:          strings.TrimSpace(answer),
		DifficultyLevel: difficultyLevel,
		ReviewCount:     0,
		IsFullyReviewed: false,
		NextReviewAt:    nil,
		LastReviewedAt:  nil,
		CreatedAt:       time.Now().UTC(),
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Card has valid data.
// Returns an error if any field fails validation.
func (c *Card) Validate() error {
	if c.ID == uuid.Nil {
		return ErrCardIDEmpty
	}

	if c.DeckID == uuid.Nil {
		return ErrCardDeckIDEmpty
	}

	if strings.TrimSpace(c.Question) == "" {
		return ErrCardQuestionEmpty
	}

	if strings.TrimSpace(c.Answer) == "" {
		return ErrCardAnswerEmpty
	}

	switch c.DifficultyLevel {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
	default:
		return ErrInvalidDifficulty
	}

	if c.ReviewCount < 0 {
		return ErrCardReviewCountNegative
	}

	return nil
}
