package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recallapp/recall-api/internal/domain"
)

func TestNewCard(t *testing.T) {
	t.Parallel()
	deckID := uuid.New()

	t.Run("creates a card in the initial review state", func(t *testing.T) {
		card, err := domain.NewCard(deckID, "  What is the capital of France?  ", "Paris", domain.DifficultyEasy)
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, card.ID)
		assert.Equal(t, deckID, card.DeckID)
		assert.Equal(t, "What is the capital of France?", card.Question, "question should be trimmed")
		assert.Equal(t, 0, card.ReviewCount)
		assert.False(t, card.IsFullyReviewed)
		assert.Nil(t, card.NextReviewAt)
		assert.Nil(t, card.LastReviewedAt)
		assert.False(t, card.CreatedAt.IsZero())
	})

	t.Run("rejects empty question", func(t *testing.T) {
		_, err := domain.NewCard(deckID, "   ", "Paris", domain.DifficultyEasy)
		assert.ErrorIs(t, err, domain.ErrCardQuestionEmpty)
	})

	t.Run("rejects empty answer", func(t *testing.T) {
		_, err := domain.NewCard(deckID, "Question?", "", domain.DifficultyEasy)
		assert.ErrorIs(t, err, domain.ErrCardAnswerEmpty)
	})

	t.Run("rejects nil deck ID", func(t *testing.T) {
		_, err := domain.NewCard(uuid.Nil, "Question?", "Answer", domain.DifficultyEasy)
		assert.ErrorIs(t, err, domain.ErrCardDeckIDEmpty)
	})

	t.Run("rejects unknown difficulty labels", func(t *testing.T) {
		_, err := domain.NewCard(deckID, "Question?", "Answer", "impossible")
		assert.ErrorIs(t, err, domain.ErrInvalidDifficulty)
	})

	t.Run("every validation failure matches ErrValidation", func(t *testing.T) {
		_, cardErr := domain.NewCard(deckID, "", "Answer", domain.DifficultyEasy)
		assert.ErrorIs(t, cardErr, domain.ErrValidation)

		_, difficultyErr := domain.NewCard(deckID, "Question?", "Answer", "impossible")
		assert.ErrorIs(t, difficultyErr, domain.ErrValidation)

		_, reviewErr := domain.NewReview(uuid.New(), uuid.New(), "", 50, nil, testTime(t))
		assert.ErrorIs(t, reviewErr, domain.ErrValidation)
	})
}

func TestCardValidate(t *testing.T) {
	t.Parallel()

	card, err := domain.NewCard(uuid.New(), "Q", "A", domain.DifficultyHard)
	require.NoError(t, err)

	card.ReviewCount = -1
	assert.ErrorIs(t, card.Validate(), domain.ErrCardReviewCountNegative)
}

func TestNewReview(t *testing.T) {
	t.Parallel()
	cardID := uuid.New()
	userID := uuid.New()

	t.Run("creates a valid review event", func(t *testing.T) {
		note := "close enough"
		review, err := domain.NewReview(cardID, userID, "Paris", 92.5, &note, testTime(t))
		require.NoError(t, err)

		assert.Equal(t, cardID, review.CardID)
		assert.Equal(t, userID, review.UserID)
		assert.Equal(t, 92.5, review.Score)
		require.NotNil(t, review.Note)
		assert.Equal(t, note, *review.Note)
	})

	t.Run("rejects empty answers", func(t *testing.T) {
		_, err := domain.NewReview(cardID, userID, "", 50, nil, testTime(t))
		assert.ErrorIs(t, err, domain.ErrReviewAnswerEmpty)
	})

	t.Run("rejects scores outside the percentage range", func(t *testing.T) {
		_, err := domain.NewReview(cardID, userID, "Paris", 101, nil, testTime(t))
		assert.ErrorIs(t, err, domain.ErrReviewScoreOutOfRange)

		_, err = domain.NewReview(cardID, userID, "Paris", -0.1, nil, testTime(t))
		assert.ErrorIs(t, err, domain.ErrReviewScoreOutOfRange)
	})
}
