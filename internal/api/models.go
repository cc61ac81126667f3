package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/recallapp/recall-api/internal/domain"
	"github.com/recallapp/recall-api/internal/domain/srs"
	"github.com/recallapp/recall-api/internal/service/review"
)

// Common request/response structures

// SubmitReviewRequest defines the payload for the review submission endpoint.
type SubmitReviewRequest struct {
	Answer string  `json:"answer" validate:"required"`
	Note   *string `json:"note,omitempty"`
}

// SubmitReviewResponse defines the successful response for a review submission.
type SubmitReviewResponse struct {
	ReviewID        uuid.UUID  `json:"review_id"`
	CardID          uuid.UUID  `json:"card_id"`
	Score           float64    `json:"score"`
	Stage           string     `json:"stage"`
	ReviewCount     int        `json:"review_count"`
	IsFullyReviewed bool       `json:"is_fully_reviewed"`
	NextReviewAt    *time.Time `json:"next_review_at"`
}

// CardResponse represents the response data for a card.
type CardResponse struct {
	ID              uuid.UUID  `json:"id"`
	DeckID          uuid.UUID  `json:"deck_id"`
	Question        string     `json:"question"`
	Answer          string     `json:"answer"`
	DifficultyLevel string     `json:"difficulty_level"`
	ReviewCount     int        `json:"review_count"`
	Stage           string     `json:"stage"`
	IsFullyReviewed bool       `json:"is_fully_reviewed"`
	NextReviewAt    *time.Time `json:"next_review_at"`
	LastReviewedAt  *time.Time `json:"last_reviewed_at"`
	CreatedAt       time.Time  `json:"created_at"`
}

// ReviewResponse represents one review event in a card's history.
type ReviewResponse struct {
	ID         uuid.UUID `json:"id"`
	CardID     uuid.UUID `json:"card_id"`
	UserAnswer string    `json:"user_answer"`
	Score      float64   `json:"score"`
	Note       *string   `json:"note,omitempty"`
	ReviewedAt time.Time `json:"reviewed_at"`
}

// resultToResponse transforms a service result into the response shape.
func resultToResponse(result *review.Result) SubmitReviewResponse {
	return SubmitReviewResponse{
		ReviewID:        result.ReviewID,
		CardID:          result.CardID,
		Score:           result.Score,
		Stage:           string(result.Stage),
		ReviewCount:     result.ReviewCount,
		IsFullyReviewed: result.IsFullyReviewed,
		NextReviewAt:    result.NextReviewAt,
	}
}

// cardToResponse transforms a domain card into the response shape.
func cardToResponse(card *domain.Card, scheduler srs.Service) CardResponse {
	return CardResponse{
		ID:              card.ID,
		DeckID:          card.DeckID,
		Question:        card.Question,
		Answer:          card.Answer,
		DifficultyLevel: card.DifficultyLevel,
		ReviewCount:     card.ReviewCount,
		Stage:           string(scheduler.StageFor(card.ReviewCount)),
		IsFullyReviewed: card.IsFullyReviewed,
		NextReviewAt:    card.NextReviewAt,
		LastReviewedAt:  card.LastReviewedAt,
		CreatedAt:       card.CreatedAt,
	}
}

// reviewToResponse transforms a domain review into the response shape.
func reviewToResponse(r *domain.Review) ReviewResponse {
	return ReviewResponse{
		ID:         r.ID,
		CardID:     r.CardID,
		UserAnswer: r.UserAnswer,
		Score:      r.Score,
		Note:       r.Note,
		ReviewedAt: r.ReviewedAt,
	}
}
