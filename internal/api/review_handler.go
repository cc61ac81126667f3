package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/recallapp/recall-api/internal/api/middleware"
	"github.com/recallapp/recall-api/internal/api/shared"
	"github.com/recallapp/recall-api/internal/domain/srs"
	"github.com/recallapp/recall-api/internal/platform/logger"
	"github.com/recallapp/recall-api/internal/service/review"
)

// ReviewHandler handles review-related HTTP requests
type ReviewHandler struct {
	reviewService review.ReviewService
	srsService    srs.Service
	logger        *slog.Logger
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(
	reviewService review.ReviewService,
	srsService srs.Service,
	logger *slog.Logger,
) *ReviewHandler {
	if reviewService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("reviewService cannot be nil for ReviewHandler")
	}
	if srsService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("srsService cannot be nil for ReviewHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ReviewHandler")
	}

	return &ReviewHandler{
		reviewService: reviewService,
		srsService:    srsService,
		logger:        logger.With(slog.String("component", "review_handler")),
	}
}

// SubmitReview handles POST /cards/{id}/review requests.
// It scores the submitted answer, advances the card's schedule, and records
// the review event for the authenticated user.
func (h *ReviewHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := middleware.GetUserID(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	cardID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid card ID")
		return
	}

	var req SubmitReviewRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Debug("failed to decode review submission",
			slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Answer is required")
		return
	}

	result, err := h.reviewService.SubmitReview(r.Context(), userID, cardID, review.Submission{
		Answer: req.Answer,
		Note:   req.Note,
	})
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
		slog.String("user_id", userID.String()),
		slog.String("card_id", cardID.String()),
		slog.String("review_id", result.ReviewID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, resultToResponse(result))
}

// GetDueCards handles GET /cards/due requests.
// It lists the authenticated user's cards currently due for review.
func (h *ReviewHandler) GetDueCards(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := middleware.GetUserID(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	cards, err := h.reviewService.GetDueCards(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			http.StatusInternalServerError, "Failed to list due cards", err)
		return
	}

	responses := make([]CardResponse, 0, len(cards))
	for _, card := range cards {
		responses = append(responses, cardToResponse(card, h.srsService))
	}

	log.Debug("listed due cards",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(responses)))
	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// GetReviewHistory handles GET /cards/{id}/history requests.
// It lists the most recent reviews of a card, newest first. The optional
// limit query parameter caps the page size.
func (h *ReviewHandler) GetReviewHistory(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := middleware.GetUserID(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	cardID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid card ID")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
	}

	reviews, err := h.reviewService.GetReviewHistory(r.Context(), userID, cardID, limit)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to list review history"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	responses := make([]ReviewResponse, 0, len(reviews))
	for _, rev := range reviews {
		responses = append(responses, reviewToResponse(rev))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}
