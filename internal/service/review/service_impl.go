package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/recallapp/recall-api/internal/domain"
	"github.com/recallapp/recall-api/internal/domain/srs"
	"github.com/recallapp/recall-api/internal/events"
	"github.com/recallapp/recall-api/internal/platform/logger"
	"github.com/recallapp/recall-api/internal/scoring"
	"github.com/recallapp/recall-api/internal/store"
)

// conflictRetries is the number of additional attempts made when a
// transaction fails with a serialization conflict.
const conflictRetries = 1

// Verify interface compliance at compile time
var _ ReviewService = (*reviewServiceImpl)(nil)

// reviewServiceImpl implements the ReviewService interface.
type reviewServiceImpl struct {
	txRunner    store.TransactionRunner
	cardStore   store.CardStore
	reviewStore store.ReviewStore
	srsService  srs.Service
	scorer      scoring.Scorer
	emitter     events.EventEmitter
	logger      *slog.Logger
}

// NewReviewService creates a new ReviewService implementation.
// The emitter may be nil, in which case no events are published.
func NewReviewService(
	txRunner store.TransactionRunner,
	cardStore store.CardStore,
	reviewStore store.ReviewStore,
	srsService srs.Service,
	scorer scoring.Scorer,
	emitter events.EventEmitter,
	logger *slog.Logger,
) ReviewService {
	if txRunner == nil {
		panic("txRunner cannot be nil") // ALLOW-PANIC: constructor enforces non-nil dependency
	}
	if cardStore == nil {
		panic("cardStore cannot be nil") // ALLOW-PANIC: constructor enforces non-nil dependency
	}
	if reviewStore == nil {
		panic("reviewStore cannot be nil") // ALLOW-PANIC: constructor enforces non-nil dependency
	}
	if srsService == nil {
		panic("srsService cannot be nil") // ALLOW-PANIC: constructor enforces non-nil dependency
	}
	if scorer == nil {
		panic("scorer cannot be nil") // ALLOW-PANIC: constructor enforces non-nil dependency
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &reviewServiceImpl{
		txRunner:    txRunner,
		cardStore:   cardStore,
		reviewStore: reviewStore,
		srsService:  srsService,
		scorer:      scorer,
		emitter:     emitter,
		logger:      logger.With(slog.String("component", "review_service")),
	}
}

// SubmitReview implements ReviewService.SubmitReview.
//
// Scoring runs before the transaction opens so the row lock is never held
// across a network call to the embedding backend. The card is re-read under
// lock inside the transaction; the scheduling decision is based on that
// locked state, not the pre-scoring read.
func (s *reviewServiceImpl) SubmitReview(
	ctx context.Context,
	userID, cardID uuid.UUID,
	submission Submission,
) (*Result, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	answer := strings.TrimSpace(submission.Answer)
	if answer == "" {
		log.Warn("empty answer submitted",
			slog.String("user_id", userID.String()),
			slog.String("card_id", cardID.String()))
		return nil, ErrEmptyAnswer
	}

	log.Debug("processing review submission",
		slog.String("user_id", userID.String()),
		slog.String("card_id", cardID.String()))

	card, err := s.cardStore.GetForUser(ctx, userID, cardID)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("card not found for review",
				slog.String("user_id", userID.String()),
				slog.String("card_id", cardID.String()))
			return nil, ErrCardNotFound
		}
		log.Error("failed to load card for review",
			slog.String("error", err.Error()),
			slog.String("card_id", cardID.String()))
		return nil, NewSubmitReviewError("failed to load card", err)
	}

	score, err := s.scorer.Score(ctx, answer, card.Answer)
	if err != nil {
		if errors.Is(err, scoring.ErrUnavailable) {
			log.Error("scoring backend unavailable",
				slog.String("error", err.Error()),
				slog.String("card_id", cardID.String()))
			return nil, fmt.Errorf("%w: %v", ErrScoringUnavailable, err)
		}
		if errors.Is(err, scoring.ErrEmptyText) {
			return nil, ErrEmptyAnswer
		}
		log.Error("failed to score answer",
			slog.String("error", err.Error()),
			slog.String("card_id", cardID.String()))
		return nil, NewSubmitReviewError("failed to score answer", err)
	}

	var result *Result
	for attempt := 0; ; attempt++ {
		result, err = s.recordReview(ctx, userID, cardID, answer, score, submission.Note)
		if err == nil {
			break
		}
		if store.IsConflictError(err) && attempt < conflictRetries {
			log.Warn("review transaction conflict, retrying",
				slog.String("card_id", cardID.String()),
				slog.Int("attempt", attempt+1))
			continue
		}
		if store.IsConflictError(err) {
			return nil, fmt.Errorf("%w: %v", ErrConcurrentReview, err)
		}
		if errors.Is(err, ErrCardNotFound) {
			return nil, err
		}
		log.Error("failed to record review",
			slog.String("error", err.Error()),
			slog.String("card_id", cardID.String()))
		return nil, NewSubmitReviewError("failed to record review", err)
	}

	s.publishReviewRecorded(ctx, userID, result)

	log.Info("review recorded",
		slog.String("user_id", userID.String()),
		slog.String("card_id", cardID.String()),
		slog.String("review_id", result.ReviewID.String()),
		slog.Float64("score", result.Score),
		slog.String("stage", string(result.Stage)))

	return result, nil
}

// recordReview runs the transactional part of a submission: lock the card,
// advance its schedule when applicable, and append the review event.
func (s *reviewServiceImpl) recordReview(
	ctx context.Context,
	userID, cardID uuid.UUID,
	answer string,
	score float64,
	note *string,
) (*Result, error) {
	var result *Result

	err := s.txRunner.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		cardStore := s.cardStore.WithTx(tx)
		reviewStore := s.reviewStore.WithTx(tx)

		card, err := cardStore.GetForUserWithLock(ctx, userID, cardID)
		if err != nil {
			if store.IsNotFoundError(err) {
				return ErrCardNotFound
			}
			return fmt.Errorf("failed to lock card: %w", err)
		}

		now := time.Now().UTC()

		updated := card
		if card.IsFullyReviewed {
			// Optional review of a completed card: the event is recorded and
			// the last-reviewed stamp moves, but count and schedule stay.
			copied := *card
			copied.LastReviewedAt = &now
			updated = &copied
		} else {
			updated, err = s.srsService.Advance(card, now)
			if err != nil {
				return fmt.Errorf("failed to advance card schedule: %w", err)
			}
		}

		if err := cardStore.UpdateReviewState(ctx, updated); err != nil {
			if store.IsNotFoundError(err) {
				return ErrCardNotFound
			}
			return fmt.Errorf("failed to update card schedule: %w", err)
		}

		reviewEvent, err := domain.NewReview(cardID, userID, answer, score, note, now)
		if err != nil {
			return fmt.Errorf("failed to build review: %w", err)
		}

		if err := reviewStore.Create(ctx, reviewEvent); err != nil {
			return fmt.Errorf("failed to save review: %w", err)
		}

		result = &Result{
			ReviewID:        reviewEvent.ID,
			CardID:          updated.ID,
			Score:           score,
			Stage:           s.srsService.StageFor(updated.ReviewCount),
			ReviewCount:     updated.ReviewCount,
			IsFullyReviewed: updated.IsFullyReviewed,
			NextReviewAt:    updated.NextReviewAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// publishReviewRecorded emits a review.recorded event. Emission failures are
// logged but never fail the submission, which has already committed.
func (s *reviewServiceImpl) publishReviewRecorded(
	ctx context.Context,
	userID uuid.UUID,
	result *Result,
) {
	if s.emitter == nil {
		return
	}

	log := logger.FromContextOrDefault(ctx, s.logger)

	event, err := events.NewEvent(events.EventTypeReviewRecorded, events.ReviewRecordedPayload{
		ReviewID:        result.ReviewID,
		CardID:          result.CardID,
		UserID:          userID,
		Score:           result.Score,
		Stage:           string(result.Stage),
		IsFullyReviewed: result.IsFullyReviewed,
	})
	if err != nil {
		log.Warn("failed to build review recorded event",
			slog.String("error", err.Error()),
			slog.String("review_id", result.ReviewID.String()))
		return
	}

	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		log.Warn("failed to emit review recorded event",
			slog.String("error", err.Error()),
			slog.String("review_id", result.ReviewID.String()))
	}
}

// GetDueCards implements ReviewService.GetDueCards.
func (s *reviewServiceImpl) GetDueCards(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	cards, err := s.cardStore.ListDue(ctx, userID, time.Now().UTC())
	if err != nil {
		log.Error("failed to list due cards",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, NewGetDueCardsError("failed to list due cards", err)
	}

	log.Debug("retrieved due cards",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(cards)))
	return cards, nil
}

// GetReviewHistory implements ReviewService.GetReviewHistory.
func (s *reviewServiceImpl) GetReviewHistory(
	ctx context.Context,
	userID, cardID uuid.UUID,
	limit int,
) ([]*domain.Review, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	// Ownership check; history of another user's card reads as not found.
	if _, err := s.cardStore.GetForUser(ctx, userID, cardID); err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrCardNotFound
		}
		log.Error("failed to load card for history",
			slog.String("error", err.Error()),
			slog.String("card_id", cardID.String()))
		return nil, NewGetReviewHistoryError("failed to load card", err)
	}

	reviews, err := s.reviewStore.ListForCard(ctx, userID, cardID, limit)
	if err != nil {
		log.Error("failed to list review history",
			slog.String("error", err.Error()),
			slog.String("card_id", cardID.String()))
		return nil, NewGetReviewHistoryError("failed to list reviews", err)
	}

	return reviews, nil
}
