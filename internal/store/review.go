package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/recallapp/recall-api/internal/domain"
)

// ReviewStore defines the interface for review-event persistence.
// Reviews are append-only: there is no update operation, and deletion happens
// only through the card cascade.
type ReviewStore interface {
	// Create appends a new review event.
	// Returns ErrInvalidEntity if the referenced card or user does not exist.
	Create(ctx context.Context, review *domain.Review) error

	// ListForCard retrieves the most recent reviews for a card submitted by
	// the given user, newest first, capped at limit.
	ListForCard(ctx context.Context, userID, cardID uuid.UUID, limit int) ([]*domain.Review, error)

	// ListForUser retrieves all review events submitted by the user, oldest
	// first. Used by dashboard aggregation (average score, study streak).
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Review, error)

	// WithTx returns a new ReviewStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) ReviewStore
}
