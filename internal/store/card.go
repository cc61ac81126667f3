package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/recallapp/recall-api/internal/domain"
)

// CardStore defines the interface for card data persistence.
//
// Ownership note: methods taking a userID resolve visibility through the
// cards → decks → folders chain; a card that exists but belongs to another
// user is reported as ErrCardNotFound, never as a distinct condition.
type CardStore interface {
	// GetForUser retrieves a card by ID, constrained to the given owner.
	// Returns ErrCardNotFound if the card does not exist or is not owned by
	// the user.
	GetForUser(ctx context.Context, userID, cardID uuid.UUID) (*domain.Card, error)

	// GetForUserWithLock behaves like GetForUser but acquires a row-level
	// lock with SELECT ... FOR UPDATE. It must be called within a
	// transaction; the lock serializes concurrent review submissions against
	// the same card.
	GetForUserWithLock(ctx context.Context, userID, cardID uuid.UUID) (*domain.Card, error)

	// ListDue retrieves the user's cards due at the given instant, ordered
	// ascending by next_review_at with never-scheduled cards first.
	// Fully-reviewed cards are excluded.
	ListDue(ctx context.Context, userID uuid.UUID, now time.Time) ([]*domain.Card, error)

	// ListForUser retrieves all of the user's cards, used by dashboard
	// aggregation.
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Card, error)

	// UpdateReviewState persists the scheduling fields of a card
	// (review_count, is_fully_reviewed, next_review_at, last_reviewed_at).
	// Question/answer content is never touched by this method.
	// Returns ErrCardNotFound if the card does not exist.
	UpdateReviewState(ctx context.Context, card *domain.Card) error

	// WithTx returns a new CardStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller
	// (typically a service via RunInTransaction).
	WithTx(tx *sql.Tx) CardStore
}
