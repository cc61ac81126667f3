package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/recallapp/recall-api/internal/domain"
	"github.com/recallapp/recall-api/internal/platform/logger"
	"github.com/recallapp/recall-api/internal/store"
)

// PostgresCardStore implements the store.CardStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCardStore creates a new PostgreSQL implementation of the CardStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresCardStore(db store.DBTX, logger *slog.Logger) *PostgresCardStore {
	if db == nil {
		panic("db cannot be nil") // ALLOW-PANIC: constructor enforces non-nil dependency
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCardStore{
		db:     db,
		logger: logger.With(slog.String("component", "card_store")),
	}
}

// Ensure PostgresCardStore implements store.CardStore interface
var _ store.CardStore = (*PostgresCardStore)(nil)

// WithTx implements store.CardStore.WithTx
// It returns a new CardStore instance that uses the provided transaction.
func (s *PostgresCardStore) WithTx(tx *sql.Tx) store.CardStore {
	return &PostgresCardStore{
		db:     tx,
		logger: s.logger,
	}
}

// ownedCardQuery selects a card joined through its deck and folder so that
// results are constrained to the owning user. Cards owned by other users are
// indistinguishable from missing cards.
const ownedCardQuery = `
	SELECT c.id, c.deck_id, c.question, c.answer, c.difficulty_level,
	       c.review_count, c.is_fully_reviewed, c.next_review_at,
	       c.last_reviewed_at, c.created_at
	FROM cards c
	JOIN decks d ON d.id = c.deck_id
	JOIN folders f ON f.id = d.folder_id
	WHERE c.id = $1 AND f.user_id = $2
`

// GetForUser implements store.CardStore.GetForUser
// It retrieves a card by ID, constrained to the given owner.
// Returns store.ErrCardNotFound if the card does not exist or is owned by
// another user.
func (s *PostgresCardStore) GetForUser(
	ctx context.Context,
	userID, cardID uuid.UUID,
) (*domain.Card, error) {
	return s.getForUser(ctx, userID, cardID, false)
}

// GetForUserWithLock implements store.CardStore.GetForUserWithLock
// It behaves like GetForUser but acquires a row-level lock on the card with
// SELECT ... FOR UPDATE. It must be called within a transaction.
func (s *PostgresCardStore) GetForUserWithLock(
	ctx context.Context,
	userID, cardID uuid.UUID,
) (*domain.Card, error) {
	return s.getForUser(ctx, userID, cardID, true)
}

func (s *PostgresCardStore) getForUser(
	ctx context.Context,
	userID, cardID uuid.UUID,
	forUpdate bool,
) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := ownedCardQuery
	if forUpdate {
		// Lock only the card row; the joined deck and folder rows stay
		// untouched so unrelated operations are not serialized.
		query += " FOR UPDATE OF c"
	}

	row := s.db.QueryRowContext(ctx, query, cardID, userID)
	card, err := scanCard(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("card not found",
				slog.String("card_id", cardID.String()),
				slog.String("user_id", userID.String()))
			return nil, store.ErrCardNotFound
		}
		log.Error("failed to get card",
			slog.String("error", err.Error()),
			slog.String("card_id", cardID.String()))
		return nil, MapError(err)
	}

	return card, nil
}

// ListDue implements store.CardStore.ListDue
// It retrieves the user's cards due at the given instant, ordered ascending
// by next_review_at with never-scheduled cards first. Fully-reviewed cards
// are excluded.
func (s *PostgresCardStore) ListDue(
	ctx context.Context,
	userID uuid.UUID,
	now time.Time,
) ([]*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT c.id, c.deck_id, c.question, c.answer, c.difficulty_level,
		       c.review_count, c.is_fully_reviewed, c.next_review_at,
		       c.last_reviewed_at, c.created_at
		FROM cards c
		JOIN decks d ON d.id = c.deck_id
		JOIN folders f ON f.id = d.folder_id
		WHERE f.user_id = $1
		  AND c.is_fully_reviewed = FALSE
		  AND (c.next_review_at IS NULL OR c.next_review_at <= $2)
		ORDER BY c.next_review_at ASC NULLS FIRST, c.created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, userID, now)
	if err != nil {
		log.Error("failed to list due cards",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	cards, err := collectCards(rows)
	if err != nil {
		log.Error("failed to scan due cards",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}

	log.Debug("listed due cards",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(cards)))
	return cards, nil
}

// ListForUser implements store.CardStore.ListForUser
// It retrieves all of the user's cards, oldest first.
func (s *PostgresCardStore) ListForUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT c.id, c.deck_id, c.question, c.answer, c.difficulty_level,
		       c.review_count, c.is_fully_reviewed, c.next_review_at,
		       c.last_reviewed_at, c.created_at
		FROM cards c
		JOIN decks d ON d.id = c.deck_id
		JOIN folders f ON f.id = d.folder_id
		WHERE f.user_id = $1
		ORDER BY c.created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to list cards",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	cards, err := collectCards(rows)
	if err != nil {
		log.Error("failed to scan cards",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}

	return cards, nil
}

// UpdateReviewState implements store.CardStore.UpdateReviewState
// It persists only the scheduling fields of a card; question and answer
// content is never touched here.
// Returns store.ErrCardNotFound if the card does not exist.
func (s *PostgresCardStore) UpdateReviewState(ctx context.Context, card *domain.Card) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := card.Validate(); err != nil {
		log.Warn("card validation failed during review state update",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return err
	}

	query := `
		UPDATE cards
		SET review_count = $1, is_fully_reviewed = $2,
		    next_review_at = $3, last_reviewed_at = $4
		WHERE id = $5
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		card.ReviewCount,
		card.IsFullyReviewed,
		nullableTime(card.NextReviewAt),
		nullableTime(card.LastReviewedAt),
		card.ID,
	)

	if err != nil {
		log.Error("failed to update card review state",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "card"); err != nil {
		log.Debug("card not found for review state update",
			slog.String("card_id", card.ID.String()))
		return store.ErrCardNotFound
	}

	log.Info("card review state updated",
		slog.String("card_id", card.ID.String()),
		slog.Int("review_count", card.ReviewCount),
		slog.Bool("is_fully_reviewed", card.IsFullyReviewed))
	return nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scanning code.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanCard populates a domain.Card from a row produced by one of the card
// queries above. Column order must match.
func scanCard(row rowScanner) (*domain.Card, error) {
	var card domain.Card
	var nextReviewAt, lastReviewedAt sql.NullTime

	err := row.Scan(
		&card.ID,
		&card.DeckID,
		&card.Question,
		&card.Answer,
		&card.DifficultyLevel,
		&card.ReviewCount,
		&card.IsFullyReviewed,
		&nextReviewAt,
		&lastReviewedAt,
		&card.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if nextReviewAt.Valid {
		t := nextReviewAt.Time
		card.NextReviewAt = &t
	}
	if lastReviewedAt.Valid {
		t := lastReviewedAt.Time
		card.LastReviewedAt = &t
	}

	return &card, nil
}

// collectCards drains a result set of card rows.
func collectCards(rows *sql.Rows) ([]*domain.Card, error) {
	var cards []*domain.Card
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return cards, nil
}

// nullableTime converts an optional timestamp to its SQL representation.
func nullableTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
