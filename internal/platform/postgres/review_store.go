package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"

	"github.com/recallapp/recall-api/internal/domain"
	"github.com/recallapp/recall-api/internal/platform/logger"
	"github.com/recallapp/recall-api/internal/store"
)

// PostgresReviewStore implements the store.ReviewStore interface
// using a PostgreSQL database as the storage backend.
type PostgresReviewStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresReviewStore creates a new PostgreSQL implementation of the ReviewStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresReviewStore(db store.DBTX, logger *slog.Logger) *PostgresReviewStore {
	if db == nil {
		panic("db cannot be nil") // ALLOW-PANIC: constructor enforces non-nil dependency
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresReviewStore{
		db:     db,
		logger: logger.With(slog.String("component", "review_store")),
	}
}

// Ensure PostgresReviewStore implements store.ReviewStore interface
var _ store.ReviewStore = (*PostgresReviewStore)(nil)

// WithTx implements store.ReviewStore.WithTx
// It returns a new ReviewStore instance that uses the provided transaction.
func (s *PostgresReviewStore) WithTx(tx *sql.Tx) store.ReviewStore {
	return &PostgresReviewStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.ReviewStore.Create
// It appends a new review event to the database.
// Returns store.ErrInvalidEntity if the referenced card or user does not exist.
func (s *PostgresReviewStore) Create(ctx context.Context, review *domain.Review) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := review.Validate(); err != nil {
		log.Warn("review validation failed during create",
			slog.String("error", err.Error()),
			slog.String("review_id", review.ID.String()))
		return err
	}

	query := `
		INSERT INTO reviews (id, card_id, user_id, user_answer, score, note, reviewed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		review.ID,
		review.CardID,
		review.UserID,
		review.UserAnswer,
		review.Score,
		nullableString(review.Note),
		review.ReviewedAt,
	)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during review creation",
				slog.String("error", err.Error()),
				slog.String("review_id", review.ID.String()),
				slog.String("card_id", review.CardID.String()))
			return MapError(err)
		}

		log.Error("failed to create review",
			slog.String("error", err.Error()),
			slog.String("review_id", review.ID.String()),
			slog.String("card_id", review.CardID.String()))
		return MapError(err)
	}

	log.Info("review created successfully",
		slog.String("review_id", review.ID.String()),
		slog.String("card_id", review.CardID.String()),
		slog.Float64("score", review.Score))
	return nil
}

// ListForCard implements store.ReviewStore.ListForCard
// It retrieves the most recent reviews for a card submitted by the given
// user, newest first, capped at limit.
func (s *PostgresReviewStore) ListForCard(
	ctx context.Context,
	userID, cardID uuid.UUID,
	limit int,
) ([]*domain.Review, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, card_id, user_id, user_answer, score, note, reviewed_at
		FROM reviews
		WHERE card_id = $1 AND user_id = $2
		ORDER BY reviewed_at DESC
		LIMIT $3
	`

	rows, err := s.db.QueryContext(ctx, query, cardID, userID, limit)
	if err != nil {
		log.Error("failed to list reviews for card",
			slog.String("error", err.Error()),
			slog.String("card_id", cardID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	reviews, err := collectReviews(rows)
	if err != nil {
		log.Error("failed to scan reviews",
			slog.String("error", err.Error()),
			slog.String("card_id", cardID.String()))
		return nil, MapError(err)
	}

	log.Debug("listed reviews for card",
		slog.String("card_id", cardID.String()),
		slog.Int("count", len(reviews)))
	return reviews, nil
}

// ListForUser implements store.ReviewStore.ListForUser
// It retrieves all review events submitted by the user, oldest first.
func (s *PostgresReviewStore) ListForUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Review, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, card_id, user_id, user_answer, score, note, reviewed_at
		FROM reviews
		WHERE user_id = $1
		ORDER BY reviewed_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to list reviews for user",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	reviews, err := collectReviews(rows)
	if err != nil {
		log.Error("failed to scan reviews",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}

	return reviews, nil
}

// scanReview populates a domain.Review from a row produced by the review
// queries above. Column order must match.
func scanReview(row rowScanner) (*domain.Review, error) {
	var review domain.Review
	var note sql.NullString

	err := row.Scan(
		&review.ID,
		&review.CardID,
		&review.UserID,
		&review.UserAnswer,
		&review.Score,
		&note,
		&review.ReviewedAt,
	)
	if err != nil {
		return nil, err
	}

	if note.Valid {
		n := note.String
		review.Note = &n
	}

	return &review, nil
}

// collectReviews drains a result set of review rows.
func collectReviews(rows *sql.Rows) ([]*domain.Review, error) {
	var reviews []*domain.Review
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reviews, nil
}

// nullableString converts an optional string to its SQL representation.
func nullableString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
