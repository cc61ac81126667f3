package scoring

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
)

// Verify interface compliance at compile time
var _ Scorer = (*EmbeddingScorer)(nil)

// EmbeddingScorer scores answers by cosine similarity between sentence
// embeddings of the trimmed texts.
type EmbeddingScorer struct {
	embedder Embedder
	logger   *slog.Logger
}

// NewEmbeddingScorer creates a Scorer backed by the given embedding provider.
func NewEmbeddingScorer(embedder Embedder, logger *slog.Logger) *EmbeddingScorer {
	if embedder == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("embedder cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &EmbeddingScorer{
		embedder: embedder,
		logger:   logger.With(slog.String("component", "embedding_scorer")),
	}
}

// Score implements Scorer.Score.
func (s *EmbeddingScorer) Score(ctx context.Context, userAnswer, referenceAnswer string) (float64, error) {
	userAnswer = strings.TrimSpace(userAnswer)
	referenceAnswer = strings.TrimSpace(referenceAnswer)

	if userAnswer == "" || referenceAnswer == "" {
		return 0, ErrEmptyText
	}

	vectors, err := s.embedder.Embed(ctx, []string{userAnswer, referenceAnswer})
	if err != nil {
		s.logger.ErrorContext(ctx, "embedding request failed",
			slog.String("error", err.Error()))
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if len(vectors) != 2 {
		return 0, fmt.Errorf("%w: expected 2 vectors, got %d", ErrInvalidEmbedding, len(vectors))
	}

	similarity, err := cosineSimilarity(vectors[0], vectors[1])
	if err != nil {
		return 0, err
	}

	// Some models emit similarities slightly outside [0, 1]; clamp before
	// scaling so the score stays a valid percentage.
	if similarity < 0 {
		similarity = 0
	}
	if similarity > 1 {
		similarity = 1
	}

	score := similarity * 100

	s.logger.DebugContext(ctx, "answer scored",
		slog.Float64("similarity", similarity),
		slog.Float64("score", score))

	return score, nil
}

// cosineSimilarity computes the cosine of the angle between two vectors in
// float64 to avoid accumulating float32 error over long embeddings.
func cosineSimilarity(a, b []float32) (float64, error) {
	if len(a) == 0 || len(a) != len(b) {
		return 0, fmt.Errorf("%w: dimensions %d and %d", ErrInvalidEmbedding, len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}

	if normA == 0 || normB == 0 {
		return 0, fmt.Errorf("%w: zero-magnitude vector", ErrInvalidEmbedding)
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}
