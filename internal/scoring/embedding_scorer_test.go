package scoring

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubEmbedder returns fixed unit-ish vectors keyed by exact text, so tests
// control similarity deterministically.
type stubEmbedder struct {
	vectors  map[string][]float32
	err      error
	gotTexts []string
}

func (s *stubEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	s.gotTexts = texts
	if s.err != nil {
		return nil, s.err
	}
	out := make([][]float32, 0, len(texts))
	for _, text := range texts {
		v, ok := s.vectors[text]
		if !ok {
			// Unknown text gets an orthogonal default.
			v = []float32{0, 0, 1}
		}
		out = append(out, v)
	}
	return out, nil
}

func TestEmbeddingScorerScore(t *testing.T) {
	t.Parallel()
	reference := "Paris is the capital of France"

	t.Run("identical answers score above 90", func(t *testing.T) {
		embedder := &stubEmbedder{vectors: map[string][]float32{
			reference: {0.2, 0.7, 0.1},
		}}
		scorer := NewEmbeddingScorer(embedder, nil)

		score, err := scorer.Score(context.Background(), reference, reference)
		require.NoError(t, err)
		assert.Greater(t, score, 90.0)
	})

	t.Run("unrelated answers score below 60", func(t *testing.T) {
		embedder := &stubEmbedder{vectors: map[string][]float32{
			reference: {1, 0, 0},
			"London":  {0.2, 0.98, 0},
		}}
		scorer := NewEmbeddingScorer(embedder, nil)

		score, err := scorer.Score(context.Background(), "London", reference)
		require.NoError(t, err)
		assert.Less(t, score, 60.0)
	})

	t.Run("inputs are trimmed before embedding", func(t *testing.T) {
		embedder := &stubEmbedder{vectors: map[string][]float32{
			reference: {1, 1, 0},
		}}
		scorer := NewEmbeddingScorer(embedder, nil)

		_, err := scorer.Score(context.Background(), "  "+reference+"\n", "\t"+reference)
		require.NoError(t, err)
		require.Len(t, embedder.gotTexts, 2)
		assert.Equal(t, reference, embedder.gotTexts[0])
		assert.Equal(t, reference, embedder.gotTexts[1])
	})

	t.Run("whitespace-only answer is rejected before embedding", func(t *testing.T) {
		embedder := &stubEmbedder{}
		scorer := NewEmbeddingScorer(embedder, nil)

		_, err := scorer.Score(context.Background(), "   \t ", reference)
		assert.ErrorIs(t, err, ErrEmptyText)
		assert.Nil(t, embedder.gotTexts, "embedder must not be called for empty input")
	})

	t.Run("provider failure maps to ErrUnavailable", func(t *testing.T) {
		embedder := &stubEmbedder{err: errors.New("connection refused")}
		scorer := NewEmbeddingScorer(embedder, nil)

		_, err := scorer.Score(context.Background(), "Paris", reference)
		assert.ErrorIs(t, err, ErrUnavailable)
		assert.Contains(t, err.Error(), "connection refused")
	})

	t.Run("negative similarity clamps to zero", func(t *testing.T) {
		embedder := &stubEmbedder{vectors: map[string][]float32{
			reference:  {1, 0, 0},
			"opposite": {-1, 0, 0},
		}}
		scorer := NewEmbeddingScorer(embedder, nil)

		score, err := scorer.Score(context.Background(), "opposite", reference)
		require.NoError(t, err)
		assert.Equal(t, 0.0, score)
	})
}

func TestCosineSimilarity(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		a, b     []float32
		expected float64
		wantErr  bool
	}{
		{name: "identical vectors", a: []float32{1, 2, 3}, b: []float32{1, 2, 3}, expected: 1},
		{name: "orthogonal vectors", a: []float32{1, 0}, b: []float32{0, 1}, expected: 0},
		{name: "opposite vectors", a: []float32{1, 0}, b: []float32{-1, 0}, expected: -1},
		{name: "dimension mismatch", a: []float32{1, 0}, b: []float32{1, 0, 0}, wantErr: true},
		{name: "empty vectors", a: nil, b: nil, wantErr: true},
		{name: "zero magnitude", a: []float32{0, 0}, b: []float32{1, 1}, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := cosineSimilarity(tc.a, tc.b)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidEmbedding)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tc.expected, got, 1e-9)
		})
	}
}

func TestScoreLongAnswersStayInRange(t *testing.T) {
	t.Parallel()
	long := strings.Repeat("the capital of France is Paris ", 40)
	embedder := &stubEmbedder{vectors: map[string][]float32{
		strings.TrimSpace(long): {0.4, 0.3, 0.6},
	}}
	scorer := NewEmbeddingScorer(embedder, nil)

	score, err := scorer.Score(context.Background(), long, long)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, score, 0.0)
	assert.LessOrEqual(t, score, 100.0)
}
