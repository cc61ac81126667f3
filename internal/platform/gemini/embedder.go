package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"google.golang.org/genai"

	"github.com/recallapp/recall-api/internal/config"
	"github.com/recallapp/recall-api/internal/scoring"
)

// embedFunc is the signature of the genai embedding call. It is a field on
// the embedder so tests can substitute a stub without a network client.
type embedFunc func(
	ctx context.Context,
	model string,
	contents []*genai.Content,
	cfg *genai.EmbedContentConfig,
) (*genai.EmbedContentResponse, error)

// GeminiEmbedder implements the scoring.Embedder interface using Google's
// Gemini embedding API.
type GeminiEmbedder struct {
	logger *slog.Logger
	config config.EmbeddingConfig
	model  string
	embed  embedFunc
}

// Ensure GeminiEmbedder implements scoring.Embedder
var _ scoring.Embedder = (*GeminiEmbedder)(nil)

// NewGeminiEmbedder creates a new GeminiEmbedder with the provided configuration.
func NewGeminiEmbedder(
	ctx context.Context,
	logger *slog.Logger,
	cfg config.EmbeddingConfig,
) (*GeminiEmbedder, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", ErrInvalidConfig)
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", ErrInvalidConfig, err)
	}

	return &GeminiEmbedder{
		logger: logger.With(slog.String("component", "gemini_embedder")),
		config: cfg,
		model:  cfg.ModelName,
		embed:  client.Models.EmbedContent,
	}, nil
}

// Embed implements scoring.Embedder.Embed.
// It requests embeddings for all texts in a single batched API call, retrying
// transient failures with exponential backoff and jitter.
func (e *GeminiEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("%w: no texts to embed", ErrInvalidConfig)
	}

	contents := make([]*genai.Content, 0, len(texts))
	for _, text := range texts {
		contents = append(contents, genai.Text(text)...)
	}

	resp, err := e.callWithRetry(ctx, contents)
	if err != nil {
		return nil, err
	}

	if resp == nil || len(resp.Embeddings) != len(texts) {
		got := 0
		if resp != nil {
			got = len(resp.Embeddings)
		}
		e.logger.ErrorContext(ctx, "unexpected embedding count",
			slog.Int("want", len(texts)),
			slog.Int("got", got))
		return nil, fmt.Errorf("%w: expected %d embeddings, got %d",
			ErrInvalidResponse, len(texts), got)
	}

	vectors := make([][]float32, len(texts))
	for i, embedding := range resp.Embeddings {
		if embedding == nil || len(embedding.Values) == 0 {
			return nil, fmt.Errorf("%w: empty embedding at index %d", ErrInvalidResponse, i)
		}
		vectors[i] = embedding.Values
	}

	return vectors, nil
}

// callWithRetry makes the embedding API call with exponential backoff.
// Each retry waits baseDelay * 2^attempt scaled by a jitter factor in
// [0.5, 1.0).
func (e *GeminiEmbedder) callWithRetry(
	ctx context.Context,
	contents []*genai.Content,
) (*genai.EmbedContentResponse, error) {
	maxRetries := e.config.MaxRetries
	baseDelaySeconds := e.config.RetryDelaySeconds
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	if maxRetries < 0 {
		e.logger.WarnContext(ctx, "invalid max retries value, using default",
			slog.Int("max_retries", 3))
		maxRetries = 3
	}
	if baseDelaySeconds < 1 {
		e.logger.WarnContext(ctx, "invalid retry delay value, using default",
			slog.Int("base_delay_seconds", 2))
		baseDelaySeconds = 2
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		e.logger.DebugContext(ctx, "calling embedding API",
			slog.Int("attempt", attempt+1),
			slog.Int("max_attempts", maxRetries+1),
			slog.String("model", e.model))

		resp, err := e.embed(ctx, e.model, contents, nil)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		e.logger.WarnContext(ctx, "embedding API call failed",
			slog.String("error", err.Error()),
			slog.Int("attempt", attempt+1))

		if attempt == maxRetries {
			break
		}

		backoffSeconds := float64(baseDelaySeconds) * math.Pow(2, float64(attempt))
		jitterFactor := 0.5 + rng.Float64()*0.5
		delay := time.Duration(backoffSeconds * jitterFactor * float64(time.Second))

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", ErrEmbeddingFailed, ctx.Err())
		case <-time.After(delay):
		}
	}

	return nil, fmt.Errorf("%w after %d attempts: %v", ErrEmbeddingFailed, maxRetries+1, lastErr)
}
