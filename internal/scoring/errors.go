package scoring

import "errors"

// Common errors returned by the scoring package
var (
	// ErrUnavailable is returned when the embedding provider cannot be
	// reached or is misconfigured. Callers decide whether to retry or reject
	// the submission; a score is never silently defaulted.
	ErrUnavailable = errors.New("scoring unavailable: embedding provider failed")

	// ErrEmptyText is returned when a text to score is empty after trimming.
	ErrEmptyText = errors.New("text to score cannot be empty")

	// ErrInvalidEmbedding is returned when the provider responds with
	// malformed vectors (wrong count, mismatched dimensions, or all zeros).
	ErrInvalidEmbedding = errors.New("invalid embedding from provider")
)
