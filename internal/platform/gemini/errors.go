package gemini

import "errors"

// Common errors returned by the gemini package
var (
	// ErrInvalidConfig indicates the embedding configuration is incomplete
	// or invalid.
	ErrInvalidConfig = errors.New("invalid embedding configuration")

	// ErrInvalidResponse indicates the API returned a response that cannot
	// be used (missing embeddings, wrong count).
	ErrInvalidResponse = errors.New("invalid response from embedding API")

	// ErrEmbeddingFailed indicates the API call failed after exhausting
	// retries.
	ErrEmbeddingFailed = errors.New("embedding request failed")
)
