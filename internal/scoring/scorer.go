package scoring

import "context"

// Scorer computes a 0-100 accuracy score for a learner's answer against the
// card's stored reference answer.
type Scorer interface {
	// Score compares the two texts and returns their semantic similarity as
	// a percentage in [0, 100]. Both inputs are trimmed of surrounding
	// whitespace before comparison; inputs that are empty after trimming are
	// rejected with ErrEmptyText. Provider failures surface as
	// ErrUnavailable (wrapped).
	Score(ctx context.Context, userAnswer, referenceAnswer string) (float64, error)
}

// Embedder is the capability the scorer depends on: turn sentences into
// vectors. Implementations embed all texts in a single request so the two
// sides of a comparison come from the same model invocation.
type Embedder interface {
	// Embed returns one vector per input text, in input order.
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}
