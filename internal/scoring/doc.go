// Package scoring computes how accurately a learner's free-text answer
// matches a card's reference answer.
//
// The comparison is semantic, not lexical: both strings are embedded with a
// sentence-level text-embedding model and scored by cosine similarity, scaled
// to a 0-100 percentage. The embedding model sits behind the Embedder
// interface so the package has no dependency on a specific provider and tests
// can substitute a deterministic stub.
package scoring
