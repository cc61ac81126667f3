// Package gemini implements the scoring.Embedder interface using Google's
// Gemini embedding API.
package gemini
