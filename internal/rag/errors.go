// ABOUTME: Closed error taxonomy for the RAG pipeline
// ABOUTME: Callers match with errors.Is; causes are preserved via %w wrapping
package rag

import "errors"

var (
	// ErrInvalidQuery means the query was empty after trimming.
	// Recoverable: the caller should re-prompt.
	ErrInvalidQuery = errors.New("query must not be empty")

	// ErrEmbeddingUnavailable means the embedding backend could not be
	// invoked. Always wrapped inside ErrRetrievalFailed by the engine.
	ErrEmbeddingUnavailable = errors.New("embedding backend unavailable")

	// ErrRetrievalFailed wraps any embedding or index-search failure.
	// Recoverable per call; the retrieved context for the turn is lost.
	ErrRetrievalFailed = errors.New("context retrieval failed")

	// ErrGenerationFailed wraps a generation backend failure.
	// Recoverable per call; the caller may retry the same query.
	ErrGenerationFailed = errors.New("answer generation failed")

	// ErrGenerationTimeout means the generation call exceeded the
	// configured timeout. Recoverable per call.
	ErrGenerationTimeout = errors.New("answer generation timed out")
)
