// ABOUTME: Retriever turns a query into ranked context via embed + index search
// ABOUTME: Propagates failures unchanged; zero matches is a valid outcome
package rag

import (
	"context"
	"fmt"

	"github.com/harper/healthbot/internal/models"
)

// Embedder maps text to a fixed-dimension vector. Implementations must be
// deterministic for identical (model, text) pairs and safe for concurrent use.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// Searcher is the loaded vector index: read-only after initialization.
type Searcher interface {
	Search(vector []float64, k int) ([]models.ScoredChunk, error)
}

// Retriever fetches the top-K most similar chunks for a query. Every query
// is re-embedded; nothing is cached across query texts.
type Retriever struct {
	embedder Embedder
	index    Searcher
	topK     int
	minScore float64
}

// NewRetriever creates a Retriever with a fixed K and an optional minimum
// similarity cutoff (0 keeps all K results).
func NewRetriever(embedder Embedder, index Searcher, topK int, minScore float64) *Retriever {
	return &Retriever{
		embedder: embedder,
		index:    index,
		topK:     topK,
		minScore: minScore,
	}
}

// Retrieve embeds the query and searches the index. An empty result slice
// means no matches cleared the cutoff and is not an error; the prompt
// assembler handles it downstream.
func (r *Retriever) Retrieve(ctx context.Context, query string) ([]models.ScoredChunk, error) {
	vector, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEmbeddingUnavailable, err)
	}

	results, err := r.index.Search(vector, r.topK)
	if err != nil {
		return nil, fmt.Errorf("index search: %w", err)
	}

	if r.minScore <= 0 {
		return results, nil
	}

	// Do not reuse the index's backing array; Searcher implementations may
	// hand out views of shared storage.
	filtered := make([]models.ScoredChunk, 0, len(results))
	for _, res := range results {
		if res.Score >= r.minScore {
			filtered = append(filtered, res)
		}
	}
	return filtered, nil
}
