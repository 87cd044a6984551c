// ABOUTME: Hand-written fakes for the pipeline collaborators
// ABOUTME: Shared across retriever and engine tests
package rag

import (
	"context"
	"fmt"

	"github.com/harper/healthbot/internal/models"
)

// fakeEmbedder returns a fixed vector per text, deterministically
type fakeEmbedder struct {
	vectors map[string][]float64
	err     error
	calls   int
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float64, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if v, ok := f.vectors[text]; ok {
		return v, nil
	}
	return []float64{0, 0, 1}, nil
}

// fakeIndex searches a fixed chunk set, or fails
type fakeIndex struct {
	search func(vector []float64, k int) ([]models.ScoredChunk, error)
}

func (f *fakeIndex) Search(vector []float64, k int) ([]models.ScoredChunk, error) {
	return f.search(vector, k)
}

// fakeGenerator delegates to a function so tests can hang, fail, or echo
type fakeGenerator struct {
	generate func(ctx context.Context, system, user string) (string, error)
}

func (f *fakeGenerator) Generate(ctx context.Context, system, user string) (string, error) {
	return f.generate(ctx, system, user)
}

// scored builds a ScoredChunk for test fixtures
func scored(id, content string, score float64) models.ScoredChunk {
	return models.ScoredChunk{
		Chunk: models.Chunk{
			ChunkID: id,
			Source:  fmt.Sprintf("%s.txt", id),
			Content: content,
		},
		Score: score,
	}
}
