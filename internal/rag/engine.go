// ABOUTME: Engine coordinates embed, retrieve, assemble, generate into one Answer call
// ABOUTME: Stateless per call; collaborators are immutable after construction
package rag

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/harper/healthbot/internal/models"
)

// Generator invokes the hosted language model with an assembled prompt
type Generator interface {
	Generate(ctx context.Context, system, user string) (string, error)
}

// DefaultGenerationTimeout bounds the generation call, the highest-latency
// step in the pipeline.
const DefaultGenerationTimeout = 30 * time.Second

// Engine is the only entry point of the RAG pipeline. Safe for concurrent
// Answer calls against one instance: no per-call state is shared, and the
// retriever, index, and generator are read-only after construction.
type Engine struct {
	retriever *Retriever
	generator Generator
	timeout   time.Duration
}

// NewEngine creates an Engine from already-initialized collaborators.
// timeout bounds each generation call; zero selects the default.
func NewEngine(retriever *Retriever, generator Generator, timeout time.Duration) *Engine {
	if timeout <= 0 {
		timeout = DefaultGenerationTimeout
	}
	return &Engine{
		retriever: retriever,
		generator: generator,
		timeout:   timeout,
	}
}

// Answer runs one query through the full pipeline. Every failure is one of
// the taxonomy errors in errors.go with the underlying cause wrapped; the
// caller distinguishes outcomes with errors.Is, never by message text.
func (e *Engine) Answer(ctx context.Context, query string) (*models.Answer, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrInvalidQuery
	}

	chunks, err := e.retriever.Retrieve(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRetrievalFailed, err)
	}

	// Zero matches still reaches generation; the template's
	// insufficient-information branch handles it.
	req := Assemble(query, chunks)

	genCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	text, err := e.generator.Generate(genCtx, req.System, req.User)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, fmt.Errorf("%w after %v: %w", ErrGenerationTimeout, e.timeout, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	return &models.Answer{
		Text:    text,
		Context: chunks,
	}, nil
}

// Search retrieves ranked context without invoking generation
func (e *Engine) Search(ctx context.Context, query string) ([]models.ScoredChunk, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrInvalidQuery
	}

	chunks, err := e.retriever.Retrieve(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRetrievalFailed, err)
	}
	return chunks, nil
}
