// ABOUTME: Once-guarded shared engine initialization for process-wide reuse
// ABOUTME: Index and client loading happen at most once; all callers see the same result
package rag

import (
	"fmt"
	"sync"

	"github.com/harper/healthbot/internal/config"
	"github.com/harper/healthbot/internal/index"
	"github.com/harper/healthbot/internal/llm"
	openai "github.com/sashabaranov/go-openai"
)

var (
	sharedOnce   sync.Once
	sharedEngine *Engine
	sharedErr    error
	sharedMu     sync.Mutex
)

// Shared returns the process-wide engine, initializing it on first call.
// Concurrent initializers are coalesced: exactly one Open runs, and every
// caller observes the same engine or the same terminal error. A failed
// initialization stays failed for the process lifetime; index problems
// require a rebuild and restart.
func Shared(cfg *config.Config) (*Engine, error) {
	sharedOnce.Do(func() {
		sharedEngine, sharedErr = Open(cfg)
	})
	return sharedEngine, sharedErr
}

// ResetShared clears the shared engine (for testing)
func ResetShared() {
	sharedMu.Lock()
	defer sharedMu.Unlock()
	sharedOnce = sync.Once{}
	sharedEngine = nil
	sharedErr = nil
}

// Open loads the index artifact and constructs a fully wired engine.
// This is the expensive one-time section: index load plus client setup.
// index.ErrIndexNotFound and index.ErrIndexCorrupt pass through unchanged
// so the shell can pick the right remediation message.
func Open(cfg *config.Config) (*Engine, error) {
	store, err := index.Open(cfg.IndexDir)
	if err != nil {
		return nil, err
	}

	client, err := llm.NewClient(&llm.ClientConfig{
		APIKey:         cfg.OpenAIKey,
		ChatModel:      cfg.ChatModel,
		EmbeddingModel: openai.EmbeddingModel(cfg.EmbeddingModel),
		MaxRetries:     cfg.MaxRetries,
		RetryDelay:     cfg.RetryDelay,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing OpenAI client: %w", err)
	}

	if cfg.EmbeddingModel != store.Model() {
		return nil, fmt.Errorf("index was built with embedding model %q but %q is configured; rebuild the index", store.Model(), cfg.EmbeddingModel)
	}

	retriever := NewRetriever(client, store, cfg.TopK, cfg.MinSimilarity)
	return NewEngine(retriever, client, cfg.Timeout), nil
}
