// ABOUTME: Tests for shared engine initialization
// ABOUTME: Verifies once-only coalescing and init-failure pass-through
package rag

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/harper/healthbot/internal/config"
	"github.com/harper/healthbot/internal/index"
)

func testConfig(indexDir string) *config.Config {
	return &config.Config{
		OpenAIKey:       "test-key",
		ChatModel:       "gpt-4o-mini",
		EmbeddingModel:  "text-embedding-3-small",
		Timeout:         30 * time.Second,
		MaxRetries:      0,
		RetryDelay:      time.Millisecond,
		IndexDir:        indexDir,
		TopK:            4,
		VectorDimension: 1536,
	}
}

func TestOpen_MissingIndex(t *testing.T) {
	_, err := Open(testConfig(t.TempDir()))
	if !errors.Is(err, index.ErrIndexNotFound) {
		t.Errorf("Open(empty dir) = %v, want ErrIndexNotFound to pass through", err)
	}
}

func TestOpen_CorruptIndex(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, index.IndexFileName), []byte("garbage"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	_, err := Open(testConfig(dir))
	if !errors.Is(err, index.ErrIndexCorrupt) {
		t.Errorf("Open(corrupt artifact) = %v, want ErrIndexCorrupt to pass through", err)
	}
	if errors.Is(err, index.ErrIndexNotFound) {
		t.Error("corrupt index misreported as missing")
	}
}

func TestOpen_ModelMismatch(t *testing.T) {
	dir := t.TempDir()
	b, err := index.NewBuilder(dir, "some-other-model", 3)
	if err != nil {
		t.Fatalf("NewBuilder failed: %v", err)
	}
	if err := b.Add("c1", "s.txt", 0, "content", []float64{1, 0, 0}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := b.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	_, err = Open(testConfig(dir))
	if err == nil {
		t.Fatal("Open must reject an index built with a different embedding model")
	}
	if errors.Is(err, index.ErrIndexCorrupt) || errors.Is(err, index.ErrIndexNotFound) {
		t.Errorf("model mismatch should be its own failure, got %v", err)
	}
}

func TestShared_CoalescesConcurrentInit(t *testing.T) {
	ResetShared()
	t.Cleanup(ResetShared)

	// Empty dir: every caller must observe the same terminal failure
	cfg := testConfig(t.TempDir())

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = Shared(cfg)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if !errors.Is(err, index.ErrIndexNotFound) {
			t.Errorf("caller %d saw %v, want the shared ErrIndexNotFound", i, err)
		}
		if err != errs[0] {
			t.Errorf("caller %d saw a different error instance than caller 0", i)
		}
	}
}
