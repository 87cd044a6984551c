// ABOUTME: Unit tests for configuration loading
// ABOUTME: Verifies defaults, env overrides, and validation errors
package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"HEALTHBOT_CHAT_MODEL", "HEALTHBOT_EMBEDDING_MODEL", "HEALTHBOT_TOP_K",
		"HEALTHBOT_MIN_SIMILARITY", "HEALTHBOT_INDEX_DIR", "OPENAI_TIMEOUT",
		"OPENAI_MAX_RETRIES", "VECTOR_DIMENSION", "CHARM_HOST",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.ChatModel != "gpt-4o-mini" {
		t.Errorf("ChatModel = %q, want gpt-4o-mini", cfg.ChatModel)
	}
	if cfg.EmbeddingModel != "text-embedding-3-small" {
		t.Errorf("EmbeddingModel = %q, want text-embedding-3-small", cfg.EmbeddingModel)
	}
	if cfg.TopK != 4 {
		t.Errorf("TopK = %d, want 4", cfg.TopK)
	}
	if cfg.MinSimilarity != 0.0 {
		t.Errorf("MinSimilarity = %f, want 0", cfg.MinSimilarity)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Timeout)
	}
	if cfg.VectorDimension != 1536 {
		t.Errorf("VectorDimension = %d, want 1536", cfg.VectorDimension)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("HEALTHBOT_CHAT_MODEL", "gpt-4o")
	t.Setenv("HEALTHBOT_TOP_K", "7")
	t.Setenv("HEALTHBOT_MIN_SIMILARITY", "0.25")
	t.Setenv("OPENAI_TIMEOUT", "5s")
	t.Setenv("HEALTHBOT_INDEX_DIR", "/tmp/custom-index")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.ChatModel != "gpt-4o" {
		t.Errorf("ChatModel = %q, want gpt-4o", cfg.ChatModel)
	}
	if cfg.TopK != 7 {
		t.Errorf("TopK = %d, want 7", cfg.TopK)
	}
	if cfg.MinSimilarity != 0.25 {
		t.Errorf("MinSimilarity = %f, want 0.25", cfg.MinSimilarity)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", cfg.Timeout)
	}
	if cfg.IndexDir != "/tmp/custom-index" {
		t.Errorf("IndexDir = %q, want /tmp/custom-index", cfg.IndexDir)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{
			name:    "valid config",
			modify:  func(c *Config) {},
			wantErr: "",
		},
		{
			name:    "zero top-k",
			modify:  func(c *Config) { c.TopK = 0 },
			wantErr: "HEALTHBOT_TOP_K",
		},
		{
			name:    "similarity above 1",
			modify:  func(c *Config) { c.MinSimilarity = 1.5 },
			wantErr: "HEALTHBOT_MIN_SIMILARITY",
		},
		{
			name:    "negative similarity",
			modify:  func(c *Config) { c.MinSimilarity = -0.1 },
			wantErr: "HEALTHBOT_MIN_SIMILARITY",
		},
		{
			name:    "too many retries",
			modify:  func(c *Config) { c.MaxRetries = 11 },
			wantErr: "OPENAI_MAX_RETRIES",
		},
		{
			name:    "zero timeout",
			modify:  func(c *Config) { c.Timeout = 0 },
			wantErr: "OPENAI_TIMEOUT",
		},
		{
			name:    "zero dimension",
			modify:  func(c *Config) { c.VectorDimension = 0 },
			wantErr: "VECTOR_DIMENSION",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				TopK:            4,
				MinSimilarity:   0.0,
				MaxRetries:      3,
				Timeout:         30 * time.Second,
				VectorDimension: 1536,
			}
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error mentioning %q", err, tt.wantErr)
			}
		})
	}
}
