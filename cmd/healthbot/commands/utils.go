// ABOUTME: Shared utility functions for CLI commands
// ABOUTME: Engine bootstrap, remediation messages, and formatting helpers
package commands

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/harper/healthbot/internal/config"
	"github.com/harper/healthbot/internal/index"
	"github.com/harper/healthbot/internal/rag"
	"github.com/joho/godotenv"
)

// loadConfig reads .env plus environment and applies the --index override
func loadConfig() (*config.Config, error) {
	// Load .env for API keys
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if indexDirFlag != "" {
		cfg.IndexDir = indexDirFlag
	}
	return cfg, nil
}

// openEngine initializes the shared engine, rendering a remediation
// message for index problems. Initialization failures are terminal for
// the process; per-turn failures are handled by the callers.
func openEngine(errOut io.Writer) (*rag.Engine, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	engine, err := rag.Shared(cfg)
	if err != nil {
		switch {
		case errors.Is(err, index.ErrIndexCorrupt):
			fmt.Fprintf(errOut, corruptIndexHelp, cfg.IndexDir)
		case errors.Is(err, index.ErrIndexNotFound):
			fmt.Fprintf(errOut, missingIndexHelp, cfg.IndexDir)
		}
		return nil, err
	}
	return engine, nil
}

const missingIndexHelp = `No vector index was found in %s.

Build one from your medical documents:

  healthbot ingest <directory-with-txt-or-md-files>

`

const corruptIndexHelp = `The vector index in %s is corrupted or incompatible.

Possible causes:
  - the index was built by an incompatible healthbot version
  - the index file was truncated or modified

To fix it, rebuild the index:
  1. delete the index directory
  2. run: healthbot ingest <directory-with-txt-or-md-files>
  3. retry your question

`

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// formatTime formats a time for display
func formatTime(t time.Time) string {
	now := time.Now()
	diff := now.Sub(t)

	if diff < time.Minute {
		return "just now"
	} else if diff < time.Hour {
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	} else if diff < 24*time.Hour {
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	} else if diff < 7*24*time.Hour {
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	}
	return t.Format("2006-01-02")
}

// validatePositiveInt returns error if n is not positive
func validatePositiveInt(n int, name string) error {
	if n <= 0 {
		return fmt.Errorf("%s must be positive, got %d", name, n)
	}
	return nil
}
