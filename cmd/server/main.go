// ABOUTME: Main entry point for the Healthbot MCP server with stdio transport
// ABOUTME: Opens the question-answering engine and exposes it as MCP tools
package main

import (
	"errors"
	"log"
	"os"

	"github.com/harper/healthbot/internal/config"
	"github.com/harper/healthbot/internal/index"
	"github.com/harper/healthbot/internal/mcp"
	"github.com/harper/healthbot/internal/rag"
	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

func main() {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	if os.Getenv("OPENAI_API_KEY") == "" {
		log.Println("Warning: OPENAI_API_KEY not set - embedding and answer generation will not work")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	engine, err := rag.Shared(cfg)
	if err != nil {
		switch {
		case errors.Is(err, index.ErrIndexNotFound):
			log.Fatalf("No index found in %s. Build one with `healthbot ingest <docs-dir>` first.", cfg.IndexDir)
		case errors.Is(err, index.ErrIndexCorrupt):
			log.Fatalf("Index in %s is unreadable: %v. Rebuild it with `healthbot ingest <docs-dir>`.", cfg.IndexDir, err)
		default:
			log.Fatalf("Failed to initialize engine: %v", err)
		}
	}

	server := mcpserver.NewMCPServer(
		"Healthbot QA",
		"0.1.0",
	)

	mcp.RegisterTools(server, engine)

	log.Println("Healthbot MCP server starting on stdio...")
	if err := mcpserver.ServeStdio(server); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
