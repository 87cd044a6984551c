// ABOUTME: CLI command to build the vector index from source documents
// ABOUTME: Chunks .txt/.md files, embeds each chunk, and writes the index artifact
package commands

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/harper/healthbot/internal/index"
	"github.com/harper/healthbot/internal/llm"
	openai "github.com/sashabaranov/go-openai"
	"github.com/spf13/cobra"
)

// NewIngestCmd creates the ingest command
func NewIngestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ingest <documents-dir>",
		Short: "Build the vector index from documents",
		Long: `Build (or rebuild) the vector index from a directory of documents.

Walks the directory for .txt and .md files, splits each into passages,
embeds every passage, and writes a fresh index artifact. Any existing
index is replaced.

Example:
  healthbot ingest ./medical_docs`,
		Args: cobra.ExactArgs(1),
		RunE: runIngest,
	}
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client, err := llm.NewClient(&llm.ClientConfig{
		APIKey:         cfg.OpenAIKey,
		ChatModel:      cfg.ChatModel,
		EmbeddingModel: openai.EmbeddingModel(cfg.EmbeddingModel),
		MaxRetries:     cfg.MaxRetries,
		RetryDelay:     cfg.RetryDelay,
	})
	if err != nil {
		return fmt.Errorf("initializing OpenAI client: %w", err)
	}

	docsDir := args[0]
	var paths []string
	err = filepath.WalkDir(docsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".txt", ".md":
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("scanning %s: %w", docsDir, err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no .txt or .md documents found in %s", docsDir)
	}

	builder, err := index.NewBuilder(cfg.IndexDir, cfg.EmbeddingModel, cfg.VectorDimension)
	if err != nil {
		return fmt.Errorf("creating index: %w", err)
	}
	defer func() { _ = builder.Close() }()

	out := cmd.OutOrStdout()
	total := 0
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		source, err := filepath.Rel(docsDir, path)
		if err != nil {
			source = filepath.Base(path)
		}

		chunks := index.SplitDocument(source, string(data))
		for _, chunk := range chunks {
			vector, err := client.Embed(cmd.Context(), chunk.Content)
			if err != nil {
				return fmt.Errorf("embedding chunk %d of %s: %w", chunk.Seq, source, err)
			}
			if err := builder.Add(chunk.ChunkID, chunk.Source, chunk.Seq, chunk.Content, vector); err != nil {
				return err
			}
		}

		total += len(chunks)
		fmt.Fprintf(out, "indexed %s (%d passages)\n", source, len(chunks))
	}

	if err := builder.Close(); err != nil {
		return fmt.Errorf("finalizing index: %w", err)
	}

	fmt.Fprintf(out, "\nIndex built: %d passages from %d documents in %s\n", total, len(paths), cfg.IndexDir)
	return nil
}
