// ABOUTME: Write side of the persisted vector index artifact
// ABOUTME: Creates the SQLite file, stamps meta, and stores chunks with vector BLOBs
package index

import (
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"
)

// Schema contains all SQL statements for index initialization
const Schema = `
-- Artifact metadata (format version, embedding model, dimension, metric)
CREATE TABLE IF NOT EXISTS index_meta (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

-- Document chunks
CREATE TABLE IF NOT EXISTS chunks (
    id TEXT PRIMARY KEY,
    source TEXT NOT NULL,
    seq INTEGER NOT NULL,
    content TEXT NOT NULL
);

-- Chunk embeddings (little-endian float64 BLOBs)
CREATE TABLE IF NOT EXISTS embeddings (
    chunk_id TEXT PRIMARY KEY REFERENCES chunks(id) ON DELETE CASCADE,
    vector BLOB NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_chunks_source ON chunks(source, seq);
`

// Builder writes a new index artifact. Not safe for concurrent use;
// ingestion is a single-writer operation.
type Builder struct {
	conn *sql.DB
	dim  int
}

// NewBuilder creates (or replaces) the index artifact under dir for the
// given embedding model and dimension.
func NewBuilder(dir, embeddingModel string, dimension int) (*Builder, error) {
	if dimension <= 0 {
		return nil, fmt.Errorf("dimension must be positive, got %d", dimension)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create index directory: %w", err)
	}

	path := filepath.Join(dir, IndexFileName)
	// Replace any previous artifact so a rebuild starts clean
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to remove old index: %w", err)
	}

	conn, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)")
	if err != nil {
		return nil, fmt.Errorf("failed to open index database: %w", err)
	}

	if _, err := conn.Exec(Schema); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to initialize index schema: %w", err)
	}

	meta := map[string]string{
		"format_version":  fmt.Sprintf("%d", FormatVersion),
		"embedding_model": embeddingModel,
		"dimension":       fmt.Sprintf("%d", dimension),
		"metric":          "cosine",
		"built_at":        time.Now().UTC().Format(time.RFC3339),
	}
	for k, v := range meta {
		if _, err := conn.Exec("INSERT INTO index_meta (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value", k, v); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("failed to write index meta: %w", err)
		}
	}

	return &Builder{conn: conn, dim: dimension}, nil
}

// Add stores one chunk and its embedding vector
func (b *Builder) Add(chunkID, source string, seq int, content string, vector []float64) error {
	if len(vector) != b.dim {
		return fmt.Errorf("invalid embedding dimension: expected %d, got %d", b.dim, len(vector))
	}

	if _, err := b.conn.Exec(
		"INSERT INTO chunks (id, source, seq, content) VALUES (?, ?, ?, ?)",
		chunkID, source, seq, content,
	); err != nil {
		return fmt.Errorf("failed to store chunk %s: %w", chunkID, err)
	}

	if _, err := b.conn.Exec(
		"INSERT INTO embeddings (chunk_id, vector) VALUES (?, ?)",
		chunkID, vectorToBlob(vector),
	); err != nil {
		return fmt.Errorf("failed to store embedding for chunk %s: %w", chunkID, err)
	}

	return nil
}

// Close finalizes the artifact
func (b *Builder) Close() error {
	if b.conn != nil {
		err := b.conn.Close()
		b.conn = nil
		return err
	}
	return nil
}

// vectorToBlob converts a float64 slice to binary blob
func vectorToBlob(vector []float64) []byte {
	blob := make([]byte, len(vector)*8)
	for i, v := range vector {
		binary.LittleEndian.PutUint64(blob[i*8:], math.Float64bits(v))
	}
	return blob
}

// blobToVector converts a binary blob to float64 slice
func blobToVector(blob []byte) []float64 {
	count := len(blob) / 8
	vector := make([]float64, count)
	for i := 0; i < count; i++ {
		bits := binary.LittleEndian.Uint64(blob[i*8:])
		vector[i] = math.Float64frombits(bits)
	}
	return vector
}
