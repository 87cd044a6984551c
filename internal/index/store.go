// ABOUTME: Read side of the persisted vector index artifact
// ABOUTME: Loads a SQLite index file into an immutable in-memory store for cosine search
package index

import (
	"database/sql"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/harper/healthbot/internal/models"
	_ "modernc.org/sqlite"
)

// IndexFileName is the artifact file expected inside the index directory
const IndexFileName = "index.db"

// FormatVersion is the supported index artifact format version
const FormatVersion = 1

var (
	// ErrIndexNotFound means the index directory has no index artifact.
	// Remediation: run ingestion to build one.
	ErrIndexNotFound = errors.New("vector index not found")
	// ErrIndexCorrupt means the artifact exists but failed to deserialize
	// (not a SQLite file, missing tables, version or dimension mismatch).
	// Remediation: delete the artifact and rebuild the index.
	ErrIndexCorrupt = errors.New("vector index is corrupt")
)

// Store is a loaded vector index: all chunks and vectors held in memory,
// read-only after Open. Safe for concurrent Search calls.
type Store struct {
	chunks  []models.Chunk
	vectors [][]float64
	dim     int
	model   string
}

// Open loads the index artifact from dir. The whole index is read into
// memory once; the SQLite file is closed before Open returns.
func Open(dir string) (*Store, error) {
	path := filepath.Join(dir, IndexFileName)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrIndexNotFound, path)
		}
		return nil, fmt.Errorf("stat index file: %w", err)
	}

	conn, err := sql.Open("sqlite", path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIndexCorrupt, err)
	}
	defer func() { _ = conn.Close() }()

	meta, err := readMeta(conn)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIndexCorrupt, err)
	}

	version, err := strconv.Atoi(meta["format_version"])
	if err != nil || version != FormatVersion {
		return nil, fmt.Errorf("%w: unsupported format version %q", ErrIndexCorrupt, meta["format_version"])
	}

	dim, err := strconv.Atoi(meta["dimension"])
	if err != nil || dim <= 0 {
		return nil, fmt.Errorf("%w: invalid dimension %q", ErrIndexCorrupt, meta["dimension"])
	}

	store := &Store{
		dim:   dim,
		model: meta["embedding_model"],
	}

	rows, err := conn.Query(`
		SELECT c.id, c.source, c.seq, c.content, e.vector
		FROM chunks c
		JOIN embeddings e ON e.chunk_id = c.id
		ORDER BY c.source, c.seq
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIndexCorrupt, err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			chunk models.Chunk
			blob  []byte
		)
		if err := rows.Scan(&chunk.ChunkID, &chunk.Source, &chunk.Seq, &chunk.Content, &blob); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrIndexCorrupt, err)
		}
		if len(blob) != dim*8 {
			return nil, fmt.Errorf("%w: chunk %s vector has %d bytes, want %d", ErrIndexCorrupt, chunk.ChunkID, len(blob), dim*8)
		}
		store.chunks = append(store.chunks, chunk)
		store.vectors = append(store.vectors, blobToVector(blob))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIndexCorrupt, err)
	}

	return store, nil
}

// readMeta reads the index_meta table into a map
func readMeta(conn *sql.DB) (map[string]string, error) {
	rows, err := conn.Query("SELECT key, value FROM index_meta")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	meta := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		meta[k] = v
	}
	return meta, rows.Err()
}

// Search returns up to k chunks ranked by cosine similarity to the query
// vector, descending. An empty result is valid, not an error.
func (s *Store) Search(query []float64, k int) ([]models.ScoredChunk, error) {
	if k <= 0 {
		return nil, fmt.Errorf("k must be positive, got %d", k)
	}
	if len(query) != s.dim {
		return nil, fmt.Errorf("query vector dimension %d does not match index dimension %d", len(query), s.dim)
	}

	results := make([]models.ScoredChunk, 0, len(s.chunks))
	for i, chunk := range s.chunks {
		results = append(results, models.ScoredChunk{
			Chunk: chunk,
			Score: cosineSimilarity(query, s.vectors[i]),
		})
	}

	// Stable keeps ties in load order (source, seq) so identical queries
	// always see identical rankings.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// Dimension returns the embedding dimension the index was built with
func (s *Store) Dimension() int {
	return s.dim
}

// Model returns the embedding model identifier the index was built with
func (s *Store) Model() string {
	return s.model
}

// Len returns the number of indexed chunks
func (s *Store) Len() int {
	return len(s.chunks)
}

// cosineSimilarity calculates cosine similarity between two vectors
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0.0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
