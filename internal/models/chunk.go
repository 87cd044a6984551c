// ABOUTME: Chunk represents an indexed passage of source document text
// ABOUTME: Defines Chunk and ScoredChunk structures used by retrieval
package models

// Chunk is a passage of a source document, immutable once indexed.
type Chunk struct {
	ChunkID string `json:"chunk_id"`
	Source  string `json:"source"`
	Seq     int    `json:"seq"`
	Content string `json:"content"`
}

// ScoredChunk pairs a retrieved chunk with its similarity score.
type ScoredChunk struct {
	Chunk Chunk   `json:"chunk"`
	Score float64 `json:"score"`
}
