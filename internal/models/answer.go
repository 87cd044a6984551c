// ABOUTME: Answer is the result of one RAG pipeline call
// ABOUTME: Carries the generated text plus the context used to produce it
package models

// Answer is the generated response together with the retrieved context
// that grounded it. The context is returned for traceability; the engine
// itself retains nothing between calls.
type Answer struct {
	Text    string        `json:"text"`
	Context []ScoredChunk `json:"context"`
}
