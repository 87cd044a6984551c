// ABOUTME: ChatTurn represents one question/answer exchange in a chat session
// ABOUTME: Owned by the CLI shell and persisted via the history store
package models

import "time"

// ChatTurn is a single exchange in a chat session. The RAG engine never
// reads these; they exist for the shell's display and persistence only.
type ChatTurn struct {
	TurnID    string    `json:"turn_id"`
	SessionID string    `json:"session_id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	CreatedAt time.Time `json:"created_at"`
}
