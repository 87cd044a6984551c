// ABOUTME: Deterministic prompt assembly from template, context, and query
// ABOUTME: Carries the grounding instruction that keeps answers inside retrieved context
package rag

import (
	"strings"

	"github.com/harper/healthbot/internal/models"
)

// SystemInstruction is the fixed persona and grounding policy. Answering
// only from supplied context, and saying so when the context is not enough,
// is a content-safety requirement for health information, not a style
// choice.
const SystemInstruction = `You are a health information assistant. Answer the user's question using ONLY the context passages provided in the message.

Rules:
- Base every statement on the supplied context. Do not use outside knowledge.
- If the context does not contain the information needed to answer, reply: "I don't have enough information in my sources to answer that." Do not guess.
- Never invent medical facts, dosages, diagnoses, or treatment recommendations.
- You provide educational information only, not medical advice. Remind the user to consult a healthcare provider for diagnosis or treatment decisions.`

// ContextDelimiter separates ranked context passages in the user message
const ContextDelimiter = "\n\n---\n\n"

// PromptRequest is an assembled generation request. Constructed fresh per
// call and never persisted.
type PromptRequest struct {
	System string
	User   string
}

// Assemble builds a PromptRequest from the retrieved context and the raw
// query. Pure: same inputs always produce the same request. With zero
// chunks the context section is present but empty, so the generation step
// triggers the insufficient-information branch of the instruction.
func Assemble(query string, chunks []models.ScoredChunk) PromptRequest {
	var sb strings.Builder

	sb.WriteString("Context:\n")
	for i, sc := range chunks {
		if i > 0 {
			sb.WriteString(ContextDelimiter)
		}
		sb.WriteString(sc.Chunk.Content)
	}

	sb.WriteString("\n\nQuestion: ")
	sb.WriteString(query)

	return PromptRequest{
		System: SystemInstruction,
		User:   sb.String(),
	}
}
