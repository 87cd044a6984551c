// ABOUTME: Unit tests for prompt assembly
// ABOUTME: Verifies grounding instruction, context ordering, and the empty-context case
package rag

import (
	"strings"
	"testing"

	"github.com/harper/healthbot/internal/models"
)

func TestAssemble_CarriesGroundingInstruction(t *testing.T) {
	req := Assemble("What causes migraines?", []models.ScoredChunk{
		scored("c1", "Migraines can be triggered by stress.", 0.9),
	})

	if req.System != SystemInstruction {
		t.Error("System message must be the fixed grounding instruction")
	}
	for _, phrase := range []string{"ONLY the context", "don't have enough information", "not medical advice"} {
		if !strings.Contains(req.System, phrase) {
			t.Errorf("grounding instruction missing %q", phrase)
		}
	}
}

func TestAssemble_ContextInRankedOrder(t *testing.T) {
	req := Assemble("question", []models.ScoredChunk{
		scored("c1", "first passage", 0.9),
		scored("c2", "second passage", 0.7),
		scored("c3", "third passage", 0.5),
	})

	first := strings.Index(req.User, "first passage")
	second := strings.Index(req.User, "second passage")
	third := strings.Index(req.User, "third passage")
	if first == -1 || second == -1 || third == -1 {
		t.Fatalf("user message missing passages: %q", req.User)
	}
	if !(first < second && second < third) {
		t.Error("passages must appear in ranked order")
	}

	if strings.Count(req.User, strings.TrimSpace(ContextDelimiter)) != 2 {
		t.Errorf("expected 2 delimiters between 3 passages, got %d", strings.Count(req.User, strings.TrimSpace(ContextDelimiter)))
	}
}

func TestAssemble_IncludesRawQuery(t *testing.T) {
	query := "What are the symptoms of diabetes?"
	req := Assemble(query, nil)

	if !strings.Contains(req.User, "Question: "+query) {
		t.Errorf("user message missing question: %q", req.User)
	}
}

func TestAssemble_EmptyContextStillWellFormed(t *testing.T) {
	req := Assemble("anything", nil)

	if req.System == "" {
		t.Error("system message must be present with empty context")
	}
	if !strings.Contains(req.User, "Context:") {
		t.Error("user message must keep the context section when empty")
	}
	if !strings.Contains(req.User, "Question: anything") {
		t.Error("user message must keep the question when context is empty")
	}
}

func TestAssemble_Deterministic(t *testing.T) {
	chunks := []models.ScoredChunk{
		scored("c1", "a passage", 0.8),
		scored("c2", "another passage", 0.6),
	}

	a := Assemble("same question", chunks)
	b := Assemble("same question", chunks)

	if a != b {
		t.Error("Assemble must be pure: identical inputs produced different requests")
	}
}
