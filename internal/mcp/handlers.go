// ABOUTME: MCP tool handler implementations for the healthbot server
// ABOUTME: Maps pipeline error kinds to tool errors without ending the session
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/harper/healthbot/internal/rag"
	"github.com/mark3labs/mcp-go/mcp"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	engine *rag.Engine
}

// AskHealth handles the ask_health tool
func (h *Handlers) AskHealth(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := request.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError("question argument is required and must be a string"), nil
	}

	answer, err := h.engine.Answer(ctx, question)
	if err != nil {
		switch {
		case errors.Is(err, rag.ErrInvalidQuery):
			return mcp.NewToolResultError("question must not be empty"), nil
		case errors.Is(err, rag.ErrGenerationTimeout):
			return mcp.NewToolResultError("generation timed out; try again"), nil
		default:
			return mcp.NewToolResultError(fmt.Sprintf("answering failed: %v", err)), nil
		}
	}

	response := map[string]interface{}{
		"answer":  answer.Text,
		"sources": answer.Context,
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// SearchContext handles the search_context tool
func (h *Handlers) SearchContext(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}

	results, err := h.engine.Search(ctx, query)
	if err != nil {
		if errors.Is(err, rag.ErrInvalidQuery) {
			return mcp.NewToolResultError("query must not be empty"), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	response := map[string]interface{}{
		"query":    query,
		"passages": results,
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}
