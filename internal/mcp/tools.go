// ABOUTME: MCP tool definitions and registration for the healthbot server
// ABOUTME: Exposes grounded question answering and context search over the RAG engine
package mcp

import (
	"github.com/harper/healthbot/internal/rag"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, engine *rag.Engine) *Handlers {
	handlers := &Handlers{engine: engine}

	// 1. ask_health - answer a health question grounded in the index
	server.AddTool(mcp.Tool{
		Name:        "ask_health",
		Description: "Answer a health question using retrieval-augmented generation over the indexed medical documents. Answers are grounded in retrieved passages; when the index has no relevant content the tool says so instead of guessing. Educational information only, not medical advice.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"question": map[string]interface{}{
					"type":        "string",
					"description": "Health question to answer",
				},
			},
			Required: []string{"question"},
		},
	}, handlers.AskHealth)

	// 2. search_context - retrieve ranked passages without generation
	server.AddTool(mcp.Tool{
		Name:        "search_context",
		Description: "Retrieve the passages most similar to a query from the indexed medical documents, with similarity scores. No answer is generated.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Search query",
				},
			},
			Required: []string{"query"},
		},
	}, handlers.SearchContext)

	return handlers
}
