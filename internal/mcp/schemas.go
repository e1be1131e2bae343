package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// searchDocumentsTool returns the tool definition for search_documents.
func searchDocumentsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "search_documents",
		Description: "Search emails and notes with hybrid keyword and semantic retrieval. Provide keywords, a natural-language query, or both; results are ranked, reranked for relevance, and returned as snippets.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"keywords": map[string]interface{}{
					"type":        "array",
					"description": "Exact terms to match lexically (names, invoice numbers, product codes)",
					"items":       map[string]interface{}{"type": "string"},
				},
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Natural language description of what to find, used for semantic matching",
				},
				"kind": map[string]interface{}{
					"type":        "string",
					"description": "Which corpus to search",
					"enum":        []string{"email", "note", "all"},
					"default":     "all",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of results to return (1-100)",
					"default":     10,
					"minimum":     1,
					"maximum":     100,
				},
				"conversation": map[string]interface{}{
					"type":        "array",
					"description": "Recent conversation turns for relevance context; stands in for query when query is omitted",
					"items": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"role": map[string]interface{}{
								"type": "string",
								"enum": []string{"user", "assistant"},
							},
							"text": map[string]interface{}{
								"type": "string",
							},
						},
						"required": []string{"role", "text"},
					},
				},
			},
		},
	}
}

// filterDocumentsTool returns the tool definition for filter_documents.
func filterDocumentsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "filter_documents",
		Description: "List documents matching exact metadata predicates, without relevance ranking. All provided predicates must match.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"kind": map[string]interface{}{
					"type":        "string",
					"description": "Which corpus to filter",
					"enum":        []string{"email", "note", "all"},
					"default":     "all",
				},
				"from": map[string]interface{}{
					"type":        "string",
					"description": "Sender substring, case-insensitive (emails only)",
				},
				"to": map[string]interface{}{
					"type":        "string",
					"description": "Recipient substring, case-insensitive (emails only)",
				},
				"subject": map[string]interface{}{
					"type":        "string",
					"description": "Subject substring, case-insensitive",
				},
				"contains": map[string]interface{}{
					"type":        "string",
					"description": "Substring of subject or body, case-insensitive",
				},
				"before": map[string]interface{}{
					"type":        "string",
					"description": "Exclusive upper bound on timestamp, ISO 8601",
				},
				"after": map[string]interface{}{
					"type":        "string",
					"description": "Exclusive lower bound on timestamp, ISO 8601",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of results to return (1-100)",
					"default":     10,
					"minimum":     1,
					"maximum":     100,
				},
			},
		},
	}
}

// getDocumentsTool returns the tool definition for get_documents.
func getDocumentsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_documents",
		Description: "Fetch full documents by id. For emails, include_thread expands the selection to the whole conversation thread in chronological order.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"ids": map[string]interface{}{
					"type":        "array",
					"description": "Document ids to fetch",
					"items":       map[string]interface{}{"type": "string"},
				},
				"kind": map[string]interface{}{
					"type":        "string",
					"description": "Corpus the ids belong to",
					"enum":        []string{"email", "note"},
					"default":     "email",
				},
				"include_thread": map[string]interface{}{
					"type":        "boolean",
					"description": "Expand email results to their full threads",
					"default":     false,
				},
			},
			Required: []string{"ids"},
		},
	}
}
