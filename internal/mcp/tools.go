package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mbarlow/memoria-mcp/internal/corpus"
	"github.com/mbarlow/memoria-mcp/internal/search"
	"github.com/mbarlow/memoria-mcp/pkg/types"
)

// Tool failures are reported as tool results rather than protocol
// errors, so the calling agent sees the message and can adjust its
// arguments instead of aborting the conversation.

// handleSearchDocuments handles the search_documents tool invocation.
func (s *Server) handleSearchDocuments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments"), nil
	}

	req := search.Request{
		Keywords:     getStringSlice(args, "keywords"),
		Query:        getStringDefault(args, "query", ""),
		Kind:         getStringDefault(args, "kind", search.KindAll),
		Limit:        getIntDefault(args, "limit", search.DefaultLimit),
		Conversation: getConversation(args),
	}

	resp, err := s.pipeline.Search(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"count":   len(resp.Items),
		"results": resp.Items,
	})), nil
}

// handleFilterDocuments handles the filter_documents tool invocation.
func (s *Server) handleFilterDocuments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments"), nil
	}

	kind := getStringDefault(args, "kind", search.KindAll)
	limit := getIntDefault(args, "limit", search.DefaultLimit)
	if limit < 1 || limit > search.MaxLimit {
		return mcp.NewToolResultError(fmt.Sprintf("limit must be between 1 and %d", search.MaxLimit)), nil
	}

	filter := corpus.Filter{
		From:     getStringDefault(args, "from", ""),
		To:       getStringDefault(args, "to", ""),
		Subject:  getStringDefault(args, "subject", ""),
		Contains: getStringDefault(args, "contains", ""),
		Before:   getStringDefault(args, "before", ""),
		After:    getStringDefault(args, "after", ""),
	}

	items := make([]types.SearchItem, 0, limit)
	if kind == search.KindAll || kind == string(types.KindEmail) {
		emails, err := s.store.LoadEmails()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("load emails: %v", err)), nil
		}
		for _, e := range corpus.FilterEmails(emails, filter) {
			items = append(items, types.SearchItem{
				ID:        e.ID,
				Kind:      types.KindEmail,
				Subject:   e.Subject,
				Snippet:   search.Snippet(e.Body, search.DefaultSnippet),
				Timestamp: e.Timestamp,
				From:      e.From,
				To:        e.To,
				ThreadID:  e.ThreadID,
			})
		}
	}
	if kind == search.KindAll || kind == string(types.KindNote) {
		notes, err := s.store.LoadNotes()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("load notes: %v", err)), nil
		}
		for _, n := range corpus.FilterNotes(notes, filter) {
			items = append(items, types.SearchItem{
				ID:        n.ID,
				Kind:      types.KindNote,
				Subject:   n.Subject,
				Snippet:   search.Snippet(n.Content, search.DefaultSnippet),
				Timestamp: n.LastModified,
			})
		}
	}

	if len(items) > limit {
		items = items[:limit]
	}
	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"count":   len(items),
		"results": items,
	})), nil
}

// handleGetDocuments handles the get_documents tool invocation.
func (s *Server) handleGetDocuments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments"), nil
	}

	ids := getStringSlice(args, "ids")
	if len(ids) == 0 {
		return mcp.NewToolResultError("ids parameter is required and cannot be empty"), nil
	}

	kind := getStringDefault(args, "kind", string(types.KindEmail))
	switch kind {
	case string(types.KindEmail):
		includeThread := getBoolDefault(args, "include_thread", false)
		emails, err := s.store.GetEmails(ids, includeThread)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("get emails: %v", err)), nil
		}
		return mcp.NewToolResultText(formatJSON(map[string]interface{}{
			"count":  len(emails),
			"emails": emails,
		})), nil
	case string(types.KindNote):
		notes, err := s.store.GetNotes(ids)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("get notes: %v", err)), nil
		}
		return mcp.NewToolResultText(formatJSON(map[string]interface{}{
			"count": len(notes),
			"notes": notes,
		})), nil
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown kind %q", kind)), nil
	}
}

// Helper functions

// formatJSON formats a value as indented JSON.
func formatJSON(data map[string]interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}

// getBoolDefault extracts a boolean parameter with a default value.
func getBoolDefault(args map[string]interface{}, key string, defaultValue bool) bool {
	if val, ok := args[key].(bool); ok {
		return val
	}
	return defaultValue
}

// getIntDefault extracts an integer parameter with a default value.
func getIntDefault(args map[string]interface{}, key string, defaultValue int) int {
	if val, ok := args[key].(float64); ok {
		return int(val)
	}
	if val, ok := args[key].(int); ok {
		return val
	}
	return defaultValue
}

// getStringDefault extracts a string parameter with a default value.
func getStringDefault(args map[string]interface{}, key string, defaultValue string) string {
	if val, ok := args[key].(string); ok {
		return val
	}
	return defaultValue
}

// getStringSlice extracts a string array parameter, dropping non-string
// elements.
func getStringSlice(args map[string]interface{}, key string) []string {
	raw, ok := args[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// getConversation extracts conversation turns, dropping malformed
// entries and roles other than user and assistant.
func getConversation(args map[string]interface{}) []types.Message {
	raw, ok := args["conversation"].([]interface{})
	if !ok {
		return nil
	}
	out := make([]types.Message, 0, len(raw))
	for _, v := range raw {
		m, ok := v.(map[string]interface{})
		if !ok {
			continue
		}
		role, _ := m["role"].(string)
		text, _ := m["text"].(string)
		if role != types.RoleUser && role != types.RoleAssistant {
			continue
		}
		out = append(out, types.Message{Role: role, Text: text})
	}
	return out
}
