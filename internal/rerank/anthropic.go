package rerank

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/mbarlow/memoria-mcp/pkg/types"
)

// DefaultJudgeModel is the model used when none is configured. Judging
// is a cheap classification task, so the smallest fast model suffices.
const DefaultJudgeModel = "claude-3-5-haiku-latest"

const judgeToolName = "select_relevant_results"

const judgeSystemPrompt = `You are a search result reranker. Your job is to analyze a list of passages and report only the IDs of the passages that are genuinely useful for answering the user's question.

Given a list of passages with their IDs, subjects, and content, you should:
1. Evaluate how relevant each passage is to the search query
2. Report only the IDs of the most relevant passages

Be selective. If a passage is only tangentially related or not relevant, exclude its ID.`

// AnthropicJudge selects relevant candidates by invoking a model in
// structured-output mode: a single tool definition the model is forced
// to call, whose input schema is the array of candidate ids.
type AnthropicJudge struct {
	client anthropic.Client
	model  anthropic.Model
}

// NewAnthropicJudge creates a judge using the given API key and model.
func NewAnthropicJudge(apiKey, model string) *AnthropicJudge {
	if model == "" {
		model = DefaultJudgeModel
	}
	return &AnthropicJudge{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  anthropic.Model(model),
	}
}

// SelectRelevant implements Judge.
func (j *AnthropicJudge) SelectRelevant(ctx context.Context, query string, history []types.Message, candidates []Candidate) ([]int, error) {
	messages := make([]anthropic.MessageParam, 0, len(history)+1)
	for _, m := range history {
		switch m.Role {
		case types.RoleAssistant:
			messages = append(messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Text)))
		case types.RoleUser:
			messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Text)))
		}
	}
	messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(buildJudgePrompt(query, candidates))))

	tool := anthropic.ToolParam{
		Name:        judgeToolName,
		Description: anthropic.String("Report the IDs of the passages relevant to the search query"),
		InputSchema: anthropic.ToolInputSchemaParam{
			Properties: map[string]any{
				"result_ids": map[string]any{
					"type":        "array",
					"description": "IDs of the most relevant passages",
					"items":       map[string]any{"type": "integer"},
				},
			},
			Required: []string{"result_ids"},
		},
	}

	resp, err := j.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     j.model,
		MaxTokens: 1024,
		System:    []anthropic.TextBlockParam{{Text: judgeSystemPrompt}},
		Messages:  messages,
		Tools:     []anthropic.ToolUnionParam{{OfTool: &tool}},
		ToolChoice: anthropic.ToolChoiceUnionParam{
			OfTool: &anthropic.ToolChoiceToolParam{Name: judgeToolName},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("judge call: %w", err)
	}

	for _, block := range resp.Content {
		if block.Type != "tool_use" {
			continue
		}
		var selection struct {
			ResultIDs []int `json:"result_ids"`
		}
		if err := json.Unmarshal(block.Input, &selection); err != nil {
			return nil, fmt.Errorf("judge returned malformed selection: %w", err)
		}
		return selection.ResultIDs, nil
	}
	return nil, fmt.Errorf("judge returned no structured selection")
}

func buildJudgePrompt(query string, candidates []Candidate) string {
	var b strings.Builder
	b.WriteString("Search query:\n")
	b.WriteString(query)
	b.WriteString("\n\nAvailable passages:\n")
	for _, c := range candidates {
		fmt.Fprintf(&b, "\n## ID: %d\n\nSubject: %s\n\n<content>\n%s\n</content>\n", c.ID, c.Subject, c.Content)
	}
	b.WriteString("\nReport only the IDs of the passages relevant to the search query.")
	return b.String()
}
