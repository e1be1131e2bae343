package rerank

import (
	"context"

	"github.com/mbarlow/memoria-mcp/pkg/types"
)

// Candidate is one fused result as presented to the judge: a transient
// integer id valid only for this call, plus the title and full text.
type Candidate struct {
	ID      int
	Subject string
	Content string
}

// Judge decides which candidates are genuinely relevant to the query.
// It is expected to be selective: tangentially related candidates should
// be dropped, not merely downranked. Implementations are stateless per
// call; conversation history is passed in and never stored.
type Judge interface {
	SelectRelevant(ctx context.Context, query string, history []types.Message, candidates []Candidate) ([]int, error)
}

// Result pairs a chunk with its fused score through the reranking step.
type Result struct {
	Chunk types.Chunk
	Score float64
}

// Rerank presents the candidates to the judge and returns the selected
// subset in the judge's order. Ids the judge returns that were never
// assigned are dropped silently, so a hallucinated id cannot surface a
// chunk that was not in the candidate set.
func Rerank(ctx context.Context, judge Judge, query string, history []types.Message, results []Result) ([]Result, error) {
	if len(results) == 0 {
		return results, nil
	}

	candidates := make([]Candidate, len(results))
	for i, r := range results {
		candidates[i] = Candidate{
			ID:      i,
			Subject: r.Chunk.Subject,
			Content: r.Chunk.Body,
		}
	}

	ids, err := judge.SelectRelevant(ctx, query, filterHistory(history), candidates)
	if err != nil {
		return nil, err
	}

	selected := make([]Result, 0, len(ids))
	for _, id := range ids {
		if id < 0 || id >= len(results) {
			continue
		}
		selected = append(selected, results[id])
	}
	return selected, nil
}

// filterHistory keeps only user and assistant turns; tool-call turns are
// noise to the judge.
func filterHistory(history []types.Message) []types.Message {
	out := make([]types.Message, 0, len(history))
	for _, m := range history {
		if m.Role == types.RoleUser || m.Role == types.RoleAssistant {
			out = append(out, m)
		}
	}
	return out
}
