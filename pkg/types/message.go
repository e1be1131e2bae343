package types

// Message roles recognized by the reranking judge. Tool-call turns are
// excluded from the history before it reaches the judge.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one prior turn of the conversation driving the agent loop.
// The retrieval core reads it as context and never stores it.
type Message struct {
	Role string `json:"role"`
	Text string `json:"text"`
}
