package types

// SearchItem is one entry of a search or filter response. Bodies are
// trimmed to a snippet; full content is fetched separately by id.
type SearchItem struct {
	ID        string       `json:"id"`
	Kind      DocumentKind `json:"kind"`
	Subject   string       `json:"subject"`
	Snippet   string       `json:"snippet"`
	Score     float64      `json:"score,omitempty"`
	Timestamp string       `json:"timestamp,omitempty"`
	From      string       `json:"from,omitempty"`
	To        []string     `json:"to,omitempty"`
	ThreadID  string       `json:"threadId,omitempty"`
}

// Validate checks if the search item is well formed.
func (si *SearchItem) Validate() error {
	if si.ID == "" {
		return ErrMissingDocumentID
	}
	if si.Kind != KindEmail && si.Kind != KindNote {
		return ErrUnknownKind
	}
	return nil
}
