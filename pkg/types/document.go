package types

// DocumentKind identifies which corpus a document came from.
type DocumentKind string

const (
	KindEmail DocumentKind = "email"
	KindNote  DocumentKind = "note"
)

// Email is an immutable email record loaded from the corpus.
// Timestamps are ISO 8601 strings in UTC, so lexicographic comparison
// matches chronological order.
type Email struct {
	ID         string   `json:"id"`
	ThreadID   string   `json:"threadId"`
	Subject    string   `json:"subject"`
	From       string   `json:"from"`
	To         []string `json:"to"`
	CC         []string `json:"cc,omitempty"`
	Timestamp  string   `json:"timestamp"`
	Body       string   `json:"body"`
	InReplyTo  string   `json:"inReplyTo,omitempty"`
	References []string `json:"references,omitempty"`
}

// Note is an immutable note record loaded from the corpus.
type Note struct {
	ID           string `json:"id"`
	Subject      string `json:"subject"`
	Preview      string `json:"preview,omitempty"`
	Content      string `json:"content"`
	LastModified string `json:"lastModified"`
}

// Validate checks that an email carries the fields the pipeline relies on.
func (e *Email) Validate() error {
	if e.ID == "" {
		return ErrMissingDocumentID
	}
	if e.Body == "" && e.Subject == "" {
		return ErrEmptyDocument
	}
	return nil
}

// Validate checks that a note carries the fields the pipeline relies on.
func (n *Note) Validate() error {
	if n.ID == "" {
		return ErrMissingDocumentID
	}
	if n.Content == "" && n.Subject == "" {
		return ErrEmptyDocument
	}
	return nil
}
