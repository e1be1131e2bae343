package types

import "strconv"

// Chunk is a bounded, overlapping passage of a document body. Chunks are
// derived fresh per request and never persisted, so identity is the pair
// (DocumentID, Index).
type Chunk struct {
	// Identification
	DocumentID string
	Kind       DocumentKind
	Index      int // zero-based position within the parent document
	Total      int // chunk count for the parent, identical across siblings

	// Content
	Subject string
	Body    string

	// Display metadata inherited from the parent so results can be
	// rendered without re-fetching the document.
	Timestamp string // email timestamp, or note lastModified
	From      string
	To        []string
	ThreadID  string
}

// Identity returns the stable identity used for rank fusion. Chunk-level
// identity is required once chunking is in play; fusing on DocumentID
// alone would collide chunks of the same document.
func (c Chunk) Identity() string {
	return c.DocumentID + "-" + strconv.Itoa(c.Index)
}

// IndexText returns the text scored by both retrieval methods:
// subject and body concatenated for a richer corpus.
func (c Chunk) IndexText() string {
	return c.Subject + " " + c.Body
}

// Validate performs basic consistency checks on the chunk.
func (c *Chunk) Validate() error {
	if c.DocumentID == "" {
		return ErrMissingDocumentID
	}
	if c.Body == "" {
		return ErrEmptyChunk
	}
	if c.Index < 0 || c.Total <= 0 || c.Index >= c.Total {
		return ErrInvalidChunkIndex
	}
	return nil
}
