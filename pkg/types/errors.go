package types

import "errors"

// Domain errors for type validation and request checking
var (
	ErrMissingDocumentID = errors.New("document ID is required")
	ErrEmptyDocument     = errors.New("document has no subject or body")
	ErrEmptyChunk        = errors.New("chunk body cannot be empty")
	ErrInvalidChunkIndex = errors.New("chunk index out of range")
	ErrEmptySearch       = errors.New("search needs keywords, a search query, or conversation context")
	ErrUnknownKind       = errors.New("unknown document kind")
)
