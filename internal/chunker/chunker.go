package chunker

import (
	"strings"
	"unicode/utf8"

	"github.com/mbarlow/memoria-mcp/pkg/types"
)

const (
	// DefaultChunkSize is the target maximum chunk length in bytes.
	DefaultChunkSize = 1000

	// DefaultOverlap is the number of bytes adjacent chunks share.
	DefaultOverlap = 200
)

// splitBoundaries are tried in order when looking for a cut point:
// paragraph break first, then line break, then word break.
var splitBoundaries = []string{"\n\n", "\n", " "}

// Chunker splits document bodies into overlapping, bounded-length
// passages. Splitting is a pure function of the text and the static
// configuration, so the same input always produces the same chunks.
type Chunker struct {
	size    int
	overlap int
}

// Option configures a Chunker.
type Option func(*Chunker)

// WithChunkSize sets the maximum chunk length in bytes.
func WithChunkSize(size int) Option {
	return func(c *Chunker) {
		if size > 0 {
			c.size = size
		}
	}
}

// WithOverlap sets the overlap between adjacent chunks in bytes.
func WithOverlap(overlap int) Option {
	return func(c *Chunker) {
		if overlap >= 0 {
			c.overlap = overlap
		}
	}
}

// New creates a Chunker with the given options.
func New(opts ...Option) *Chunker {
	c := &Chunker{
		size:    DefaultChunkSize,
		overlap: DefaultOverlap,
	}
	for _, opt := range opts {
		opt(c)
	}
	// Overlap must leave room for the chunk to advance.
	if c.overlap >= c.size {
		c.overlap = c.size / 4
	}
	return c
}

// Split divides text into passages of at most the configured size.
// Each passage after the first begins with the last overlap bytes of its
// predecessor, so concatenating the passages with those prefixes removed
// reconstructs the input exactly. Cuts prefer paragraph breaks, then
// line breaks, then spaces, then fall back to a rune boundary.
func (c *Chunker) Split(text string) []string {
	if text == "" {
		return nil
	}
	if len(text) <= c.size {
		return []string{text}
	}

	pieces := make([]string, 0, len(text)/(c.size-c.overlap)+1)
	start := 0
	for start < len(text) {
		remaining := len(text) - start
		if remaining <= c.size {
			pieces = append(pieces, text[start:])
			break
		}

		cut := start + cutPoint(text[start:start+c.size])
		pieces = append(pieces, text[start:cut])

		// Step back by the overlap; if the cut landed so early that
		// stepping back would stall, advance without overlap instead.
		next := cut - c.overlap
		if next <= start {
			next = cut
		}
		start = next
	}
	return pieces
}

// cutPoint returns the byte offset within window at which to end the
// chunk. It prefers the last boundary in the window and keeps the
// separator with the earlier chunk. With no boundary at all the cut
// falls on the last rune boundary, so a chunk only exceeds the target
// when a single rune cannot be split.
func cutPoint(window string) int {
	for _, sep := range splitBoundaries {
		if i := strings.LastIndex(window, sep); i > 0 {
			return i + len(sep)
		}
	}
	cut := len(window)
	for cut > 1 && !utf8.RuneStart(window[cut-1]) {
		cut--
	}
	return cut
}

// ChunkEmails splits every email body and stamps each chunk with the
// metadata needed to render it. Total is assigned only after all chunks
// for a document exist.
func (c *Chunker) ChunkEmails(emails []types.Email) []types.Chunk {
	chunks := make([]types.Chunk, 0, len(emails))
	for _, e := range emails {
		pieces := c.Split(e.Body)
		for i, piece := range pieces {
			chunks = append(chunks, types.Chunk{
				DocumentID: e.ID,
				Kind:       types.KindEmail,
				Index:      i,
				Subject:    e.Subject,
				Body:       piece,
				Timestamp:  e.Timestamp,
				From:       e.From,
				To:         e.To,
				ThreadID:   e.ThreadID,
			})
		}
		setTotal(chunks[len(chunks)-len(pieces):], len(pieces))
	}
	return chunks
}

// ChunkNotes splits every note body into chunks.
func (c *Chunker) ChunkNotes(notes []types.Note) []types.Chunk {
	chunks := make([]types.Chunk, 0, len(notes))
	for _, n := range notes {
		pieces := c.Split(n.Content)
		for i, piece := range pieces {
			chunks = append(chunks, types.Chunk{
				DocumentID: n.ID,
				Kind:       types.KindNote,
				Index:      i,
				Subject:    n.Subject,
				Body:       piece,
				Timestamp:  n.LastModified,
			})
		}
		setTotal(chunks[len(chunks)-len(pieces):], len(pieces))
	}
	return chunks
}

func setTotal(siblings []types.Chunk, total int) {
	for i := range siblings {
		siblings[i].Total = total
	}
}
