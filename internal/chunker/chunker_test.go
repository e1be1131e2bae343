package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbarlow/memoria-mcp/pkg/types"
)

// paragraphText builds a body with regular paragraph breaks so every
// chunk can cut on a boundary.
func paragraphText(paragraphs int) string {
	para := strings.Repeat("the quick brown fox jumps over the lazy dog ", 2)
	parts := make([]string, paragraphs)
	for i := range parts {
		parts[i] = para
	}
	return strings.Join(parts, "\n\n")
}

func TestSplit_ShortTextSinglePiece(t *testing.T) {
	c := New()
	text := "a short note"
	pieces := c.Split(text)
	require.Len(t, pieces, 1)
	assert.Equal(t, text, pieces[0])
}

func TestSplit_EmptyText(t *testing.T) {
	c := New()
	assert.Nil(t, c.Split(""))
}

func TestSplit_MaxLength(t *testing.T) {
	c := New()
	for _, piece := range c.Split(paragraphText(60)) {
		assert.LessOrEqual(t, len(piece), DefaultChunkSize)
	}
}

func TestSplit_OverlapPrefix(t *testing.T) {
	c := New()
	pieces := c.Split(paragraphText(60))
	require.Greater(t, len(pieces), 1)

	for i := 1; i < len(pieces); i++ {
		prev := pieces[i-1]
		require.GreaterOrEqual(t, len(prev), DefaultOverlap)
		assert.Equal(t, prev[len(prev)-DefaultOverlap:], pieces[i][:DefaultOverlap],
			"piece %d should begin with the tail of piece %d", i, i-1)
	}
}

func TestSplit_Reconstruction(t *testing.T) {
	c := New()
	text := paragraphText(60)
	pieces := c.Split(text)
	require.Greater(t, len(pieces), 1)

	var b strings.Builder
	b.WriteString(pieces[0])
	for _, piece := range pieces[1:] {
		b.WriteString(piece[DefaultOverlap:])
	}
	assert.Equal(t, text, b.String())
}

func TestSplit_Deterministic(t *testing.T) {
	c := New()
	text := paragraphText(40)
	assert.Equal(t, c.Split(text), c.Split(text))
}

func TestSplit_NoBoundaries(t *testing.T) {
	// Continuous text with no separators forces hard cuts; the splitter
	// must still terminate and respect the size bound.
	c := New(WithChunkSize(50), WithOverlap(10))
	text := strings.Repeat("x", 500)
	pieces := c.Split(text)
	require.NotEmpty(t, pieces)
	for _, piece := range pieces {
		assert.LessOrEqual(t, len(piece), 50)
	}
}

func TestSplit_MultibyteSafety(t *testing.T) {
	c := New(WithChunkSize(10), WithOverlap(0))
	text := strings.Repeat("héllo", 20)
	for _, piece := range c.Split(text) {
		assert.True(t, strings.ToValidUTF8(piece, "") == piece,
			"piece should not split a rune: %q", piece)
	}
}

func TestChunkEmails_Metadata(t *testing.T) {
	c := New()
	emails := []types.Email{
		{
			ID:        "email-1",
			ThreadID:  "thread-1",
			Subject:   "Quarterly planning",
			From:      "alice@example.com",
			To:        []string{"bob@example.com"},
			Timestamp: "2025-03-01T10:00:00Z",
			Body:      paragraphText(40),
		},
	}

	chunks := c.ChunkEmails(emails)
	require.Greater(t, len(chunks), 1)

	for i, chunk := range chunks {
		assert.Equal(t, "email-1", chunk.DocumentID)
		assert.Equal(t, types.KindEmail, chunk.Kind)
		assert.Equal(t, i, chunk.Index)
		assert.Equal(t, len(chunks), chunk.Total)
		assert.Equal(t, "Quarterly planning", chunk.Subject)
		assert.Equal(t, "alice@example.com", chunk.From)
		assert.Equal(t, "thread-1", chunk.ThreadID)
		assert.Equal(t, "2025-03-01T10:00:00Z", chunk.Timestamp)
	}
}

func TestChunkEmails_TotalPerDocument(t *testing.T) {
	c := New()
	emails := []types.Email{
		{ID: "long", Subject: "long", Body: paragraphText(40)},
		{ID: "short", Subject: "short", Body: "just one line"},
	}

	chunks := c.ChunkEmails(emails)

	byDoc := make(map[string][]types.Chunk)
	for _, chunk := range chunks {
		byDoc[chunk.DocumentID] = append(byDoc[chunk.DocumentID], chunk)
	}

	require.Len(t, byDoc["short"], 1)
	assert.Equal(t, 1, byDoc["short"][0].Total)

	long := byDoc["long"]
	require.Greater(t, len(long), 1)
	for i, chunk := range long {
		assert.Equal(t, i, chunk.Index)
		assert.Equal(t, len(long), chunk.Total)
	}
}

func TestChunkNotes_Metadata(t *testing.T) {
	c := New()
	notes := []types.Note{
		{ID: "note-1", Subject: "Reading list", Content: "some content", LastModified: "2025-04-01T09:00:00Z"},
	}

	chunks := c.ChunkNotes(notes)
	require.Len(t, chunks, 1)
	assert.Equal(t, types.KindNote, chunks[0].Kind)
	assert.Equal(t, "2025-04-01T09:00:00Z", chunks[0].Timestamp)
	assert.Empty(t, chunks[0].From)
	assert.Equal(t, 1, chunks[0].Total)
}
