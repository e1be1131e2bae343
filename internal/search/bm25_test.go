package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testDoc is a minimal Indexable for scorer tests.
type testDoc struct {
	id   string
	text string
}

func (d testDoc) Identity() string  { return d.id }
func (d testDoc) IndexText() string { return d.text }

func TestBM25_RanksMatchingDocsFirst(t *testing.T) {
	docs := []testDoc{
		{id: "a", text: "weekly grocery list apples bananas"},
		{id: "b", text: "invoice 1234 payment due for consulting services invoice attached"},
		{id: "c", text: "meeting notes about the offsite schedule"},
	}
	idx := NewBM25(docs)

	results := idx.Score([]string{"invoice"})
	require.Len(t, results, 3)
	assert.Equal(t, "b", results[0].Item.id)
	assert.Greater(t, results[0].Score, 0.0)
	assert.Zero(t, results[1].Score)
	assert.Zero(t, results[2].Score)
}

func TestBM25_TermFrequencySaturates(t *testing.T) {
	docs := []testDoc{
		{id: "once", text: "report report filler filler filler filler"},
		{id: "many", text: "report report report report report report"},
	}
	idx := NewBM25(docs)

	results := idx.Score([]string{"report"})
	require.Len(t, results, 2)
	assert.Equal(t, "many", results[0].Item.id)
	// Tripling the term count must not triple the score.
	assert.Less(t, results[0].Score, results[1].Score*3)
}

func TestBM25_EmptyKeywords(t *testing.T) {
	idx := NewBM25([]testDoc{{id: "a", text: "anything"}})
	assert.Nil(t, idx.Score(nil))
	assert.Nil(t, idx.Score([]string{"", "   "}))
}

func TestBM25_Deterministic(t *testing.T) {
	docs := []testDoc{
		{id: "a", text: "alpha beta gamma"},
		{id: "b", text: "beta gamma delta"},
		{id: "c", text: "gamma delta epsilon"},
	}
	idx := NewBM25(docs)
	first := idx.Score([]string{"gamma", "delta"})
	second := idx.Score([]string{"gamma", "delta"})
	assert.Equal(t, first, second)
}

func TestBM25_EmptyCorpus(t *testing.T) {
	idx := NewBM25([]testDoc{})
	results := idx.Score([]string{"anything"})
	assert.Empty(t, results)
}

func TestBM25_MultiWordKeywordSplits(t *testing.T) {
	docs := []testDoc{
		{id: "a", text: "overdue payment reminder"},
		{id: "b", text: "vacation photos"},
	}
	idx := NewBM25(docs)

	results := idx.Score([]string{"overdue payment"})
	require.Len(t, results, 2)
	assert.Equal(t, "a", results[0].Item.id)
	assert.Greater(t, results[0].Score, 0.0)
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"lowercases", "Hello World", []string{"hello", "world"}},
		{"strips punctuation", "re: invoice #1234!", []string{"re", "invoice", "1234"}},
		{"collapses whitespace", "a   b\n\nc", []string{"a", "b", "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.in))
		})
	}

	assert.Empty(t, Tokenize(""))
	assert.Empty(t, Tokenize("?!..."))
}
