package search

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// Indexable is the capability a type needs to flow through the retrieval
// pipeline: a stable identity for rank fusion and a text rendering for
// scoring. Chunks implement it; so can whole documents.
type Indexable interface {
	Identity() string
	IndexText() string
}

// Scored pairs an item with a scalar score from one retrieval method.
// Scores from different methods are not comparable; only rank order is.
type Scored[T any] struct {
	Item  T
	Score float64
}

// BM25 parameters. k1 controls term-frequency saturation, b the degree
// of document-length normalization.
const (
	bm25K1 = 1.5
	bm25B  = 0.75
)

// BM25 scores items against keyword queries using the Okapi BM25
// ranking function. The index is built per request over the ephemeral
// chunk corpus; there is no persisted inverted index.
type BM25[T Indexable] struct {
	items     []T
	termFreqs []map[string]int
	docLens   []int
	avgDocLen float64
	idf       map[string]float64
}

// NewBM25 builds an index over items. Scoring the same corpus and
// keyword set twice yields identical ordering and scores.
func NewBM25[T Indexable](items []T) *BM25[T] {
	b := &BM25[T]{
		items:     items,
		termFreqs: make([]map[string]int, len(items)),
		docLens:   make([]int, len(items)),
		idf:       make(map[string]float64),
	}

	docFreq := make(map[string]int)
	var totalLen int
	for i, item := range items {
		tokens := Tokenize(item.IndexText())
		b.docLens[i] = len(tokens)
		totalLen += len(tokens)

		freqs := make(map[string]int, len(tokens))
		for _, token := range tokens {
			freqs[token]++
		}
		b.termFreqs[i] = freqs
		for token := range freqs {
			docFreq[token]++
		}
	}

	if len(items) > 0 {
		b.avgDocLen = float64(totalLen) / float64(len(items))
	}
	n := float64(len(items))
	for term, df := range docFreq {
		b.idf[term] = math.Log((n-float64(df)+0.5)/(float64(df)+0.5) + 1.0)
	}
	return b
}

// Score ranks every indexed item against the keywords, descending, with
// ties left in input order. An empty keyword list yields no results;
// whether that skips lexical scoring entirely is the caller's call.
func (b *BM25[T]) Score(keywords []string) []Scored[T] {
	terms := tokenizeKeywords(keywords)
	if len(terms) == 0 {
		return nil
	}

	results := make([]Scored[T], len(b.items))
	for i, item := range b.items {
		results[i] = Scored[T]{Item: item, Score: b.scoreDoc(i, terms)}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

func (b *BM25[T]) scoreDoc(i int, terms []string) float64 {
	docLen := float64(b.docLens[i])
	var score float64
	for _, term := range terms {
		tf := float64(b.termFreqs[i][term])
		if tf == 0 {
			continue
		}
		idf := b.idf[term]
		numerator := tf * (bm25K1 + 1)
		denominator := tf + bm25K1*(1-bm25B+bm25B*docLen/b.avgDocLen)
		score += idf * numerator / denominator
	}
	return score
}

// Tokenize lower-cases text and splits it on non-alphanumeric runes.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.Fields(b.String())
}

func tokenizeKeywords(keywords []string) []string {
	var terms []string
	for _, kw := range keywords {
		terms = append(terms, Tokenize(kw)...)
	}
	return terms
}
