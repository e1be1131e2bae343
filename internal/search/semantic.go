package search

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/mbarlow/memoria-mcp/internal/embedcache"
	"github.com/mbarlow/memoria-mcp/internal/embedder"
)

// SemanticRank ranks items by cosine similarity between the query
// embedding and each item's embedding, descending, ties left in input
// order. Item vectors are resolved cache-first; misses are embedded in
// sequential batches of at most embedder.MaxBatchTexts and written back
// to the cache. A nil cache means every item is embedded fresh.
func SemanticRank[T Indexable](ctx context.Context, emb embedder.Embedder, cache embedcache.Cache, query string, items []T) ([]Scored[T], error) {
	if query == "" || len(items) == 0 {
		return nil, nil
	}

	texts := make([]string, len(items))
	for i, item := range items {
		texts[i] = item.IndexText()
	}

	vectors := make([][]float32, len(items))
	var misses []int
	for i, text := range texts {
		if cache != nil {
			if v, ok := cache.Get(text); ok {
				vectors[i] = v
				continue
			}
		}
		misses = append(misses, i)
	}

	for start := 0; start < len(misses); start += embedder.MaxBatchTexts {
		end := min(start+embedder.MaxBatchTexts, len(misses))
		batch := make([]string, 0, end-start)
		for _, idx := range misses[start:end] {
			batch = append(batch, texts[idx])
		}
		vecs, err := emb.EmbedBatch(ctx, batch)
		if err != nil {
			return nil, fmt.Errorf("embed corpus batch: %w", err)
		}
		for j, idx := range misses[start:end] {
			vectors[idx] = vecs[j]
			if cache != nil {
				cache.Put(texts[idx], vecs[j])
			}
		}
	}

	queryVec, err := emb.EmbedOne(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	results := make([]Scored[T], len(items))
	for i, item := range items {
		results[i] = Scored[T]{Item: item, Score: CosineSimilarity(queryVec, vectors[i])}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results, nil
}

// CosineSimilarity returns the cosine of the angle between two vectors,
// in [-1, 1]. Mismatched lengths or a zero vector yield 0.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
