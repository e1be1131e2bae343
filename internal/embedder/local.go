package embedder

import (
	"context"
	"crypto/sha256"
	"fmt"
	"math"
)

// LocalProvider produces deterministic offline embeddings derived from
// token hashes. The vectors carry enough lexical signal for development
// and tests without network access; they are not a substitute for a real
// model in production.
type LocalProvider struct {
	model string
	cache *memCache
}

// NewLocalProvider creates the offline embedder.
func NewLocalProvider() *LocalProvider {
	return &LocalProvider{
		model: "local-embeddings",
		cache: newMemCache(0),
	}
}

func (l *LocalProvider) EmbedOne(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, ErrEmptyText
	}
	hash := hashText(text)
	if vec, ok := l.cache.get(hash); ok {
		return vec, nil
	}

	vector := localVector(text)
	l.cache.set(hash, vector)
	return vector, nil
}

func (l *LocalProvider) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if err := validateTexts(texts); err != nil {
		return nil, err
	}
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := l.EmbedOne(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("embedding text %d: %w", i, err)
		}
		vectors[i] = vec
	}
	return vectors, nil
}

func (l *LocalProvider) Model() string {
	return l.model
}

func (l *LocalProvider) Provider() string {
	return ProviderLocal
}

func (l *LocalProvider) Close() error {
	return nil
}

// localVector hashes each whitespace token into a bucket and normalizes
// the result. Texts sharing tokens land near each other in the space.
func localVector(text string) []float32 {
	vector := make([]float32, LocalDimension)
	for _, token := range tokenizeASCII(text) {
		sum := sha256.Sum256([]byte(token))
		bucket := (int(sum[0])<<8 | int(sum[1])) % LocalDimension
		vector[bucket] += 1.0
	}
	return NormalizeVector(vector)
}

// tokenizeASCII lower-cases and splits on non-alphanumeric runes.
func tokenizeASCII(text string) []string {
	var tokens []string
	var current []rune
	for _, r := range text {
		switch {
		case r >= 'A' && r <= 'Z':
			current = append(current, r+('a'-'A'))
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			current = append(current, r)
		default:
			if len(current) > 0 {
				tokens = append(tokens, string(current))
				current = current[:0]
			}
		}
	}
	if len(current) > 0 {
		tokens = append(tokens, string(current))
	}
	return tokens
}

// NormalizeVector normalizes a vector to unit length.
func NormalizeVector(v []float32) []float32 {
	var sum float64
	for _, val := range v {
		sum += float64(val) * float64(val)
	}
	if sum == 0 {
		return v
	}
	norm := float32(math.Sqrt(sum))
	result := make([]float32, len(v))
	for i, val := range v {
		result[i] = val / norm
	}
	return result
}
