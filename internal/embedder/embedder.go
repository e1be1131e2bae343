package embedder

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Common errors
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrProviderFailed    = errors.New("embedding provider failed")
	ErrUnsupportedModel  = errors.New("unsupported model")
	ErrEmptyText         = errors.New("text cannot be empty")
	ErrBatchTooLarge     = errors.New("batch size exceeds provider limit")
	ErrNoProviderEnabled = errors.New("no embedding provider configured")
)

// MaxBatchTexts is the provider-imposed ceiling on texts per batch call.
// Exceeding it produces request-size failures on the provider side, so
// callers must issue sequential batches of at most this many texts.
const MaxBatchTexts = 99

// Embedder generates dense vector embeddings for text.
type Embedder interface {
	// EmbedOne embeds a single text.
	EmbedOne(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch embeds up to MaxBatchTexts texts in one provider call,
	// returning vectors in input order.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Model returns the model identifier, used to scope cache keys.
	Model() string

	// Provider returns the provider name.
	Provider() string

	// Close releases any resources held by the embedder.
	Close() error
}

// memCache is a process-local LRU layer in front of the durable cache,
// keyed by a full content hash of the text.
type memCache struct {
	cache *lru.Cache[string, []float32]
}

func newMemCache(maxLen int) *memCache {
	if maxLen <= 0 {
		maxLen = 10000
	}
	cache, err := lru.New[string, []float32](maxLen)
	if err != nil {
		// Only reachable with a non-positive size.
		cache, _ = lru.New[string, []float32](10000)
	}
	return &memCache{cache: cache}
}

// get returns a copy of the cached vector so caller mutations cannot
// pollute the cache.
func (c *memCache) get(hash string) ([]float32, bool) {
	vec, ok := c.cache.Get(hash)
	if !ok {
		return nil, false
	}
	out := make([]float32, len(vec))
	copy(out, vec)
	return out, true
}

func (c *memCache) set(hash string, vec []float32) {
	c.cache.Add(hash, vec)
}

// hashText computes the full hex SHA-256 of text for in-memory caching.
func hashText(text string) string {
	h := sha256.Sum256([]byte(text))
	return hex.EncodeToString(h[:])
}

func validateTexts(texts []string) error {
	if len(texts) == 0 {
		return fmt.Errorf("%w: no texts provided", ErrInvalidInput)
	}
	if len(texts) > MaxBatchTexts {
		return fmt.Errorf("%w: max %d texts per call", ErrBatchTooLarge, MaxBatchTexts)
	}
	for i, text := range texts {
		if text == "" {
			return fmt.Errorf("%w: text at index %d is empty", ErrInvalidInput, i)
		}
	}
	return nil
}
