package embedcache

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashLength is the number of hex characters of the content digest kept
// in a cache key. Ten characters bound key length while keeping the
// collision probability negligible for corpora in the thousands.
const HashLength = 10

// Cache maps an exact text string to a previously computed embedding
// vector for one embedding model. Entries are immutable once written:
// the same text always yields the same vector for a given model, so a
// write race between two requests is harmless.
//
// A backend read or write failure on an individual entry degrades to a
// miss or a no-op. It must never abort the batch operation in progress;
// the live provider is the fallback.
type Cache interface {
	// Get returns the cached vector for text, if present.
	Get(text string) ([]float32, bool)

	// Put stores a fully computed vector for text. Partial vectors are
	// never written; callers only invoke Put after the provider call
	// completed.
	Put(text string, vector []float32)

	// Close releases backend resources.
	Close() error
}

// Key derives the cache key for a text under a model: the model
// identifier joined with the truncated hex SHA-256 of the text.
func Key(model, text string) string {
	sum := sha256.Sum256([]byte(text))
	return model + "-" + hex.EncodeToString(sum[:])[:HashLength]
}
