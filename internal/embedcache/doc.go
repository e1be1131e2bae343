// Package embedcache persists computed embedding vectors keyed by a
// content hash of the embedded text plus the embedding model identifier.
//
// The cache is append-only and unbounded by design: entries are
// immutable once written, are never explicitly deleted, and a hit
// guarantees the same text yields the same vector for a given model.
// That is acceptable at personal-corpus scale and makes concurrent
// writes harmless (both writers produce identical bytes).
//
// Two backends exist: Disk stores one JSON vector file per text under a
// cache directory, SQLite stores the same mapping in a single database
// file. Both treat per-entry I/O errors as cache misses rather than
// failures, so a broken entry degrades to one extra provider call.
package embedcache
