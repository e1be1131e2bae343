// Package corpus reads the private document corpus (emails and notes)
// from JSON files and provides the exact-predicate access paths: filter
// by field and fetch-by-id with optional thread expansion.
//
// The corpus is loaded in full on every request. That keeps the rest of
// the pipeline free of shared mutable state between requests; the only
// durable state in the system is the embedding cache.
package corpus
