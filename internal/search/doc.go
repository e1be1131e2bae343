// Package search implements the hybrid retrieval pipeline: BM25 lexical
// scoring and embedding-based semantic scoring run concurrently over the
// chunked corpus, their rankings merge with Reciprocal Rank Fusion, and
// an optional relevance judge prunes the fused candidates.
//
// The pipeline is stateless between requests apart from two caches: a
// durable content-addressed embedding cache shared across processes, and
// a process-local LRU of recent responses keyed by request hash.
package search
