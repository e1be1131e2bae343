// Package embedder generates dense vector embeddings through external
// providers (Gemini, OpenAI) or a deterministic local fallback.
//
// Every provider enforces the batch ceiling (MaxBatchTexts, 99 texts per
// call), retries transient failures with exponential backoff, rate
// limits outgoing calls, and keeps a process-local LRU of recent vectors
// in front of whatever durable cache the caller layers on top.
//
// # Provider Selection
//
//	emb, err := embedder.NewFromEnv()
//
// picks a provider from MEMORIA_EMBEDDING_PROVIDER or from whichever API
// key is present, falling back to the local provider so the pipeline
// stays usable offline.
package embedder
