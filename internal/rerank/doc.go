// Package rerank filters fused retrieval candidates through a relevance
// judge. Rank fusion is deliberately permissive, so a second pass with
// full conversation context prunes the noise it lets through.
//
// Candidates are addressed by transient small integers assigned per
// call; the judge sees id, subject, and full text, and answers with the
// ids worth keeping. Ids outside the candidate set are discarded, which
// guards against the judge inventing one.
package rerank
