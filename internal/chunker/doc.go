// Package chunker divides document bodies into overlapping passages for
// scoring and embedding.
//
// # Basic Usage
//
//	c := chunker.New()
//	chunks := c.ChunkNotes(notes)
//
//	for _, chunk := range chunks {
//	    fmt.Printf("%s: chunk %d of %d\n", chunk.DocumentID, chunk.Index, chunk.Total)
//	}
//
// # Splitting Strategy
//
// Cut points are chosen at natural text boundaries, in order of
// preference: paragraph break, line break, space, rune boundary.
// Adjacent chunks share a configurable overlap so that a passage
// straddling a cut is still retrievable from one of its chunks.
//
// Splitting is deterministic: the same text and configuration always
// produce the same chunk boundaries, which keeps chunk identities
// ("documentID-index") stable across requests without a chunk store.
package chunker
