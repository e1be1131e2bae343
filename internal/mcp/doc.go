// Package mcp exposes the retrieval pipeline as Model Context Protocol
// tools over stdio.
//
// Three tools cover the agent's access patterns: search_documents for
// ranked hybrid retrieval, filter_documents for exact metadata
// predicates, and get_documents for fetching full content by id. Tool
// failures are delivered as tool results, not protocol errors, so the
// calling agent can read the message and retry with better arguments.
//
// Stdout carries the protocol; all logging must go to stderr.
package mcp
