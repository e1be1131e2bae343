// Package types defines the shared domain types for the memoria retrieval
// pipeline: corpus documents (emails and notes), the chunks derived from
// them, conversation messages, and result shapes returned to tool callers.
//
// Types here are plain data with validation methods; behavior lives in the
// internal packages that consume them.
package types
