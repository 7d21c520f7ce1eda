package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	// From the vector index it signals a neighbour ID without a metadata
	// record, which is an internal consistency fault rather than user error.
	ErrNotFound = errors.New("not found")

	// ErrEmptyIndex indicates a similarity query against an index that has
	// never been populated. Recoverable by ingesting first.
	ErrEmptyIndex = errors.New("vector index is empty")

	// ErrDimensionMismatch indicates an embedding whose length differs from
	// the dimension established by the index. The offending add is rejected
	// wholesale; the index keeps its prior contents.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmbeddingUnavailable indicates the embedding service is not configured.
	// Retrieval is impossible without query embeddings.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// Retrieval still works; answer generation is disabled.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrIndexUnavailable indicates the vector index is not configured.
	ErrIndexUnavailable = errors.New("vector index unavailable")
)
