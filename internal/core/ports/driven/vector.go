package driven

import (
	"context"

	"github.com/neuralnetworth/rag-youtube-sub000/internal/core/domain"
)

// VectorIndex stores chunk embeddings and answers nearest-neighbour queries.
// The index dimension is established by the first successful Add; later
// batches must match it or be rejected whole.
type VectorIndex interface {
	// Add inserts chunks and their embeddings into the index.
	// A batch containing any embedding whose dimension disagrees with the
	// index is rejected atomically with domain.ErrDimensionMismatch.
	Add(ctx context.Context, chunks []domain.Chunk) error

	// Search finds the k nearest neighbours to the query vector, ordered
	// by ascending distance. Returns domain.ErrEmptyIndex when nothing has
	// been added, and domain.ErrDimensionMismatch when the query dimension
	// disagrees with the index.
	Search(ctx context.Context, query []float32, k int) ([]VectorHit, error)

	// Get retrieves a chunk by ID. Returns domain.ErrNotFound when absent.
	Get(ctx context.Context, chunkID string) (*domain.Chunk, error)

	// All returns every chunk in the index. Used for statistics.
	All(ctx context.Context) ([]domain.Chunk, error)

	// Len returns the number of indexed chunks.
	Len() int

	// Dimension returns the established embedding dimension, or 0 when
	// the index is empty.
	Dimension() int

	// Close releases resources.
	Close() error
}

// VectorHit represents a similarity search result.
type VectorHit struct {
	// ChunkID is the matched chunk.
	ChunkID string

	// Distance is the squared L2 distance between query and match.
	// Smaller is closer.
	Distance float64
}
