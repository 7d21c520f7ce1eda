// Package flat provides an exact in-memory vector index.
//
// Search is a brute-force scan over every stored embedding using squared
// L2 distance. Exact search keeps results deterministic, and the corpus
// (one channel's caption archive) is small enough that a scan outperforms
// the constant factors of an approximate structure.
package flat

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/neuralnetworth/rag-youtube-sub000/internal/core/domain"
	"github.com/neuralnetworth/rag-youtube-sub000/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// Index is a flat (exact) vector index guarded by a read-write mutex.
// The embedding dimension is established by the first Add.
type Index struct {
	mu        sync.RWMutex
	dimension int
	order     []string // insertion order of chunk IDs
	chunks    map[string]domain.Chunk
}

// New creates an empty index.
func New() *Index {
	return &Index{
		chunks: make(map[string]domain.Chunk),
	}
}

// Add appends chunks and their embeddings. The whole batch is validated
// before anything is stored: one bad embedding rejects the batch and
// leaves the index unchanged.
func (idx *Index) Add(_ context.Context, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	dimension := idx.dimension
	if dimension == 0 {
		dimension = len(chunks[0].Embedding)
		if dimension == 0 {
			return fmt.Errorf("%w: chunk %s has no embedding", domain.ErrDimensionMismatch, chunks[0].ID)
		}
	}
	for _, chunk := range chunks {
		if len(chunk.Embedding) != dimension {
			return fmt.Errorf("%w: chunk %s has dimension %d, index has %d",
				domain.ErrDimensionMismatch, chunk.ID, len(chunk.Embedding), dimension)
		}
	}

	idx.dimension = dimension
	for _, chunk := range chunks {
		if _, exists := idx.chunks[chunk.ID]; !exists {
			idx.order = append(idx.order, chunk.ID)
		}
		idx.chunks[chunk.ID] = chunk
	}
	return nil
}

// Search scans every embedding and returns up to k hits ordered by
// ascending squared L2 distance. Ties keep insertion order.
func (idx *Index) Search(_ context.Context, query []float32, k int) ([]driven.VectorHit, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if len(idx.chunks) == 0 {
		return nil, domain.ErrEmptyIndex
	}
	if len(query) != idx.dimension {
		return nil, fmt.Errorf("%w: query has dimension %d, index has %d",
			domain.ErrDimensionMismatch, len(query), idx.dimension)
	}
	if k <= 0 {
		return nil, fmt.Errorf("%w: k must be positive, got %d", domain.ErrInvalidInput, k)
	}

	hits := make([]driven.VectorHit, 0, len(idx.order))
	for _, id := range idx.order {
		hits = append(hits, driven.VectorHit{
			ChunkID:  id,
			Distance: squaredL2(query, idx.chunks[id].Embedding),
		})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
	if k < len(hits) {
		hits = hits[:k]
	}
	return hits, nil
}

// Get retrieves a chunk by ID.
func (idx *Index) Get(_ context.Context, chunkID string) (*domain.Chunk, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	chunk, ok := idx.chunks[chunkID]
	if !ok {
		return nil, fmt.Errorf("%w: chunk %s", domain.ErrNotFound, chunkID)
	}
	return &chunk, nil
}

// All returns every chunk in insertion order.
func (idx *Index) All(_ context.Context) ([]domain.Chunk, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	chunks := make([]domain.Chunk, 0, len(idx.order))
	for _, id := range idx.order {
		chunks = append(chunks, idx.chunks[id])
	}
	return chunks, nil
}

// Len returns the number of indexed chunks.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.chunks)
}

// Dimension returns the established embedding dimension, or 0 when the
// index is empty.
func (idx *Index) Dimension() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.dimension
}

// Close releases resources. The flat index holds none.
func (idx *Index) Close() error {
	return nil
}

// squaredL2 computes the squared Euclidean distance between two vectors
// of equal length. The square root is skipped: ordering is unchanged and
// downstream similarity mapping expects the squared form.
func squaredL2(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return sum
}
