// Package memory provides in-memory store implementations, used in
// tests and for ephemeral runs where persistence is not wanted.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/neuralnetworth/rag-youtube-sub000/internal/core/domain"
	"github.com/neuralnetworth/rag-youtube-sub000/internal/core/ports/driven"
)

// Ensure ChunkStore implements the interface.
var _ driven.ChunkStore = (*ChunkStore)(nil)

// ChunkStore is an in-memory implementation of driven.ChunkStore.
type ChunkStore struct {
	mu     sync.RWMutex
	chunks map[string]domain.Chunk
}

// NewChunkStore creates a new in-memory chunk store.
func NewChunkStore() *ChunkStore {
	return &ChunkStore{
		chunks: make(map[string]domain.Chunk),
	}
}

// SaveChunks stores or updates the given chunks.
func (s *ChunkStore) SaveChunks(_ context.Context, chunks []domain.Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, chunk := range chunks {
		s.chunks[chunk.ID] = chunk
	}
	return nil
}

// LoadChunks returns every stored chunk, ordered by video and position.
func (s *ChunkStore) LoadChunks(_ context.Context) ([]domain.Chunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	chunks := make([]domain.Chunk, 0, len(s.chunks))
	for _, chunk := range s.chunks {
		chunks = append(chunks, chunk)
	}
	sort.Slice(chunks, func(i, j int) bool {
		if chunks[i].VideoID != chunks[j].VideoID {
			return chunks[i].VideoID < chunks[j].VideoID
		}
		return chunks[i].Position < chunks[j].Position
	})
	return chunks, nil
}

// HasVideo reports whether any chunk for the given video is stored.
func (s *ChunkStore) HasVideo(_ context.Context, videoID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, chunk := range s.chunks {
		if chunk.VideoID == videoID {
			return true, nil
		}
	}
	return false, nil
}

// DeleteVideo removes all chunks for the given video.
func (s *ChunkStore) DeleteVideo(_ context.Context, videoID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, chunk := range s.chunks {
		if chunk.VideoID == videoID {
			delete(s.chunks, id)
		}
	}
	return nil
}

// Close releases resources. The in-memory store holds none.
func (s *ChunkStore) Close() error {
	return nil
}
