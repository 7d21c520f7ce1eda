package driven

import (
	"context"

	"github.com/neuralnetworth/rag-youtube-sub000/internal/core/domain"
)

// ChunkStore persists enriched chunks and their embeddings.
//
// The store is the durable side of the system: the in-memory VectorIndex
// is rebuilt from it at startup, so a process restart never requires
// re-embedding the archive.
type ChunkStore interface {
	// SaveChunks persists the given chunks in a single transaction.
	SaveChunks(ctx context.Context, chunks []domain.Chunk) error

	// LoadChunks returns every persisted chunk.
	LoadChunks(ctx context.Context) ([]domain.Chunk, error)

	// HasVideo reports whether any chunk for the given video has been
	// persisted. Used to skip already-ingested videos.
	HasVideo(ctx context.Context, videoID string) (bool, error)

	// DeleteVideo removes all chunks for the given video. Used before
	// re-ingesting a rewritten caption file.
	DeleteVideo(ctx context.Context, videoID string) error

	// Close releases resources.
	Close() error
}
