package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neuralnetworth/rag-youtube-sub000/internal/core/domain"
)

func chunk(videoID string, position int) domain.Chunk {
	return domain.Chunk{
		ID:       domain.ChunkID(videoID, position),
		VideoID:  videoID,
		Position: position,
		Text:     "chunk text",
	}
}

func TestChunkStore_SaveAndLoad(t *testing.T) {
	store := NewChunkStore()
	ctx := context.Background()

	require.NoError(t, store.SaveChunks(ctx, []domain.Chunk{
		chunk("vid-b", 0),
		chunk("vid-a", 1),
		chunk("vid-a", 0),
	}))

	loaded, err := store.LoadChunks(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 3)

	// Ordered by video then position.
	assert.Equal(t, domain.ChunkID("vid-a", 0), loaded[0].ID)
	assert.Equal(t, domain.ChunkID("vid-a", 1), loaded[1].ID)
	assert.Equal(t, domain.ChunkID("vid-b", 0), loaded[2].ID)
}

func TestChunkStore_HasVideo(t *testing.T) {
	store := NewChunkStore()
	ctx := context.Background()

	has, err := store.HasVideo(ctx, "vid-1")
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, store.SaveChunks(ctx, []domain.Chunk{chunk("vid-1", 0)}))

	has, err = store.HasVideo(ctx, "vid-1")
	require.NoError(t, err)
	assert.True(t, has)
}

func TestChunkStore_DeleteVideo(t *testing.T) {
	store := NewChunkStore()
	ctx := context.Background()

	require.NoError(t, store.SaveChunks(ctx, []domain.Chunk{
		chunk("vid-1", 0),
		chunk("vid-1", 1),
		chunk("vid-2", 0),
	}))
	require.NoError(t, store.DeleteVideo(ctx, "vid-1"))

	loaded, err := store.LoadChunks(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "vid-2", loaded[0].VideoID)
}
