package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neuralnetworth/rag-youtube-sub000/internal/core/domain"
)

// mockCaptionSource implements driven.CaptionSource for testing.
type mockCaptionSource struct {
	transcripts []domain.Transcript
	listErr     error
	listDone    chan struct{} // closed when the producer goroutine exits
}

func (m *mockCaptionSource) ListTranscripts(ctx context.Context) (<-chan domain.Transcript, <-chan error) {
	transcripts := make(chan domain.Transcript)
	errs := make(chan error, 1)
	go func() {
		defer close(transcripts)
		defer close(errs)
		if m.listDone != nil {
			defer close(m.listDone)
		}
		for _, transcript := range m.transcripts {
			select {
			case transcripts <- transcript:
			case <-ctx.Done():
				return
			}
		}
		if m.listErr != nil {
			errs <- m.listErr
		}
	}()
	return transcripts, errs
}

func (m *mockCaptionSource) Watch(_ context.Context) (<-chan domain.Transcript, error) {
	transcripts := make(chan domain.Transcript)
	go func() {
		defer close(transcripts)
		for _, transcript := range m.transcripts {
			transcripts <- transcript
		}
	}()
	return transcripts, nil
}

func (m *mockCaptionSource) Close() error { return nil }

// mockPipeline implements driven.PostProcessorPipeline for testing.
type mockPipeline struct {
	chunksPerVideo int
}

func (m *mockPipeline) Process(_ context.Context, transcript *domain.Transcript) ([]domain.Chunk, error) {
	chunks := make([]domain.Chunk, m.chunksPerVideo)
	for i := range chunks {
		chunks[i] = domain.Chunk{
			ID:      domain.ChunkID(transcript.Video.ID, i),
			VideoID: transcript.Video.ID,
			Text:    transcript.Text,
		}
	}
	return chunks, nil
}

// mockChunkStore implements driven.ChunkStore for testing.
type mockChunkStore struct {
	saved    map[string][]domain.Chunk
	existing map[string]bool
	deleted  []string
	hasErr   error
}

func newMockChunkStore() *mockChunkStore {
	return &mockChunkStore{
		saved:    make(map[string][]domain.Chunk),
		existing: make(map[string]bool),
	}
}

func (m *mockChunkStore) SaveChunks(_ context.Context, chunks []domain.Chunk) error {
	for _, chunk := range chunks {
		m.saved[chunk.VideoID] = append(m.saved[chunk.VideoID], chunk)
	}
	return nil
}

func (m *mockChunkStore) LoadChunks(_ context.Context) ([]domain.Chunk, error) {
	var all []domain.Chunk
	for _, chunks := range m.saved {
		all = append(all, chunks...)
	}
	return all, nil
}

func (m *mockChunkStore) HasVideo(_ context.Context, videoID string) (bool, error) {
	if m.hasErr != nil {
		return false, m.hasErr
	}
	return m.existing[videoID], nil
}

func (m *mockChunkStore) DeleteVideo(_ context.Context, videoID string) error {
	m.deleted = append(m.deleted, videoID)
	delete(m.saved, videoID)
	return nil
}

func (m *mockChunkStore) Close() error { return nil }

func testTranscript(videoID string) domain.Transcript {
	return domain.Transcript{
		Video: domain.Video{
			ID:          videoID,
			Title:       "AM HYPE Market Update",
			PublishedAt: time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC),
		},
		Text:        "futures are pointing higher ahead of the open",
		HasCaptions: true,
	}
}

func TestIngestService_Ingest(t *testing.T) {
	source := &mockCaptionSource{transcripts: []domain.Transcript{
		testTranscript("vid-1"),
		testTranscript("vid-2"),
	}}
	store := newMockChunkStore()
	index := &mockVectorIndex{}
	svc := NewIngestService(source, &mockPipeline{chunksPerVideo: 2},
		&mockEmbeddingService{embedding: []float32{1, 0, 0, 0}}, index, store)

	report, err := svc.Ingest(context.Background(), false)
	require.NoError(t, err)

	assert.Equal(t, 2, report.VideosProcessed)
	assert.Equal(t, 0, report.VideosSkipped)
	assert.Equal(t, 4, report.ChunksIndexed)
	assert.Len(t, store.saved["vid-1"], 2)
	assert.Equal(t, 4, index.Len())

	// Embeddings attached before indexing and persisting.
	for _, chunk := range store.saved["vid-1"] {
		assert.Equal(t, []float32{1, 0, 0, 0}, chunk.Embedding)
	}
}

func TestIngestService_Ingest_SkipsExisting(t *testing.T) {
	source := &mockCaptionSource{transcripts: []domain.Transcript{
		testTranscript("vid-1"),
		testTranscript("vid-2"),
	}}
	store := newMockChunkStore()
	store.existing["vid-1"] = true
	svc := NewIngestService(source, &mockPipeline{chunksPerVideo: 1},
		&mockEmbeddingService{embedding: []float32{1, 0, 0, 0}}, &mockVectorIndex{}, store)

	report, err := svc.Ingest(context.Background(), false)
	require.NoError(t, err)

	assert.Equal(t, 1, report.VideosProcessed)
	assert.Equal(t, 1, report.VideosSkipped)
	assert.Empty(t, store.deleted)
	assert.NotContains(t, store.saved, "vid-1")
}

func TestIngestService_Ingest_ForceReplacesExisting(t *testing.T) {
	source := &mockCaptionSource{transcripts: []domain.Transcript{testTranscript("vid-1")}}
	store := newMockChunkStore()
	store.existing["vid-1"] = true
	svc := NewIngestService(source, &mockPipeline{chunksPerVideo: 1},
		&mockEmbeddingService{embedding: []float32{1, 0, 0, 0}}, &mockVectorIndex{}, store)

	report, err := svc.Ingest(context.Background(), true)
	require.NoError(t, err)

	assert.Equal(t, 1, report.VideosProcessed)
	assert.Equal(t, []string{"vid-1"}, store.deleted)
	assert.Len(t, store.saved["vid-1"], 1)
}

func TestIngestService_Ingest_EmptyTranscriptProducesNoChunks(t *testing.T) {
	source := &mockCaptionSource{transcripts: []domain.Transcript{testTranscript("vid-1")}}
	svc := NewIngestService(source, &mockPipeline{chunksPerVideo: 0},
		&mockEmbeddingService{embedding: []float32{1, 0, 0, 0}}, &mockVectorIndex{}, newMockChunkStore())

	report, err := svc.Ingest(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 1, report.VideosProcessed)
	assert.Equal(t, 0, report.ChunksIndexed)
}

func TestIngestService_Ingest_SourceError(t *testing.T) {
	source := &mockCaptionSource{listErr: errors.New("bad archive")}
	svc := NewIngestService(source, &mockPipeline{chunksPerVideo: 1},
		&mockEmbeddingService{embedding: []float32{1, 0, 0, 0}}, &mockVectorIndex{}, newMockChunkStore())

	_, err := svc.Ingest(context.Background(), false)
	require.ErrorContains(t, err, "listing transcripts")
}

func TestIngestService_Ingest_ErrorUnblocksSource(t *testing.T) {
	source := &mockCaptionSource{
		transcripts: []domain.Transcript{
			testTranscript("vid-1"),
			testTranscript("vid-2"),
		},
		listDone: make(chan struct{}),
	}
	store := newMockChunkStore()
	store.hasErr = errors.New("store offline")
	svc := NewIngestService(source, &mockPipeline{chunksPerVideo: 1},
		&mockEmbeddingService{embedding: []float32{1, 0, 0, 0}}, &mockVectorIndex{}, store)

	_, err := svc.Ingest(context.Background(), false)
	require.Error(t, err)

	// The producer must not stay blocked on the transcript channel after
	// the consumer bails out mid-stream.
	select {
	case <-source.listDone:
	case <-time.After(time.Second):
		t.Fatal("transcript producer still running after ingest error")
	}
}

func TestIngestService_Watch_ReingestsOnChange(t *testing.T) {
	source := &mockCaptionSource{transcripts: []domain.Transcript{testTranscript("vid-1")}}
	store := newMockChunkStore()
	svc := NewIngestService(source, &mockPipeline{chunksPerVideo: 1},
		&mockEmbeddingService{embedding: []float32{1, 0, 0, 0}}, &mockVectorIndex{}, store)

	err := svc.Watch(context.Background())
	require.NoError(t, err)

	// Watch clears any earlier chunks for the video before reingesting.
	assert.Equal(t, []string{"vid-1"}, store.deleted)
	assert.Len(t, store.saved["vid-1"], 1)
}
