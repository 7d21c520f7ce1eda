package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neuralnetworth/rag-youtube-sub000/internal/core/domain"
	"github.com/neuralnetworth/rag-youtube-sub000/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockVectorIndex implements driven.VectorIndex for testing.
type mockVectorIndex struct {
	chunks    map[string]domain.Chunk
	hits      []driven.VectorHit
	searchErr error
	lastK     int
}

func (m *mockVectorIndex) Add(_ context.Context, chunks []domain.Chunk) error {
	if m.chunks == nil {
		m.chunks = make(map[string]domain.Chunk)
	}
	for _, chunk := range chunks {
		m.chunks[chunk.ID] = chunk
	}
	return nil
}

func (m *mockVectorIndex) Search(_ context.Context, _ []float32, k int) ([]driven.VectorHit, error) {
	m.lastK = k
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	if k > len(m.hits) {
		return m.hits, nil
	}
	return m.hits[:k], nil
}

func (m *mockVectorIndex) Get(_ context.Context, chunkID string) (*domain.Chunk, error) {
	chunk, ok := m.chunks[chunkID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &chunk, nil
}

func (m *mockVectorIndex) All(_ context.Context) ([]domain.Chunk, error) {
	chunks := make([]domain.Chunk, 0, len(m.chunks))
	for _, chunk := range m.chunks {
		chunks = append(chunks, chunk)
	}
	return chunks, nil
}

func (m *mockVectorIndex) Len() int       { return len(m.chunks) }
func (m *mockVectorIndex) Dimension() int { return 4 }
func (m *mockVectorIndex) Close() error   { return nil }

// mockEmbeddingService implements driven.EmbeddingService for testing.
type mockEmbeddingService struct {
	embedding []float32
	embedErr  error
}

func (m *mockEmbeddingService) Embed(_ context.Context, _ string) ([]float32, error) {
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	return m.embedding, nil
}

func (m *mockEmbeddingService) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	result := make([][]float32, len(texts))
	for i := range texts {
		result[i] = m.embedding
	}
	return result, nil
}

func (m *mockEmbeddingService) Dimensions() int              { return len(m.embedding) }
func (m *mockEmbeddingService) ModelName() string            { return "mock-embedding" }
func (m *mockEmbeddingService) Ping(_ context.Context) error { return nil }
func (m *mockEmbeddingService) Close() error                 { return nil }

// --- Fixtures ---

// indexWithChunks builds a mock index holding n chunks with ascending
// distances, alternating educational/general categories.
func indexWithChunks(n int) *mockVectorIndex {
	index := &mockVectorIndex{chunks: make(map[string]domain.Chunk)}
	for i := 0; i < n; i++ {
		category := domain.CategoryGeneral
		if i%2 == 0 {
			category = domain.CategoryEducational
		}
		quality := domain.QualityLow
		if i < n/2 {
			quality = domain.QualityHigh
		}
		id := domain.ChunkID(fmt.Sprintf("vid-%d", i), 0)
		index.chunks[id] = domain.Chunk{
			ID:           id,
			VideoID:      fmt.Sprintf("vid-%d", i),
			Text:         fmt.Sprintf("chunk %d", i),
			HasCaptions:  true,
			Category:     category,
			QualityLevel: quality,
			PublishedAt:  time.Date(2024, 1, 1+i, 0, 0, 0, 0, time.UTC),
		}
		index.hits = append(index.hits, driven.VectorHit{
			ChunkID:  id,
			Distance: float64(i) * 0.1,
		})
	}
	return index
}

func newTestRetrieval(index *mockVectorIndex) *RetrievalService {
	return NewRetrievalService(index, &mockEmbeddingService{embedding: []float32{1, 0, 0, 0}})
}

// --- Tests ---

func TestRetrievalService_Retrieve_NoFilter(t *testing.T) {
	index := indexWithChunks(10)
	svc := newTestRetrieval(index)

	results, err := svc.Retrieve(context.Background(), "gamma exposure", 3, nil)
	require.NoError(t, err)
	require.Len(t, results, 3)

	// Exactly count candidates requested when no filter is active.
	assert.Equal(t, 3, index.lastK)

	// Ordered by descending similarity, scores in (0, 1].
	for i := range results {
		assert.InDelta(t, 1.0/(1.0+float64(i)*0.1), results[i].Score, 1e-9)
		if i > 0 {
			assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
		}
	}
}

func TestRetrievalService_Retrieve_OverFetchWithFilter(t *testing.T) {
	index := indexWithChunks(20)
	svc := newTestRetrieval(index)

	filter := &domain.FilterSpec{Categories: []domain.Category{domain.CategoryEducational}}
	results, err := svc.Retrieve(context.Background(), "options greeks", 4, filter)
	require.NoError(t, err)

	// count x 3 candidates requested to survive the filter.
	assert.Equal(t, 12, index.lastK)
	require.Len(t, results, 4)
	for _, result := range results {
		assert.Equal(t, domain.CategoryEducational, result.Chunk.Category)
	}
}

func TestRetrievalService_Retrieve_InjectedOverFetch(t *testing.T) {
	index := indexWithChunks(20)
	svc := newTestRetrieval(index)
	svc.SetOverFetch(5)

	filter := &domain.FilterSpec{RequireCaptions: true}
	_, err := svc.Retrieve(context.Background(), "volatility", 3, filter)
	require.NoError(t, err)
	assert.Equal(t, 15, index.lastK)
}

func TestRetrievalService_Retrieve_NoRetryOnShortResults(t *testing.T) {
	index := indexWithChunks(10)
	svc := newTestRetrieval(index)

	// Half the corpus is QualityLow; asking for high quality from a
	// 6-candidate window yields fewer than requested, with no second pass.
	filter := &domain.FilterSpec{MinQuality: domain.QualityHigh}
	results, err := svc.Retrieve(context.Background(), "market update", 2, filter)
	require.NoError(t, err)
	assert.Equal(t, 6, index.lastK)
	assert.LessOrEqual(t, len(results), 2)
	for _, result := range results {
		assert.Equal(t, domain.QualityHigh, result.Chunk.QualityLevel)
	}
}

func TestRetrievalService_Retrieve_MinQualityExcludesLower(t *testing.T) {
	index := indexWithChunks(10)
	svc := newTestRetrieval(index)

	filter := &domain.FilterSpec{MinQuality: domain.QualityMedium}
	results, err := svc.Retrieve(context.Background(), "query", 10, filter)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	for _, result := range results {
		assert.GreaterOrEqual(t, result.Chunk.QualityLevel, domain.QualityMedium)
	}
}

func TestRetrievalService_Retrieve_ZeroFilterMatchesNil(t *testing.T) {
	index := indexWithChunks(10)
	svc := newTestRetrieval(index)

	withNil, err := svc.Retrieve(context.Background(), "query", 5, nil)
	require.NoError(t, err)
	withZero, err := svc.Retrieve(context.Background(), "query", 5, &domain.FilterSpec{})
	require.NoError(t, err)
	assert.Equal(t, withNil, withZero)
}

func TestRetrievalService_Retrieve_Deterministic(t *testing.T) {
	index := indexWithChunks(10)
	svc := newTestRetrieval(index)

	first, err := svc.Retrieve(context.Background(), "query", 4, nil)
	require.NoError(t, err)
	second, err := svc.Retrieve(context.Background(), "query", 4, nil)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRetrievalService_Retrieve_EmptyIndex(t *testing.T) {
	index := &mockVectorIndex{searchErr: domain.ErrEmptyIndex}
	svc := newTestRetrieval(index)

	_, err := svc.Retrieve(context.Background(), "query", 3, nil)
	assert.ErrorIs(t, err, domain.ErrEmptyIndex)
}

func TestRetrievalService_Retrieve_InvalidInput(t *testing.T) {
	svc := newTestRetrieval(indexWithChunks(3))

	_, err := svc.Retrieve(context.Background(), "   ", 3, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Retrieve(context.Background(), "query", 0, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRetrievalService_Retrieve_EmbeddingError(t *testing.T) {
	svc := NewRetrievalService(indexWithChunks(3), &mockEmbeddingService{
		embedErr: errors.New("connection refused"),
	})

	_, err := svc.Retrieve(context.Background(), "query", 3, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "embedding query")
}

func TestRetrievalService_Retrieve_SkipsMissingChunks(t *testing.T) {
	index := indexWithChunks(5)
	// A hit whose chunk has vanished is skipped, not fatal.
	index.hits = append([]driven.VectorHit{{ChunkID: "ghost:0000", Distance: 0.01}}, index.hits...)

	svc := newTestRetrieval(index)
	results, err := svc.Retrieve(context.Background(), "query", 6, nil)
	require.NoError(t, err)
	for _, result := range results {
		assert.NotEqual(t, "ghost:0000", result.Chunk.ID)
	}
}

func TestRetrievalService_FilterStatistics(t *testing.T) {
	index := &mockVectorIndex{chunks: make(map[string]domain.Chunk)}
	// Two chunks from the same video must count once.
	for position := 0; position < 2; position++ {
		id := domain.ChunkID("vid-a", position)
		index.chunks[id] = domain.Chunk{
			ID: id, VideoID: "vid-a", HasCaptions: true,
			Category:     domain.CategoryEducational,
			QualityLevel: domain.QualityHigh,
			PublishedAt:  time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		}
	}
	index.chunks["vid-b:0000"] = domain.Chunk{
		ID: "vid-b:0000", VideoID: "vid-b", HasCaptions: false,
		Category:     domain.CategoryGeneral,
		QualityLevel: domain.QualityNone,
		PublishedAt:  time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	}

	svc := newTestRetrieval(index)
	stats, err := svc.FilterStatistics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, stats.TotalVideos)
	assert.Equal(t, 1, stats.Categories[domain.CategoryEducational])
	assert.Equal(t, 1, stats.Categories[domain.CategoryGeneral])
	assert.Equal(t, 1, stats.QualityLevels[domain.QualityHigh])
	assert.Equal(t, 1, stats.CaptionCoverage.WithCaptions)
	assert.Equal(t, 1, stats.CaptionCoverage.WithoutCaptions)
	assert.InDelta(t, 50.0, stats.CaptionCoverage.Percentage, 1e-9)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), stats.DateRange.Earliest)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), stats.DateRange.Latest)
}

func TestRetrievalService_FilterStatistics_RoundsCoverage(t *testing.T) {
	index := &mockVectorIndex{chunks: make(map[string]domain.Chunk)}
	// 2 of 3 videos with captions: 66.666...% must come back as 66.7.
	for i, hasCaptions := range []bool{true, true, false} {
		id := fmt.Sprintf("vid-%d:0000", i)
		index.chunks[id] = domain.Chunk{
			ID: id, VideoID: fmt.Sprintf("vid-%d", i), HasCaptions: hasCaptions,
		}
	}

	svc := newTestRetrieval(index)
	stats, err := svc.FilterStatistics(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 66.7, stats.CaptionCoverage.Percentage, 1e-9)
}
