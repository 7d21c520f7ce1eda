package services

import (
	"context"
	"fmt"

	"github.com/neuralnetworth/rag-youtube-sub000/internal/core/domain"
	"github.com/neuralnetworth/rag-youtube-sub000/internal/core/ports/driven"
	"github.com/neuralnetworth/rag-youtube-sub000/internal/core/ports/driving"
)

// Ensure StatsService implements the interface.
var _ driving.StatsService = (*StatsService)(nil)

// StatsService reports on the state of the index and its backing services.
type StatsService struct {
	vectorIndex      driven.VectorIndex
	embeddingService driven.EmbeddingService
	llmService       driven.LLMService
}

// NewStatsService creates a new stats service. The llmService parameter
// is optional (can be nil).
func NewStatsService(
	vectorIndex driven.VectorIndex,
	embeddingService driven.EmbeddingService,
	llmService driven.LLMService,
) *StatsService {
	return &StatsService{
		vectorIndex:      vectorIndex,
		embeddingService: embeddingService,
		llmService:       llmService,
	}
}

// IndexStats returns counts and model information for the index.
func (s *StatsService) IndexStats(ctx context.Context) (*domain.IndexStats, error) {
	chunks, err := s.vectorIndex.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing chunks: %w", err)
	}

	videos := make(map[string]bool)
	for _, chunk := range chunks {
		videos[chunk.VideoID] = true
	}

	stats := &domain.IndexStats{
		ChunkCount:     s.vectorIndex.Len(),
		VideoCount:     len(videos),
		Dimension:      s.vectorIndex.Dimension(),
		EmbeddingModel: s.embeddingService.ModelName(),
	}
	if s.llmService != nil {
		stats.LLMModel = s.llmService.ModelName()
	}
	return stats, nil
}

// Health pings the backing services and reports per-component status.
// A nil map value means the component is healthy.
func (s *StatsService) Health(ctx context.Context) map[string]error {
	health := map[string]error{
		"embedding": s.embeddingService.Ping(ctx),
	}
	if s.llmService != nil {
		health["llm"] = s.llmService.Ping(ctx)
	}
	if s.vectorIndex.Len() == 0 {
		health["index"] = domain.ErrEmptyIndex
	} else {
		health["index"] = nil
	}
	return health
}
