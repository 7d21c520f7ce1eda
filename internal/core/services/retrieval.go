package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/neuralnetworth/rag-youtube-sub000/internal/core/domain"
	"github.com/neuralnetworth/rag-youtube-sub000/internal/core/ports/driven"
	"github.com/neuralnetworth/rag-youtube-sub000/internal/core/ports/driving"
	"github.com/neuralnetworth/rag-youtube-sub000/internal/logger"
)

// Ensure RetrievalService implements the interface.
var _ driving.RetrievalService = (*RetrievalService)(nil)

// defaultOverFetch is how many times more candidates are requested from
// the index when filters are active, to compensate for post-filter loss.
const defaultOverFetch = 3

// RetrievalService answers semantic queries over the indexed archive.
type RetrievalService struct {
	vectorIndex      driven.VectorIndex
	embeddingService driven.EmbeddingService
	overFetch        int
}

// NewRetrievalService creates a new retrieval service.
func NewRetrievalService(
	vectorIndex driven.VectorIndex,
	embeddingService driven.EmbeddingService,
) *RetrievalService {
	return &RetrievalService{
		vectorIndex:      vectorIndex,
		embeddingService: embeddingService,
		overFetch:        defaultOverFetch,
	}
}

// SetOverFetch overrides the filtered-search over-fetch factor.
// Values below 1 are ignored.
func (s *RetrievalService) SetOverFetch(factor int) {
	if factor >= 1 {
		s.overFetch = factor
	}
}

// Retrieve embeds the query, searches the index, and returns up to count
// chunks ordered by descending similarity.
func (s *RetrievalService) Retrieve(
	ctx context.Context, query string, count int, filter *domain.FilterSpec,
) ([]domain.ScoredChunk, error) {
	logger.Section("Retrieval")
	logger.Debug("Query: %q", query)

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: empty query", domain.ErrInvalidInput)
	}
	if count <= 0 {
		return nil, fmt.Errorf("%w: count must be positive, got %d", domain.ErrInvalidInput, count)
	}

	// Over-fetch only when filters can discard candidates. There is no
	// retry on short results: if the filter eats the whole over-fetched
	// window, the caller gets fewer chunks.
	fetchK := count
	filtered := !filter.IsZero()
	if filtered {
		fetchK = count * s.overFetch
		logger.Debug("Filters active: %s", filter.Summary())
	}
	logger.Debug("Requesting %d candidates for %d results", fetchK, count)

	embedding, err := s.embeddingService.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	hits, err := s.vectorIndex.Search(ctx, embedding, fetchK)
	if err != nil {
		return nil, fmt.Errorf("searching index: %w", err)
	}
	logger.Debug("Index returned %d candidates", len(hits))

	pred := filter.Compile()
	results := make([]domain.ScoredChunk, 0, count)
	for _, hit := range hits {
		chunk, err := s.vectorIndex.Get(ctx, hit.ChunkID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				logger.Warn("Chunk %s in search results but not in index, skipping", hit.ChunkID)
				continue
			}
			return nil, fmt.Errorf("hydrating chunk %s: %w", hit.ChunkID, err)
		}
		if !pred(*chunk) {
			continue
		}
		results = append(results, domain.ScoredChunk{
			Chunk: *chunk,
			Score: 1.0 / (1.0 + hit.Distance),
		})
		if len(results) == count {
			break
		}
	}

	if filtered && len(results) < count {
		logger.Info("Filters reduced results to %d of %d requested", len(results), count)
	}
	logger.Info("Retrieved %d chunks", len(results))
	return results, nil
}

// FilterStatistics summarises the indexed corpus along the filterable
// dimensions. Per-video values are counted once regardless of how many
// chunks a video produced.
func (s *RetrievalService) FilterStatistics(ctx context.Context) (*domain.FilterStatistics, error) {
	chunks, err := s.vectorIndex.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing chunks: %w", err)
	}

	stats := &domain.FilterStatistics{
		Categories:    make(map[domain.Category]int),
		QualityLevels: make(map[domain.QualityLevel]int),
	}

	seen := make(map[string]bool)
	for _, chunk := range chunks {
		if seen[chunk.VideoID] {
			continue
		}
		seen[chunk.VideoID] = true

		stats.TotalVideos++
		stats.Categories[chunk.Category]++
		stats.QualityLevels[chunk.QualityLevel]++
		if chunk.HasCaptions {
			stats.CaptionCoverage.WithCaptions++
		} else {
			stats.CaptionCoverage.WithoutCaptions++
		}
		if !chunk.PublishedAt.IsZero() {
			if stats.DateRange.Earliest.IsZero() || chunk.PublishedAt.Before(stats.DateRange.Earliest) {
				stats.DateRange.Earliest = chunk.PublishedAt
			}
			if chunk.PublishedAt.After(stats.DateRange.Latest) {
				stats.DateRange.Latest = chunk.PublishedAt
			}
		}
	}

	if stats.TotalVideos > 0 {
		pct := float64(stats.CaptionCoverage.WithCaptions) / float64(stats.TotalVideos) * 100
		stats.CaptionCoverage.Percentage = math.Round(pct*10) / 10
	}
	return stats, nil
}
