package driving

import (
	"context"

	"github.com/neuralnetworth/rag-youtube-sub000/internal/core/domain"
)

// RetrievalService answers semantic queries over the indexed archive.
type RetrievalService interface {
	// Retrieve embeds the query, searches the index, and returns up to
	// count chunks ordered by descending similarity. A nil filter means
	// no filtering.
	Retrieve(ctx context.Context, query string, count int, filter *domain.FilterSpec) ([]domain.ScoredChunk, error)

	// FilterStatistics summarises the indexed corpus along the filterable
	// dimensions.
	FilterStatistics(ctx context.Context) (*domain.FilterStatistics, error)
}
