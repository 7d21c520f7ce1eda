package driving

import (
	"context"

	"github.com/neuralnetworth/rag-youtube-sub000/internal/core/domain"
)

// StatsService reports on the state of the index and its backing services.
type StatsService interface {
	// IndexStats returns counts and model information for the index.
	IndexStats(ctx context.Context) (*domain.IndexStats, error)

	// Health pings the backing services and reports per-component status.
	Health(ctx context.Context) map[string]error
}
