package driven

import (
	"context"

	"github.com/neuralnetworth/rag-youtube-sub000/internal/core/domain"
)

// PostProcessor processes a transcript's chunks during ingestion.
// PostProcessors are chained in a pipeline (e.g., chunking, metadata enhancement).
type PostProcessor interface {
	// Name returns the processor name for logging and configuration.
	Name() string

	// Process takes a transcript and returns chunks.
	// If the processor creates chunks (e.g., chunker), it receives nil and returns new chunks.
	// If the processor enriches chunks (e.g., enhancer), it receives and returns chunks.
	Process(ctx context.Context, transcript *domain.Transcript, chunks []domain.Chunk) ([]domain.Chunk, error)
}

// PostProcessorPipeline chains multiple PostProcessors.
type PostProcessorPipeline interface {
	// Process runs the transcript through all processors in order.
	// Returns the final chunks after all processing.
	Process(ctx context.Context, transcript *domain.Transcript) ([]domain.Chunk, error)
}
