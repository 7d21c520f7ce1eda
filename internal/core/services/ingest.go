package services

import (
	"context"
	"fmt"

	"github.com/neuralnetworth/rag-youtube-sub000/internal/core/domain"
	"github.com/neuralnetworth/rag-youtube-sub000/internal/core/ports/driven"
	"github.com/neuralnetworth/rag-youtube-sub000/internal/core/ports/driving"
	"github.com/neuralnetworth/rag-youtube-sub000/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService loads the caption archive into the store and index.
type IngestService struct {
	captionSource    driven.CaptionSource
	pipeline         driven.PostProcessorPipeline
	embeddingService driven.EmbeddingService
	vectorIndex      driven.VectorIndex
	chunkStore       driven.ChunkStore
}

// NewIngestService creates a new ingest service.
func NewIngestService(
	captionSource driven.CaptionSource,
	pipeline driven.PostProcessorPipeline,
	embeddingService driven.EmbeddingService,
	vectorIndex driven.VectorIndex,
	chunkStore driven.ChunkStore,
) *IngestService {
	return &IngestService{
		captionSource:    captionSource,
		pipeline:         pipeline,
		embeddingService: embeddingService,
		vectorIndex:      vectorIndex,
		chunkStore:       chunkStore,
	}
}

// Ingest processes every transcript from the caption source, skipping
// videos that are already persisted unless force is set.
func (s *IngestService) Ingest(ctx context.Context, force bool) (*driving.IngestReport, error) {
	logger.Section("Ingestion")
	report := &driving.IngestReport{}

	// Cancelling the stream on early return unblocks the source's
	// producer goroutine.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	transcripts, errs := s.captionSource.ListTranscripts(ctx)
	for transcript := range transcripts {
		exists, err := s.chunkStore.HasVideo(ctx, transcript.Video.ID)
		if err != nil {
			return report, fmt.Errorf("checking video %s: %w", transcript.Video.ID, err)
		}
		if exists && !force {
			logger.Debug("Skipping %s: already ingested", transcript.Video.ID)
			report.VideosSkipped++
			continue
		}
		if exists {
			if err := s.chunkStore.DeleteVideo(ctx, transcript.Video.ID); err != nil {
				return report, fmt.Errorf("clearing video %s: %w", transcript.Video.ID, err)
			}
		}

		indexed, err := s.ingestOne(ctx, transcript)
		if err != nil {
			return report, fmt.Errorf("ingesting video %s: %w", transcript.Video.ID, err)
		}
		report.VideosProcessed++
		report.ChunksIndexed += indexed
	}

	if err := <-errs; err != nil {
		return report, fmt.Errorf("listing transcripts: %w", err)
	}

	logger.Info("Ingested %d videos (%d chunks), skipped %d",
		report.VideosProcessed, report.ChunksIndexed, report.VideosSkipped)
	return report, nil
}

// Watch ingests transcripts as caption files appear, until ctx is cancelled.
func (s *IngestService) Watch(ctx context.Context) error {
	logger.Section("Watch Mode")

	transcripts, err := s.captionSource.Watch(ctx)
	if err != nil {
		return fmt.Errorf("starting watch: %w", err)
	}

	for {
		select {
		case transcript, ok := <-transcripts:
			if !ok {
				return nil
			}
			// Rewritten caption files replace their earlier chunks.
			if err := s.chunkStore.DeleteVideo(ctx, transcript.Video.ID); err != nil {
				logger.Warn("Clearing video %s failed: %v", transcript.Video.ID, err)
				continue
			}
			indexed, err := s.ingestOne(ctx, transcript)
			if err != nil {
				logger.Warn("Ingesting video %s failed: %v", transcript.Video.ID, err)
				continue
			}
			logger.Info("Ingested %s (%d chunks)", transcript.Video.ID, indexed)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// ingestOne runs a single transcript through the pipeline, embeds its
// chunks, and commits them to the index and the store.
func (s *IngestService) ingestOne(ctx context.Context, transcript domain.Transcript) (int, error) {
	chunks, err := s.pipeline.Process(ctx, &transcript)
	if err != nil {
		return 0, fmt.Errorf("processing transcript: %w", err)
	}
	if len(chunks) == 0 {
		logger.Debug("Video %s produced no chunks", transcript.Video.ID)
		return 0, nil
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}
	embeddings, err := s.embeddingService.EmbedBatch(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("embedding chunks: %w", err)
	}
	if len(embeddings) != len(chunks) {
		return 0, fmt.Errorf("embedding count mismatch: %d chunks, %d embeddings",
			len(chunks), len(embeddings))
	}
	for i := range chunks {
		chunks[i].Embedding = embeddings[i]
	}

	if err := s.vectorIndex.Add(ctx, chunks); err != nil {
		return 0, fmt.Errorf("indexing chunks: %w", err)
	}
	if err := s.chunkStore.SaveChunks(ctx, chunks); err != nil {
		return 0, fmt.Errorf("persisting chunks: %w", err)
	}
	return len(chunks), nil
}
