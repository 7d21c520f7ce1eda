// Package chunker provides a fixed-size transcript chunking processor.
package chunker

import (
	"context"

	"github.com/neuralnetworth/rag-youtube-sub000/internal/core/domain"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 1000

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = 200

// Processor splits transcript text into fixed-size chunks.
// It implements the PostProcessor interface.
type Processor struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		if overlap >= 0 {
			p.overlap = overlap
		}
	}
}

// New creates a new chunker processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(p)
	}

	// Ensure overlap doesn't exceed chunk size
	if p.overlap >= p.chunkSize {
		p.overlap = p.chunkSize / 4
	}

	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// Process splits the transcript text into chunks carrying the video's
// provenance metadata. Chunk IDs are deterministic (video ID plus
// position) so re-ingesting a video reproduces the same IDs.
// Input chunks are ignored; this processor creates new chunks.
func (p *Processor) Process(_ context.Context, transcript *domain.Transcript, _ []domain.Chunk) ([]domain.Chunk, error) {
	if transcript.Text == "" {
		// Empty transcripts produce no chunks
		return nil, nil
	}

	text := transcript.Text
	textLen := len(text)
	video := transcript.Video

	// Estimate number of chunks
	estimatedChunks := (textLen / (p.chunkSize - p.overlap)) + 1
	chunks := make([]domain.Chunk, 0, estimatedChunks)

	position := 0
	start := 0

	for start < textLen {
		end := start + p.chunkSize
		if end > textLen {
			end = textLen
		}

		chunk := domain.Chunk{
			ID:          domain.ChunkID(video.ID, position),
			VideoID:     video.ID,
			Text:        text[start:end],
			Position:    position,
			Title:       video.Title,
			URL:         video.URL,
			PublishedAt: video.PublishedAt,
			HasCaptions: transcript.HasCaptions,
			PlaylistIDs: video.PlaylistIDs,
		}

		chunks = append(chunks, chunk)
		position++

		// Move start forward by (chunkSize - overlap)
		start += p.chunkSize - p.overlap

		// Avoid infinite loop for edge cases
		if p.chunkSize <= p.overlap {
			break
		}
	}

	return chunks, nil
}
