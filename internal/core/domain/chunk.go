package domain

import (
	"fmt"
	"time"
)

// Chunk is the indexed unit of transcript text. It carries the embedding
// vector alongside the metadata derived during ingestion.
// Chunks are created once by the ingest pipeline and never mutated in place;
// re-ingesting a video means rebuilding its chunks wholesale.
type Chunk struct {
	// ID is the stable chunk identifier, derived from the video ID and the
	// chunk position (see ChunkID).
	ID string

	// VideoID identifies the originating video.
	VideoID string

	// Text is the chunk content produced by the transcript chunker.
	Text string

	// Position is the ordinal position within the transcript.
	Position int

	// Embedding is the vector representation. Its length must match the
	// dimension established by the vector index.
	Embedding []float32

	// Title is the video title, kept for display and provenance.
	Title string

	// URL is the video watch URL.
	URL string

	// PublishedAt is the video publication time.
	PublishedAt time.Time

	// HasCaptions reports whether the transcript came from real captions.
	HasCaptions bool

	// Category is the inferred content category.
	Category Category

	// QualityScore is the continuous transcript-density score in [0,1].
	QualityScore float64

	// QualityLevel is the quantized tier derived from QualityScore.
	QualityLevel QualityLevel

	// TechnicalScore is the domain-term density score in [0,1].
	TechnicalScore float64

	// PlaylistIDs lists the playlists the video belongs to (possibly empty).
	PlaylistIDs []string
}

// ChunkID builds the stable chunk identifier for a video and chunk position.
func ChunkID(videoID string, position int) string {
	return fmt.Sprintf("%s:%04d", videoID, position)
}

// ScoredChunk pairs a chunk with its similarity to a query.
// Score is in [0,1]; higher is more relevant.
type ScoredChunk struct {
	Chunk Chunk
	Score float64
}
