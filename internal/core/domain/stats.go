package domain

import "time"

// FilterStatistics summarizes the filterable attributes of the indexed
// corpus, computed over distinct videos. Exposed so clients can render
// sensible filter options.
type FilterStatistics struct {
	// TotalVideos is the number of distinct videos in the index.
	TotalVideos int

	// Categories maps each category to its video count.
	Categories map[Category]int

	// QualityLevels maps each quality tier to its video count.
	QualityLevels map[QualityLevel]int

	// CaptionCoverage summarizes caption availability.
	CaptionCoverage CaptionCoverage

	// DateRange is the publication span of the corpus.
	DateRange DateRange
}

// CaptionCoverage counts videos with and without captions.
type CaptionCoverage struct {
	WithCaptions    int
	WithoutCaptions int

	// Percentage is the caption share in [0,100], rounded to one decimal.
	Percentage float64
}

// DateRange is an inclusive publication date span. Zero times mean the
// corpus is empty or dates are unknown.
type DateRange struct {
	Earliest time.Time
	Latest   time.Time
}

// IndexStats describes the state of the vector index and the models behind it.
type IndexStats struct {
	// ChunkCount is the number of indexed chunks.
	ChunkCount int

	// VideoCount is the number of distinct videos.
	VideoCount int

	// Dimension is the embedding dimension (0 before first ingest).
	Dimension int

	// EmbeddingModel is the embedding model name.
	EmbeddingModel string

	// LLMModel is the answer-generation model name, empty when disabled.
	LLMModel string
}
