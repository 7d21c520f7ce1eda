package driving

import "context"

// IngestReport summarises a completed ingestion run.
type IngestReport struct {
	// VideosProcessed is the number of videos ingested this run.
	VideosProcessed int

	// VideosSkipped is the number of videos already present in the store.
	VideosSkipped int

	// ChunksIndexed is the number of chunks added to the index.
	ChunksIndexed int
}

// IngestService loads the caption archive into the store and index.
type IngestService interface {
	// Ingest processes every transcript from the caption source, skipping
	// videos that are already persisted unless force is set.
	Ingest(ctx context.Context, force bool) (*IngestReport, error)

	// Watch ingests transcripts as caption files appear, until ctx is
	// cancelled.
	Watch(ctx context.Context) error
}
