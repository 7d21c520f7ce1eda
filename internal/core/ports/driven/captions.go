package driven

import (
	"context"

	"github.com/neuralnetworth/rag-youtube-sub000/internal/core/domain"
)

// CaptionSource streams transcripts from the caption archive.
//
// Implementations read cleaned caption files plus the video and playlist
// sidecar metadata that accompanies them.
type CaptionSource interface {
	// ListTranscripts streams every transcript in the archive. The
	// transcript channel is closed when the listing is complete; a fatal
	// failure is delivered on the error channel.
	ListTranscripts(ctx context.Context) (<-chan domain.Transcript, <-chan error)

	// Watch emits a transcript whenever a caption file is added or
	// rewritten under the archive directory. The channel is closed when
	// ctx is cancelled.
	Watch(ctx context.Context) (<-chan domain.Transcript, error)

	// Close releases resources.
	Close() error
}
