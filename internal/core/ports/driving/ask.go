package driving

import (
	"context"

	"github.com/neuralnetworth/rag-youtube-sub000/internal/core/domain"
)

// AskService answers questions about the archive using retrieved context.
type AskService interface {
	// Ask retrieves relevant chunks, builds a context window, and returns
	// a grounded answer with its sources.
	Ask(ctx context.Context, question string, opts domain.AskOptions) (*domain.Answer, error)

	// AskStream behaves like Ask but emits sources and answer tokens as
	// stream events. The channel is closed after a done or error event.
	AskStream(ctx context.Context, question string, opts domain.AskOptions) (<-chan domain.StreamEvent, error)
}
