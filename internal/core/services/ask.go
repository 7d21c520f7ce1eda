package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/neuralnetworth/rag-youtube-sub000/internal/core/domain"
	"github.com/neuralnetworth/rag-youtube-sub000/internal/core/ports/driven"
	"github.com/neuralnetworth/rag-youtube-sub000/internal/core/ports/driving"
	"github.com/neuralnetworth/rag-youtube-sub000/internal/logger"
)

// Ensure AskService implements the interface.
var _ driving.AskService = (*AskService)(nil)

const (
	// defaultSourceCount is how many chunks ground an answer when the
	// caller does not say.
	defaultSourceCount = 5

	// contextTokenBudget caps the retrieved context passed to the LLM.
	// Token counts are estimated at charsPerToken characters each.
	contextTokenBudget = 3000
	charsPerToken      = 4

	defaultTemperature = 0.7
	answerMaxTokens    = 1024
)

const systemPrompt = `You are an assistant that answers questions about a YouTube channel's video archive using only the transcript excerpts provided as context.

Rules:
- Base your answer strictly on the provided excerpts. If they do not contain the answer, say so.
- Cite excerpts as [Source N] where N matches the numbering in the context.
- Be concise and concrete. Prefer the terminology used in the excerpts.`

const noSourcesAnswer = "I couldn't find any relevant content in the archive for that question. " +
	"Try rephrasing, or loosen the active filters."

// AskService answers questions about the archive using retrieved context.
type AskService struct {
	retrieval  driving.RetrievalService
	llmService driven.LLMService
}

// NewAskService creates a new ask service.
func NewAskService(retrieval driving.RetrievalService, llmService driven.LLMService) *AskService {
	return &AskService{
		retrieval:  retrieval,
		llmService: llmService,
	}
}

// Ask retrieves relevant chunks, builds a context window, and returns a
// grounded answer with its sources.
func (s *AskService) Ask(ctx context.Context, question string, opts domain.AskOptions) (*domain.Answer, error) {
	start := time.Now()
	logger.Section("Ask")
	logger.Debug("Question: %q", question)

	if s.llmService == nil {
		return nil, fmt.Errorf("%w: no LLM configured", domain.ErrLLMUnavailable)
	}

	sources, err := s.retrieve(ctx, question, opts)
	if err != nil {
		return nil, err
	}

	answer := &domain.Answer{
		Question: question,
		Sources:  sources,
	}
	if len(sources) == 0 {
		answer.Text = noSourcesAnswer
		answer.ProcessingTime = time.Since(start)
		return answer, nil
	}

	messages := s.buildMessages(question, sources)
	text, err := s.llmService.Chat(ctx, messages, s.chatOptions(opts))
	if err != nil {
		return nil, fmt.Errorf("generating answer: %w", err)
	}

	answer.Text = text
	answer.ProcessingTime = time.Since(start)
	logger.Info("Answered in %s using %d sources", answer.ProcessingTime.Round(time.Millisecond), len(sources))
	return answer, nil
}

// AskStream behaves like Ask but emits sources and answer tokens as
// stream events.
func (s *AskService) AskStream(
	ctx context.Context, question string, opts domain.AskOptions,
) (<-chan domain.StreamEvent, error) {
	if s.llmService == nil {
		return nil, fmt.Errorf("%w: no LLM configured", domain.ErrLLMUnavailable)
	}

	sources, err := s.retrieve(ctx, question, opts)
	if err != nil {
		return nil, err
	}

	events := make(chan domain.StreamEvent)
	go func() {
		defer close(events)

		emit := func(ev domain.StreamEvent) bool {
			select {
			case events <- ev:
				return true
			case <-ctx.Done():
				return false
			}
		}

		// Sources go out first so clients can render attribution while
		// the answer is still generating.
		for i := range sources {
			if !emit(domain.StreamEvent{Type: domain.StreamEventSource, Source: &sources[i]}) {
				return
			}
		}

		if len(sources) == 0 {
			if emit(domain.StreamEvent{Type: domain.StreamEventToken, Content: noSourcesAnswer}) {
				emit(domain.StreamEvent{Type: domain.StreamEventDone})
			}
			return
		}

		messages := s.buildMessages(question, sources)
		tokens, errs := s.llmService.ChatStream(ctx, messages, s.chatOptions(opts))
		for tokens != nil || errs != nil {
			select {
			case token, ok := <-tokens:
				if !ok {
					tokens = nil
					continue
				}
				if !emit(domain.StreamEvent{Type: domain.StreamEventToken, Content: token}) {
					return
				}
			case err, ok := <-errs:
				if !ok {
					errs = nil
					continue
				}
				if err != nil {
					emit(domain.StreamEvent{Type: domain.StreamEventError, Content: err.Error()})
					return
				}
			case <-ctx.Done():
				return
			}
		}
		emit(domain.StreamEvent{Type: domain.StreamEventDone})
	}()
	return events, nil
}

func (s *AskService) retrieve(
	ctx context.Context, question string, opts domain.AskOptions,
) ([]domain.ScoredChunk, error) {
	count := opts.Sources
	if count <= 0 {
		count = defaultSourceCount
	}
	sources, err := s.retrieval.Retrieve(ctx, question, count, opts.Filter)
	if err != nil {
		return nil, fmt.Errorf("retrieving context: %w", err)
	}
	return sources, nil
}

func (s *AskService) chatOptions(opts domain.AskOptions) driven.ChatOptions {
	temperature := opts.Temperature
	if temperature <= 0 {
		temperature = defaultTemperature
	}
	return driven.ChatOptions{
		MaxTokens:   answerMaxTokens,
		Temperature: temperature,
	}
}

// buildMessages assembles the system prompt plus a user message holding
// the numbered context excerpts and the question.
func (s *AskService) buildMessages(question string, sources []domain.ScoredChunk) []driven.ChatMessage {
	var b strings.Builder
	b.WriteString("Context from video transcripts:\n\n")

	budget := contextTokenBudget * charsPerToken
	for i, source := range sources {
		chunk := source.Chunk
		header := fmt.Sprintf("[Source %d] %s", i+1, chunk.Title)
		if !chunk.PublishedAt.IsZero() {
			header += fmt.Sprintf(" (%s)", chunk.PublishedAt.Format("2006-01-02"))
		}
		excerpt := header + "\n" + chunk.Text + "\n\n"
		if b.Len()+len(excerpt) > budget {
			logger.Debug("Context budget reached after %d of %d sources", i, len(sources))
			break
		}
		b.WriteString(excerpt)
	}

	b.WriteString("Question: ")
	b.WriteString(question)

	return []driven.ChatMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: b.String()},
	}
}
