package domain

import "time"

// AskOptions configures a question-answering call.
type AskOptions struct {
	// Sources is the number of chunks to retrieve as context (default 4).
	Sources int

	// Temperature is passed through to the LLM. Zero means provider default.
	Temperature float64

	// Filter restricts the retrieved sources. Nil means no filtering.
	Filter *FilterSpec
}

// Answer is the result of a question-answering call.
type Answer struct {
	// Text is the generated answer.
	Text string

	// Sources are the chunks the answer was grounded on, nearest-first.
	// May hold fewer entries than requested when filters are restrictive.
	Sources []ScoredChunk

	// Question echoes the original question.
	Question string

	// ProcessingTime is the wall-clock duration of the whole call.
	ProcessingTime time.Duration
}

// StreamEventType discriminates events on a streaming answer.
type StreamEventType string

const (
	// StreamEventSource carries one retrieved source, sent before tokens.
	StreamEventSource StreamEventType = "source"

	// StreamEventToken carries a generated text fragment.
	StreamEventToken StreamEventType = "token"

	// StreamEventDone marks the end of the stream.
	StreamEventDone StreamEventType = "done"

	// StreamEventError carries a terminal error message.
	StreamEventError StreamEventType = "error"
)

// StreamEvent is one event of a streaming answer.
type StreamEvent struct {
	Type StreamEventType

	// Content is the token text or error message.
	Content string

	// Source is set for StreamEventSource events.
	Source *ScoredChunk
}
