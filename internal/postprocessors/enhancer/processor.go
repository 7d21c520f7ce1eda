// Package enhancer enriches chunks with inferred metadata: a category
// from the video title, a quality level from speech density, and a
// technical score from domain-term density.
package enhancer

import (
	"context"
	"strings"

	"github.com/neuralnetworth/rag-youtube-sub000/internal/core/domain"
)

// categoryRule pairs a category with the title keywords that select it.
type categoryRule struct {
	category domain.Category
	keywords []string
}

// categoryRules is ordered: the first rule with a keyword found in the
// lower-cased title wins. Titles matching nothing fall through to general.
var categoryRules = []categoryRule{
	{domain.CategoryDailyUpdate, []string{
		"market update", "market outlook", "market recap", "market review",
		"daily update", "daily recap", "am hype", "pm update",
		"open interest", "gamma update", "gamma levels", "0dte", "zero dte",
	}},
	{domain.CategoryEducational, []string{
		"explained", "explaining", "introduction to", "tutorial", "guide",
		"basics", "learn", "lesson", "101", "beginner", "fundamental",
		"understanding", "education", "what is", "how to",
	}},
	{domain.CategoryInterview, []string{
		"interview", "conversation", "chat with", "q&a", "q & a",
		"ask me anything", "ama", "guest", "featuring", "discussion",
	}},
	{domain.CategorySpecialEvent, []string{
		"fomc", "fed meeting", "fed decision", "earnings", "opex",
		"options expiration", "special event", "breaking", "alert",
		"year in review", "annual", "holiday",
	}},
}

// technicalTerms is the fixed domain-term list counted for the
// technical score.
var technicalTerms = []string{
	"gamma", "delta", "theta", "vega", "implied volatility", "iv",
	"options chain", "strike price", "expiration", "hedging",
	"dealer positioning", "market maker", "volatility surface",
	"put/call ratio", "open interest", "volume", "skew",
	"vix", "vwap", "standard deviation", "probability",
}

const (
	// targetWordsPerMinute is the speech rate that earns a full quality
	// score.
	targetWordsPerMinute = 150.0

	// technicalSaturation is the term-occurrence count that earns a
	// full technical score.
	technicalSaturation = 20.0
)

// Processor stamps inferred metadata onto chunks.
// It implements the PostProcessor interface.
type Processor struct{}

// New creates a new enhancer processor.
func New() *Processor {
	return &Processor{}
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "enhancer"
}

// Process computes metadata once from the full transcript and stamps it
// onto every chunk. Deterministic for identical inputs.
func (p *Processor) Process(_ context.Context, transcript *domain.Transcript, chunks []domain.Chunk) ([]domain.Chunk, error) {
	category := InferCategory(transcript.Video.Title)
	quality := QualityScore(transcript.Text, transcript.Video.DurationSeconds, transcript.HasCaptions)
	technical := TechnicalScore(transcript.Text, transcript.HasCaptions)

	for i := range chunks {
		chunks[i].Category = category
		chunks[i].QualityScore = quality
		chunks[i].QualityLevel = domain.QualityFromScore(quality)
		chunks[i].TechnicalScore = technical
	}
	return chunks, nil
}

// InferCategory picks the first category whose keyword list matches the
// lower-cased title. Rule order is significant; no scoring happens
// between categories.
func InferCategory(title string) domain.Category {
	lower := strings.ToLower(title)
	for _, rule := range categoryRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lower, keyword) {
				return rule.category
			}
		}
	}
	return domain.CategoryGeneral
}

// QualityScore rates speech density against targetWordsPerMinute,
// clamped to [0, 1]. Videos without captions score zero: there is no
// caption text to rate.
func QualityScore(text string, durationSeconds int, hasCaptions bool) float64 {
	if !hasCaptions {
		return 0
	}
	words := len(strings.Fields(text))
	if words == 0 {
		return 0
	}

	minutes := float64(durationSeconds) / 60.0
	if minutes < 1 {
		minutes = 1
	}
	score := (float64(words) / minutes) / targetWordsPerMinute
	if score > 1 {
		score = 1
	}
	return score
}

// TechnicalScore rates domain-term density: total occurrences of the
// fixed term list across the text, saturating at technicalSaturation.
func TechnicalScore(text string, hasCaptions bool) float64 {
	if !hasCaptions || text == "" {
		return 0
	}

	lower := strings.ToLower(text)
	occurrences := 0
	for _, term := range technicalTerms {
		occurrences += strings.Count(lower, term)
	}

	score := float64(occurrences) / technicalSaturation
	if score > 1 {
		score = 1
	}
	return score
}
