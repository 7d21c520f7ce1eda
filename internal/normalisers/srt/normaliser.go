// Package srt extracts transcript text from SubRip caption files.
package srt

import (
	"regexp"
	"strings"

	"github.com/neuralnetworth/rag-youtube-sub000/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.CaptionNormaliser = (*Normaliser)(nil)

// inlineTags matches SubRip formatting markup such as <i> and <font>.
var inlineTags = regexp.MustCompile(`<[^>]*>|\{[^}]*\}`)

// cueIndex matches the numeric cue counter line.
var cueIndex = regexp.MustCompile(`^\d+$`)

// Normaliser converts SubRip cues to plain transcript text.
type Normaliser struct{}

// New creates a new SubRip normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Extensions returns the filename suffixes this normaliser handles.
func (n *Normaliser) Extensions() []string {
	return []string{".srt"}
}

// Normalise strips cue counters, timing lines, and inline markup,
// keeping only the spoken text. Consecutive duplicate lines are
// collapsed.
func (n *Normaliser) Normalise(raw []byte) (string, error) {
	lines := strings.Split(string(raw), "\n")

	var out []string
	var last string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || cueIndex.MatchString(line) || strings.Contains(line, "-->") {
			continue
		}

		text := strings.TrimSpace(inlineTags.ReplaceAllString(line, ""))
		if text == "" || text == last {
			continue
		}
		out = append(out, text)
		last = text
	}

	return strings.Join(out, " "), nil
}
