// Package vtt extracts transcript text from WebVTT caption files, the
// format YouTube serves for both uploaded and auto-generated captions.
package vtt

import (
	"regexp"
	"strings"

	"github.com/neuralnetworth/rag-youtube-sub000/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.CaptionNormaliser = (*Normaliser)(nil)

// inlineTags matches WebVTT inline markup: voice/class spans like <c>
// and </c.colorE5E5E5>, and mid-cue word timestamps like <00:00:01.280>.
var inlineTags = regexp.MustCompile(`<[^>]*>`)

// blockKeywords start metadata blocks that carry no caption text.
var blockKeywords = []string{"NOTE", "STYLE", "REGION"}

// Normaliser converts WebVTT cues to plain transcript text.
type Normaliser struct{}

// New creates a new WebVTT normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Extensions returns the filename suffixes this normaliser handles.
func (n *Normaliser) Extensions() []string {
	return []string{".vtt"}
}

// Normalise strips the WEBVTT header, metadata blocks, cue timings, cue
// identifiers, and inline markup, keeping only the spoken text.
// Auto-generated captions repeat each line in overlapping rolling cues,
// so consecutive duplicate lines are collapsed.
func (n *Normaliser) Normalise(raw []byte) (string, error) {
	lines := strings.Split(string(raw), "\n")

	var out []string
	var last string
	inBlock := false
	for i, line := range lines {
		line = strings.TrimSpace(line)

		if line == "" {
			inBlock = false
			continue
		}
		if inBlock {
			continue
		}
		// The header block runs from the WEBVTT line to the first blank.
		if i == 0 && strings.HasPrefix(line, "WEBVTT") {
			inBlock = true
			continue
		}
		if isBlockKeyword(line) {
			inBlock = true
			continue
		}
		if strings.Contains(line, "-->") {
			continue
		}
		// A line immediately before a timing line is a cue identifier.
		if i+1 < len(lines) && strings.Contains(lines[i+1], "-->") {
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

func isBlockKeyword(line string) bool {
	for _, kw := range blockKeywords {
		if line == kw || strings.HasPrefix(line, kw+" ") {
			return true
		}
	}
	return false
}
