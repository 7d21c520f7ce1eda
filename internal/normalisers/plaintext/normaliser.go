// Package plaintext handles already-cleaned caption files.
package plaintext

import (
	"strings"

	"github.com/neuralnetworth/rag-youtube-sub000/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.CaptionNormaliser = (*Normaliser)(nil)

// Normaliser passes pre-cleaned transcript text through unchanged apart
// from whitespace trimming.
type Normaliser struct{}

// New creates a new plain text normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Extensions returns the filename suffixes this normaliser handles.
// Bare .txt is deliberately not claimed so stray notes in the archive
// directory are not ingested as videos.
func (n *Normaliser) Extensions() []string {
	return []string{".cleaned.txt"}
}

// Normalise trims surrounding whitespace. The content is assumed to be
// transcript text already.
func (n *Normaliser) Normalise(raw []byte) (string, error) {
	return strings.TrimSpace(string(raw)), nil
}
