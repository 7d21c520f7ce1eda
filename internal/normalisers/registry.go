package normalisers

import (
	"sort"
	"strings"

	"github.com/neuralnetworth/rag-youtube-sub000/internal/core/ports/driven"
	"github.com/neuralnetworth/rag-youtube-sub000/internal/normalisers/plaintext"
	"github.com/neuralnetworth/rag-youtube-sub000/internal/normalisers/srt"
	"github.com/neuralnetworth/rag-youtube-sub000/internal/normalisers/vtt"
)

// Registry selects a caption normaliser by filename suffix.
type Registry struct {
	// suffixes is kept sorted longest-first so ".cleaned.txt" wins
	// over ".txt".
	suffixes    []string
	normalisers map[string]driven.CaptionNormaliser
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		normalisers: make(map[string]driven.CaptionNormaliser),
	}
}

// Register adds a normaliser for each of its extensions. A later
// registration for the same extension replaces the earlier one.
func (r *Registry) Register(n driven.CaptionNormaliser) {
	for _, ext := range n.Extensions() {
		if _, exists := r.normalisers[ext]; !exists {
			r.suffixes = append(r.suffixes, ext)
		}
		r.normalisers[ext] = n
	}
	sort.Slice(r.suffixes, func(i, j int) bool {
		return len(r.suffixes[i]) > len(r.suffixes[j])
	})
}

// Match finds the normaliser for a caption filename. The second return
// is the filename with the matched suffix stripped (the video ID for
// archive files). Returns false for filenames no normaliser handles.
func (r *Registry) Match(filename string) (driven.CaptionNormaliser, string, bool) {
	for _, suffix := range r.suffixes {
		if strings.HasSuffix(filename, suffix) {
			return r.normalisers[suffix], strings.TrimSuffix(filename, suffix), true
		}
	}
	return nil, "", false
}

// DefaultRegistry builds a registry with all built-in caption
// normalisers registered.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(plaintext.New())
	r.Register(vtt.New())
	r.Register(srt.New())
	return r
}
