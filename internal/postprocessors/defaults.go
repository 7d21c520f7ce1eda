package postprocessors

import (
	"github.com/neuralnetworth/rag-youtube-sub000/internal/core/ports/driven"
	"github.com/neuralnetworth/rag-youtube-sub000/internal/postprocessors/chunker"
	"github.com/neuralnetworth/rag-youtube-sub000/internal/postprocessors/enhancer"
)

// RegisterDefaults registers all built-in processors with the registry.
// Call this during application initialisation to enable standard processors.
func RegisterDefaults(r *Registry) {
	r.Register("chunker", buildChunker)
	r.Register("enhancer", buildEnhancer)
}

// DefaultSteps returns the standard ingestion steps with the given
// chunking settings: chunking followed by metadata enhancement. Build
// them into a pipeline with Registry.BuildPipeline.
func DefaultSteps(chunkSize, overlap int) []Step {
	return []Step{
		{Name: "chunker", Config: map[string]any{"chunk_size": chunkSize, "overlap": overlap}},
		{Name: "enhancer"},
	}
}

// buildChunker creates a chunker processor from generic config.
// Supported config keys:
//   - chunk_size (int): Characters per chunk (default: 1000)
//   - overlap (int): Overlapping characters between chunks (default: 200)
func buildChunker(cfg map[string]any) (driven.PostProcessor, error) {
	var opts []chunker.Option

	if cfg != nil {
		if size := getIntFromConfig(cfg, "chunk_size"); size > 0 {
			opts = append(opts, chunker.WithChunkSize(size))
		}
		if overlap := getIntFromConfig(cfg, "overlap"); overlap >= 0 {
			opts = append(opts, chunker.WithOverlap(overlap))
		}
	}

	return chunker.New(opts...), nil
}

// buildEnhancer creates a metadata enhancer processor.
// The enhancer has no configurable settings.
func buildEnhancer(_ map[string]any) (driven.PostProcessor, error) {
	return enhancer.New(), nil
}

// getIntFromConfig safely extracts an int from generic config map.
// Handles int, int64, and float64 types that may come from TOML/JSON parsing.
func getIntFromConfig(cfg map[string]any, key string) int {
	val, ok := cfg[key]
	if !ok {
		return 0
	}

	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}
