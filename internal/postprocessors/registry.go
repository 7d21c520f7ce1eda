package postprocessors

import (
	"fmt"
	"sort"

	"github.com/neuralnetworth/rag-youtube-sub000/internal/core/ports/driven"
)

// BuilderFunc creates a PostProcessor from generic config.
// Config is a map of processor-specific settings parsed from user config.
type BuilderFunc func(cfg map[string]any) (driven.PostProcessor, error)

// Step names one processor in a configured pipeline, with its settings.
type Step struct {
	Name   string
	Config map[string]any
}

// Registry maps processor names to their builders so pipelines can be
// assembled from configuration rather than hard-wired.
type Registry struct {
	builders map[string]BuilderFunc
}

// NewRegistry creates a new processor registry.
func NewRegistry() *Registry {
	return &Registry{
		builders: make(map[string]BuilderFunc),
	}
}

// Register adds a processor builder to the registry.
// Name should be unique and match the processor's Name() return value.
func (r *Registry) Register(name string, builder BuilderFunc) {
	r.builders[name] = builder
}

// Build creates a processor by name with the given config.
// Returns an error if the processor name is not registered.
func (r *Registry) Build(name string, cfg map[string]any) (driven.PostProcessor, error) {
	builder, ok := r.builders[name]
	if !ok {
		return nil, fmt.Errorf("unknown processor: %s", name)
	}
	return builder(cfg)
}

// BuildPipeline assembles a pipeline from ordered steps. Step order is
// preserved: a chunker step must come before steps that enrich chunks.
func (r *Registry) BuildPipeline(steps []Step) (*Pipeline, error) {
	processors := make([]driven.PostProcessor, 0, len(steps))
	for _, step := range steps {
		processor, err := r.Build(step.Name, step.Config)
		if err != nil {
			return nil, err
		}
		processors = append(processors, processor)
	}
	return NewPipeline(processors...), nil
}

// Has returns true if a processor with the given name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.builders[name]
	return ok
}

// Names returns all registered processor names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
