// Package examples renders example requests for an endpoint, one renderer
// per client language. Languages are looked up by name in a Registry so new
// ones can be plugged in without touching the fragment renderer.
package examples

import (
	"sort"

	"github.com/blimu-dev/docs-gen/pkg/errors"
	"github.com/blimu-dev/docs-gen/pkg/ir"
)

// Renderer renders an example request in one language.
type Renderer interface {
	// Render returns a fenced code block for the endpoint
	Render(ep *ir.Endpoint, settings ir.Settings) (string, error)
	// GetType returns the language identifier (e.g., "bash")
	GetType() string
}

// Registry manages available example renderers
type Registry struct {
	renderers map[string]Renderer
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		renderers: make(map[string]Renderer),
	}
}

// DefaultRegistry creates a registry holding every built-in language
func DefaultRegistry() (*Registry, error) {
	registry := NewRegistry()
	for _, lang := range builtinLanguages {
		r, err := NewTemplateRenderer(lang)
		if err != nil {
			return nil, err
		}
		registry.Register(r)
	}
	return registry, nil
}

// Register adds a renderer to the registry, replacing any with the same type
func (r *Registry) Register(renderer Renderer) {
	r.renderers[renderer.GetType()] = renderer
}

// Get retrieves a renderer by language
func (r *Registry) Get(lang string) (Renderer, bool) {
	renderer, exists := r.renderers[lang]
	return renderer, exists
}

// GetAvailableTypes returns all registered languages in sorted order
func (r *Registry) GetAvailableTypes() []string {
	types := make([]string, 0, len(r.renderers))
	for t := range r.renderers {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Validate checks that every language has a renderer
func (r *Registry) Validate(languages []string) error {
	for _, lang := range languages {
		if _, ok := r.renderers[lang]; !ok {
			return errors.NewNotFoundError("example language", lang)
		}
	}
	return nil
}
