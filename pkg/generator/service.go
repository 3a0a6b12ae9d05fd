// Package generator runs the documentation pipeline: it collects route
// descriptors from providers, renders and groups the endpoints, reconciles
// them with the published document and writes the results.
package generator

import (
	"context"
	"fmt"

	"github.com/blimu-dev/docs-gen/pkg/config"
	"github.com/blimu-dev/docs-gen/pkg/document"
	"github.com/blimu-dev/docs-gen/pkg/errors"
	"github.com/blimu-dev/docs-gen/pkg/examples"
	"github.com/blimu-dev/docs-gen/pkg/ir"
	"github.com/blimu-dev/docs-gen/pkg/logging"
	"github.com/blimu-dev/docs-gen/pkg/manifest"
	"github.com/blimu-dev/docs-gen/pkg/openapi"
	"github.com/blimu-dev/docs-gen/pkg/render"
	"github.com/blimu-dev/docs-gen/pkg/snapshot"
	"github.com/blimu-dev/docs-gen/pkg/vuepress"
)

// Provider yields route descriptors from some source of endpoint metadata
type Provider interface {
	Descriptors(ctx context.Context) ([]ir.RouteDescriptor, error)
}

// ProviderFunc adapts a function to the Provider interface
type ProviderFunc func(ctx context.Context) ([]ir.RouteDescriptor, error)

// Descriptors calls f
func (f ProviderFunc) Descriptors(ctx context.Context) ([]ir.RouteDescriptor, error) {
	return f(ctx)
}

// Report describes the outcome of one run.
type Report struct {
	Routes    int
	Endpoints int
	Skipped   int
	// Preserved and Discarded list endpoint ids with manual edits
	Preserved []string
	Discarded []string
	Target    string
	Shadow    string
	Pages     []string
}

// Service provides high-level documentation generation
type Service struct {
	registry *examples.Registry
}

// NewService creates a new generator service with the built-in example languages
func NewService() (*Service, error) {
	registry, err := examples.DefaultRegistry()
	if err != nil {
		return nil, err
	}
	return &Service{registry: registry}, nil
}

// NewServiceWithRegistry creates a new generator service with a custom registry
func NewServiceWithRegistry(registry *examples.Registry) *Service {
	return &Service{registry: registry}
}

// GetRegistry returns the example language registry
func (s *Service) GetRegistry() *examples.Registry {
	return s.registry
}

// Providers returns the providers configured in cfg, OpenAPI first.
func Providers(cfg *config.Config) []Provider {
	var providers []Provider
	if cfg.OpenAPI != "" {
		providers = append(providers, openapi.NewProvider(cfg.OpenAPI))
	}
	if cfg.Routes != "" {
		providers = append(providers, manifest.NewProvider(cfg.Routes))
	}
	return providers
}

// Generate runs the pipeline with the providers named in cfg.
func (s *Service) Generate(ctx context.Context, cfg *config.Config) (*Report, error) {
	return s.GenerateWith(ctx, cfg, Providers(cfg)...)
}

// GenerateWith runs the pipeline with explicit providers.
func (s *Service) GenerateWith(ctx context.Context, cfg *config.Config, providers ...Provider) (*Report, error) {
	logger := logging.FromContext(ctx)

	if err := s.registry.Validate(cfg.ExampleLanguages); err != nil {
		return nil, errors.NewConfigError("exampleLanguages", err.Error(), err)
	}
	filter, err := NewFilter(cfg.IncludeGroups, cfg.ExcludeGroups)
	if err != nil {
		return nil, errors.NewConfigError("groups", err.Error(), err)
	}

	var descriptors []ir.RouteDescriptor
	for _, p := range providers {
		ds, err := p.Descriptors(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load routes: %w", err)
		}
		descriptors = append(descriptors, ds...)
	}

	endpoints := BuildEndpoints(descriptors, filter, *logger)
	report := &Report{
		Routes:    len(descriptors),
		Endpoints: len(endpoints),
		Skipped:   len(descriptors) - len(endpoints),
	}

	renderer, err := render.New(s.registry, cfg.Title)
	if err != nil {
		return nil, err
	}
	settings := cfg.Settings()
	for _, ep := range endpoints {
		out, err := renderer.RenderEndpoint(ep, settings)
		if err != nil {
			return nil, err
		}
		ep.Output = out
	}
	doc := document.Aggregate(endpoints, cfg.Locale)

	paths := snapshot.NewPaths(cfg.Output)
	prepend, appendText, err := snapshot.Surroundings(paths)
	if err != nil {
		return nil, err
	}
	info, err := renderer.InfoText(settings)
	if err != nil {
		return nil, err
	}
	frontmatter, err := renderer.Frontmatter(settings)
	if err != nil {
		return nil, err
	}

	page := render.Page{
		Frontmatter: frontmatter,
		Info:        info,
		Prepend:     prepend,
		Append:      appendText,
		Groups:      doc.Groups,
	}
	// the shadow is rendered before reconciliation so it never holds edits
	shadow, err := renderer.RenderDocument(page)
	if err != nil {
		return nil, err
	}

	prior, err := snapshot.Load(paths)
	if err != nil {
		return nil, err
	}
	result := document.NewReconciler(cfg.Force, *logger).Reconcile(doc, prior)
	report.Preserved = result.Preserved
	report.Discarded = result.Discarded
	if result.Frontmatter != "" {
		page.Frontmatter = result.Frontmatter
	}

	target, err := renderer.RenderDocument(page)
	if err != nil {
		return nil, err
	}
	if err := snapshot.NewWriter(paths).Write(target, shadow); err != nil {
		return nil, err
	}
	report.Target = paths.Target
	report.Shadow = paths.Shadow
	logger.Info().Str("path", paths.Target).Int("endpoints", len(endpoints)).Msg("Wrote documentation")

	if cfg.Logo != "" {
		if err := snapshot.CopyFile(cfg.Logo, paths.Logo); err != nil {
			return nil, err
		}
	}

	if cfg.VuePress.Enabled {
		pages, err := vuepress.Write(renderer, doc, vuepress.Content{
			Title:   cfg.Title,
			Info:    info,
			Prepend: prepend,
			Append:  appendText,
		}, vuepress.Options{
			Output:     cfg.VuePress.Output,
			Folder:     cfg.VuePress.Folder,
			SinglePage: cfg.VuePress.SinglePage,
		}, *logger)
		if err != nil {
			return nil, err
		}
		report.Pages = pages
	}

	if err := executeCommand(ctx, cfg.GetPostCommand(), cfg.Output, "post-command"); err != nil {
		return nil, err
	}
	return report, nil
}
