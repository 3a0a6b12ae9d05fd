// Package docsgen generates markdown API documentation from OpenAPI
// documents or YAML route manifests, and regenerates it without losing
// manual edits.
//
// Every endpoint is written as a block delimited by
// <!-- START_<id> --> and <!-- END_<id> --> markers. Next to the published
// <output>/source/index.md the generator keeps <output>/source/.compare.md,
// the document as it was generated. On the next run a block that differs
// between the two was edited by hand and is kept, unless Force is set.
//
// Quick Start:
//
//	import "github.com/blimu-dev/docs-gen"
//
//	report, err := docsgen.Generate(ctx, docsgen.Options{
//		OpenAPI: "./openapi.yaml",
//		Output:  "./public/docs",
//	})
//
// For more advanced usage, see the generator package.
package docsgen

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/blimu-dev/docs-gen/pkg/config"
	"github.com/blimu-dev/docs-gen/pkg/generator"
	"github.com/blimu-dev/docs-gen/pkg/logging"
	"github.com/blimu-dev/docs-gen/pkg/openapi"
)

// Report is the outcome of a generation run
type Report = generator.Report

// Options contains options for documentation generation
type Options struct {
	// OpenAPI is an OpenAPI 3 document path or HTTP(S) URL
	OpenAPI string
	// Routes is a YAML route manifest path
	Routes string
	// Output is the documentation root directory
	Output string

	BaseURL       string   // Prefix for example request urls
	Title         string   // Document title written to the frontmatter
	Languages     []string // Example request languages (default bash, javascript)
	Locale        string   // Locale used to order groups (default en)
	IncludeGroups []string // Regex patterns for groups to include
	ExcludeGroups []string // Regex patterns for groups to exclude
	Force         bool     // Overwrite manual edits

	// Logger receives progress and warnings; defaults to the package logger
	Logger *zerolog.Logger
}

// Generate generates documentation with explicit options.
//
// Example:
//
//	report, err := docsgen.Generate(ctx, docsgen.Options{
//		Routes:    "./routes.yaml",
//		Output:    "./docs",
//		Languages: []string{"bash", "python"},
//	})
func Generate(ctx context.Context, opts Options) (*Report, error) {
	cfg := &config.Config{
		OpenAPI:          opts.OpenAPI,
		Routes:           opts.Routes,
		Output:           opts.Output,
		BaseURL:          opts.BaseURL,
		Title:            opts.Title,
		ExampleLanguages: opts.Languages,
		Locale:           opts.Locale,
		IncludeGroups:    opts.IncludeGroups,
		ExcludeGroups:    opts.ExcludeGroups,
		Force:            opts.Force,
	}
	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	if opts.Logger != nil {
		ctx = logging.WithLogger(ctx, opts.Logger)
	}
	return run(ctx, cfg)
}

// GenerateFromConfig generates documentation from a YAML configuration file.
//
// Example:
//
//	report, err := docsgen.GenerateFromConfig(ctx, "./docs-gen.yaml")
func GenerateFromConfig(ctx context.Context, configPath string) (*Report, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	return run(ctx, cfg)
}

// ValidateSpec validates an OpenAPI document.
// This is useful for checking a document before generating from it.
//
// Example:
//
//	if err := docsgen.ValidateSpec(ctx, "./openapi.yaml"); err != nil {
//		log.Fatalf("Invalid OpenAPI document: %v", err)
//	}
func ValidateSpec(ctx context.Context, specPath string) error {
	return openapi.ValidateDocument(ctx, specPath)
}

func run(ctx context.Context, cfg *config.Config) (*Report, error) {
	service, err := generator.NewService()
	if err != nil {
		return nil, err
	}
	return service.Generate(ctx, cfg)
}
