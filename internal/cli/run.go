// Package cli holds the command handlers behind the docs-gen binary.
package cli

import (
	"context"

	"github.com/blimu-dev/docs-gen/pkg/config"
	"github.com/blimu-dev/docs-gen/pkg/generator"
	"github.com/blimu-dev/docs-gen/pkg/logging"
	"github.com/blimu-dev/docs-gen/pkg/openapi"
)

// Overrides are command line values layered over the config file. Empty
// values leave the file setting alone.
type Overrides struct {
	OpenAPI       string
	Routes        string
	Output        string
	BaseURL       string
	Title         string
	Locale        string
	Languages     []string
	IncludeGroups []string
	ExcludeGroups []string
	Force         bool
}

// RunGenerateParams configures one generate invocation
type RunGenerateParams struct {
	ConfigPath string
	Overrides  Overrides
}

// BuildConfig reads the optional config file and applies overrides.
func BuildConfig(p RunGenerateParams) (*config.Config, error) {
	cfg := &config.Config{}
	if p.ConfigPath != "" {
		var err error
		if cfg, err = config.Read(p.ConfigPath); err != nil {
			return nil, err
		}
	}

	o := p.Overrides
	setString(&cfg.OpenAPI, o.OpenAPI)
	setString(&cfg.Routes, o.Routes)
	setString(&cfg.Output, o.Output)
	setString(&cfg.BaseURL, o.BaseURL)
	setString(&cfg.Title, o.Title)
	setString(&cfg.Locale, o.Locale)
	if len(o.Languages) > 0 {
		cfg.ExampleLanguages = o.Languages
	}
	if len(o.IncludeGroups) > 0 {
		cfg.IncludeGroups = o.IncludeGroups
	}
	if len(o.ExcludeGroups) > 0 {
		cfg.ExcludeGroups = o.ExcludeGroups
	}
	if o.Force {
		cfg.Force = true
	}

	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// RunGenerate builds the config and runs the generator
func RunGenerate(ctx context.Context, p RunGenerateParams) (*generator.Report, error) {
	logger := logging.FromContext(ctx)

	cfg, err := BuildConfig(p)
	if err != nil {
		return nil, err
	}
	service, err := generator.NewService()
	if err != nil {
		return nil, err
	}
	report, err := service.Generate(ctx, cfg)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int("routes", report.Routes).
		Int("endpoints", report.Endpoints).
		Int("skipped", report.Skipped).
		Int("preserved", len(report.Preserved)).
		Int("discarded", len(report.Discarded)).
		Str("output", report.Target).
		Msg("Generation complete")
	return report, nil
}

// RunValidate validates an OpenAPI document
func RunValidate(ctx context.Context, input string) error {
	if err := openapi.ValidateDocument(ctx, input); err != nil {
		return err
	}
	logging.FromContext(ctx).Info().Str("input", input).Msg("OpenAPI document is valid")
	return nil
}

func setString(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}
