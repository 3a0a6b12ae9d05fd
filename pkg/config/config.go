package config

import (
	"net/url"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/blimu-dev/docs-gen/pkg/errors"
	"github.com/blimu-dev/docs-gen/pkg/ir"
)

// DefaultExampleLanguages are used when the config lists none.
var DefaultExampleLanguages = []string{"bash", "javascript"}

// DefaultLocale drives group ordering when none is configured.
const DefaultLocale = "en"

// Config represents the complete configuration for documentation generation
type Config struct {
	// Output is the documentation root; the markdown goes to <output>/source
	Output string `yaml:"output"`
	// OpenAPI is an OpenAPI 3 document, as a file path or HTTP(S) URL
	OpenAPI string `yaml:"openapi"`
	// Routes is a YAML route manifest
	Routes string `yaml:"routes"`
	// BaseURL prefixes request paths in example requests
	BaseURL string `yaml:"baseURL"`
	// ExampleLanguages lists example request languages in output order
	ExampleLanguages []string `yaml:"exampleLanguages"`
	// Force discards manual edits to generated blocks
	Force bool `yaml:"force"`
	// Locale controls the collation used to order groups
	Locale string `yaml:"locale"`
	Title  string `yaml:"title"`
	// IncludeGroups and ExcludeGroups are regex filters on route groups
	IncludeGroups []string `yaml:"includeGroups"`
	ExcludeGroups []string `yaml:"excludeGroups"`
	// Logo is copied to <output>/images/logo.png
	Logo string `yaml:"logo"`
	// PostCommand is an optional command to run after the documents are written.
	// Uses Docker Compose array format: ["npx", "slate", "build"]
	// The command will be executed in the output directory.
	PostCommand []string `yaml:"postCommand"`
	VuePress    VuePress `yaml:"vuepress"`
}

// VuePress configures the optional VuePress pages
type VuePress struct {
	Enabled    bool   `yaml:"enabled"`
	Output     string `yaml:"output"`
	Folder     string `yaml:"folder"`
	SinglePage bool   `yaml:"singlePage"`
}

// GetPostCommand returns the post-generation command to execute.
func (c *Config) GetPostCommand() []string {
	return c.PostCommand
}

// Settings returns the rendering settings derived from the config.
func (c *Config) Settings() ir.Settings {
	return ir.Settings{
		Languages:     c.ExampleLanguages,
		BaseURL:       c.BaseURL,
		ForceOverride: c.Force,
	}
}

// ApplyDefaults fills unset optional fields.
func (c *Config) ApplyDefaults() {
	if len(c.ExampleLanguages) == 0 {
		c.ExampleLanguages = append([]string(nil), DefaultExampleLanguages...)
	}
	if c.Locale == "" {
		c.Locale = DefaultLocale
	}
	if c.BaseURL == "" {
		c.BaseURL = "http://localhost"
	}
	if c.VuePress.Folder == "" {
		c.VuePress.Folder = "api"
	}
}

// Validate checks required fields and filter patterns.
func (c *Config) Validate() error {
	if c.Output == "" {
		return errors.NewConfigError("config", "output is required", nil)
	}
	if c.OpenAPI == "" && c.Routes == "" {
		return errors.NewConfigError("config", "one of openapi or routes is required", nil)
	}
	if c.VuePress.Enabled && c.VuePress.Output == "" {
		return errors.NewConfigError("vuepress", "output is required when vuepress is enabled", nil)
	}
	for _, p := range append(append([]string(nil), c.IncludeGroups...), c.ExcludeGroups...) {
		if _, err := regexp.Compile(p); err != nil {
			return errors.NewConfigError("groups", "invalid pattern "+p, err)
		}
	}
	return nil
}

// Normalize makes local paths absolute. HTTP(S) URLs are kept as-is.
func (c *Config) Normalize() {
	c.Output = absolute(c.Output)
	c.Routes = absolute(c.Routes)
	c.Logo = absolute(c.Logo)
	c.VuePress.Output = absolute(c.VuePress.Output)
	if !isURL(c.OpenAPI) {
		c.OpenAPI = absolute(c.OpenAPI)
	}
}

// Read decodes a YAML config file without defaults or validation, so
// callers can layer flags on top before calling Finalize.
func Read(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}
	return &cfg, nil
}

// Finalize applies defaults, validates and normalizes paths.
func (c *Config) Finalize() error {
	c.ApplyDefaults()
	if err := c.Validate(); err != nil {
		return err
	}
	c.Normalize()
	return nil
}

// Load loads configuration from a YAML file
func Load(path string) (*Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func isURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https")
}

func absolute(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return p
	}
	return abs
}
