// Package render turns endpoint records into delimited markdown fragments
// and assembles fragments into a full document.
package render

import (
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"gopkg.in/yaml.v3"

	"github.com/blimu-dev/docs-gen/pkg/document"
	"github.com/blimu-dev/docs-gen/pkg/examples"
	"github.com/blimu-dev/docs-gen/pkg/ir"
	"github.com/blimu-dev/docs-gen/pkg/jsonfmt"
)

//go:embed templates/*
var templatesFS embed.FS

// Renderer renders fragments and documents from embedded templates.
type Renderer struct {
	// Title is written into generated frontmatter
	Title    string
	examples *examples.Registry
	tmpl     *template.Template
}

// Page holds everything that goes into one output document.
type Page struct {
	Frontmatter string
	Info        string
	// Prepend is inserted before the groups, Append after them
	Prepend string
	Append  string
	Groups  []document.Group
}

type response struct {
	Status string
	Body   string
}

type fragment struct {
	ID          string
	Heading     string
	Description string
	URI         string
	Methods     []string
	Examples    []string
	Responses   []response
	BodyTable   string
	QueryTable  string
}

// New creates a renderer that uses registry for example requests
func New(registry *examples.Registry, title string) (*Renderer, error) {
	funcMap := sprig.TxtFuncMap()
	tmpl, err := template.New("render").Funcs(funcMap).ParseFS(templatesFS, "templates/*.gotmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{Title: title, examples: registry, tmpl: tmpl}, nil
}

// RenderEndpoint renders the delimited fragment for ep. It does not modify ep.
func (r *Renderer) RenderEndpoint(ep *ir.Endpoint, settings ir.Settings) (string, error) {
	f := fragment{
		ID:          ep.ID,
		Heading:     ep.Title,
		Description: strings.TrimSpace(ep.Description),
		URI:         ep.URI,
		Methods:     ep.Methods,
		Responses:   responses(ep.Response),
	}
	if f.Heading == "" {
		f.Heading = ep.URI
	}

	for _, lang := range settings.Languages {
		renderer, ok := r.examples.Get(lang)
		if !ok {
			return "", fmt.Errorf("no example renderer for language %q", lang)
		}
		example, err := renderer.Render(ep, settings)
		if err != nil {
			return "", fmt.Errorf("failed to render %s example for %s: %w", lang, ep.Label(), err)
		}
		f.Examples = append(f.Examples, strings.TrimSpace(example))
	}

	var err error
	if f.BodyTable, err = bodyTable(ep.BodyParameters); err != nil {
		return "", err
	}
	if f.QueryTable, err = queryTable(ep.QueryParameters); err != nil {
		return "", err
	}

	out, err := r.execute("route.md.gotmpl", f)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// RenderDocument assembles a page. Endpoints contribute their Block.
func (r *Renderer) RenderDocument(p Page) (string, error) {
	out, err := r.execute("document.md.gotmpl", p)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n") + "\n", nil
}

type frontmatter struct {
	Title        string   `yaml:"title"`
	LanguageTabs []string `yaml:"language_tabs"`
	TocFooters   []string `yaml:"toc_footers"`
	Includes     []string `yaml:"includes"`
	Search       bool     `yaml:"search"`
}

// Frontmatter renders the YAML document metadata, without delimiters.
func (r *Renderer) Frontmatter(settings ir.Settings) (string, error) {
	title := r.Title
	if title == "" {
		title = "API Reference"
	}
	fm := frontmatter{
		Title:        title,
		LanguageTabs: settings.Languages,
		TocFooters:   []string{},
		Includes:     []string{},
		Search:       true,
	}
	if fm.LanguageTabs == nil {
		fm.LanguageTabs = []string{}
	}
	data, err := yaml.Marshal(fm)
	if err != nil {
		return "", fmt.Errorf("failed to marshal frontmatter: %w", err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}

// InfoText renders the body of the info section.
func (r *Renderer) InfoText(settings ir.Settings) (string, error) {
	out, err := r.execute("info.md.gotmpl", settings)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func (r *Renderer) execute(name string, data any) (string, error) {
	var b strings.Builder
	if err := r.tmpl.ExecuteTemplate(&b, name, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	return b.String(), nil
}

func responses(resp *ir.Response) []response {
	if resp == nil {
		return nil
	}
	if resp.IsSequence() {
		out := make([]response, 0, len(resp.Examples))
		for _, ex := range resp.Examples {
			out = append(out, response{Status: ex.Status, Body: jsonfmt.Pretty(ex.Content)})
		}
		return out
	}
	if resp.Content == nil {
		return nil
	}
	return []response{{Body: jsonfmt.Pretty(resp.Content)}}
}
