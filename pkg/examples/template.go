package examples

import (
	"embed"
	"fmt"
	"net/url"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/blimu-dev/docs-gen/pkg/ir"
	"github.com/blimu-dev/docs-gen/pkg/jsonfmt"
)

//go:embed templates/*
var templatesFS embed.FS

var builtinLanguages = []string{"bash", "javascript", "python", "php"}

// Quoting for values pasted into string literals of the example languages.
var (
	doubleQuoted      = strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	shellDoubleQuoted = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "$", `\$`, "`", "\\`")
	singleQuoted      = strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	shellSingleQuoted = strings.NewReplacer(`'`, `'\''`)
)

// TemplateRenderer renders example requests from an embedded template
// named after the language.
type TemplateRenderer struct {
	lang string
	tmpl *template.Template
}

// NewTemplateRenderer parses the embedded template for lang
func NewTemplateRenderer(lang string) (*TemplateRenderer, error) {
	name := lang + ".gotmpl"
	content, err := templatesFS.ReadFile("templates/" + name)
	if err != nil {
		return nil, fmt.Errorf("failed to read template %s: %w", name, err)
	}
	tmpl, err := template.New(name).Funcs(funcMap()).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
	}
	return &TemplateRenderer{lang: lang, tmpl: tmpl}, nil
}

// GetType returns the language identifier
func (t *TemplateRenderer) GetType() string {
	return t.lang
}

// Render executes the language template for ep
func (t *TemplateRenderer) Render(ep *ir.Endpoint, settings ir.Settings) (string, error) {
	var b strings.Builder
	data := map[string]any{"Endpoint": ep, "Settings": settings}
	if err := t.tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", t.tmpl.Name(), err)
	}
	return strings.TrimSpace(b.String()), nil
}

func funcMap() template.FuncMap {
	funcMap := sprig.TxtFuncMap()
	funcMap["method"] = primaryMethod
	funcMap["requestURL"] = requestURL
	funcMap["bodyJSON"] = func(ep *ir.Endpoint) string { return jsonfmt.Object(ep.BodyParameters) }
	funcMap["bodyCompact"] = func(ep *ir.Endpoint) string { return jsonfmt.CompactObject(ep.BodyParameters) }
	funcMap["hasBody"] = func(ep *ir.Endpoint) bool { return len(ep.BodyParameters) > 0 }
	funcMap["dq"] = doubleQuoted.Replace
	funcMap["shdq"] = shellDoubleQuoted.Replace
	funcMap["sq"] = singleQuoted.Replace
	funcMap["shsq"] = shellSingleQuoted.Replace
	return funcMap
}

// primaryMethod picks the verb shown in examples; GET wins over HEAD.
func primaryMethod(ep *ir.Endpoint) string {
	if len(ep.Methods) == 0 || ep.HasMethod("GET") {
		return "GET"
	}
	return strings.ToUpper(ep.Methods[0])
}

// requestURL joins base url, uri and the example query string. Query
// parameters keep their declared order and those without a value are left out.
func requestURL(baseURL string, ep *ir.Endpoint) string {
	u := strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(ep.URI, "/")

	pairs := make([]string, 0, len(ep.QueryParameters))
	for _, p := range ep.QueryParameters {
		if p.Value == nil {
			continue
		}
		pairs = append(pairs, url.QueryEscape(p.Name)+"="+url.QueryEscape(fmt.Sprint(p.Value)))
	}
	if len(pairs) > 0 {
		u += "?" + strings.Join(pairs, "&")
	}
	return u
}
