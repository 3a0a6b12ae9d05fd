package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blimu-dev/docs-gen/pkg/document"
	"github.com/blimu-dev/docs-gen/pkg/examples"
	"github.com/blimu-dev/docs-gen/pkg/ir"
)

type stubExample struct{ lang string }

func (s stubExample) GetType() string { return s.lang }

func (s stubExample) Render(ep *ir.Endpoint, _ ir.Settings) (string, error) {
	return "```" + s.lang + "\n" + ep.URI + "\n```", nil
}

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	registry := examples.NewRegistry()
	registry.Register(stubExample{lang: "bash"})
	registry.Register(stubExample{lang: "http"})
	r, err := New(registry, "Test API")
	require.NoError(t, err)
	return r
}

func TestRenderEndpoint(t *testing.T) {
	r := newTestRenderer(t)
	ep := &ir.Endpoint{
		ID:          "42",
		Methods:     []string{"GET", "HEAD"},
		URI:         "api/users",
		Title:       "List users",
		Description: "Returns every user.",
		Response:    &ir.Response{Content: `{"data":[]}`},
	}

	out, err := r.RenderEndpoint(ep, ir.Settings{Languages: []string{"bash"}})
	require.NoError(t, err)

	expected := strings.Join([]string{
		"<!-- START_42 -->",
		"## List users",
		"",
		"Returns every user.",
		"",
		"> Example request:",
		"",
		"```bash",
		"api/users",
		"```",
		"",
		"> Example response:",
		"",
		"```json",
		"{",
		`  "data": []`,
		"}",
		"```",
		"",
		"### HTTP Request",
		"",
		"`GET api/users`",
		"",
		"`HEAD api/users`",
		"",
		"<!-- END_42 -->",
	}, "\n")
	assert.Equal(t, expected, out)
	assert.Empty(t, ep.Output, "rendering must not mutate the record")
}

func TestRenderEndpointSections(t *testing.T) {
	r := newTestRenderer(t)

	tests := []struct {
		name        string
		ep          *ir.Endpoint
		settings    ir.Settings
		contains    []string
		notContains []string
	}{
		{
			name:        "heading falls back to uri",
			ep:          &ir.Endpoint{ID: "1", Methods: []string{"GET"}, URI: "api/ping"},
			contains:    []string{"## api/ping"},
			notContains: []string{"> Example request:", "> Example response", "#### Body Parameters", "#### Query Parameters"},
		},
		{
			name: "examples in configured order",
			ep:   &ir.Endpoint{ID: "1", Methods: []string{"GET"}, URI: "api/ping"},
			settings: ir.Settings{
				Languages: []string{"http", "bash"},
			},
			contains: []string{"```http\napi/ping\n```\n\n```bash\napi/ping\n```"},
		},
		{
			name: "body and query tables",
			ep: &ir.Endpoint{
				ID: "1", Methods: []string{"POST"}, URI: "api/users",
				BodyParameters: []ir.Param{
					{Name: "name", Type: "string", Required: true, Description: "The name."},
					{Name: "age", Type: "integer", Description: "Age\nin years."},
				},
				QueryParameters: []ir.Param{{Name: "notify", Description: "Send mail."}},
			},
			contains: []string{
				"#### Body Parameters",
				"#### Query Parameters",
				"name", "string", "required", "The name.",
				"age", "integer", "optional", "Age in years.",
				"notify", "Send mail.",
			},
			notContains: []string{"true", "false"},
		},
		{
			name: "empty body suppresses table",
			ep: &ir.Endpoint{
				ID: "1", Methods: []string{"GET"}, URI: "api/users",
				QueryParameters: []ir.Param{{Name: "page", Required: true}},
			},
			contains:    []string{"#### Query Parameters"},
			notContains: []string{"#### Body Parameters"},
		},
		{
			name: "sequence of responses",
			ep: &ir.Endpoint{
				ID: "1", Methods: []string{"GET"}, URI: "api/users/{id}",
				Response: &ir.Response{Examples: []ir.ResponseExample{
					{Status: "200", Content: map[string]any{"id": 1}},
					{Status: "404", Content: `{"message":"Not found"}`},
				}},
			},
			contains: []string{
				"> Example response (200):\n\n```json\n{\n  \"id\": 1\n}\n```",
				"> Example response (404):\n\n```json\n{\n  \"message\": \"Not found\"\n}\n```",
			},
		},
		{
			name: "unicode is not escaped",
			ep: &ir.Endpoint{
				ID: "1", Methods: []string{"GET"}, URI: "x",
				Response: &ir.Response{Content: map[string]any{"é": 1}},
			},
			contains:    []string{"{\n  \"é\": 1\n}"},
			notContains: []string{`\u00e9`},
		},
		{
			name: "opaque response text",
			ep: &ir.Endpoint{
				ID: "1", Methods: []string{"GET"}, URI: "x",
				Response: &ir.Response{Content: "not json {"},
			},
			contains: []string{"```json\nnot json {\n```"},
		},
		{
			name: "description kept verbatim",
			ep: &ir.Endpoint{
				ID: "1", Methods: []string{"GET"}, URI: "x",
				Description: "first\n\n\n\nsecond",
			},
			contains: []string{"## x\n\nfirst\n\n\n\nsecond\n\n### HTTP Request"},
		},
		{
			name: "no stray blank lines between sections",
			ep: &ir.Endpoint{
				ID: "1", Methods: []string{"POST"}, URI: "x",
				Title:           "Everything",
				Description:     "Text.",
				BodyParameters:  []ir.Param{{Name: "a", Type: "string"}},
				QueryParameters: []ir.Param{{Name: "b"}},
				Response:        &ir.Response{Content: map[string]any{"ok": true}},
			},
			settings:    ir.Settings{Languages: []string{"bash", "http"}},
			notContains: []string{"\n\n\n"},
		},
		{
			name: "pipes escaped in table cells",
			ep: &ir.Endpoint{
				ID: "1", Methods: []string{"POST"}, URI: "x",
				BodyParameters:  []ir.Param{{Name: "a", Type: "string|null", Description: "x | y"}},
				QueryParameters: []ir.Param{{Name: "q|r", Description: `already \| escaped`}},
			},
			contains: []string{`string\|null`, `x \| y`, `q\|r`, `already \| escaped`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := r.RenderEndpoint(tt.ep, tt.settings)
			require.NoError(t, err)

			assert.True(t, strings.HasPrefix(out, "<!-- START_1 -->\n"))
			assert.True(t, strings.HasSuffix(out, "\n<!-- END_1 -->"))
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
			for _, unwanted := range tt.notContains {
				assert.NotContains(t, out, unwanted)
			}
		})
	}
}

func TestRenderEndpointUnknownLanguage(t *testing.T) {
	r := newTestRenderer(t)
	_, err := r.RenderEndpoint(&ir.Endpoint{ID: "1", URI: "x"}, ir.Settings{Languages: []string{"cobol"}})
	assert.Error(t, err)
}

func TestRenderDocument(t *testing.T) {
	r := newTestRenderer(t)
	page := Page{
		Frontmatter: "title: API",
		Info:        "# Info",
		Prepend:     "intro\n",
		Append:      "\noutro",
		Groups: []document.Group{
			{Name: "", Endpoints: []*ir.Endpoint{{Output: "<!-- START_0 -->\nzero\n<!-- END_0 -->"}}},
			{Name: "Users", Endpoints: []*ir.Endpoint{
				{Output: "<!-- START_1 -->\none\n<!-- END_1 -->"},
				{Output: "fresh", ModifiedOutput: "<!-- START_2 -->\nedited\n<!-- END_2 -->"},
			}},
		},
	}

	out, err := r.RenderDocument(page)
	require.NoError(t, err)

	expected := strings.Join([]string{
		"---",
		"title: API",
		"---",
		"<!-- START_INFO -->",
		"# Info",
		"<!-- END_INFO -->",
		"",
		"intro",
		"<!-- START_0 -->",
		"zero",
		"<!-- END_0 -->",
		"",
		"# Users",
		"",
		"<!-- START_1 -->",
		"one",
		"<!-- END_1 -->",
		"",
		"<!-- START_2 -->",
		"edited",
		"<!-- END_2 -->",
		"",
		"outro",
		"",
	}, "\n")
	assert.Equal(t, expected, out)

	fm, ok := document.ExtractFrontmatter(out)
	assert.True(t, ok)
	assert.Equal(t, "title: API", fm)
}

func TestFrontmatterAndInfo(t *testing.T) {
	r := newTestRenderer(t)
	settings := ir.Settings{Languages: []string{"bash", "http"}, BaseURL: "https://api.test"}

	fm, err := r.Frontmatter(settings)
	require.NoError(t, err)
	assert.Contains(t, fm, "title: Test API")
	assert.Contains(t, fm, "language_tabs:")
	assert.Contains(t, fm, "- bash")
	assert.Contains(t, fm, "search: true")
	assert.False(t, strings.HasSuffix(fm, "\n"))

	info, err := r.InfoText(settings)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(info, "# Info"))
	assert.Contains(t, info, "`https://api.test`")
	assert.Contains(t, info, "bash, http")
}

func TestTableRowsKeepColumnCount(t *testing.T) {
	tests := []struct {
		name    string
		build   func() (string, error)
		columns int
	}{
		{
			name: "body",
			build: func() (string, error) {
				return bodyTable([]ir.Param{{Name: "a", Type: "string|null", Description: "x | y"}})
			},
			columns: 4,
		},
		{
			name: "query",
			build: func() (string, error) {
				return queryTable([]ir.Param{{Name: "a", Description: "one|two|three"}})
			},
			columns: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := tt.build()
			require.NoError(t, err)
			for _, line := range strings.Split(out, "\n") {
				unescaped := strings.Count(line, "|") - strings.Count(line, `\|`)
				assert.Equal(t, tt.columns+1, unescaped, "line %q", line)
			}
		})
	}
}
