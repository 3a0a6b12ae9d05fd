package openapi

import (
	"context"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/blimu-dev/docs-gen/pkg/ir"
	"github.com/blimu-dev/docs-gen/pkg/jsonfmt"
)

// Extensions that hide an operation from the generated documentation.
const (
	ExtensionHide   = "x-hideFromAPIDocumentation"
	ExtensionHidden = "x-hidden"
)

var methodOrder = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD", "TRACE"}

// Provider yields one route descriptor per OpenAPI operation.
type Provider struct {
	Input string
	doc   *openapi3.T
}

// NewProvider creates a provider that loads input on demand
func NewProvider(input string) *Provider {
	return &Provider{Input: input}
}

// NewDocumentProvider creates a provider for an already loaded document
func NewDocumentProvider(doc *openapi3.T) *Provider {
	return &Provider{doc: doc}
}

// Descriptors loads the document if needed and converts its operations.
func (p *Provider) Descriptors(ctx context.Context) ([]ir.RouteDescriptor, error) {
	if p.doc == nil {
		doc, err := LoadDocument(ctx, p.Input)
		if err != nil {
			return nil, err
		}
		p.doc = doc
	}
	return Descriptors(p.doc), nil
}

// Descriptors converts every operation of doc. Paths are visited in sorted
// order and methods in a fixed order so output is deterministic.
func Descriptors(doc *openapi3.T) []ir.RouteDescriptor {
	if doc == nil || doc.Paths == nil {
		return nil
	}
	items := doc.Paths.Map()
	paths := make([]string, 0, len(items))
	for path := range items {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var out []ir.RouteDescriptor
	for _, path := range paths {
		item := items[path]
		if item == nil {
			continue
		}
		for _, method := range methodOrder {
			op := item.GetOperation(method)
			if op == nil {
				continue
			}
			out = append(out, buildDescriptor(method, path, item, op))
		}
	}
	return out
}

func buildDescriptor(method, path string, item *openapi3.PathItem, op *openapi3.Operation) ir.RouteDescriptor {
	handler := op.OperationID
	if handler == "" {
		handler = method + " " + path
	}

	meta := ir.Metadata{
		Title:       op.Summary,
		Description: op.Description,
		Tags:        append([]string(nil), op.Tags...),
		Hidden:      isHidden(op.Extensions),
	}
	if len(op.Tags) > 0 {
		meta.Group = op.Tags[0]
	}

	headers, query := collectParams(item.Parameters, op.Parameters)
	meta.Headers = headers
	meta.QueryParameters = query
	meta.BodyParameters = extractBodyParams(op)
	meta.Response = extractResponses(op)

	return ir.RouteDescriptor{
		Methods: []string{method},
		URI:     path,
		Handler: handler,
		Meta:    meta,
	}
}

func isHidden(ext map[string]any) bool {
	for _, key := range []string{ExtensionHide, ExtensionHidden} {
		switch v := ext[key].(type) {
		case bool:
			if v {
				return true
			}
		case string:
			if strings.EqualFold(v, "true") {
				return true
			}
		}
	}
	return false
}

// collectParams merges path level and operation level parameters; the
// operation wins on a name clash. Headers and query parameters keep the
// declaration order.
func collectParams(shared, own openapi3.Parameters) ([]ir.Header, []ir.Param) {
	type key struct{ name, in string }
	var order []key
	params := map[key]*openapi3.Parameter{}
	for _, list := range []openapi3.Parameters{shared, own} {
		for _, pr := range list {
			if pr == nil || pr.Value == nil {
				continue
			}
			k := key{pr.Value.Name, pr.Value.In}
			if _, seen := params[k]; !seen {
				order = append(order, k)
			}
			params[k] = pr.Value
		}
	}

	var headers []ir.Header
	var query []ir.Param
	for _, k := range order {
		p := params[k]
		example := parameterExample(p)
		switch p.In {
		case openapi3.ParameterInHeader:
			value := ""
			if example != nil {
				value = stringify(example)
			}
			headers = append(headers, ir.Header{Name: p.Name, Value: value})
		case openapi3.ParameterInQuery:
			query = append(query, ir.Param{
				Name:        p.Name,
				Type:        schemaType(p.Schema),
				Required:    p.Required,
				Description: p.Description,
				Value:       example,
			})
		}
	}
	return headers, query
}

func parameterExample(p *openapi3.Parameter) any {
	if p.Example != nil {
		return p.Example
	}
	if v := firstExample(p.Examples); v != nil {
		return v
	}
	if p.Schema != nil && p.Schema.Value != nil {
		return p.Schema.Value.Example
	}
	return nil
}

// extractBodyParams lists the properties of the JSON request body schema,
// sorted by name.
func extractBodyParams(op *openapi3.Operation) []ir.Param {
	if op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil
	}
	media := pickMedia(op.RequestBody.Value.Content)
	if media == nil || media.Schema == nil || media.Schema.Value == nil {
		return nil
	}
	schema := media.Schema.Value

	required := map[string]bool{}
	for _, name := range schema.Required {
		required[name] = true
	}
	bodyExample, _ := mediaExample(media).(map[string]any)

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	params := make([]ir.Param, 0, len(names))
	for _, name := range names {
		ref := schema.Properties[name]
		param := ir.Param{Name: name, Required: required[name], Type: schemaType(ref)}
		if ref != nil && ref.Value != nil {
			param.Description = ref.Value.Description
			param.Value = ref.Value.Example
		}
		if v, ok := bodyExample[name]; ok {
			param.Value = v
		}
		params = append(params, param)
	}
	return params
}

// extractResponses returns one example per status code that documents one.
func extractResponses(op *openapi3.Operation) *ir.Response {
	if op.Responses == nil {
		return nil
	}
	responses := op.Responses.Map()
	codes := make([]string, 0, len(responses))
	for code := range responses {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	resp := &ir.Response{}
	for _, code := range codes {
		rr := responses[code]
		if rr == nil || rr.Value == nil {
			continue
		}
		media := pickMedia(rr.Value.Content)
		if media == nil {
			continue
		}
		content := mediaExample(media)
		if content == nil {
			continue
		}
		resp.Examples = append(resp.Examples, ir.ResponseExample{Status: code, Content: content})
	}
	if len(resp.Examples) == 0 {
		return nil
	}
	return resp
}

func pickMedia(content openapi3.Content) *openapi3.MediaType {
	if media := content.Get("application/json"); media != nil {
		return media
	}
	types := make([]string, 0, len(content))
	for ct := range content {
		types = append(types, ct)
	}
	sort.Strings(types)
	for _, ct := range types {
		if strings.HasSuffix(ct, "+json") || strings.HasSuffix(ct, "/json") {
			return content[ct]
		}
	}
	return nil
}

func mediaExample(media *openapi3.MediaType) any {
	if media.Example != nil {
		return media.Example
	}
	if v := firstExample(media.Examples); v != nil {
		return v
	}
	if media.Schema != nil && media.Schema.Value != nil {
		return media.Schema.Value.Example
	}
	return nil
}

// firstExample picks the example with the lowest name.
func firstExample(examples openapi3.Examples) any {
	names := make([]string, 0, len(examples))
	for name := range examples {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if ex := examples[name]; ex != nil && ex.Value != nil && ex.Value.Value != nil {
			return ex.Value.Value
		}
	}
	return nil
}

func schemaType(ref *openapi3.SchemaRef) string {
	if ref == nil || ref.Value == nil || ref.Value.Type == nil {
		return ""
	}
	s := ref.Value
	switch {
	case s.Type.Is(openapi3.TypeArray):
		if item := schemaType(s.Items); item != "" {
			return item + "[]"
		}
		return "array"
	case s.Type.Is(openapi3.TypeString):
		if s.Format != "" {
			return "string (" + s.Format + ")"
		}
		return "string"
	}
	return strings.Join(s.Type.Slice(), "|")
}

func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return jsonfmt.Compact(v)
}
