// Package manifest reads route descriptors from a YAML route manifest.
//
// Example:
//
//	routes:
//	  - methods: [GET, HEAD]
//	    uri: api/users/{id}
//	    handler: UserController@show
//	    title: Get a user
//	    group: Users
//	    headers:
//	      Authorization: Bearer {token}
//	    queryParameters:
//	      include: {type: string, description: Relations to load, value: roles}
//	    response:
//	      - status: 200
//	        content: '{"id": 1, "name": "Ada"}'
//	      - status: 404
//	        content: {message: Not found}
package manifest

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/blimu-dev/docs-gen/pkg/errors"
	"github.com/blimu-dev/docs-gen/pkg/ir"
)

// File is the top level of a manifest.
type File struct {
	Routes []Route `yaml:"routes"`
}

// Route is one manifest entry.
type Route struct {
	ID              string    `yaml:"id"`
	Methods         []string  `yaml:"methods"`
	URI             string    `yaml:"uri"`
	Handler         string    `yaml:"handler"`
	Title           string    `yaml:"title"`
	Description     string    `yaml:"description"`
	Group           string    `yaml:"group"`
	Hidden          bool      `yaml:"hidden"`
	Headers         Headers   `yaml:"headers"`
	BodyParameters  Params    `yaml:"bodyParameters"`
	QueryParameters Params    `yaml:"queryParameters"`
	Response        *Response `yaml:"response"`
}

// Headers is an ordered header mapping.
type Headers []ir.Header

// UnmarshalYAML keeps the mapping order of the document.
func (h *Headers) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: headers must be a mapping", node.Line)
	}
	out := make(Headers, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var value string
		if err := node.Content[i+1].Decode(&value); err != nil {
			return fmt.Errorf("line %d: header %s: %w", node.Content[i+1].Line, node.Content[i].Value, err)
		}
		out = append(out, ir.Header{Name: node.Content[i].Value, Value: value})
	}
	*h = out
	return nil
}

// Params is an ordered parameter mapping.
type Params []ir.Param

type paramSpec struct {
	Type        string `yaml:"type"`
	Required    bool   `yaml:"required"`
	Description string `yaml:"description"`
	Value       any    `yaml:"value"`
}

// UnmarshalYAML keeps the mapping order of the document.
func (p *Params) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: parameters must be a mapping", node.Line)
	}
	out := make(Params, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var spec paramSpec
		if err := node.Content[i+1].Decode(&spec); err != nil {
			return fmt.Errorf("line %d: parameter %s: %w", node.Content[i+1].Line, node.Content[i].Value, err)
		}
		out = append(out, ir.Param{
			Name:        node.Content[i].Value,
			Type:        spec.Type,
			Required:    spec.Required,
			Description: spec.Description,
			Value:       spec.Value,
		})
	}
	*p = out
	return nil
}

// Response wraps ir.Response for decoding.
type Response struct {
	ir.Response
}

// UnmarshalYAML accepts a single content value or a sequence of
// {status, content} entries. A sequence whose items do not all carry a
// status is a single content value.
func (r *Response) UnmarshalYAML(node *yaml.Node) error {
	if isExampleList(node) {
		var items []struct {
			Status  string `yaml:"status"`
			Content any    `yaml:"content"`
		}
		if err := node.Decode(&items); err != nil {
			return err
		}
		for _, item := range items {
			r.Examples = append(r.Examples, ir.ResponseExample{Status: item.Status, Content: item.Content})
		}
		return nil
	}
	return node.Decode(&r.Content)
}

func isExampleList(node *yaml.Node) bool {
	if node.Kind != yaml.SequenceNode || len(node.Content) == 0 {
		return false
	}
	for _, item := range node.Content {
		if item.Kind != yaml.MappingNode || !hasKey(item, "status") {
			return false
		}
	}
	return true
}

func hasKey(node *yaml.Node, key string) bool {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return true
		}
	}
	return false
}

// Parse decodes a manifest.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// Load reads and decodes the manifest at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}
	return f, nil
}

// Descriptors converts the manifest routes in file order.
func (f *File) Descriptors() []ir.RouteDescriptor {
	out := make([]ir.RouteDescriptor, 0, len(f.Routes))
	for _, r := range f.Routes {
		d := ir.RouteDescriptor{
			ID:      r.ID,
			Methods: r.Methods,
			URI:     r.URI,
			Handler: r.Handler,
			Meta: ir.Metadata{
				Title:           r.Title,
				Description:     r.Description,
				Group:           r.Group,
				Headers:         r.Headers,
				BodyParameters:  r.BodyParameters,
				QueryParameters: r.QueryParameters,
				Hidden:          r.Hidden,
			},
		}
		if r.Group != "" {
			d.Meta.Tags = []string{r.Group}
		}
		if r.Response != nil {
			resp := r.Response.Response
			d.Meta.Response = &resp
		}
		out = append(out, d)
	}
	return out
}

// Provider yields descriptors from a manifest file.
type Provider struct {
	Path string
}

// NewProvider creates a manifest provider for path
func NewProvider(path string) *Provider {
	return &Provider{Path: path}
}

// Descriptors loads the manifest and returns its routes.
func (p *Provider) Descriptors(ctx context.Context) ([]ir.RouteDescriptor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := Load(p.Path)
	if err != nil {
		return nil, err
	}
	return f.Descriptors(), nil
}
