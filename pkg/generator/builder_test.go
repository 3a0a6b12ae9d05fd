package generator

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blimu-dev/docs-gen/pkg/ir"
)

func TestBuildEndpoints(t *testing.T) {
	descriptors := []ir.RouteDescriptor{
		{
			Methods: []string{"GET", "HEAD"}, URI: "api/users", Handler: "UserController@index",
			Meta: ir.Metadata{Title: "List users", Group: "Users"},
		},
		{
			Methods: []string{"POST"}, URI: "api/users", Handler: "UserController@store",
			Meta: ir.Metadata{
				Group:          "Users",
				BodyParameters: []ir.Param{{Name: "name", Type: "string", Required: true}},
			},
		},
		{Methods: []string{"GET"}, URI: "closure"},
		{Methods: []string{"GET"}, URI: "internal", Handler: "Internal", Meta: ir.Metadata{Hidden: true}},
		{URI: "nomethods", Handler: "X"},
		{ID: "fixed", Methods: []string{"PUT"}, URI: "api/users/{id}", Handler: "UserController@update"},
		{ID: "fixed", Methods: []string{"PATCH"}, URI: "api/users/{id}", Handler: "UserController@update"},
	}

	var buf bytes.Buffer
	endpoints := BuildEndpoints(descriptors, nil, zerolog.New(&buf))

	require.Len(t, endpoints, 3)

	list := endpoints[0]
	assert.Equal(t, ir.EndpointID("api/users", []string{"GET", "HEAD"}), list.ID)
	assert.Equal(t, "List users", list.Title)
	assert.Empty(t, list.Headers)

	store := endpoints[1]
	assert.Equal(t, []ir.Header{{Name: "Content-Type", Value: "application/json"}}, store.Headers)

	assert.Equal(t, "fixed", endpoints[2].ID)

	logs := buf.String()
	assert.Contains(t, logs, "Skipping route [GET] closure")
	assert.Contains(t, logs, "route has no handler")
	assert.Contains(t, logs, "route is hidden from documentation")
	assert.Contains(t, logs, "route has no methods")
	assert.Contains(t, logs, "duplicate id fixed")
	assert.Contains(t, logs, "Processed route [GET,HEAD] api/users")
}

func TestBuildEndpointsKeepsExplicitContentType(t *testing.T) {
	d := ir.RouteDescriptor{
		Methods: []string{"POST"}, URI: "upload", Handler: "Upload",
		Meta: ir.Metadata{
			Headers:        []ir.Header{{Name: "content-type", Value: "multipart/form-data"}},
			BodyParameters: []ir.Param{{Name: "file"}},
		},
	}

	endpoints := BuildEndpoints([]ir.RouteDescriptor{d}, nil, zerolog.Nop())

	require.Len(t, endpoints, 1)
	assert.Equal(t, []ir.Header{{Name: "content-type", Value: "multipart/form-data"}}, endpoints[0].Headers)
}

func TestBuildEndpointsDoesNotShareDescriptorSlices(t *testing.T) {
	d := ir.RouteDescriptor{
		Methods: []string{"POST"}, URI: "x", Handler: "X",
		Meta: ir.Metadata{
			Headers:        make([]ir.Header, 0, 4),
			BodyParameters: []ir.Param{{Name: "a"}},
		},
	}

	BuildEndpoints([]ir.RouteDescriptor{d}, nil, zerolog.Nop())

	assert.Empty(t, d.Meta.Headers)
	assert.Empty(t, d.Meta.Headers[:cap(d.Meta.Headers)][0].Name)
}

func TestBuildEndpointsFilter(t *testing.T) {
	descriptors := []ir.RouteDescriptor{
		{Methods: []string{"GET"}, URI: "a", Handler: "A", Meta: ir.Metadata{Group: "Users"}},
		{Methods: []string{"GET"}, URI: "b", Handler: "B", Meta: ir.Metadata{Group: "Admin", Tags: []string{"Admin", "Internal"}}},
		{Methods: []string{"GET"}, URI: "c", Handler: "C"},
	}

	filter, err := NewFilter(nil, []string{"^Internal$"})
	require.NoError(t, err)
	endpoints := BuildEndpoints(descriptors, filter, zerolog.Nop())
	require.Len(t, endpoints, 2)
	assert.Equal(t, "a", endpoints[0].URI)
	assert.Equal(t, "c", endpoints[1].URI)

	filter, err = NewFilter([]string{"^Users$"}, nil)
	require.NoError(t, err)
	endpoints = BuildEndpoints(descriptors, filter, zerolog.Nop())
	require.Len(t, endpoints, 1)
	assert.Equal(t, "a", endpoints[0].URI)
}
