// Package ir holds the intermediate representation shared by providers,
// the renderer and the reconciliation engine.
package ir

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// RouteDescriptor is what an endpoint metadata provider yields for one route.
type RouteDescriptor struct {
	// ID overrides the derived endpoint id when a provider has a stable one
	ID      string
	Methods []string
	URI     string
	// Handler references the code serving the route; empty means the route
	// cannot be documented.
	Handler string
	Meta    Metadata
}

// Metadata is the documentation metadata attached to a route.
type Metadata struct {
	Title       string
	Description string
	Group       string
	// Tags are the raw grouping labels used for include/exclude filtering
	Tags            []string
	Headers         []Header
	BodyParameters  []Param
	QueryParameters []Param
	Response        *Response
	Hidden          bool
}

// Endpoint is the normalized record of one documented operation.
type Endpoint struct {
	ID              string
	Methods         []string
	URI             string
	Title           string
	Description     string
	Group           string
	Headers         []Header
	BodyParameters  []Param
	QueryParameters []Param
	Response        *Response

	// Output is the rendered fragment for this endpoint
	Output string
	// ModifiedOutput is set only when reconciliation preserves a manual edit
	ModifiedOutput string
}

// Header is one request header, kept in insertion order.
type Header struct {
	Name  string
	Value string
}

// Param describes a body or query parameter.
type Param struct {
	Name        string
	Type        string
	Required    bool
	Description string
	// Value is an example value used by example requests
	Value any
}

// Response is either a single content value or an ordered list of
// status-labelled examples.
type Response struct {
	Content  any
	Examples []ResponseExample
}

// ResponseExample is one status-labelled example response.
type ResponseExample struct {
	Status  string
	Content any
}

// IsSequence reports whether the response is a list of examples.
func (r *Response) IsSequence() bool {
	return r != nil && len(r.Examples) > 0
}

// Settings are the global rendering settings.
type Settings struct {
	// Languages lists the example request languages, in output order
	Languages []string
	// BaseURL prefixes the endpoint uri in example requests
	BaseURL string
	// ForceOverride discards manual edits instead of preserving them
	ForceOverride bool
}

// Label returns the route label used in diagnostics, e.g. "[GET,HEAD] api/users".
func (e *Endpoint) Label() string {
	return RouteLabel(e.Methods, e.URI)
}

// Block returns the fragment that goes into the published document.
func (e *Endpoint) Block() string {
	if e.ModifiedOutput != "" {
		return e.ModifiedOutput
	}
	return e.Output
}

// HasHeader reports whether a header is set, ignoring case.
func (e *Endpoint) HasHeader(name string) bool {
	for _, h := range e.Headers {
		if strings.EqualFold(h.Name, name) {
			return true
		}
	}
	return false
}

// HasMethod reports whether the endpoint answers the given verb.
func (e *Endpoint) HasMethod(method string) bool {
	for _, m := range e.Methods {
		if strings.EqualFold(m, method) {
			return true
		}
	}
	return false
}

// RouteLabel formats methods and uri for log messages.
func RouteLabel(methods []string, uri string) string {
	return "[" + strings.Join(methods, ",") + "] " + uri
}

// EndpointID derives the stable endpoint id from uri and methods. The
// digest only depends on the route shape, so documentation text changes
// never change it.
func EndpointID(uri string, methods []string) string {
	sum := md5.Sum([]byte(uri + ":" + strings.Join(methods, "")))
	return hex.EncodeToString(sum[:])
}
