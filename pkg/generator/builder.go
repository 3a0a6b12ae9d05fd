package generator

import (
	"github.com/rs/zerolog"

	"github.com/blimu-dev/docs-gen/pkg/ir"
)

const contentTypeHeader = "Content-Type"

// BuildEndpoints turns descriptors into endpoint records. Routes without a
// handler, hidden routes, routes without methods, duplicate ids and routes
// rejected by filter are skipped with a log entry; none of them is an error.
func BuildEndpoints(descriptors []ir.RouteDescriptor, filter *Filter, logger zerolog.Logger) []*ir.Endpoint {
	seen := make(map[string]string)
	endpoints := make([]*ir.Endpoint, 0, len(descriptors))

	for _, d := range descriptors {
		label := ir.RouteLabel(d.Methods, d.URI)
		skip := func(reason string) {
			logger.Warn().Str("route", label).Str("reason", reason).Msg("Skipping route " + label)
		}

		switch {
		case d.Handler == "":
			skip("route has no handler")
			continue
		case d.Meta.Hidden:
			skip("route is hidden from documentation")
			continue
		case len(d.Methods) == 0:
			skip("route has no methods")
			continue
		}

		if !filter.Allows(routeTags(d)) {
			logger.Debug().Str("route", label).Msg("Route excluded by group filter")
			continue
		}

		id := d.ID
		if id == "" {
			id = ir.EndpointID(d.URI, d.Methods)
		}
		if other, dup := seen[id]; dup {
			skip("duplicate id " + id + " already used by " + other)
			continue
		}
		seen[id] = label

		endpoints = append(endpoints, newEndpoint(id, d))
		logger.Info().Str("route", label).Msg("Processed route " + label)
	}
	return endpoints
}

func routeTags(d ir.RouteDescriptor) []string {
	if len(d.Meta.Tags) > 0 {
		return d.Meta.Tags
	}
	return []string{d.Meta.Group}
}

func newEndpoint(id string, d ir.RouteDescriptor) *ir.Endpoint {
	ep := &ir.Endpoint{
		ID:              id,
		Methods:         append([]string(nil), d.Methods...),
		URI:             d.URI,
		Title:           d.Meta.Title,
		Description:     d.Meta.Description,
		Group:           d.Meta.Group,
		Headers:         append([]ir.Header(nil), d.Meta.Headers...),
		BodyParameters:  append([]ir.Param(nil), d.Meta.BodyParameters...),
		QueryParameters: append([]ir.Param(nil), d.Meta.QueryParameters...),
		Response:        d.Meta.Response,
	}
	if len(ep.BodyParameters) > 0 && !ep.HasHeader(contentTypeHeader) {
		ep.Headers = append(ep.Headers, ir.Header{Name: contentTypeHeader, Value: "application/json"})
	}
	return ep
}
