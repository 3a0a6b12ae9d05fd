// Package openapi loads OpenAPI 3 documents and exposes their operations as
// route descriptors.
package openapi

import (
	"context"
	"net/url"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/blimu-dev/docs-gen/pkg/errors"
)

// LoadDocument loads an OpenAPI document from a local file path or an HTTP(S) URL
func LoadDocument(ctx context.Context, input string) (*openapi3.T, error) {
	loader := &openapi3.Loader{Context: ctx, IsExternalRefsAllowed: true}
	return LoadDocumentWithLoader(loader, input)
}

// LoadDocumentWithLoader loads an OpenAPI document using a custom loader
func LoadDocumentWithLoader(loader *openapi3.Loader, input string) (*openapi3.T, error) {
	// Try to parse as URL; if it looks like http(s), fetch via URL
	if u, err := url.Parse(input); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		doc, err := loader.LoadFromURI(u)
		if err != nil {
			return nil, errors.WrapParse("openapi", input, err)
		}
		return doc, nil
	}
	doc, err := loader.LoadFromFile(input)
	if err != nil {
		return nil, errors.WrapParse("openapi", input, err)
	}
	return doc, nil
}

// LoadData parses an OpenAPI document held in memory
func LoadData(ctx context.Context, data []byte) (*openapi3.T, error) {
	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, errors.WrapParse("openapi", "<data>", err)
	}
	return doc, nil
}

// ValidateDocument validates an OpenAPI document
func ValidateDocument(ctx context.Context, input string) error {
	loader := &openapi3.Loader{Context: ctx, IsExternalRefsAllowed: true}
	doc, err := LoadDocumentWithLoader(loader, input)
	if err != nil {
		return err
	}
	if err := doc.Validate(loader.Context); err != nil {
		return errors.NewValidationError("openapi", input, err.Error())
	}
	return nil
}
