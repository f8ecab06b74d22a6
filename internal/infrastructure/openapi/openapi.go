// Package openapi loads the service's embedded OpenAPI 3 document and
// serves it as JSON.
package openapi

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/valyala/fasthttp"

	"github.com/dharshanac/ZeilCardValidatorApi/pkg/httputil"
)

// Path is where the document is served
const Path = "/swagger/openapi.json"

//go:embed openapi.yaml
var spec []byte

// Document is a loaded and validated OpenAPI document
type Document struct {
	doc  *openapi3.T
	body []byte
}

// Load parses and validates the embedded document
func Load(ctx context.Context) (*Document, error) {
	return LoadFromData(ctx, spec)
}

// LoadFromData parses and validates an OpenAPI document in YAML or JSON
func LoadFromData(ctx context.Context, data []byte) (*Document, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load OpenAPI document: %w", err)
	}

	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid OpenAPI document: %w", err)
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode OpenAPI document: %w", err)
	}

	return &Document{doc: doc, body: body}, nil
}

// Spec returns the parsed document
func (d *Document) Spec() *openapi3.T {
	return d.doc
}

// Handle serves the document as JSON
func (d *Document) Handle(ctx *fasthttp.RequestCtx) {
	ctx.SetContentType(httputil.ContentTypeJSON)
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetBody(d.body)
}
