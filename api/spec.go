package api

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
)

//go:embed api.yaml
var spec []byte

// LoadSpec parses and validates the embedded OpenAPI document.
func LoadSpec(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()

	doc, err := loader.LoadFromData(spec)
	if err != nil {
		return nil, fmt.Errorf("failed to load openapi spec: %w", err)
	}

	err = doc.Validate(ctx)
	if err != nil {
		return nil, fmt.Errorf("invalid openapi spec: %w", err)
	}

	return doc, nil
}

// NewRouter builds the router used to match incoming requests against the
// embedded spec.
func NewRouter(ctx context.Context) (routers.Router, error) {
	doc, err := LoadSpec(ctx)
	if err != nil {
		return nil, err
	}

	return gorillamux.NewRouter(doc)
}
