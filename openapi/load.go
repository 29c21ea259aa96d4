package openapi

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

// Load parses a plain document with kin-openapi and validates it against the
// OpenAPI 3.0 rules kin-openapi enforces, which go beyond field typing: path
// parameters must match the template, server variables must hold their
// default, and so on.
func Load(ctx context.Context, doc map[string]any) (*openapi3.T, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	loader := openapi3.NewLoader()
	loader.Context = ctx
	t, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}
	if err := t.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate document: %w", err)
	}
	return t, nil
}
