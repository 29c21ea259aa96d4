package openapi

import (
	"github.com/Gobd/genspec"
)

// Custom adapts f to a SchemaOption for keywords without a dedicated option.
func Custom(f func(schema *genspec.Entity) error) SchemaOption {
	return custom{f: f}
}

type custom struct {
	f func(*genspec.Entity) error
}

func (r custom) Describe(schema *genspec.Entity) error {
	return r.f(schema)
}
