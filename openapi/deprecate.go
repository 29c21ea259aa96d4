package openapi

import (
	"github.com/Gobd/genspec"
)

type deprecate struct{}

// Deprecate returns an option that marks the schema deprecated.
func Deprecate() SchemaOption {
	return &deprecate{}
}

func (r *deprecate) Describe(schema *genspec.Entity) error {
	schema.Set("deprecated", genspec.Boolean(true))
	return nil
}
