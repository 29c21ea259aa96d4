package openapi

import (
	"github.com/Gobd/genspec"
)

// Nullable marks the schema as accepting null.
var Nullable SchemaOption = nullableRule{}

type nullableRule struct{}

func (nullableRule) Describe(schema *genspec.Entity) error {
	schema.Set("nullable", genspec.Boolean(true))
	return nil
}
