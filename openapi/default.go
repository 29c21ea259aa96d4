package openapi

import (
	"github.com/Gobd/genspec"
)

type defaulter struct {
	a any
}

// Default returns an option that sets the schema default value.
// Zero values are kept.
func Default(a any) SchemaOption {
	return defaulter{
		a: a,
	}
}

func (r defaulter) Describe(schema *genspec.Entity) error {
	v, err := genspec.ValueOf(r.a)
	if err != nil {
		return err
	}
	schema.Set("default", v)
	return nil
}
