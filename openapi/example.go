package openapi

import (
	"github.com/Gobd/genspec"
)

type example struct {
	ex any
}

// Example returns an option that sets the schema example value.
func Example(ex any) SchemaOption {
	return &example{ex: ex}
}

func (r *example) Describe(schema *genspec.Entity) error {
	v, err := genspec.ValueOf(r.ex)
	if err != nil {
		return err
	}
	schema.Set("example", v)
	return nil
}
