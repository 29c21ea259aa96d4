package openapi

import (
	"errors"

	"github.com/Gobd/genspec"
)

// In returns an option that restricts the schema to the given values.
func In(values ...any) SchemaOption {
	return &inRule{values}
}

type inRule struct {
	values []any
}

func (r *inRule) Describe(schema *genspec.Entity) error {
	if len(r.values) == 0 {
		return errors.New("enum must not be empty")
	}
	enum, err := genspec.ValueOf(r.values)
	if err != nil {
		return err
	}
	schema.Set("enum", enum)
	return nil
}
