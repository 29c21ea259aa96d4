package openapi

import (
	"fmt"

	"github.com/Gobd/genspec"
)

type lengthRule struct {
	min, max int
}

// Length returns an option that bounds the length of a string schema.
// A zero max leaves the upper bound open.
func Length(lo, hi int) SchemaOption {
	return &lengthRule{
		lo,
		hi,
	}
}

func (r *lengthRule) Describe(schema *genspec.Entity) error {
	if r.min < 0 || (r.max != 0 && r.max < r.min) {
		return fmt.Errorf("invalid length range %d..%d", r.min, r.max)
	}
	schema.Set("minLength", genspec.Integer(r.min))
	if r.max != 0 {
		schema.Set("maxLength", genspec.Integer(r.max))
	}
	return nil
}
