package openapi

import (
	"fmt"

	"github.com/Gobd/genspec"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// SchemaTypes lists the values accepted for a schema's type keyword.
var SchemaTypes = []string{"string", "integer", "number", "boolean", "array", "object"}

var schemaTypeValues = func() []any {
	out := make([]any, len(SchemaTypes))
	for i, t := range SchemaTypes {
		out[i] = t
	}
	return out
}()

// SchemaOption sets keywords on a Schema entity.
type SchemaOption interface {
	Describe(schema *genspec.Entity) error
}

// NewSchemaMust is like [Catalog.NewSchema] on the default catalog but panics on error.
func NewSchemaMust(typ string, opts ...SchemaOption) *genspec.Entity {
	s, err := DefaultCatalog().NewSchema(typ, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// NewSchema returns a Schema entity of the given type with opts applied in order.
func (c *Catalog) NewSchema(typ string, opts ...SchemaOption) (*genspec.Entity, error) {
	if err := validation.Validate(typ, validation.Required, validation.In(schemaTypeValues...)); err != nil {
		return nil, fmt.Errorf("schema type %q: %w", typ, err)
	}
	schema := c.Schema.New().Set("type", genspec.String(typ))
	for _, opt := range opts {
		if err := opt.Describe(schema); err != nil {
			return nil, fmt.Errorf("schema of type %s: %w", typ, err)
		}
	}
	return schema, nil
}

// Items returns an array schema whose elements are described by items.
func (c *Catalog) Items(items *genspec.Entity, opts ...SchemaOption) (*genspec.Entity, error) {
	schema, err := c.NewSchema("array", opts...)
	if err != nil {
		return nil, err
	}
	return schema.Set("items", items), nil
}

// Ref returns a Reference entity.
func (c *Catalog) Ref(ref string) *genspec.Entity {
	return c.Reference.New().Set("$ref", genspec.String(ref))
}
