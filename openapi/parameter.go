package openapi

import (
	"fmt"

	"github.com/Gobd/genspec"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Parameter locations.
const (
	InQuery  = "query"
	InHeader = "header"
	InPath   = "path"
	InCookie = "cookie"
)

type parameterArgs struct {
	Name     string `json:"name"`
	In       string `json:"in"`
	Required bool   `json:"required"`
}

func (a parameterArgs) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.Name, validation.Required),
		validation.Field(&a.In, validation.Required, validation.In(InQuery, InHeader, InPath, InCookie)),
		validation.Field(&a.Required, validation.When(a.In == InPath,
			validation.Required.Error("must be true for path parameters"))),
	)
}

// parameter holds the state shared by every ParameterBuilder instantiation.
type parameter struct {
	s        *session
	entity   *genspec.Entity
	name     string
	schemaBy string
}

// ParameterOption configures a parameter when it is added.
type ParameterOption func(p *parameter)

// ParamType is the option form of [ParameterBuilder.Type].
func ParamType(typ string, opts ...SchemaOption) ParameterOption {
	return func(p *parameter) { p.setType(typ, opts) }
}

// ParamSchema is the option form of [ParameterBuilder.Schema].
func ParamSchema(schema *genspec.Entity) ParameterOption {
	return func(p *parameter) { p.setSchema(schema) }
}

// ParamDescription is the option form of [ParameterBuilder.Description].
func ParamDescription(desc string) ParameterOption {
	return func(p *parameter) { p.entity.Set("description", genspec.String(desc)) }
}

// ParamDeprecated is the option form of [ParameterBuilder.Deprecated].
func ParamDeprecated() ParameterOption {
	return func(p *parameter) { p.entity.Set("deprecated", genspec.Boolean(true)) }
}

func (p *parameter) setType(typ string, opts []SchemaOption) {
	if p.schemaBy == "schema" {
		p.s.fail(&genspec.ConflictingSpecificationError{
			Field:     fmt.Sprintf("schema of parameter %q", p.name),
			Existing:  "Schema",
			Attempted: "Type",
		})
		return
	}
	schema, err := p.s.catalog.NewSchema(typ, opts...)
	if err != nil {
		p.s.fail(fmt.Errorf("parameter %q: %w", p.name, err))
		return
	}
	p.entity.Set("schema", schema)
	p.schemaBy = "type"
}

func (p *parameter) setSchema(schema *genspec.Entity) {
	if p.schemaBy == "type" {
		p.s.fail(&genspec.ConflictingSpecificationError{
			Field:     fmt.Sprintf("schema of parameter %q", p.name),
			Existing:  "Type",
			Attempted: "Schema",
		})
		return
	}
	p.entity.Set("schema", schema)
	p.schemaBy = "schema"
}

// ParameterBuilder is the context of one parameter. End returns to the path
// item or operation the parameter was added to.
type ParameterBuilder[P any] struct {
	parameter
	parent P
}

func newParameter[P any](parent P, s *session, owner *genspec.Entity, name, in string, required bool, opts []ParameterOption) *ParameterBuilder[P] {
	pb := &ParameterBuilder[P]{
		parameter: parameter{
			s:    s,
			name: name,
			entity: s.catalog.Parameter.New().
				Set("name", genspec.String(name)).
				Set("in", genspec.String(in)).
				Set("required", genspec.Boolean(required)),
		},
		parent: parent,
	}
	if err := (parameterArgs{Name: name, In: in, Required: required}).Validate(); err != nil {
		s.fail(fmt.Errorf("parameter %q: %w", name, err))
		return pb
	}
	for _, opt := range opts {
		opt(&pb.parameter)
	}
	appendTo(owner, "parameters", pb.entity)
	return pb
}

// Type sets the parameter schema to a primitive type with opts applied.
// It conflicts with Schema.
func (pb *ParameterBuilder[P]) Type(typ string, opts ...SchemaOption) *ParameterBuilder[P] {
	pb.setType(typ, opts)
	return pb
}

// Schema sets the parameter schema to a prepared Schema or Reference entity.
// It conflicts with Type.
func (pb *ParameterBuilder[P]) Schema(schema *genspec.Entity) *ParameterBuilder[P] {
	pb.setSchema(schema)
	return pb
}

// Description sets the parameter description.
func (pb *ParameterBuilder[P]) Description(desc string) *ParameterBuilder[P] {
	pb.entity.Set("description", genspec.String(desc))
	return pb
}

// Deprecated marks the parameter deprecated.
func (pb *ParameterBuilder[P]) Deprecated() *ParameterBuilder[P] {
	pb.entity.Set("deprecated", genspec.Boolean(true))
	return pb
}

// AllowEmptyValue permits empty values for a query parameter.
func (pb *ParameterBuilder[P]) AllowEmptyValue() *ParameterBuilder[P] {
	pb.entity.Set("allowEmptyValue", genspec.Boolean(true))
	return pb
}

// AllowReserved lets query values carry reserved characters unencoded.
func (pb *ParameterBuilder[P]) AllowReserved() *ParameterBuilder[P] {
	pb.entity.Set("allowReserved", genspec.Boolean(true))
	return pb
}

// Style sets the serialization style.
func (pb *ParameterBuilder[P]) Style(style string) *ParameterBuilder[P] {
	pb.entity.Set("style", genspec.String(style))
	return pb
}

// Explode sets explode.
func (pb *ParameterBuilder[P]) Explode(explode bool) *ParameterBuilder[P] {
	pb.entity.Set("explode", genspec.Boolean(explode))
	return pb
}

// Example sets a scalar example value.
func (pb *ParameterBuilder[P]) Example(example any) *ParameterBuilder[P] {
	if v, ok := pb.s.value("example", example); ok {
		pb.entity.Set("example", v)
	}
	return pb
}

// Extension sets an extension field on the parameter.
func (pb *ParameterBuilder[P]) Extension(name string, value any) *ParameterBuilder[P] {
	if v, ok := pb.s.value(name, value); ok {
		pb.entity.Set(name, v)
	}
	return pb
}

// End returns to the parent context.
func (pb *ParameterBuilder[P]) End() P { return pb.parent }
