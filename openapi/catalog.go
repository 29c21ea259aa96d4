package openapi

import (
	"fmt"
	"sync"

	"github.com/Gobd/genspec"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Version is the OpenAPI version written to every document.
const Version = "3.0.3"

// Methods lists the operation fields of a path item, in document order.
var Methods = []string{"get", "put", "post", "delete", "options", "head", "patch", "trace"}

// scalar is the type expression of example and default values.
const scalar = "string|integer|number|boolean"

// Catalog holds the OpenAPI 3.0.3 entity types, declared in their own sealed registry.
type Catalog struct {
	registry *genspec.Registry

	OpenAPI               *genspec.EntityType
	Info                  *genspec.EntityType
	Contact               *genspec.EntityType
	License               *genspec.EntityType
	Server                *genspec.EntityType
	ServerVariable        *genspec.EntityType
	Components            *genspec.EntityType
	Paths                 *genspec.EntityType
	PathItem              *genspec.EntityType
	Operation             *genspec.EntityType
	ExternalDocumentation *genspec.EntityType
	Parameter             *genspec.EntityType
	RequestBody           *genspec.EntityType
	MediaType             *genspec.EntityType
	Responses             *genspec.EntityType
	Response              *genspec.EntityType
	Tag                   *genspec.EntityType
	SecurityRequirement   *genspec.EntityType
	Reference             *genspec.EntityType
	Schema                *genspec.EntityType
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// DefaultCatalog returns a catalog built on first use and shared afterwards.
// It is read-only and safe for concurrent use.
func DefaultCatalog() *Catalog {
	defaultOnce.Do(func() {
		c, err := NewCatalog()
		if err != nil {
			panic(err)
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

func fields(kv ...string) []genspec.Field {
	out := make([]genspec.Field, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		out = append(out, genspec.Field{Name: kv[i], Type: kv[i+1]})
	}
	return out
}

// NewCatalog declares the OpenAPI types in a fresh registry and seals it.
func NewCatalog() (*Catalog, error) {
	c := &Catalog{registry: genspec.NewRegistry()}

	pathItemFields := fields(
		"$ref", "string",
		"summary", "string",
		"description", "string",
		"servers", "[Server]",
		"parameters", "[Parameter|Reference]",
	)
	for _, m := range Methods {
		pathItemFields = append(pathItemFields, genspec.Field{Name: m, Type: "Operation"})
	}

	decls := []struct {
		dst  **genspec.EntityType
		name string
		decl genspec.Declaration
	}{
		{&c.OpenAPI, "OpenAPI", genspec.Declaration{
			Required: fields(
				"openapi", "string",
				"info", "Info",
				"paths", "Paths",
			),
			Optional: fields(
				"servers", "[Server]",
				"components", "Components",
				"security", "[SecurityRequirement]",
				"tags", "[Tag]",
				"externalDocs", "ExternalDocumentation",
			),
			Extensions: true,
		}},
		{&c.Info, "Info", genspec.Declaration{
			Required: fields(
				"title", "string",
				"version", "string",
			),
			Optional: fields(
				"description", "string",
				"termsOfService", "string",
				"contact", "Contact",
				"license", "License",
			),
			Extensions: true,
		}},
		{&c.Contact, "Contact", genspec.Declaration{
			Optional: fields(
				"name", "string",
				"url", "string",
				"email", "string",
			),
			Extensions: true,
		}},
		{&c.License, "License", genspec.Declaration{
			Required:   fields("name", "string"),
			Optional:   fields("url", "string"),
			Extensions: true,
		}},
		{&c.Server, "Server", genspec.Declaration{
			Required: fields("url", "string"),
			Optional: fields(
				"description", "string",
				"variables", "Map[string, ServerVariable]",
			),
			Extensions: true,
		}},
		{&c.ServerVariable, "ServerVariable", genspec.Declaration{
			Required: fields("default", "string"),
			Optional: fields(
				"enum", "[string]",
				"description", "string",
			),
			Extensions: true,
			Check:      checkServerVariable,
		}},
		{&c.Components, "Components", genspec.Declaration{
			Optional: fields(
				"schemas", "Map[string, Schema|Reference]",
				"responses", "Map[string, Response|Reference]",
				"parameters", "Map[string, Parameter|Reference]",
				"requestBodies", "Map[string, RequestBody|Reference]",
			),
			Extensions: true,
		}},
		{&c.Paths, "Paths", genspec.Declaration{
			Patterns:   fields(`^/.*`, "PathItem"),
			Extensions: true,
		}},
		{&c.PathItem, "PathItem", genspec.Declaration{
			Optional:   pathItemFields,
			Extensions: true,
		}},
		{&c.Operation, "Operation", genspec.Declaration{
			Required: fields("responses", "Responses"),
			Optional: fields(
				"tags", "[string]",
				"summary", "string",
				"description", "string",
				"externalDocs", "ExternalDocumentation",
				"operationId", "string",
				"parameters", "[Parameter|Reference]",
				"requestBody", "RequestBody|Reference",
				"deprecated", "boolean",
				"security", "[SecurityRequirement]",
				"servers", "[Server]",
			),
			Extensions: true,
		}},
		{&c.ExternalDocumentation, "ExternalDocumentation", genspec.Declaration{
			Required:   fields("url", "string"),
			Optional:   fields("description", "string"),
			Extensions: true,
		}},
		{&c.Parameter, "Parameter", genspec.Declaration{
			Required: fields(
				"name", "string",
				"in", "string",
			),
			Optional: fields(
				"description", "string",
				"required", "boolean",
				"deprecated", "boolean",
				"allowEmptyValue", "boolean",
				"style", "string",
				"explode", "boolean",
				"allowReserved", "boolean",
				"schema", "Schema|Reference",
				"example", scalar,
			),
			Extensions: true,
		}},
		{&c.RequestBody, "RequestBody", genspec.Declaration{
			Required: fields("content", "Map[string, MediaType]"),
			Optional: fields(
				"description", "string",
				"required", "boolean",
			),
			Extensions: true,
		}},
		{&c.MediaType, "MediaType", genspec.Declaration{
			Optional: fields(
				"schema", "Schema|Reference",
				"example", scalar,
			),
			Extensions: true,
		}},
		{&c.Responses, "Responses", genspec.Declaration{
			Patterns:   fields(`(default|[1-5]XX|[1-5][0-9]{2})$`, "Response|Reference"),
			Extensions: true,
		}},
		{&c.Response, "Response", genspec.Declaration{
			Required:   fields("description", "string"),
			Optional:   fields("content", "Map[string, MediaType]"),
			Extensions: true,
		}},
		{&c.Tag, "Tag", genspec.Declaration{
			Required: fields("name", "string"),
			Optional: fields(
				"description", "string",
				"externalDocs", "ExternalDocumentation",
			),
			Extensions: true,
		}},
		{&c.SecurityRequirement, "SecurityRequirement", genspec.Declaration{
			Patterns: fields(`[A-Za-z0-9._-]+$`, "[string]"),
		}},
		{&c.Reference, "Reference", genspec.Declaration{
			Required: fields("$ref", "string"),
		}},
		// Only the primitive subset of the Schema Object is declared.
		{&c.Schema, "Schema", genspec.Declaration{
			Optional: fields(
				"type", "string",
				"format", "string",
				"description", "string",
				"default", scalar,
				"example", scalar,
				"minimum", "number",
				"maximum", "number",
				"exclusiveMinimum", "boolean",
				"exclusiveMaximum", "boolean",
				"minLength", "integer",
				"maxLength", "integer",
				"pattern", "string",
				"enum", "["+scalar+"]",
				"items", "Schema|Reference",
				"nullable", "boolean",
				"deprecated", "boolean",
			),
			Extensions: true,
		}},
	}

	for _, d := range decls {
		t, err := c.registry.Define(d.name, d.decl)
		if err != nil {
			return nil, err
		}
		*d.dst = t
	}
	if err := c.registry.Seal(); err != nil {
		return nil, fmt.Errorf("openapi catalog: %w", err)
	}
	return c, nil
}

// Registry returns the sealed registry holding the catalog's types.
func (c *Catalog) Registry() *genspec.Registry { return c.registry }

// NewDocument returns a root document with the openapi version preset.
func (c *Catalog) NewDocument() *genspec.Entity {
	return c.OpenAPI.New().Set("openapi", genspec.String(Version))
}

// checkServerVariable rejects an empty enum. A missing enum is allowed.
func checkServerVariable(e *genspec.Entity) error {
	enum, ok := e.Lookup("enum")
	if !ok {
		return nil
	}
	l, _ := enum.(genspec.List)
	return validation.Errors{
		"enum": validation.Validate(l, validation.Required.Error("must not be empty")),
	}.Filter()
}
