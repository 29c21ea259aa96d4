// Package genspec provides a small validating object model for building
// structured documents such as OpenAPI descriptions.
//
// Entity types are declared once in a [Registry] with tables of required,
// optional and pattern-keyed fields, each typed by a compact type expression:
//
//	reg := genspec.NewRegistry()
//	info := reg.MustDefine("Info", genspec.Declaration{
//	    Required:   []genspec.Field{{Name: "title", Type: "string"}, {Name: "version", Type: "string"}},
//	    Optional:   []genspec.Field{{Name: "tags", Type: "[string]"}},
//	    Extensions: true,
//	})
//	if err := reg.Seal(); err != nil {
//	    return err
//	}
//
// Entities are populated without checks and converted in one step:
//
//	e := info.New().Set("title", genspec.String("Pets")).Set("version", genspec.String("1.0"))
//	data, err := e.PlainData() // validates the whole graph first
//
// Type expressions are a name ("string", "integer", "number", "boolean" or a
// registered entity type), a sequence "[T]", a mapping "Map[K,T]" or a union
// "A|B", nested freely.
//
// Sub-packages:
//   - openapi – OpenAPI 3.0.3 entity catalog, fluent document builder, encoders and handler
package genspec
