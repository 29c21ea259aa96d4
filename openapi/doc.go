// Package openapi declares the OpenAPI 3.0.3 object types as genspec entities
// and provides a fluent builder for documents made of them.
//
// Start a document with [New], descend into servers, paths, operations and
// parameters, and climb back with End. Every context returns itself, so a
// whole document is one chained expression:
//
//	b := openapi.New("Discovery App", "0.1.0").
//	    Path("/dataset").
//	        Get().
//	            Parameter("size", openapi.InQuery, false).
//	                Type("integer", openapi.Default(0), openapi.Maximum(20)).
//	            End().
//	        End().
//	    End()
//	out, err := b.YAML()
//
// Builder methods never return errors. The first failure, such as an invalid
// parameter location or a parameter given both a type and a schema, is kept
// and reported by [Builder.Err] and by every method producing output. Later
// calls still edit entities, but the chain produces no output.
//
// [Load] checks a finished document with kin-openapi and [Handler] serves it
// with a Swagger UI page.
package openapi
