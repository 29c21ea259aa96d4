package openapi

import (
	"fmt"

	"github.com/Gobd/genspec"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// JSONMediaType is the media type used by the request and response body helpers.
const JSONMediaType = "application/json"

// PathOption configures a path item when it is opened.
type PathOption func(*PathBuilder)

// PathSummary is the option form of [PathBuilder.Summary].
func PathSummary(summary string) PathOption {
	return func(pb *PathBuilder) { pb.Summary(summary) }
}

// PathDescription is the option form of [PathBuilder.Description].
func PathDescription(desc string) PathOption {
	return func(pb *PathBuilder) { pb.Description(desc) }
}

// PathBuilder is the context of one path item.
type PathBuilder struct {
	parent *Builder
	item   *genspec.Entity
	s      *session
}

// Summary sets the path item summary.
func (pb *PathBuilder) Summary(summary string) *PathBuilder {
	pb.item.Set("summary", genspec.String(summary))
	return pb
}

// Description sets the path item description.
func (pb *PathBuilder) Description(desc string) *PathBuilder {
	pb.item.Set("description", genspec.String(desc))
	return pb
}

// Ref sets $ref, pointing the path item at an external definition.
func (pb *PathBuilder) Ref(ref string) *PathBuilder {
	pb.item.Set("$ref", genspec.String(ref))
	return pb
}

// Server adds a server serving every operation of this path.
func (pb *PathBuilder) Server(url, description string) *PathBuilder {
	server := pb.s.catalog.Server.New().Set("url", genspec.String(url))
	setNonEmpty(server, "description", description)
	appendTo(pb.item, "servers", server)
	return pb
}

// Parameter adds a parameter shared by every operation of this path.
func (pb *PathBuilder) Parameter(name, in string, required bool, opts ...ParameterOption) *ParameterBuilder[*PathBuilder] {
	return newParameter(pb, pb.s, pb.item, name, in, required, opts)
}

// Extension sets an extension field on the path item.
func (pb *PathBuilder) Extension(name string, value any) *PathBuilder {
	if v, ok := pb.s.value(name, value); ok {
		pb.item.Set(name, v)
	}
	return pb
}

// Get starts the GET operation. The optional argument sets operationId.
func (pb *PathBuilder) Get(operationID ...string) *OperationBuilder {
	return pb.Operation("get", operationID...)
}

// Put starts the PUT operation.
func (pb *PathBuilder) Put(operationID ...string) *OperationBuilder {
	return pb.Operation("put", operationID...)
}

// Post starts the POST operation.
func (pb *PathBuilder) Post(operationID ...string) *OperationBuilder {
	return pb.Operation("post", operationID...)
}

// Delete starts the DELETE operation.
func (pb *PathBuilder) Delete(operationID ...string) *OperationBuilder {
	return pb.Operation("delete", operationID...)
}

// Options starts the OPTIONS operation.
func (pb *PathBuilder) Options(operationID ...string) *OperationBuilder {
	return pb.Operation("options", operationID...)
}

// Head starts the HEAD operation.
func (pb *PathBuilder) Head(operationID ...string) *OperationBuilder {
	return pb.Operation("head", operationID...)
}

// Patch starts the PATCH operation.
func (pb *PathBuilder) Patch(operationID ...string) *OperationBuilder {
	return pb.Operation("patch", operationID...)
}

// Trace starts the TRACE operation.
func (pb *PathBuilder) Trace(operationID ...string) *OperationBuilder {
	return pb.Operation("trace", operationID...)
}

// Operation starts the operation for a lower-case method name, replacing any
// operation already stored for it. A new operation answers 200 "Success".
func (pb *PathBuilder) Operation(method string, operationID ...string) *OperationBuilder {
	op := pb.s.catalog.Operation.New()
	ob := &OperationBuilder{parent: pb, op: op, s: pb.s}
	if err := validation.Validate(method, validation.Required, validation.In(methodValues...)); err != nil {
		pb.s.fail(fmt.Errorf("method %q: %w", method, err))
		return ob
	}

	ob.responses = pb.s.catalog.Responses.New()
	op.Set("responses", ob.responses)
	ob.Response("200", "Success")
	if len(operationID) > 0 && operationID[0] != "" {
		ob.OperationID(operationID[0])
	}
	pb.item.Set(method, op)
	return ob
}

var methodValues = func() []any {
	out := make([]any, len(Methods))
	for i, m := range Methods {
		out[i] = m
	}
	return out
}()

// End returns to the document.
func (pb *PathBuilder) End() *Builder { return pb.parent }

// OperationBuilder is the context of one operation.
type OperationBuilder struct {
	parent    *PathBuilder
	op        *genspec.Entity
	responses *genspec.Entity
	s         *session
}

// Summary sets the operation summary.
func (ob *OperationBuilder) Summary(summary string) *OperationBuilder {
	ob.op.Set("summary", genspec.String(summary))
	return ob
}

// Description sets the operation description.
func (ob *OperationBuilder) Description(desc string) *OperationBuilder {
	ob.op.Set("description", genspec.String(desc))
	return ob
}

// OperationID sets operationId.
func (ob *OperationBuilder) OperationID(id string) *OperationBuilder {
	ob.op.Set("operationId", genspec.String(id))
	return ob
}

// Tag appends to the operation tags.
func (ob *OperationBuilder) Tag(tags ...string) *OperationBuilder {
	for _, t := range tags {
		appendTo(ob.op, "tags", genspec.String(t))
	}
	return ob
}

// Deprecated marks the operation deprecated.
func (ob *OperationBuilder) Deprecated() *OperationBuilder {
	ob.op.Set("deprecated", genspec.Boolean(true))
	return ob
}

// ExternalDocs sets the operation externalDocs.
func (ob *OperationBuilder) ExternalDocs(url, description string) *OperationBuilder {
	ob.op.Set("externalDocs", newExternalDocs(ob.s.catalog, url, description))
	return ob
}

// Security adds a security requirement to the operation.
func (ob *OperationBuilder) Security(scheme string, scopes ...string) *OperationBuilder {
	appendTo(ob.op, "security", newSecurityRequirement(ob.s.catalog, scheme, scopes))
	return ob
}

// Response sets the response for a status code ("200", "4XX" or "default").
// An existing response keeps its content.
func (ob *OperationBuilder) Response(code, description string) *OperationBuilder {
	if ob.responses == nil {
		return ob
	}
	resp, ok := ob.responses.Get(code).(*genspec.Entity)
	if !ok || resp.Type() != ob.s.catalog.Response {
		resp = ob.s.catalog.Response.New()
		ob.responses.Set(code, resp)
	}
	resp.Set("description", genspec.String(description))
	return ob
}

// ResponseBody sets the response for code with a JSON body described by schema.
func (ob *OperationBuilder) ResponseBody(code, description string, schema *genspec.Entity) *OperationBuilder {
	if ob.responses == nil {
		return ob
	}
	ob.Response(code, description)
	if resp, ok := ob.responses.Get(code).(*genspec.Entity); ok {
		resp.Set("content", ob.content(schema))
	}
	return ob
}

// RequestBody sets a JSON request body described by schema.
func (ob *OperationBuilder) RequestBody(description string, required bool, schema *genspec.Entity) *OperationBuilder {
	body := ob.s.catalog.RequestBody.New().Set("content", ob.content(schema))
	setNonEmpty(body, "description", description)
	if required {
		body.Set("required", genspec.Boolean(true))
	}
	ob.op.Set("requestBody", body)
	return ob
}

func (ob *OperationBuilder) content(schema *genspec.Entity) genspec.Map {
	media := ob.s.catalog.MediaType.New()
	if schema != nil {
		media.Set("schema", schema)
	}
	return genspec.Map{JSONMediaType: media}
}

// Parameter adds a parameter to the operation.
func (ob *OperationBuilder) Parameter(name, in string, required bool, opts ...ParameterOption) *ParameterBuilder[*OperationBuilder] {
	return newParameter(ob, ob.s, ob.op, name, in, required, opts)
}

// Extension sets an extension field on the operation.
func (ob *OperationBuilder) Extension(name string, value any) *OperationBuilder {
	if v, ok := ob.s.value(name, value); ok {
		ob.op.Set(name, v)
	}
	return ob
}

// End returns to the path item.
func (ob *OperationBuilder) End() *PathBuilder { return ob.parent }
