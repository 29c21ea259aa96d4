package openapi_test

import (
	"context"
	"testing"

	"github.com/Gobd/genspec"
	"github.com/Gobd/genspec/openapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discovery() *openapi.Builder {
	return openapi.New("Discovery App", "master").
		Path("/dataset").
		Get().
		Parameter("start", openapi.InQuery, false).Type("integer").End().
		Parameter("size", openapi.InQuery, false).Type("integer", openapi.Default(0), openapi.Maximum(20)).End().
		Parameter("private", openapi.InQuery, true).Type("boolean").End().
		End().
		End().
		Path("/dataset/{id_}").
		Parameter("id_", openapi.InPath, true).Type("string").End().
		Get().
		Parameter("meta", openapi.InQuery, false).Type("boolean").End().
		End().
		Delete("del_dataset").End().
		End()
}

func sub(t *testing.T, m any, keys ...string) map[string]any {
	t.Helper()
	for _, k := range keys {
		mm, ok := m.(map[string]any)
		require.True(t, ok, "%v is not a map", m)
		m = mm[k]
	}
	out, ok := m.(map[string]any)
	require.True(t, ok, "%v is not a map", m)
	return out
}

func TestDiscoveryDocument(t *testing.T) {
	doc, err := discovery().Document()
	require.NoError(t, err)

	assert.Equal(t, "3.0.3", doc["openapi"])
	assert.Equal(t, map[string]any{"title": "Discovery App", "version": "master"}, doc["info"])

	paths := sub(t, doc, "paths")
	assert.Len(t, paths, 2)
	assert.Contains(t, paths, "/dataset")
	assert.Contains(t, paths, "/dataset/{id_}")

	get := sub(t, paths, "/dataset", "get")
	assert.Equal(t, "Success", sub(t, get, "responses", "200")["description"])
	assert.Equal(t, []any{
		map[string]any{"name": "start", "in": "query", "required": false, "schema": map[string]any{"type": "integer"}},
		map[string]any{"name": "size", "in": "query", "required": false, "schema": map[string]any{
			"type":    "integer",
			"default": int64(0),
			"maximum": int64(20),
		}},
		map[string]any{"name": "private", "in": "query", "required": true, "schema": map[string]any{"type": "boolean"}},
	}, get["parameters"])

	item := sub(t, paths, "/dataset/{id_}")
	assert.Equal(t, []any{
		map[string]any{"name": "id_", "in": "path", "required": true, "schema": map[string]any{"type": "string"}},
	}, item["parameters"])
	assert.Equal(t, "Success", sub(t, item, "get", "responses", "200")["description"])
	assert.Equal(t, "Success", sub(t, item, "delete", "responses", "200")["description"])
	assert.Equal(t, "del_dataset", sub(t, item, "delete")["operationId"])
	assert.NotContains(t, sub(t, item, "get"), "operationId")
}

func TestDiscoveryConformsToOpenAPI(t *testing.T) {
	spec, err := discovery().Spec(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Discovery App", spec.Info.Title)
	op := spec.Paths.Value("/dataset/{id_}").Delete
	require.NotNil(t, op)
	assert.Equal(t, "del_dataset", op.OperationID)
	size := spec.Paths.Value("/dataset").Get.Parameters.GetByInAndName("query", "size")
	require.NotNil(t, size)
	require.NotNil(t, size.Schema.Value.Max)
	assert.InDelta(t, 20.0, *size.Schema.Value.Max, 0)
}

func TestEmptyDocument(t *testing.T) {
	doc, err := openapi.New("Empty", "1.0").Document()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"openapi": "3.0.3",
		"info":    map[string]any{"title": "Empty", "version": "1.0"},
		"paths":   map[string]any{},
	}, doc)
}

func TestInfo(t *testing.T) {
	doc, err := openapi.New("Shop", "1.0",
		openapi.WithDescription("Sells things"),
		openapi.WithTermsOfService("https://example.com/tos"),
	).
		Contact("Ops", "", "ops@example.com").
		Contact("", "https://example.com", "").
		License("MIT", "").
		Title("Shop API").
		Document()
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"title":          "Shop API",
		"version":        "1.0",
		"description":    "Sells things",
		"termsOfService": "https://example.com/tos",
		"contact":        map[string]any{"name": "Ops", "email": "ops@example.com", "url": "https://example.com"},
		"license":        map[string]any{"name": "MIT"},
	}, doc["info"])
}

func TestDocumentLevelFields(t *testing.T) {
	doc, err := openapi.New("Shop", "1.0").
		Server("https://{env}.example.com").Description("main").Variable("env", "prod", "prod", "dev").End().
		Tag("items", "Item operations").
		Tag("orders", "").
		ExternalDocs("https://example.com/docs", "").
		Security("api_key").
		Extension("x-internal", true).
		Document()
	require.NoError(t, err)

	assert.Equal(t, []any{map[string]any{
		"url":         "https://{env}.example.com",
		"description": "main",
		"variables": map[string]any{
			"env": map[string]any{"default": "prod", "enum": []any{"prod", "dev"}},
		},
	}}, doc["servers"])
	assert.Equal(t, []any{
		map[string]any{"name": "items", "description": "Item operations"},
		map[string]any{"name": "orders"},
	}, doc["tags"])
	assert.Equal(t, map[string]any{"url": "https://example.com/docs"}, doc["externalDocs"])
	assert.Equal(t, []any{map[string]any{"api_key": []any{}}}, doc["security"])
	assert.Equal(t, true, doc["x-internal"])
}

func TestOperationFields(t *testing.T) {
	b := openapi.New("Shop", "1.0").
		Path("/items").
		Summary("Items").
		Server("https://items.example.com", "").
		Post("createItem").
		Summary("Create an item").
		Description("Stores a new item").
		Tag("items", "write").
		Deprecated().
		RequestBody("the item", true, openapi.NewSchemaMust("object")).
		ResponseBody("201", "Created", openapi.NewSchemaMust("string", openapi.Format("uuid"))).
		Response("400", "Bad request").
		Response("200", "Replaced").
		ExternalDocs("https://example.com/items", "more").
		Security("oauth", "write:items").
		Extension("x-rate-limit", 10).
		End().
		End()

	doc, err := b.Document()
	require.NoError(t, err)

	item := sub(t, doc, "paths", "/items")
	assert.Equal(t, "Items", item["summary"])
	assert.Equal(t, []any{map[string]any{"url": "https://items.example.com"}}, item["servers"])

	post := sub(t, item, "post")
	assert.Equal(t, "createItem", post["operationId"])
	assert.Equal(t, "Create an item", post["summary"])
	assert.Equal(t, "Stores a new item", post["description"])
	assert.Equal(t, []any{"items", "write"}, post["tags"])
	assert.Equal(t, true, post["deprecated"])
	assert.Equal(t, int64(10), post["x-rate-limit"])
	assert.Equal(t, map[string]any{"url": "https://example.com/items", "description": "more"}, post["externalDocs"])
	assert.Equal(t, []any{map[string]any{"oauth": []any{"write:items"}}}, post["security"])
	assert.Equal(t, map[string]any{
		"description": "the item",
		"required":    true,
		"content": map[string]any{
			"application/json": map[string]any{"schema": map[string]any{"type": "object"}},
		},
	}, post["requestBody"])
	assert.Equal(t, map[string]any{
		"200": map[string]any{"description": "Replaced"},
		"201": map[string]any{
			"description": "Created",
			"content": map[string]any{
				"application/json": map[string]any{"schema": map[string]any{"type": "string", "format": "uuid"}},
			},
		},
		"400": map[string]any{"description": "Bad request"},
	}, post["responses"])
}

func TestPathReopened(t *testing.T) {
	doc, err := openapi.New("Shop", "1.0").
		Path("/items").Get().End().End().
		Path("/items").Post().End().End().
		Document()
	require.NoError(t, err)

	item := sub(t, doc, "paths", "/items")
	assert.Contains(t, item, "get")
	assert.Contains(t, item, "post")
}

func TestPathOptions(t *testing.T) {
	doc, err := openapi.New("Shop", "1.0").
		Path("/items", openapi.PathSummary("Items"), openapi.PathDescription("Stock items")).
		Get().End().
		End().
		Path("/items", openapi.PathSummary("All items")).End().
		Document()
	require.NoError(t, err)

	item := sub(t, doc, "paths", "/items")
	assert.Equal(t, "All items", item["summary"])
	assert.Equal(t, "Stock items", item["description"])
	assert.Contains(t, item, "get")
}

func TestAllMethods(t *testing.T) {
	pb := openapi.New("Shop", "1.0").Path("/all")
	pb.Get().End().Put().End().Post().End().Delete().End().
		Options().End().Head().End().Patch().End().Trace().End()

	doc, err := pb.End().Document()
	require.NoError(t, err)
	item := sub(t, doc, "paths", "/all")
	for _, m := range openapi.Methods {
		assert.Contains(t, item, m)
	}
}

func TestParameterFields(t *testing.T) {
	doc, err := openapi.New("Shop", "1.0").
		Path("/items").
		Get().
		Parameter("q", openapi.InQuery, false, openapi.ParamDescription("search"), openapi.ParamType("string", openapi.Length(1, 0))).
		AllowEmptyValue().
		AllowReserved().
		Style("form").
		Explode(false).
		Example("shoe").
		Deprecated().
		Extension("x-hint", "free text").
		End().
		Parameter("X-Trace", openapi.InHeader, false, openapi.ParamSchema(openapi.DefaultCatalog().Ref("#/components/schemas/Trace")), openapi.ParamDeprecated()).
		End().
		End().
		End().
		Document()
	require.NoError(t, err)

	params := sub(t, doc, "paths", "/items", "get")["parameters"]
	assert.Equal(t, []any{
		map[string]any{
			"name":            "q",
			"in":              "query",
			"required":        false,
			"description":     "search",
			"schema":          map[string]any{"type": "string", "minLength": int64(1)},
			"allowEmptyValue": true,
			"allowReserved":   true,
			"style":           "form",
			"explode":         false,
			"example":         "shoe",
			"deprecated":      true,
			"x-hint":          "free text",
		},
		map[string]any{
			"name":       "X-Trace",
			"in":         "header",
			"required":   false,
			"schema":     map[string]any{"$ref": "#/components/schemas/Trace"},
			"deprecated": true,
		},
	}, params)
}

func TestParameterConflict(t *testing.T) {
	b := openapi.New("Shop", "1.0").
		Path("/items").
		Get().
		Parameter("q", openapi.InQuery, false).
		Type("string").
		Schema(openapi.NewSchemaMust("integer")).
		End().
		End().
		End()

	err := b.Err()
	require.ErrorIs(t, err, genspec.ErrConflictingSpecification)
	var conflict *genspec.ConflictingSpecificationError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "Type", conflict.Existing)
	assert.Equal(t, "Schema", conflict.Attempted)

	_, err = b.Document()
	require.ErrorIs(t, err, genspec.ErrConflictingSpecification)
	_, err = b.YAML()
	require.ErrorIs(t, err, genspec.ErrConflictingSpecification)

	// The rejected schema was not stored.
	op := b.Entity().Get("paths").(*genspec.Entity).Get("/items").(*genspec.Entity).Get("get").(*genspec.Entity)
	param := op.Get("parameters").(genspec.List)[0].(*genspec.Entity)
	assert.Equal(t, genspec.String("string"), param.Get("schema").(*genspec.Entity).Get("type"))
}

func TestParameterConflictSchemaFirst(t *testing.T) {
	b := openapi.New("Shop", "1.0").
		Path("/items").
		Parameter("q", openapi.InQuery, false, openapi.ParamSchema(openapi.NewSchemaMust("integer"))).
		Type("string").
		End().
		End()

	var conflict *genspec.ConflictingSpecificationError
	require.ErrorAs(t, b.Err(), &conflict)
	assert.Equal(t, "Schema", conflict.Existing)
}

func TestBuilderArgumentErrors(t *testing.T) {
	tests := map[string]func() *openapi.Builder{
		"unknown location": func() *openapi.Builder {
			return openapi.New("a", "1").Path("/a").Parameter("p", "body", false).End().End()
		},
		"optional path parameter": func() *openapi.Builder {
			return openapi.New("a", "1").Path("/a/{p}").Parameter("p", openapi.InPath, false).End().End()
		},
		"unnamed parameter": func() *openapi.Builder {
			return openapi.New("a", "1").Path("/a").Get().Parameter("", openapi.InQuery, false).End().End().End()
		},
		"unknown schema type": func() *openapi.Builder {
			return openapi.New("a", "1").Path("/a").Parameter("p", openapi.InQuery, false).Type("date").End().End()
		},
		"unknown method": func() *openapi.Builder {
			return openapi.New("a", "1").Path("/a").Operation("fetch").End().End()
		},
		"unsupported extension value": func() *openapi.Builder {
			return openapi.New("a", "1").Extension("x-bad", struct{}{})
		},
		"empty enum": func() *openapi.Builder {
			return openapi.New("a", "1").Path("/a").Parameter("p", openapi.InQuery, false).Type("string", openapi.In()).End().End()
		},
	}

	for name, build := range tests {
		t.Run(name, func(t *testing.T) {
			b := build()
			require.Error(t, b.Err())
			_, err := b.Document()
			require.Equal(t, b.Err(), err)
		})
	}
}

func TestFirstErrorIsKept(t *testing.T) {
	b := openapi.New("a", "1").
		Path("/a").
		Operation("fetch").End().
		Parameter("p", "body", false).End().
		End()
	assert.Contains(t, b.Err().Error(), `method "fetch"`)

	first := b.Err()
	b = b.Title("after").Path("/b").Get("later").End().End()
	require.Same(t, first, b.Err())

	doc, err := b.Document()
	require.Nil(t, doc)
	require.Same(t, first, err)
	out, err := b.YAML()
	require.Nil(t, out)
	require.Same(t, first, err)
}

func TestValidationErrorsSurface(t *testing.T) {
	_, err := openapi.New("a", "1").Extension("internal", true).Document()
	require.ErrorIs(t, err, genspec.ErrUnknownField)

	_, err = openapi.New("a", "1").Path("/a").Extension("x-ok", 1).End().Document()
	require.NoError(t, err)

	_, err = openapi.New("a", "1").Path("/a").Get().Response("600", "?").End().End().Document()
	require.ErrorIs(t, err, genspec.ErrUnknownField)
	var pathErr *genspec.PathError
	require.ErrorAs(t, err, &pathErr)
	assert.Equal(t, "paths./a.get.responses", pathErr.Path)
}

func TestSpecRejectsTemplateMismatch(t *testing.T) {
	b := openapi.New("a", "1").Path("/a/{id}").Get().End().End()

	_, err := b.Document()
	require.NoError(t, err)

	_, err = b.Spec(context.Background())
	require.Error(t, err)
}
