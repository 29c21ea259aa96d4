package openapi_test

import (
	"testing"

	"github.com/Gobd/genspec"
	"github.com/Gobd/genspec/openapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plainSchema(t *testing.T, typ string, opts ...openapi.SchemaOption) map[string]any {
	t.Helper()
	s, err := openapi.DefaultCatalog().NewSchema(typ, opts...)
	require.NoError(t, err)
	out, err := s.PlainData()
	require.NoError(t, err)
	return out
}

func TestSchemaOptions(t *testing.T) {
	tests := []struct {
		name string
		typ  string
		opts []openapi.SchemaOption
		want map[string]any
	}{
		{
			name: "describe appends",
			typ:  "string",
			opts: []openapi.SchemaOption{openapi.Describe("First."), openapi.Describe("Second.")},
			want: map[string]any{"type": "string", "description": "First. Second."},
		},
		{
			name: "describe keeps trailing space",
			typ:  "string",
			opts: []openapi.SchemaOption{openapi.Describe("a "), openapi.Describe("b")},
			want: map[string]any{"type": "string", "description": "a b"},
		},
		{
			name: "zero default is kept",
			typ:  "boolean",
			opts: []openapi.SchemaOption{openapi.Default(false)},
			want: map[string]any{"type": "boolean", "default": false},
		},
		{
			name: "example",
			typ:  "number",
			opts: []openapi.SchemaOption{openapi.Example(1.5)},
			want: map[string]any{"type": "number", "example": 1.5},
		},
		{
			name: "integer bounds",
			typ:  "integer",
			opts: []openapi.SchemaOption{openapi.Minimum(1), openapi.Maximum(uint8(9))},
			want: map[string]any{"type": "integer", "minimum": int64(1), "maximum": int64(9)},
		},
		{
			name: "exclusive bounds",
			typ:  "number",
			opts: []openapi.SchemaOption{openapi.ExclusiveMinimum(0), openapi.ExclusiveMaximum(float32(0.5))},
			want: map[string]any{
				"type":             "number",
				"minimum":          int64(0),
				"exclusiveMinimum": true,
				"maximum":          0.5,
				"exclusiveMaximum": true,
			},
		},
		{
			name: "length",
			typ:  "string",
			opts: []openapi.SchemaOption{openapi.Length(2, 8)},
			want: map[string]any{"type": "string", "minLength": int64(2), "maxLength": int64(8)},
		},
		{
			name: "enum",
			typ:  "string",
			opts: []openapi.SchemaOption{openapi.In("asc", "desc")},
			want: map[string]any{"type": "string", "enum": []any{"asc", "desc"}},
		},
		{
			name: "format pattern nullable deprecated",
			typ:  "string",
			opts: []openapi.SchemaOption{
				openapi.Format(openapi.FormatDate),
				openapi.Pattern(`^\d{4}`),
				openapi.Nullable,
				openapi.Deprecate(),
			},
			want: map[string]any{
				"type":       "string",
				"format":     "date",
				"pattern":    `^\d{4}`,
				"nullable":   true,
				"deprecated": true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, plainSchema(t, tt.typ, tt.opts...))
		})
	}
}

func TestSchemaOptionErrors(t *testing.T) {
	c := openapi.DefaultCatalog()

	_, err := c.NewSchema("date")
	require.Error(t, err)

	_, err = c.NewSchema("")
	require.Error(t, err)

	_, err = c.NewSchema("string", openapi.Pattern("("))
	require.ErrorIs(t, err, genspec.ErrMalformedPattern)

	_, err = c.NewSchema("integer", openapi.Minimum("1"))
	require.Error(t, err)

	_, err = c.NewSchema("integer", openapi.Maximum(nil))
	require.Error(t, err)

	_, err = c.NewSchema("string", openapi.Length(5, 2))
	require.Error(t, err)

	_, err = c.NewSchema("string", openapi.In())
	require.Error(t, err)

	_, err = c.NewSchema("string", openapi.Default(struct{}{}))
	require.ErrorIs(t, err, genspec.ErrUnsupportedValue)

	assert.Panics(t, func() { openapi.NewSchemaMust("date") })
}

func TestSchemaOptionTypesChecked(t *testing.T) {
	// Options set values without looking at the schema type; validation catches
	// values the Schema entity does not accept.
	s, err := openapi.DefaultCatalog().NewSchema("string", openapi.Default([]string{"a"}))
	require.NoError(t, err)
	require.ErrorIs(t, s.Validate(), genspec.ErrInvalidFieldType)
}

func TestCustomOption(t *testing.T) {
	readOnly := openapi.Custom(func(schema *genspec.Entity) error {
		schema.Set("x-read-only", genspec.Boolean(true))
		return nil
	})
	assert.Equal(t, map[string]any{"type": "string", "x-read-only": true}, plainSchema(t, "string", readOnly))

	_, err := openapi.DefaultCatalog().NewSchema("string", openapi.Custom(func(*genspec.Entity) error {
		return genspec.ErrUnsupportedValue
	}))
	require.ErrorIs(t, err, genspec.ErrUnsupportedValue)
}

func TestItems(t *testing.T) {
	c := openapi.DefaultCatalog()
	s, err := c.Items(openapi.NewSchemaMust("integer"), openapi.Describe("ids"))
	require.NoError(t, err)

	out, err := s.PlainData()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"type":        "array",
		"description": "ids",
		"items":       map[string]any{"type": "integer"},
	}, out)
}
