package openapi

import (
	"strings"

	"github.com/Gobd/genspec"
)

type describe struct {
	desc string
}

// Describe returns an option that appends desc to the schema description.
func Describe(desc string) SchemaOption {
	return &describe{desc: desc}
}

func (r *describe) Describe(schema *genspec.Entity) error {
	appendDescription(schema, r.desc)
	return nil
}

func appendDescription(schema *genspec.Entity, s string) {
	desc, _ := schema.Get("description").(genspec.String)
	if desc != "" && !strings.HasSuffix(string(desc), " ") {
		desc += " "
	}
	schema.Set("description", desc+genspec.String(s))
}
