package openapi

import (
	"github.com/Gobd/genspec"
)

// Common values of the format keyword.
const (
	FormatDate     = "date"
	FormatDateTime = "date-time"
	FormatInt32    = "int32"
	FormatInt64    = "int64"
	FormatFloat    = "float"
	FormatDouble   = "double"
)

type formatRule struct {
	format string
}

// Format returns an option that sets the schema format.
func Format(format string) SchemaOption {
	return formatRule{format}
}

func (r formatRule) Describe(schema *genspec.Entity) error {
	schema.Set("format", genspec.String(r.format))
	return nil
}
