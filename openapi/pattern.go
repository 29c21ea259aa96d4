package openapi

import (
	"fmt"
	"regexp"

	"github.com/Gobd/genspec"
)

type patternRule struct {
	pattern string
}

// Pattern returns an option that constrains a string schema to a regular
// expression. The expression must compile.
func Pattern(pattern string) SchemaOption {
	return patternRule{pattern}
}

func (r patternRule) Describe(schema *genspec.Entity) error {
	if _, err := regexp.Compile(r.pattern); err != nil {
		return fmt.Errorf("%w: %q: %w", genspec.ErrMalformedPattern, r.pattern, err)
	}
	schema.Set("pattern", genspec.String(r.pattern))
	return nil
}
