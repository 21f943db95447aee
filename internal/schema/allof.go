package schema

import (
	"github.com/go-openapi/spec"
)

// shouldUseAllOf determines if AllOf composition is needed to attach a
// description. Swagger 2.0 ignores siblings of $ref, so a described
// reference has to be wrapped; anything else takes the description directly.
func shouldUseAllOf(baseSchema *spec.Schema, description string) bool {
	if baseSchema == nil || description == "" {
		return false
	}
	return IsRefSchema(baseSchema)
}

// buildAllOfSchema attaches description to baseSchema.
//
// Examples:
//   - Ref + description → AllOf holding the ref, description on the wrapper
//   - Primitive + description → the primitive with its description set
//   - Any base + no description → Base unchanged
func buildAllOfSchema(baseSchema *spec.Schema, description string) *spec.Schema {
	if baseSchema == nil {
		return &spec.Schema{}
	}

	if description == "" {
		return baseSchema
	}

	if !shouldUseAllOf(baseSchema, description) {
		baseSchema.Description = description
		return baseSchema
	}

	composed := spec.ComposedSchema(*baseSchema)
	composed.Description = description
	return composed
}
