package schema

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-openapi/spec"
)

const definitionsPrefix = "#/definitions/"

// RefSchema builds a reference schema.
func RefSchema(refType string) *spec.Schema {
	return spec.RefSchema(definitionsPrefix + refType)
}

// IsRefSchema determines whether a schema is a reference schema.
func IsRefSchema(schema *spec.Schema) bool {
	if schema == nil {
		return false
	}
	return schema.Ref.Ref.GetURL() != nil
}

// ResolveReferences checks that every $ref in definitions names a definition.
func ResolveReferences(definitions map[string]spec.Schema) error {
	used := make(map[string]bool)
	for name := range definitions {
		schema := definitions[name]
		collectSchemaRefs(&schema, used)
	}

	var missing []string
	for name := range used {
		if _, ok := definitions[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	sort.Strings(missing)
	return fmt.Errorf("unresolved references: %s", strings.Join(missing, ", "))
}

// getRefName extracts the definition name from a $ref string like "#/definitions/ModelName".
func getRefName(ref string) string {
	if len(ref) > len(definitionsPrefix) && strings.HasPrefix(ref, definitionsPrefix) {
		return ref[len(definitionsPrefix):]
	}
	return ""
}
