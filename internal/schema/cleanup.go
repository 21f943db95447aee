package schema

import (
	"github.com/go-openapi/spec"
)

// RemoveUnusedDefinitions removes schema definitions that are not reachable
// from the document's paths or from one of roots.
func RemoveUnusedDefinitions(swagger *spec.Swagger, roots ...*spec.Schema) {
	if swagger == nil || swagger.Definitions == nil {
		return
	}

	used := make(map[string]bool)
	for _, root := range roots {
		collectSchemaRefs(root, used)
	}
	if swagger.Paths != nil {
		for _, item := range swagger.Paths.Paths {
			for _, op := range []*spec.Operation{item.Get, item.Put, item.Post, item.Delete, item.Options, item.Head, item.Patch} {
				collectOperationRefs(op, used)
			}
		}
	}

	// follow refs between definitions until nothing new turns up
	queue := make([]string, 0, len(used))
	for name := range used {
		queue = append(queue, name)
	}
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]

		def, ok := swagger.Definitions[name]
		if !ok {
			continue
		}
		found := make(map[string]bool)
		collectSchemaRefs(&def, found)
		for ref := range found {
			if !used[ref] {
				used[ref] = true
				queue = append(queue, ref)
			}
		}
	}

	for name := range swagger.Definitions {
		if !used[name] {
			delete(swagger.Definitions, name)
		}
	}
}

func collectOperationRefs(op *spec.Operation, used map[string]bool) {
	if op == nil {
		return
	}
	for i := range op.Parameters {
		collectSchemaRefs(op.Parameters[i].Schema, used)
	}
	if op.Responses == nil {
		return
	}
	if op.Responses.Default != nil {
		collectSchemaRefs(op.Responses.Default.Schema, used)
	}
	for _, resp := range op.Responses.StatusCodeResponses {
		collectSchemaRefs(resp.Schema, used)
	}
}

// collectRefs marks the definitions referenced by a schema value or pointer.
func collectRefs(schema interface{}, used map[string]bool) {
	switch s := schema.(type) {
	case spec.Schema:
		collectSchemaRefs(&s, used)
	case *spec.Schema:
		collectSchemaRefs(s, used)
	}
}

func collectSchemaRefs(schema *spec.Schema, used map[string]bool) {
	if schema == nil {
		return
	}

	if name := getRefName(schema.Ref.String()); name != "" {
		used[name] = true
	}

	for name := range schema.Properties {
		prop := schema.Properties[name]
		collectSchemaRefs(&prop, used)
	}
	if schema.Items != nil {
		collectSchemaRefs(schema.Items.Schema, used)
		for i := range schema.Items.Schemas {
			collectSchemaRefs(&schema.Items.Schemas[i], used)
		}
	}
	if schema.AdditionalProperties != nil {
		collectSchemaRefs(schema.AdditionalProperties.Schema, used)
	}
	for i := range schema.AllOf {
		collectSchemaRefs(&schema.AllOf[i], used)
	}
	for i := range schema.AnyOf {
		collectSchemaRefs(&schema.AnyOf[i], used)
	}
	for i := range schema.OneOf {
		collectSchemaRefs(&schema.OneOf[i], used)
	}
	collectSchemaRefs(schema.Not, used)
}
