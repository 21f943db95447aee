// Package schema provides schema building and management functionality for OpenAPI schemas.
package schema

import (
	"fmt"

	"github.com/go-openapi/spec"

	"github.com/griffnb/core-tsdoc/internal/resolver"
)

// WrapperExtension names the status wrapper a schema was unwrapped from.
const WrapperExtension = "x-status-wrapper"

// Debugger is the interface that wraps the basic Printf method.
type Debugger interface {
	Printf(format string, v ...interface{})
}

// BuilderService turns resolved type expressions and the reference table
// into OpenAPI schemas and definitions.
type BuilderService struct {
	definitions map[string]spec.Schema
	debug       Debugger
}

// NewBuilder creates a new BuilderService instance.
func NewBuilder() *BuilderService {
	return &BuilderService{
		definitions: make(map[string]spec.Schema),
	}
}

// SetDebugger sets the debugger for logging
func (b *BuilderService) SetDebugger(debug Debugger) {
	b.debug = debug
}

func (b *BuilderService) printf(format string, v ...interface{}) {
	if b.debug != nil {
		b.debug.Printf(format, v...)
	}
}

// BuildSchema builds the schema of a resolved type expression. References
// become $refs to the definition named by their table key.
func (b *BuilderService) BuildSchema(expr resolver.TypeExpression) *spec.Schema {
	switch expr.Kind {
	case resolver.KindPrimitive:
		return PrimitiveSchema(expr.Primitive)
	case resolver.KindArray:
		return spec.ArrayProperty(b.BuildSchema(*expr.Elem))
	case resolver.KindObject:
		return &spec.Schema{SchemaProps: spec.SchemaProps{Type: []string{OBJECT}}}
	case resolver.KindInlineObject:
		return b.objectSchema(expr.Properties, expr.Additional)
	case resolver.KindEnum:
		return EnumSchema(expr.Members)
	case resolver.KindReference:
		if expr.TypeArgument != nil {
			schema := b.BuildSchema(*expr.TypeArgument)
			if IsRefSchema(schema) {
				schema = spec.ComposedSchema(*schema)
			}
			schema.AddExtension(WrapperExtension, expr.Ref)
			return schema
		}
		return RefSchema(expr.Ref)
	}
	return &spec.Schema{}
}

// BuildDefinition builds the definition of one reference.
func (b *BuilderService) BuildDefinition(ref *resolver.Reference) spec.Schema {
	schema := b.objectSchema(ref.Properties, ref.AdditionalProperty)
	schema.Description = ref.Description
	if ref.Name != ref.Key {
		schema.Title = ref.Name
	}
	return *schema
}

// BuildDefinitions adds a definition for every reference in table, keyed by
// its table key, and checks that all $refs between them resolve. Status
// wrappers without a declaration of their own are left out: their schema is
// the wrapped argument.
func (b *BuilderService) BuildDefinitions(table *resolver.Table) error {
	err := table.Range(func(ref *resolver.Reference) error {
		if isSyntheticWrapper(ref) {
			b.printf("schema: %s is a bare status wrapper, not emitted", ref.Key)
			return nil
		}
		return b.AddDefinition(ref.Key, b.BuildDefinition(ref))
	})
	if err != nil {
		return err
	}

	b.printf("schema: built %d definitions", len(b.definitions))
	return ResolveReferences(b.definitions)
}

func isSyntheticWrapper(ref *resolver.Reference) bool {
	return ref.TypeArgument != nil && len(ref.Properties) == 0 && ref.AdditionalProperty == nil && ref.Description == ""
}

func (b *BuilderService) objectSchema(props []resolver.Property, additional *resolver.Property) *spec.Schema {
	schema := &spec.Schema{SchemaProps: spec.SchemaProps{Type: []string{OBJECT}}}

	for _, prop := range props {
		propSchema := buildAllOfSchema(b.BuildSchema(prop.Type), prop.Description)
		schema.SetProperty(prop.Name, *propSchema)
		if prop.Required {
			schema.AddRequired(prop.Name)
		}
	}

	if additional != nil {
		value := buildAllOfSchema(b.BuildSchema(additional.Type), additional.Description)
		schema.AdditionalProperties = &spec.SchemaOrBool{Allows: true, Schema: value}
	}
	return schema
}

// AddDefinition adds a schema definition with the given name.
func (b *BuilderService) AddDefinition(name string, schema spec.Schema) error {
	if name == "" {
		return fmt.Errorf("definition without a name")
	}
	b.definitions[name] = schema
	return nil
}

// GetDefinition retrieves a schema definition by name.
// Returns the schema and true if found, zero schema and false otherwise.
func (b *BuilderService) GetDefinition(name string) (spec.Schema, bool) {
	schema, ok := b.definitions[name]
	return schema, ok
}

// Definitions returns all schema definitions.
func (b *BuilderService) Definitions() map[string]spec.Schema {
	return b.definitions
}
