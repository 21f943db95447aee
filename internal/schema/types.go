package schema

import (
	"math"

	"github.com/go-openapi/spec"

	"github.com/griffnb/core-tsdoc/internal/resolver"
)

const (
	// ARRAY represent a array value.
	ARRAY = "array"
	// OBJECT represent a object value.
	OBJECT = "object"
	// BOOLEAN represent a boolean value.
	BOOLEAN = "boolean"
	// INTEGER represent a integer value.
	INTEGER = "integer"
	// NUMBER represent a number value.
	NUMBER = "number"
	// STRING represent a string value.
	STRING = "string"
)

// primitiveFormats type and format of each resolved primitive.
var primitiveFormats = map[resolver.Primitive][2]string{
	resolver.String:   {STRING, ""},
	resolver.Boolean:  {BOOLEAN, ""},
	resolver.Integer:  {INTEGER, "int32"},
	resolver.Long:     {INTEGER, "int64"},
	resolver.Float:    {NUMBER, "float"},
	resolver.Double:   {NUMBER, "double"},
	resolver.Date:     {STRING, "date"},
	resolver.DateTime: {STRING, "date-time"},
	resolver.Buffer:   {STRING, "byte"},
}

// IsSimplePrimitiveType determines whether the type name is a simple primitive type.
func IsSimplePrimitiveType(typeName string) bool {
	switch typeName {
	case STRING, NUMBER, INTEGER, BOOLEAN:
		return true
	}
	return false
}

// IsComplexSchema determines whether a schema is complex and should be a ref schema.
func IsComplexSchema(schema *spec.Schema) bool {
	// a enum type should be complex
	if len(schema.Enum) > 0 {
		return true
	}

	for _, st := range schema.Type {
		if st == OBJECT {
			return true
		}
	}
	return len(schema.Properties) > 0
}

// PrimitiveSchema builds the schema of a resolved primitive. Void has no
// schema of its own and yields an empty one.
func PrimitiveSchema(p resolver.Primitive) *spec.Schema {
	tf, ok := primitiveFormats[p]
	if !ok {
		return &spec.Schema{}
	}

	schema := &spec.Schema{SchemaProps: spec.SchemaProps{Type: []string{tf[0]}}}
	if tf[1] != "" {
		schema.Format = tf[1]
	}
	return schema
}

// EnumSchema builds an inline enum. The type is taken from the values when
// they agree: strings, whole numbers, numbers or booleans.
func EnumSchema(members []any) *spec.Schema {
	schema := &spec.Schema{}
	schema.Enum = append(schema.Enum, members...)

	if t := enumType(members); t != "" {
		schema.Type = []string{t}
	}
	return schema
}

func enumType(members []any) string {
	var found string
	for _, m := range members {
		var t string
		switch v := m.(type) {
		case string:
			t = STRING
		case bool:
			t = BOOLEAN
		case int:
			t = INTEGER
		case float64:
			t = INTEGER
			if v != math.Trunc(v) {
				t = NUMBER
			}
		default:
			return ""
		}

		switch {
		case found == "":
			found = t
		case found == t:
		case isNumeric(found) && isNumeric(t):
			found = NUMBER
		default:
			return ""
		}
	}
	return found
}

func isNumeric(t string) bool {
	return t == INTEGER || t == NUMBER
}
