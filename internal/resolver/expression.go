// Package resolver turns declaration type nodes into concrete, finite type
// expressions. Named object types are collected into a per-run reference
// table; generic arguments are substituted, inheritance is flattened and
// recursive references are broken with table keys.
package resolver

import (
	"fmt"
	"strings"
)

// Kind the shape of a resolved type expression.
type Kind int

const (
	KindPrimitive Kind = iota + 1
	KindArray
	KindObject
	KindInlineObject
	KindEnum
	KindReference
)

// Primitive scalar type names.
type Primitive string

const (
	String   Primitive = "string"
	Boolean  Primitive = "boolean"
	Integer  Primitive = "integer"
	Long     Primitive = "long"
	Float    Primitive = "float"
	Double   Primitive = "double"
	Date     Primitive = "date"
	DateTime Primitive = "datetime"
	Buffer   Primitive = "buffer"
	Void     Primitive = "void"
)

// TypeExpression a resolved type.
type TypeExpression struct {
	Kind Kind

	// Primitive for KindPrimitive
	Primitive Primitive

	// Elem element type of KindArray
	Elem *TypeExpression

	// Properties of KindInlineObject
	Properties []Property
	// Additional value type of an index signature on a KindInlineObject
	Additional *Property

	// Members values of KindEnum
	Members []any

	// Ref the table key of KindReference
	Ref string
	// TypeArgument the wrapped type of a status wrapper reference
	TypeArgument *TypeExpression
}

// Property a named member of an object type.
type Property struct {
	Name        string
	Type        TypeExpression
	Required    bool
	Description string
}

func PrimitiveOf(p Primitive) TypeExpression {
	return TypeExpression{Kind: KindPrimitive, Primitive: p}
}

func ArrayOf(elem TypeExpression) TypeExpression {
	return TypeExpression{Kind: KindArray, Elem: &elem}
}

func Object() TypeExpression {
	return TypeExpression{Kind: KindObject}
}

func InlineObject(props []Property, additional *Property) TypeExpression {
	return TypeExpression{Kind: KindInlineObject, Properties: props, Additional: additional}
}

func EnumOf(members []any) TypeExpression {
	return TypeExpression{Kind: KindEnum, Members: members}
}

func RefTo(key string) TypeExpression {
	return TypeExpression{Kind: KindReference, Ref: key}
}

// KindName names the expression for the array-or-scalar union check: the
// primitive name, "object", or the reference key. Enums and inline objects
// have no comparable name.
func (e TypeExpression) KindName() string {
	switch e.Kind {
	case KindPrimitive:
		return string(e.Primitive)
	case KindObject:
		return "object"
	case KindReference:
		return e.Ref
	case KindArray:
		return e.Elem.KindName() + "Array"
	}
	return ""
}

func (e TypeExpression) String() string {
	switch e.Kind {
	case KindPrimitive:
		return string(e.Primitive)
	case KindArray:
		return e.Elem.String() + "[]"
	case KindObject:
		return "object"
	case KindInlineObject:
		parts := make([]string, len(e.Properties))
		for i, p := range e.Properties {
			parts[i] = p.Name + ": " + p.Type.String()
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case KindEnum:
		parts := make([]string, len(e.Members))
		for i, m := range e.Members {
			parts[i] = fmt.Sprint(m)
		}
		return "enum(" + strings.Join(parts, ", ") + ")"
	case KindReference:
		if e.TypeArgument != nil {
			return e.Ref + "<" + e.TypeArgument.String() + ">"
		}
		return "#" + e.Ref
	}
	return "invalid"
}
