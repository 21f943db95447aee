package domain

import "strings"

// NodeKind the syntactic shape of a type node.
type NodeKind int

const (
	// NodeKeyword a predefined type: string, number, boolean, any, object, unknown, void, ...
	NodeKeyword NodeKind = iota + 1
	// NodeArray T[]
	NodeArray
	// NodeUnion A | B
	NodeUnion
	// NodeTypeLiteral { a: string }
	NodeTypeLiteral
	// NodeReference a named type, possibly qualified and with type arguments
	NodeReference
	// NodeLiteral a literal type: "red", 1, true
	NodeLiteral
	// NodeFunction (a: A) => B
	NodeFunction
	// NodeUnsupported any other syntax (tuple, intersection, conditional, ...)
	NodeUnsupported
)

// Keyword names as they appear in source.
const (
	KeywordString    = "string"
	KeywordNumber    = "number"
	KeywordBoolean   = "boolean"
	KeywordAny       = "any"
	KeywordObject    = "object"
	KeywordUnknown   = "unknown"
	KeywordVoid      = "void"
	KeywordNull      = "null"
	KeywordUndefined = "undefined"
	KeywordNever     = "never"
)

// TypeNode a type as written in a declaration.
type TypeNode struct {
	Kind NodeKind

	// Keyword for NodeKeyword
	Keyword string

	// Name the possibly qualified name of a NodeReference ("ns.Model")
	Name string
	// Args type arguments of a NodeReference
	Args []*TypeNode

	// Elem element type of a NodeArray
	Elem *TypeNode

	// Types members of a NodeUnion
	Types []*TypeNode

	// Members of a NodeTypeLiteral
	Members []*Member

	// Literal value of a NodeLiteral
	Literal *Literal

	// Syntax the parser's name for the construct, used in error messages
	Syntax string

	// Site the declaration site whose annotations apply to this node
	Site Site
}

// Keyword creates a predefined type node.
func Keyword(keyword string) *TypeNode {
	return &TypeNode{Kind: NodeKeyword, Keyword: keyword, Syntax: "predefined_type"}
}

// ArrayOf creates an array type node.
func ArrayOf(elem *TypeNode) *TypeNode {
	return &TypeNode{Kind: NodeArray, Elem: elem, Syntax: "array_type"}
}

// UnionOf creates a union type node.
func UnionOf(types ...*TypeNode) *TypeNode {
	return &TypeNode{Kind: NodeUnion, Types: types, Syntax: "union_type"}
}

// Ref creates a named type reference.
func Ref(name string, args ...*TypeNode) *TypeNode {
	syntax := "type_identifier"
	if len(args) > 0 {
		syntax = "generic_type"
	}
	return &TypeNode{Kind: NodeReference, Name: name, Args: args, Syntax: syntax}
}

// ObjectLiteral creates a type literal node.
func ObjectLiteral(members ...*Member) *TypeNode {
	return &TypeNode{Kind: NodeTypeLiteral, Members: members, Syntax: "object_type"}
}

// LiteralOf creates a literal type node from a string, float64 or bool.
func LiteralOf(value any, raw string) *TypeNode {
	return &TypeNode{Kind: NodeLiteral, Literal: &Literal{Value: value, Raw: raw}, Syntax: "literal_type"}
}

// Unsupported creates a node for syntax the resolver does not model.
func Unsupported(syntax string) *TypeNode {
	return &TypeNode{Kind: NodeUnsupported, Syntax: syntax}
}

// Property creates a property member and attaches it as the site of its type.
func Property(name string, typ *TypeNode) *Member {
	m := &Member{Kind: PropertyMember, Name: name, Type: typ}
	if typ != nil {
		typ.Site = m
	}
	return m
}

// OptionalProperty creates a property member marked with "?".
func OptionalProperty(name string, typ *TypeNode) *Member {
	m := Property(name, typ)
	m.Optional = true
	return m
}

// IndexSignature creates an index signature member: [key: K]: V.
func IndexSignature(key, value *TypeNode) *Member {
	return &Member{Kind: IndexSignatureMember, IndexKey: key, Type: value}
}

// SimpleName returns the rightmost segment of a qualified reference name.
func (n *TypeNode) SimpleName() string {
	return SimpleName(n.Name)
}

// IsTypeParamCandidate reports whether the node could name a type parameter:
// an unqualified reference without type arguments.
func (n *TypeNode) IsTypeParamCandidate() bool {
	return n != nil && n.Kind == NodeReference && len(n.Args) == 0 && !strings.Contains(n.Name, ".")
}

// String renders the node back to TypeScript-like text.
func (n *TypeNode) String() string {
	if n == nil {
		return KeywordVoid
	}

	switch n.Kind {
	case NodeKeyword:
		return n.Keyword
	case NodeArray:
		return n.Elem.String() + "[]"
	case NodeUnion:
		parts := make([]string, len(n.Types))
		for i, t := range n.Types {
			parts[i] = t.String()
		}
		return strings.Join(parts, " | ")
	case NodeReference:
		if len(n.Args) == 0 {
			return n.Name
		}
		args := make([]string, len(n.Args))
		for i, a := range n.Args {
			args[i] = a.String()
		}
		return n.Name + "<" + strings.Join(args, ", ") + ">"
	case NodeTypeLiteral:
		parts := make([]string, 0, len(n.Members))
		for _, m := range n.Members {
			if m.Kind == PropertyMember {
				parts = append(parts, m.Name+": "+m.Type.String())
			}
		}
		return "{ " + strings.Join(parts, "; ") + " }"
	case NodeLiteral:
		return n.Literal.Raw
	}
	return n.Syntax
}
