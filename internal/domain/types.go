// Package domain contains core domain types shared across the tsdoc application.
// These types represent parsed TypeScript declarations: classes, interfaces,
// type aliases and enums, together with their members and the type nodes
// those members are written with.
package domain

// DeclKind identifies the syntactic kind of a declaration.
type DeclKind int

const (
	ClassDecl DeclKind = iota + 1
	InterfaceDecl
	TypeAliasDecl
	EnumDecl
)

func (k DeclKind) String() string {
	switch k {
	case ClassDecl:
		return "class"
	case InterfaceDecl:
		return "interface"
	case TypeAliasDecl:
		return "type alias"
	case EnumDecl:
		return "enum"
	}
	return "unknown"
}

// Declaration a named class, interface, type alias or enum.
type Declaration struct {
	Kind DeclKind

	// Name the declared name, without namespace
	Name string

	// Namespace the enclosing namespace path ("" at file scope)
	Namespace string

	TypeParams []TypeParam

	// Heritage extends and implements clauses, in source order
	Heritage []*TypeNode

	// Members properties, index signatures, methods and constructor parameters
	Members []*Member

	// Type the aliased type of a type alias
	Type *TypeNode

	EnumMembers []EnumMember

	Doc         string
	Annotations []Annotation

	// File path of the source file the declaration was read from
	File string
}

// QualifiedName returns the namespace-qualified name of the declaration.
func (d *Declaration) QualifiedName() string {
	return fullTypeName(d.Namespace, d.Name)
}

// IsGeneric reports whether the declaration has formal type parameters.
func (d *Declaration) IsGeneric() bool {
	return len(d.TypeParams) > 0
}

// IsObjectShaped reports whether a type alias names an object literal.
func (d *Declaration) IsObjectShaped() bool {
	return d.Kind == TypeAliasDecl && d.Type != nil && d.Type.Kind == NodeTypeLiteral
}

// LiteralUnion returns the literal members of an alias of a union of
// literal constants, e.g. type Color = "red" | "green".
func (d *Declaration) LiteralUnion() ([]Literal, bool) {
	if d.Kind != TypeAliasDecl || d.Type == nil {
		return nil, false
	}

	switch d.Type.Kind {
	case NodeLiteral:
		return []Literal{*d.Type.Literal}, true
	case NodeUnion:
		literals := make([]Literal, 0, len(d.Type.Types))
		for _, member := range d.Type.Types {
			if member.Kind != NodeLiteral || member.Literal == nil {
				return nil, false
			}
			literals = append(literals, *member.Literal)
		}
		return literals, len(literals) > 0
	}
	return nil, false
}

func (d *Declaration) Documentation() string { return d.Doc }
func (d *Declaration) Annotated() []Annotation { return d.Annotations }

// TypeParam a formal type parameter with its optional default.
type TypeParam struct {
	Name    string
	Default *TypeNode
}

// EnumMember a member of an enum declaration. Value is nil when the member
// has no literal initializer.
type EnumMember struct {
	Name  string
	Value *Literal
}

// MemberKind identifies what a declaration member is.
type MemberKind int

const (
	PropertyMember MemberKind = iota + 1
	IndexSignatureMember
	MethodMember
	ConstructorParamMember
)

// Member a property, index signature, method or constructor parameter.
type Member struct {
	Kind MemberKind
	Name string

	// Type the declared type, nil when the source omits it
	Type *TypeNode

	Optional bool
	Static   bool

	// Accessibility the explicit modifier: "", "public", "private" or "protected"
	Accessibility string

	// IndexKey the key type of an index signature
	IndexKey *TypeNode

	Doc         string
	Annotations []Annotation
}

func (m *Member) Documentation() string { return m.Doc }
func (m *Member) Annotated() []Annotation { return m.Annotations }

// IsPrivate reports whether the member carries a private or protected modifier.
func (m *Member) IsPrivate() bool {
	return m.Accessibility == "private" || m.Accessibility == "protected"
}

// AnnotationSource where an annotation was written.
type AnnotationSource int

const (
	DecoratorAnnotation AnnotationSource = iota + 1
	DocTagAnnotation
)

// Annotation a decorator (@IsInt()) or a JSDoc tag (@IsInt) attached to a site.
type Annotation struct {
	Name   string
	Source AnnotationSource
	Args   []string
}

// Site is anything annotations and documentation can be attached to.
type Site interface {
	Documentation() string
	Annotated() []Annotation
}

// Literal a constant value written in source: a string, number or boolean.
type Literal struct {
	// Value string, float64 or bool
	Value any

	// Raw the literal as written
	Raw string
}
