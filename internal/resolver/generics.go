package resolver

import (
	"sort"
	"strings"

	"github.com/griffnb/core-tsdoc/internal/domain"
)

// Bound a type argument together with the binding it was written under.
// A nil Node marks a parameter that received no argument and has no default.
type Bound struct {
	Node  *domain.TypeNode
	Scope Binding
}

// Binding maps formal type parameter names to their bound arguments.
// Bindings are never mutated after construction.
type Binding struct {
	params map[string]Bound
}

// EmptyBinding is the binding of code outside any generic declaration.
var EmptyBinding = Binding{}

// Bind pairs the type parameters of decl with args positionally. Arguments
// are resolved later in parent, the scope they were written in. Missing
// arguments fall back to the parameter's default, which is written in the
// scope of decl itself. An argument that is a bare reference to one of the
// parent's parameters is replaced by the parent's bound value.
func Bind(decl *domain.Declaration, args []*domain.TypeNode, parent Binding) Binding {
	if decl == nil || len(decl.TypeParams) == 0 {
		return EmptyBinding
	}

	params := make(map[string]Bound, len(decl.TypeParams))
	var defaults []domain.TypeParam
	for i, tp := range decl.TypeParams {
		switch {
		case i < len(args):
			params[tp.Name] = parent.substitute(Bound{Node: args[i], Scope: parent})
		case tp.Default != nil:
			defaults = append(defaults, tp)
		default:
			params[tp.Name] = Bound{}
		}
	}

	b := Binding{params: params}
	for _, tp := range defaults {
		// defaults may mention earlier parameters of the same declaration
		b.params[tp.Name] = b.substitute(Bound{Node: tp.Default, Scope: b})
	}
	return b
}

// Compose replaces every bound value that is a bare reference to one of
// parent's parameters with parent's bound value.
func (b Binding) Compose(parent Binding) Binding {
	if len(b.params) == 0 {
		return b
	}
	params := make(map[string]Bound, len(b.params))
	for name, bound := range b.params {
		params[name] = parent.substitute(bound)
	}
	return Binding{params: params}
}

// Lookup returns the value bound to a type parameter name.
func (b Binding) Lookup(name string) (Bound, bool) {
	bound, ok := b.params[name]
	return bound, ok
}

// Len returns the number of bound parameters.
func (b Binding) Len() int {
	return len(b.params)
}

// String renders the binding as "T=User, U=string" in name order.
func (b Binding) String() string {
	names := make([]string, 0, len(b.params))
	for name := range b.params {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		bound := b.params[name]
		if bound.Node == nil {
			parts[i] = name + "=?"
			continue
		}
		parts[i] = name + "=" + bound.Node.String()
	}
	return strings.Join(parts, ", ")
}

func (b Binding) substitute(bound Bound) Bound {
	if !bound.Node.IsTypeParamCandidate() {
		return bound
	}
	if outer, ok := b.params[bound.Node.Name]; ok {
		return outer
	}
	return bound
}

// maxArgumentDepth bounds how deeply array and type-argument names nest in a
// cache key. Deeper levels are named "object", so a generic instantiated
// with ever larger arguments (Nested<T[]> inside Nested<T>) ends up on a key
// that is already in progress.
const maxArgumentDepth = 4

// argumentName names a type argument for cache keys, after substitution.
// References are named by the qualified name of the declaration they find.
func (r *Resolver) argumentName(node *domain.TypeNode, b Binding, depth int) string {
	if node == nil {
		return domain.KeywordVoid
	}
	if depth > maxArgumentDepth {
		return domain.KeywordObject
	}

	switch node.Kind {
	case domain.NodeKeyword:
		switch node.Keyword {
		case domain.KeywordAny, domain.KeywordUnknown:
			return domain.KeywordObject
		}
		return node.Keyword
	case domain.NodeArray:
		return r.argumentName(node.Elem, b, depth+1) + "Array"
	case domain.NodeUnion, domain.NodeTypeLiteral:
		return domain.KeywordObject
	case domain.NodeReference:
		if node.IsTypeParamCandidate() {
			if bound, ok := b.Lookup(node.Name); ok {
				if bound.Node == nil {
					return domain.KeywordObject
				}
				return r.argumentName(bound.Node, bound.Scope, depth)
			}
		}
		name := r.declaredName(node.Name)
		for _, arg := range node.Args {
			name += r.argumentName(arg, b, depth+1)
		}
		return name
	case domain.NodeLiteral:
		return node.Literal.Raw
	}
	return node.Syntax
}

// declaredName returns the qualified name of the declaration name refers
// to, or name itself when it names no single declaration.
func (r *Resolver) declaredName(name string) string {
	decl, err := r.index.Lookup(name)
	if err != nil {
		return name
	}
	return decl.QualifiedName()
}

// cacheKey computes the table key of the declaration qualified by name
// instantiated with args, and the argument names it was built from.
func (r *Resolver) cacheKey(name string, args []*domain.TypeNode, b Binding) (string, []string) {
	if len(args) == 0 {
		return name, nil
	}
	names := make([]string, len(args))
	for i, arg := range args {
		names[i] = r.argumentName(arg, b, 0)
	}
	return name + strings.Join(names, ""), names
}
