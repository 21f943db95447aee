package resolver

import (
	"github.com/cockroachdb/errors"

	"github.com/griffnb/core-tsdoc/internal/console"
	"github.com/griffnb/core-tsdoc/internal/domain"
)

// Index answers declaration lookups for the resolver.
type Index interface {
	Lookup(name string, kinds ...domain.DeclKind) (*domain.Declaration, error)
	Enums(name string) []*domain.Declaration
	LiteralAliases(name string) []*domain.Declaration
}

// FinishHook runs once with the final table when the run is finished.
type FinishHook func(table *Table) error

// Option configures a Resolver.
type Option func(r *Resolver)

// WithVocabulary replaces the recognized reference names.
func WithVocabulary(vocab Vocabulary) Option {
	return func(r *Resolver) {
		r.vocab = vocab
	}
}

// WithAnnotationReader replaces how number and date hints are read.
func WithAnnotationReader(reader AnnotationReader) Option {
	return func(r *Resolver) {
		r.hints = reader
	}
}

// WithDescriptionReader replaces how descriptions are read.
func WithDescriptionReader(reader DescriptionReader) Option {
	return func(r *Resolver) {
		r.docs = reader
	}
}

// WithOverrides sets type overrides: a replacement type name, or "" to skip.
func WithOverrides(overrides map[string]string) Option {
	return func(r *Resolver) {
		r.overrides = overrides
	}
}

// Resolver resolves type nodes for a single run. It owns the reference
// table, the in-progress set and the finish hooks, and is discarded after
// Finish. A Resolver is not safe for concurrent use.
type Resolver struct {
	index     Index
	vocab     Vocabulary
	hints     AnnotationReader
	docs      DescriptionReader
	overrides map[string]string

	table      *Table
	inProgress map[string]bool
	pending    map[string]int
	aliases    map[*domain.Declaration]bool
	hooks      []FinishHook
	finished   bool
}

// New creates a resolver over index.
func New(index Index, options ...Option) *Resolver {
	r := &Resolver{
		index:      index,
		vocab:      DefaultVocabulary(),
		hints:      SiteAnnotations{},
		docs:       SiteDocs{},
		overrides:  map[string]string{},
		table:      newTable(),
		inProgress: make(map[string]bool),
		pending:    make(map[string]int),
		aliases:    make(map[*domain.Declaration]bool),
	}

	for _, opt := range options {
		opt(r)
	}

	return r
}

// Table returns the reference table built so far.
func (r *Resolver) Table() *Table {
	return r.table
}

// OnFinish registers a hook to run, in registration order, when the run finishes.
func (r *Resolver) OnFinish(hook FinishHook) {
	r.hooks = append(r.hooks, hook)
}

// Resolve converts node into a type expression. Type parameters named by
// node are substituted from bindings.
func (r *Resolver) Resolve(node *domain.TypeNode, bindings Binding) (TypeExpression, error) {
	if r.finished {
		return TypeExpression{}, ErrFinished
	}
	return r.resolve(node, bindings)
}

// Finish ends the run: it checks that every recursive placeholder handed
// out was completed, then runs the finish hooks with the final table.
// Later calls return the same table without running the hooks again.
func (r *Resolver) Finish() (*Table, error) {
	if r.finished {
		return r.table, nil
	}
	r.finished = true

	for key, count := range r.pending {
		if _, ok := r.table.Get(key); !ok {
			return nil, errors.AssertionFailedf("placeholder %q handed out %d times but never completed", key, count)
		}
	}

	for _, hook := range r.hooks {
		if err := hook(r.table); err != nil {
			return nil, err
		}
	}

	console.Logger.Debug("resolver: finished with %d references", r.table.Len())
	return r.table, nil
}

func (r *Resolver) resolve(node *domain.TypeNode, b Binding) (TypeExpression, error) {
	if node == nil {
		return PrimitiveOf(Void), nil
	}

	switch node.Kind {
	case domain.NodeKeyword:
		return r.resolveKeyword(node)
	case domain.NodeArray:
		elem, err := r.resolve(node.Elem, b)
		if err != nil {
			return TypeExpression{}, err
		}
		return ArrayOf(elem), nil
	case domain.NodeUnion:
		return r.resolveUnion(node, b)
	case domain.NodeTypeLiteral:
		props, additional, err := r.resolveMembers("object literal", node.Members, false, b)
		if err != nil {
			return TypeExpression{}, err
		}
		return InlineObject(props, additional), nil
	case domain.NodeReference:
		return r.resolveNamed(node, b)
	case domain.NodeLiteral, domain.NodeFunction, domain.NodeUnsupported:
		return TypeExpression{}, unresolvedTypeKind(node)
	}

	return TypeExpression{}, unresolvedTypeKind(node)
}

func (r *Resolver) resolveKeyword(node *domain.TypeNode) (TypeExpression, error) {
	switch node.Keyword {
	case domain.KeywordVoid:
		return PrimitiveOf(Void), nil
	case domain.KeywordString:
		return PrimitiveOf(String), nil
	case domain.KeywordBoolean:
		return PrimitiveOf(Boolean), nil
	case domain.KeywordNumber:
		return PrimitiveOf(r.hinted(node.Site, r.vocab.NumberHints, Double)), nil
	case domain.KeywordAny, domain.KeywordObject, domain.KeywordUnknown:
		return Object(), nil
	}

	return TypeExpression{}, unresolvedTypeKind(node)
}

func (r *Resolver) hinted(site domain.Site, hints []Hint, fallback Primitive) Primitive {
	if site == nil {
		return fallback
	}
	if name := r.hints.Hint(site, hintNames(hints)...); name != "" {
		if p, ok := hintPrimitive(hints, name); ok {
			return p
		}
	}
	return fallback
}

// resolveUnion collapses "X[] | X" into X[]; every other union is opaque.
// Members are resolved either way so their errors surface, but the table
// entries they complete are dropped again when the union is opaque.
func (r *Resolver) resolveUnion(node *domain.TypeNode, b Binding) (TypeExpression, error) {
	mark := r.table.Len()

	members := make([]TypeExpression, 0, len(node.Types))
	nullable := false
	for _, t := range node.Types {
		if isNullish(t) {
			nullable = true
			continue
		}
		expr, err := r.resolve(t, b)
		if err != nil {
			return TypeExpression{}, errors.Wrapf(err, "union member %s", t)
		}
		members = append(members, expr)
	}

	if !nullable && len(members) == 2 {
		if array, ok := arrayOrScalar(members[0], members[1]); ok {
			return array, nil
		}
	}

	for _, key := range r.table.truncate(mark) {
		delete(r.pending, key)
	}
	return Object(), nil
}

// arrayOrScalar matches an array with a non-array of the element's kind,
// in either order.
func arrayOrScalar(first, second TypeExpression) (TypeExpression, bool) {
	array, scalar := first, second
	if array.Kind != KindArray {
		array, scalar = second, first
	}
	if array.Kind != KindArray || scalar.Kind == KindArray {
		return TypeExpression{}, false
	}

	name := array.Elem.KindName()
	if name == "" || name != scalar.KindName() {
		return TypeExpression{}, false
	}
	return array, true
}

// isNullish reports whether node is a keyword with no value of its own.
func isNullish(node *domain.TypeNode) bool {
	if node == nil || node.Kind != domain.NodeKeyword {
		return false
	}
	switch node.Keyword {
	case domain.KeywordNull, domain.KeywordUndefined, domain.KeywordNever:
		return true
	}
	return false
}

func (r *Resolver) resolveNamed(node *domain.TypeNode, b Binding) (TypeExpression, error) {
	if node.IsTypeParamCandidate() {
		if bound, ok := b.Lookup(node.Name); ok {
			if bound.Node == nil {
				return Object(), nil
			}
			return r.resolve(bound.Node, bound.Scope)
		}
	}

	if replacement, ok := r.overrides[node.Name]; ok && replacement != "" && replacement != node.Name {
		console.Logger.Debug("resolver: %s overridden by %s", node.Name, replacement)
		return r.resolve(overrideNode(replacement, node.Site), b)
	}

	name := node.SimpleName()
	switch {
	case r.vocab.IsBinary(name):
		return PrimitiveOf(Buffer), nil
	case r.vocab.IsDate(name):
		return PrimitiveOf(r.hinted(node.Site, r.vocab.DateHints, DateTime)), nil
	case r.vocab.IsAsync(name) && len(node.Args) == 1:
		return r.resolve(node.Args[0], b)
	case r.vocab.IsList(name) && len(node.Args) == 1:
		elem, err := r.resolve(node.Args[0], b)
		if err != nil {
			return TypeExpression{}, err
		}
		return ArrayOf(elem), nil
	}

	if enums := r.index.Enums(name); len(enums) > 0 {
		return r.resolveEnum(enums)
	}

	if aliases := r.index.LiteralAliases(name); len(aliases) > 0 {
		return r.resolveLiteralAlias(aliases)
	}

	if r.vocab.IsStatusWrapper(name) && len(node.Args) == 1 {
		return r.resolveStatusWrapper(node, b)
	}

	return r.resolveReference(node, b)
}

func (r *Resolver) resolveEnum(enums []*domain.Declaration) (TypeExpression, error) {
	if len(enums) > 1 {
		return TypeExpression{}, duplicateNamedType("enum", enums)
	}

	decl := enums[0]
	members := make([]any, len(decl.EnumMembers))
	for i, m := range decl.EnumMembers {
		if m.Value != nil && m.Value.Value != nil && m.Value.Value != "" {
			members[i] = m.Value.Value
			continue
		}
		members[i] = i
	}
	return EnumOf(members), nil
}

func (r *Resolver) resolveLiteralAlias(aliases []*domain.Declaration) (TypeExpression, error) {
	if len(aliases) > 1 {
		return TypeExpression{}, duplicateNamedType("literal union", aliases)
	}

	literals, _ := aliases[0].LiteralUnion()
	members := make([]any, len(literals))
	for i, l := range literals {
		members[i] = l.Value
	}
	return EnumOf(members), nil
}

// overrideNode builds the node an override replacement names.
func overrideNode(replacement string, site domain.Site) *domain.TypeNode {
	var node *domain.TypeNode
	if domain.IsKeyword(replacement) {
		node = domain.Keyword(replacement)
	} else {
		node = domain.Ref(replacement)
	}
	node.Site = site
	return node
}
