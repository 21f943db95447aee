package resolver

import (
	"github.com/cockroachdb/errors"

	"github.com/griffnb/core-tsdoc/internal/console"
	"github.com/griffnb/core-tsdoc/internal/domain"
)

var referenceKinds = []domain.DeclKind{domain.ClassDecl, domain.InterfaceDecl, domain.TypeAliasDecl}

func (r *Resolver) resolveReference(node *domain.TypeNode, b Binding) (TypeExpression, error) {
	decl, err := r.index.Lookup(node.Name, referenceKinds...)
	if err != nil {
		return TypeExpression{}, err
	}

	if decl.Kind == domain.TypeAliasDecl && !decl.IsObjectShaped() {
		return r.resolveAlias(decl, node, b)
	}

	key, args := r.cacheKey(decl.QualifiedName(), node.Args, b)
	if err := r.reference(decl, key, args, Bind(decl, node.Args, b)); err != nil {
		return TypeExpression{}, err
	}
	return RefTo(key), nil
}

// resolveAlias resolves an alias that is neither object shaped nor a
// literal union to the type it names.
func (r *Resolver) resolveAlias(decl *domain.Declaration, node *domain.TypeNode, b Binding) (TypeExpression, error) {
	if r.aliases[decl] {
		console.Logger.Debug("resolver: alias %s refers to itself, using object", decl.QualifiedName())
		return Object(), nil
	}
	r.aliases[decl] = true
	defer delete(r.aliases, decl)

	target := decl.Type
	if target != nil && target.Site == nil {
		target.Site = decl
	}

	expr, err := r.resolve(target, Bind(decl, node.Args, b))
	if err != nil {
		return TypeExpression{}, errors.Wrapf(err, "resolving alias %q", decl.QualifiedName())
	}
	return expr, nil
}

// resolveStatusWrapper resolves NewResource<T> style wrappers. The wrapper
// keeps its own name as key and carries the resolved argument.
func (r *Resolver) resolveStatusWrapper(node *domain.TypeNode, b Binding) (TypeExpression, error) {
	arg, err := r.resolve(node.Args[0], b)
	if err != nil {
		return TypeExpression{}, err
	}

	key := node.Name
	decl, err := r.index.Lookup(node.Name, referenceKinds...)
	switch {
	case errors.Is(err, ErrUnknownDeclaration):
		if _, ok := r.table.Get(key); !ok {
			r.table.put(&Reference{Key: key, Name: key})
		}
	case err != nil:
		return TypeExpression{}, err
	default:
		key = decl.QualifiedName()
		if err := r.reference(decl, key, nil, Bind(decl, node.Args, b)); err != nil {
			return TypeExpression{}, err
		}
	}

	if entry, ok := r.table.Get(key); ok && entry.TypeArgument == nil {
		entry.TypeArgument = &arg
	}

	expr := RefTo(key)
	expr.TypeArgument = &arg
	return expr, nil
}

// reference ensures the table holds a completed entry for key, unless key
// is already being resolved further up the stack.
func (r *Resolver) reference(decl *domain.Declaration, key string, args []string, b Binding) error {
	if _, ok := r.table.Get(key); ok {
		return nil
	}

	if r.inProgress[key] {
		r.pending[key]++
		console.Logger.Debug("resolver: %s is recursive, using a placeholder", key)
		return nil
	}

	r.inProgress[key] = true
	defer delete(r.inProgress, key)

	console.Logger.Debug("resolver: resolving %s (%s)", key, b)

	members := decl.Members
	if decl.IsObjectShaped() {
		members = decl.Type.Members
	}

	props, additional, err := r.resolveMembers(decl.QualifiedName(), members, decl.Kind == domain.ClassDecl, b)
	if err != nil {
		return errors.Wrapf(err, "resolving type %q", key)
	}

	inherited, err := r.inheritedProperties(decl, b)
	if err != nil {
		return errors.Wrapf(err, "resolving type %q", key)
	}

	r.table.put(&Reference{
		Key:                key,
		Name:               decl.QualifiedName(),
		TypeArguments:      args,
		Description:        r.docs.Description(decl),
		Properties:         mergeProperties(props, inherited),
		AdditionalProperty: additional,
	})
	return nil
}

// resolveMembers resolves the properties and the index signature of an
// interface, class or object literal.
func (r *Resolver) resolveMembers(owner string, members []*domain.Member, class bool, b Binding) ([]Property, *Property, error) {
	props := make([]Property, 0, len(members))
	var additional *Property

	for _, m := range members {
		switch m.Kind {
		case domain.IndexSignatureMember:
			if additional != nil {
				continue
			}
			prop, err := r.indexSignature(owner, m, b)
			if err != nil {
				return nil, nil, err
			}
			additional = prop
			continue
		case domain.PropertyMember:
			if m.Static || (class && m.IsPrivate()) {
				continue
			}
		case domain.ConstructorParamMember:
			if !class || m.Accessibility != "public" {
				continue
			}
		default:
			continue
		}

		if m.Type == nil {
			return nil, nil, missingPropertyType(owner, m.Name)
		}
		if m.Type.Kind == domain.NodeFunction || r.skipped(m.Type) {
			continue
		}

		typ, err := r.resolve(m.Type, b)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "property %q", m.Name)
		}

		props = append(props, Property{
			Name:        m.Name,
			Type:        typ,
			Required:    !m.Optional,
			Description: r.docs.Description(m),
		})
	}

	return props, additional, nil
}

func (r *Resolver) indexSignature(owner string, m *domain.Member, b Binding) (*Property, error) {
	key, err := r.resolve(m.IndexKey, b)
	if err != nil {
		return nil, err
	}
	if key.Kind != KindPrimitive || key.Primitive != String {
		return nil, invalidIndexSignature(owner, key)
	}

	if m.Type == nil {
		return nil, missingPropertyType(owner, "["+m.Name+"]")
	}
	value, err := r.resolve(m.Type, b)
	if err != nil {
		return nil, err
	}

	return &Property{
		Type:        value,
		Required:    true,
		Description: r.docs.Description(m),
	}, nil
}

// skipped reports whether a property type names a type marked for skipping.
func (r *Resolver) skipped(node *domain.TypeNode) bool {
	for node != nil && node.Kind == domain.NodeArray {
		node = node.Elem
	}
	if node == nil || node.Kind != domain.NodeReference {
		return false
	}
	replacement, ok := r.overrides[node.Name]
	return ok && replacement == ""
}
