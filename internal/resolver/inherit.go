package resolver

import (
	"github.com/cockroachdb/errors"

	"github.com/griffnb/core-tsdoc/internal/console"
	"github.com/griffnb/core-tsdoc/internal/domain"
)

var baseKinds = []domain.DeclKind{domain.ClassDecl, domain.InterfaceDecl, domain.TypeAliasDecl}

// inheritedProperties collects the properties of every base named in the
// heritage clauses of decl, in order. Each base is resolved as a full
// reference under its own binding, so inherited generic members are
// substituted and the base lands in the table too.
func (r *Resolver) inheritedProperties(decl *domain.Declaration, b Binding) ([]Property, error) {
	if decl.Kind != domain.ClassDecl && decl.Kind != domain.InterfaceDecl {
		return nil, nil
	}

	var inherited []Property
	for _, heritage := range decl.Heritage {
		base, err := r.index.Lookup(heritage.Name, baseKinds...)
		if err != nil {
			return nil, errors.Wrapf(err, "base type of %q", decl.QualifiedName())
		}
		if base.Kind == domain.TypeAliasDecl && !base.IsObjectShaped() {
			console.Logger.Debug("resolver: %s extends non-object alias %s, ignored", decl.QualifiedName(), base.QualifiedName())
			continue
		}

		key, args := r.cacheKey(base.QualifiedName(), heritage.Args, b)
		if err := r.reference(base, key, args, Bind(base, heritage.Args, b)); err != nil {
			return nil, err
		}

		ref, ok := r.table.Get(key)
		if !ok {
			// cyclic heritage: the base is still being resolved
			continue
		}
		inherited = append(inherited, ref.Properties...)
	}
	return inherited, nil
}

// mergeProperties appends inherited properties to own. A property already
// present keeps its position and type, and takes the inherited description
// when it has none of its own.
func mergeProperties(own, inherited []Property) []Property {
	merged := make([]Property, 0, len(own)+len(inherited))
	merged = append(merged, own...)

	index := make(map[string]int, len(merged))
	for i, p := range merged {
		index[p.Name] = i
	}

	for _, p := range inherited {
		if i, exists := index[p.Name]; exists {
			if merged[i].Description == "" {
				merged[i].Description = p.Description
			}
			continue
		}
		index[p.Name] = len(merged)
		merged = append(merged, p)
	}
	return merged
}
